package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MessageWriter источник записи сообщений (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события записи в Kafka. Без брокеров события только логируются
type Publisher struct {
	writer MessageWriter
	log    Logger
}

// NewPublisher создает издателя для брокеров из списка через запятую
func NewPublisher(brokers string, timeout time.Duration, log Logger) *Publisher {
	list := SplitBrokers(brokers)
	if len(list) == 0 {
		log.Warn("Events publisher disabled (no kafka brokers configured)")
		return &Publisher{log: log}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(list...),
		Balancer:     &kafka.Hash{},
		WriteTimeout: timeout,
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer, log: log}
}

// NewPublisherWithWriter создает издателя поверх готового writer
func NewPublisherWithWriter(writer MessageWriter, log Logger) *Publisher {
	return &Publisher{writer: writer, log: log}
}

// Publish отправляет событие eventType по записи. Топик совпадает с типом события
func (p *Publisher) Publish(ctx context.Context, eventType string, appointment *domain.Appointment) error {
	event := NewEvent(eventType, appointment, time.Now())

	if p.writer == nil {
		p.log.Info("Events: %s appointment=%d (not published, kafka disabled)", eventType, appointment.ID)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := kafka.Message{
		Topic: eventType,
		Key:   []byte(strconv.FormatInt(appointment.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s appointment=%d: %v", ErrPublish, eventType, appointment.ID, err)
	}

	p.log.Info("Events: published %s appointment=%d event_id=%s", eventType, appointment.ID, event.ID)
	return nil
}

// Close закрывает соединение с брокерами
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NewEvent строит событие по текущему состоянию записи
func NewEvent(eventType string, a *domain.Appointment, at time.Time) Event {
	return Event{
		ID:              uuid.NewString(),
		Type:            eventType,
		AppointmentID:   a.ID,
		ClientID:        a.ClientID,
		WorkshopID:      a.WorkshopID,
		ServiceID:       a.ServiceID,
		AdvisorID:       a.AdvisorID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: a.AppointmentTime.String(),
		Status:          string(a.Status),
		OccurredAt:      at.UTC(),
	}
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
