package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrAppointmentNotActive возвращается при переносе завершенной или отмененной записи
	ErrAppointmentNotActive = errors.New("update_appointment: appointment is not active")

	// ErrWorkshopNotFound возвращается, когда новая мастерская не найдена
	ErrWorkshopNotFound = errors.New("update_appointment: workshop not found")

	// ErrInvalidWorkshopForDealership возвращается, когда новая мастерская принадлежит другому дилерскому центру
	ErrInvalidWorkshopForDealership = errors.New("update_appointment: invalid workshop for dealership")

	// ErrServiceNotFound возвращается, когда новая услуга не найдена
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrDateInPast возвращается при переносе на уже прошедшие дату или время
	ErrDateInPast = errors.New("update_appointment: appointment time is in the past")

	// ErrSlotNotAvailable возвращается, когда целевое время не входит в список доступных слотов
	ErrSlotNotAvailable = errors.New("update_appointment: time slot not available")

	// ErrDailyServiceLimitReached возвращается, когда исчерпан дневной лимит записей на новую услугу
	ErrDailyServiceLimitReached = errors.New("update_appointment: daily limit reached for this service")

	// ErrSlotTaken возвращается, когда слот заняли параллельным запросом (можно повторить)
	ErrSlotTaken = errors.New("update_appointment: slot no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
