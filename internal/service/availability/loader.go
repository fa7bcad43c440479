package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
)

// Loader читает входные данные расчета: по одному запросу на каждую категорию
type Loader struct {
	workshopRepo    WorkshopRepository
	configRepo      ConfigRepository
	advisorRepo     AdvisorRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	defaultTimezone string
}

// NewLoader создает загрузчик конфигурации
func NewLoader(
	workshopRepo WorkshopRepository,
	configRepo ConfigRepository,
	advisorRepo AdvisorRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	defaultTimezone string,
) *Loader {
	if defaultTimezone == "" {
		defaultTimezone = domain.DefaultTimezone
	}
	return &Loader{
		workshopRepo:    workshopRepo,
		configRepo:      configRepo,
		advisorRepo:     advisorRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		defaultTimezone: defaultTimezone,
	}
}

// ResolveWorkshop возвращает мастерскую запроса: явно указанную (с проверкой
// принадлежности дилерскому центру) или основную мастерскую дилерского центра
func (l *Loader) ResolveWorkshop(ctx context.Context, dealershipID int64, workshopID *int64) (*domain.Workshop, error) {
	var (
		workshop *domain.Workshop
		err      error
	)

	if workshopID != nil {
		workshop, err = l.workshopRepo.GetByID(ctx, *workshopID)
	} else {
		workshop, err = l.workshopRepo.GetMainByDealership(ctx, dealershipID)
	}

	if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
		return nil, ErrWorkshopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get workshop: %v", ErrInternal, err)
	}

	if workshop.DealershipID != dealershipID {
		return nil, ErrWorkshopNotInDealership
	}

	return workshop, nil
}

// Load читает снимок данных на дату. Закрытый день не требует чтения мастеров и записей
func (l *Loader) Load(ctx context.Context, q Query) (*DaySnapshot, error) {
	workshop, err := l.ResolveWorkshop(ctx, q.DealershipID, q.WorkshopID)
	if err != nil {
		return nil, err
	}

	service, err := l.catalogRepo.GetByID(ctx, q.ServiceID)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	day := &DaySnapshot{
		Date:     q.Date,
		Weekday:  q.Date.Weekday(),
		Workshop: workshop,
		Service:  service,
		Timezone: l.defaultTimezone,
		Catalog:  map[int64]*domain.Service{service.ID: service},
	}

	cfg, err := l.configRepo.GetConfigWithHierarchy(ctx, workshop.DealershipID, workshop.ID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: failed to get shift config: %v", ErrInternal, err)
	}
	if cfg != nil {
		day.Config = cfg
		if cfg.Timezone != "" {
			day.Timezone = cfg.Timezone
		}
	}

	hours, err := l.configRepo.GetOperatingHours(ctx, workshop.ID, day.Weekday)
	if err != nil && !errors.Is(err, configRepo.ErrOperatingHoursNotFound) {
		return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}
	day.Hours = hours

	blocks, err := l.workshopRepo.GetBlockedDates(ctx, workshop.ID, q.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}
	day.Blocks = blocks

	if closure, _ := closureOf(day); closure != ClosureNone {
		return day, nil
	}

	advisors, err := l.advisorRepo.ListActiveByWorkshop(ctx, workshop.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get advisors: %v", ErrInternal, err)
	}
	day.Advisors = advisors

	advisorIDs := make([]int64, 0, len(advisors))
	for _, a := range advisors {
		if a.WorksOnWeekday(day.Weekday) {
			advisorIDs = append(advisorIDs, a.ID)
		}
	}

	// Сетка загружается по всем услугам: слот чужой услуги может наследоваться
	rows, err := l.advisorRepo.ListSlotConfigurations(ctx, advisorIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get slot configurations: %v", ErrInternal, err)
	}
	day.Assignments = domain.NewSlotAssignments(rows)

	referenced := make([]int64, 0)
	seen := map[int64]struct{}{service.ID: {}}
	for _, grid := range day.Assignments {
		for _, id := range grid.ServiceIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			referenced = append(referenced, id)
		}
	}

	catalog, err := l.catalogRepo.GetByIDs(ctx, referenced)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	for id, svc := range catalog {
		day.Catalog[id] = svc
	}

	date := q.Date
	appointments, err := l.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		WorkshopID: workshop.ID,
		Date:       &date,
		ExcludeID:  q.ExcludeAppointmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	day.Appointments = appointments

	return day, nil
}
