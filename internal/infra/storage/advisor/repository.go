package advisor

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий мастеров-приемщиков и их сетки слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров-приемщиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func advisorColumns() []string {
	columns := []string{
		"id",
		"workshop_id",
		"name",
		"is_active",
		"shift_start_time",
		"shift_end_time",
		"lunch_start_time",
		"lunch_end_time",
	}
	for _, day := range domain.WeekdayKeys {
		columns = append(columns, "works_"+day)
	}
	for _, day := range domain.WeekdayKeys {
		columns = append(columns, "max_slots_"+day)
	}
	return columns
}

// ListActiveByWorkshop получает активных мастеров мастерской, упорядоченных по ID
func (r *Repository) ListActiveByWorkshop(ctx context.Context, workshopID int64) ([]*domain.ServiceAdvisor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(advisorColumns()...).
		From("service_advisors").
		Where(squirrel.Eq{"workshop_id": workshopID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByWorkshop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByWorkshop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	advisors := make([]*domain.ServiceAdvisor, 0)
	for rows.Next() {
		var a domain.ServiceAdvisor
		dest := []interface{}{
			&a.ID,
			&a.WorkshopID,
			&a.Name,
			&a.IsActive,
			&a.ShiftStart,
			&a.ShiftEnd,
			&a.LunchStart,
			&a.LunchEnd,
		}
		for i := range a.WorksOn {
			dest = append(dest, &a.WorksOn[i])
		}
		for i := range a.MaxSlots {
			dest = append(dest, &a.MaxSlots[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByWorkshop - scan advisor: %v", ErrScanRow, err)
		}
		advisors = append(advisors, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByWorkshop - rows error: %v", ErrScanRow, err)
	}

	return advisors, nil
}

// ListSlotConfigurations получает сетку слотов указанных мастеров по всем услугам
func (r *Repository) ListSlotConfigurations(ctx context.Context, advisorIDs []int64) ([]*domain.AdvisorSlotConfiguration, error) {
	if len(advisorIDs) == 0 {
		return []*domain.AdvisorSlotConfiguration{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "advisor_id", "slot_position", "service_id").
		From("advisor_slot_configurations").
		Where(squirrel.Eq{"advisor_id": advisorIDs}).
		OrderBy("advisor_id ASC", "slot_position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotConfigurations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotConfigurations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.AdvisorSlotConfiguration, 0)
	for rows.Next() {
		var c domain.AdvisorSlotConfiguration
		if err := rows.Scan(&c.ID, &c.AdvisorID, &c.SlotPosition, &c.ServiceID); err != nil {
			return nil, fmt.Errorf("%w: ListSlotConfigurations - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlotConfigurations - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}
