package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"dealership_id",
	"workshop_id",
	"shift_duration_minutes",
	"timezone",
	"created_at",
	"updated_at",
}

var operatingHoursColumns = []string{
	"workshop_id",
	"weekday",
	"is_working_day",
	"opening_time",
	"closing_time",
	"reception_end_time",
	"max_simultaneous_services",
}

// Repository репозиторий конфигурации смен и графика работы мастерских
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDealershipAndWorkshop получает конфигурацию ровно для указанного уровня:
// workshopID = nil означает конфигурацию дилерского центра по умолчанию
func (r *Repository) GetByDealershipAndWorkshop(ctx context.Context, dealershipID int64, workshopID *int64) (*domain.DealershipConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("dealership_configurations").
		Where(squirrel.Eq{"dealership_id": dealershipID})

	if workshopID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"workshop_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"workshop_id": *workshopID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDealershipAndWorkshop - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.DealershipConfiguration
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.DealershipID,
		&cfg.WorkshopID,
		&cfg.ShiftDurationMinutes,
		&cfg.Timezone,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDealershipAndWorkshop - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация мастерской (dealershipID, workshopID)
// 2. Конфигурация дилерского центра (dealershipID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, dealershipID, workshopID int64) (*domain.DealershipConfiguration, error) {
	cfg, err := r.GetByDealershipAndWorkshop(ctx, dealershipID, &workshopID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (workshop): %v", ErrExecQuery, err)
	}

	cfg, err = r.GetByDealershipAndWorkshop(ctx, dealershipID, nil)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (dealership): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Upsert создает или обновляет конфигурацию для уровня cfg.WorkshopID
func (r *Repository) Upsert(ctx context.Context, cfg *domain.DealershipConfiguration) (*domain.DealershipConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("dealership_configurations").
		Set("shift_duration_minutes", cfg.ShiftDurationMinutes).
		Set("timezone", cfg.Timezone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"dealership_id": cfg.DealershipID})

	if cfg.WorkshopID == nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"workshop_id": nil})
	} else {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"workshop_id": *cfg.WorkshopID})
	}

	query, args, err := updateBuilder.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err == nil {
		cfg.CreatedAt = createdAt.Time
		cfg.UpdatedAt = updatedAt.Time
		return cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Upsert - execute update: %v", ErrExecQuery, err)
	}

	// Конфигурации еще нет, создаем
	query, args, err = psqlbuilder.Insert("dealership_configurations").
		Columns("dealership_id", "workshop_id", "shift_duration_minutes", "timezone").
		Values(cfg.DealershipID, cfg.WorkshopID, cfg.ShiftDurationMinutes, cfg.Timezone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// GetOperatingHours получает график работы мастерской на день недели
func (r *Repository) GetOperatingHours(ctx context.Context, workshopID int64, weekday time.Weekday) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(operatingHoursColumns...).
		From("operating_hours").
		Where(squirrel.Eq{"workshop_id": workshopID, "weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	hours, err := scanOperatingHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOperatingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - scan hours: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ListOperatingHours получает график работы мастерской на всю неделю (с воскресенья)
func (r *Repository) ListOperatingHours(ctx context.Context, workshopID int64) ([]*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(operatingHoursColumns...).
		From("operating_hours").
		Where(squirrel.Eq{"workshop_id": workshopID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.OperatingHours, 0, 7)
	for rows.Next() {
		hours, err := scanOperatingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOperatingHours - scan hours: %v", ErrScanRow, err)
		}
		result = append(result, hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOperatingHours(row rowScanner) (*domain.OperatingHours, error) {
	var hours domain.OperatingHours
	var weekday int

	err := row.Scan(
		&hours.WorkshopID,
		&weekday,
		&hours.IsWorkingDay,
		&hours.OpeningTime,
		&hours.ClosingTime,
		&hours.ReceptionEndTime,
		&hours.MaxSimultaneousServices,
	)
	if err != nil {
		return nil, err
	}

	hours.Weekday = time.Weekday(weekday)
	return &hours, nil
}
