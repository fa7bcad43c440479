package workshop

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

// Repository репозиторий мастерских, клиентов и заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастерских
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастерскую по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dealership_id", "name", "is_main").
		From("workshops").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.Workshop
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.DealershipID, &w.Name, &w.IsMain)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkshopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan workshop: %v", ErrScanRow, err)
	}

	return &w, nil
}

// GetMainByDealership получает основную мастерскую дилерского центра.
// Если ни одна не отмечена основной, возвращает мастерскую с наименьшим ID
func (r *Repository) GetMainByDealership(ctx context.Context, dealershipID int64) (*domain.Workshop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dealership_id", "name", "is_main").
		From("workshops").
		Where(squirrel.Eq{"dealership_id": dealershipID}).
		OrderBy("is_main DESC", "id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMainByDealership - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.Workshop
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.DealershipID, &w.Name, &w.IsMain)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkshopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMainByDealership - scan workshop: %v", ErrScanRow, err)
	}

	return &w, nil
}

// GetClient получает клиента по ID
func (r *Repository) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dealership_id", "name").
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetClient - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.DealershipID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClient - scan client: %v", ErrScanRow, err)
	}

	return &c, nil
}

// GetBlockedDates получает блокировки мастерской на дату
func (r *Repository) GetBlockedDates(ctx context.Context, workshopID int64, date time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"workshop_id",
		"date",
		"full_day",
		"start_time",
		"end_time",
		"reason",
	).
		From("blocked_dates").
		Where(squirrel.Eq{"workshop_id": workshopID, "date": date.Format(domain.DateFormat)}).
		OrderBy("full_day DESC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var b domain.BlockedDate
		if err := rows.Scan(
			&b.ID,
			&b.WorkshopID,
			&b.Date,
			&b.FullDay,
			&b.StartTime,
			&b.EndTime,
			&b.Reason,
		); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedDates - scan block: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
