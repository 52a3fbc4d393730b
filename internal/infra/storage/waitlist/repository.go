package waitlist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const table = "waitlist_entries"

var columns = []string{
	"id",
	"business_id",
	"client_id",
	"service_ids",
	"preferred_staff_id",
	"date_from",
	"date_to",
	"time_from",
	"time_to",
	"days_of_week",
	"priority",
	"status",
	"appointment_id",
	"notes",
	"notifications",
	"created_at",
	"updated_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку со статусом active и пустой историей уведомлений
func (r *Repository) Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"business_id",
			"client_id",
			"service_ids",
			"preferred_staff_id",
			"date_from",
			"date_to",
			"time_from",
			"time_to",
			"days_of_week",
			"priority",
			"status",
			"notes",
		).
		Values(
			e.BusinessID,
			e.ClientID,
			pq.Array(e.ServiceIDs),
			e.PreferredStaffID,
			dateArg(e.DateFrom),
			dateArg(e.DateTo),
			e.TimeFrom,
			e.TimeTo,
			pq.Array(intsToInt64(e.DaysOfWeek)),
			e.Priority,
			domain.WaitlistActive,
			e.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	e.Status = domain.WaitlistActive
	e.Notifications = []domain.WaitlistNotification{}
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// GetByID получает заявку бизнеса по ID; внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "business_id": businessID})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// ListActive возвращает активные заявки: сначала VIP, затем в порядке создания.
// При фильтре по сотруднику в выборку попадают и заявки без предпочтения.
func (r *Repository) ListActive(ctx context.Context, filter domain.WaitlistFilter) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"business_id": filter.BusinessID,
			"status":      domain.WaitlistActive,
		})

	if filter.StaffID != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"preferred_staff_id": nil},
			squirrel.Eq{"preferred_staff_id": *filter.StaffID},
		})
	}

	query, args, err := builder.
		OrderBy("(priority = 'vip') DESC", "created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %w", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// Fulfill закрывает активную заявку записью и дописывает уведомление в историю.
// false означает, что заявка не найдена или уже не активна.
func (r *Repository) Fulfill(ctx context.Context, cmd domain.FulfillCommand) (bool, error) {
	notification, err := json.Marshal([]domain.WaitlistNotification{cmd.Notification})
	if err != nil {
		return false, fmt.Errorf("%w: Fulfill - marshal notification: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.WaitlistFulfilled).
		Set("appointment_id", cmd.AppointmentID).
		Set("notifications", squirrel.Expr("notifications || ?::jsonb", string(notification))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          cmd.EntryID,
			"business_id": cmd.BusinessID,
			"status":      domain.WaitlistActive,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Fulfill - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, "Fulfill", query, args)
}

// Cancel отменяет активную заявку
func (r *Repository) Cancel(ctx context.Context, businessID, id int64) (bool, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.WaitlistCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"business_id": businessID,
			"status":      domain.WaitlistActive,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, "Cancel", query, args)
}

func (r *Repository) execConditional(ctx context.Context, op, query string, args []interface{}) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var (
		e             domain.WaitlistEntry
		serviceIDs    pq.Int64Array
		daysOfWeek    pq.Int64Array
		preferred     sql.NullInt64
		dateFrom      sql.NullTime
		dateTo        sql.NullTime
		timeFrom      sql.NullString
		timeTo        sql.NullString
		appointmentID sql.NullInt64
		notes         sql.NullString
		notifications []byte
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&e.ID,
		&e.BusinessID,
		&e.ClientID,
		&serviceIDs,
		&preferred,
		&dateFrom,
		&dateTo,
		&timeFrom,
		&timeTo,
		&daysOfWeek,
		&e.Priority,
		&e.Status,
		&appointmentID,
		&notes,
		&notifications,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.ServiceIDs = []int64(serviceIDs)
	e.DaysOfWeek = make([]int, 0, len(daysOfWeek))
	for _, d := range daysOfWeek {
		e.DaysOfWeek = append(e.DaysOfWeek, int(d))
	}

	if preferred.Valid {
		v := preferred.Int64
		e.PreferredStaffID = &v
	}
	if dateFrom.Valid {
		v := dateFrom.Time
		e.DateFrom = &v
	}
	if dateTo.Valid {
		v := dateTo.Time
		e.DateTo = &v
	}
	if timeFrom.Valid {
		v := types.TimeString(timeFrom.String)
		e.TimeFrom = &v
	}
	if timeTo.Valid {
		v := types.TimeString(timeTo.String)
		e.TimeTo = &v
	}
	if appointmentID.Valid {
		v := appointmentID.Int64
		e.AppointmentID = &v
	}
	if notes.Valid {
		v := notes.String
		e.Notes = &v
	}

	e.Notifications = []domain.WaitlistNotification{}
	if len(notifications) > 0 {
		if err := json.Unmarshal(notifications, &e.Notifications); err != nil {
			return nil, fmt.Errorf("decode notifications: %w", err)
		}
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

func dateArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateFormat)
}

func intsToInt64(values []int) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		out = append(out, int64(v))
	}
	return out
}
