package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"business_id",
	"staff_id",
	"staff_name",
	"client_id",
	"client_info",
	"booking_date",
	"start_time",
	"end_time",
	"start_at",
	"end_at",
	"total_duration",
	"services",
	"subtotal",
	"discount_amount",
	"promotion_id",
	"total",
	"deposit_amount",
	"deposit_paid",
	"tip",
	"final_total",
	"status",
	"source",
	"waitlist_entry_id",
	"notes",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
	"refunded",
	"refund_amount",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Пересечение с активной записью того же сотрудника отклоняется ограничением
// appointments_no_overlap и возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	services, err := json.Marshal(a.Services)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"business_id",
			"staff_id",
			"staff_name",
			"client_id",
			"client_info",
			"booking_date",
			"start_time",
			"end_time",
			"start_at",
			"end_at",
			"total_duration",
			"services",
			"subtotal",
			"discount_amount",
			"promotion_id",
			"total",
			"deposit_amount",
			"deposit_paid",
			"tip",
			"final_total",
			"status",
			"source",
			"waitlist_entry_id",
			"notes",
		).
		Values(
			a.BusinessID,
			a.StaffID,
			a.StaffName,
			a.ClientID,
			a.ClientInfo,
			a.Date.Format(domain.DateFormat),
			a.StartTime,
			a.EndTime,
			a.StartAt,
			a.EndAt,
			a.TotalDuration,
			string(services),
			a.Pricing.Subtotal,
			a.Pricing.DiscountAmount,
			a.Pricing.PromotionID,
			a.Pricing.Total,
			a.Pricing.DepositAmount,
			a.Pricing.DepositPaid,
			a.Pricing.Tip,
			a.Pricing.FinalTotal,
			a.Status,
			a.Source,
			a.WaitlistEntryID,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, classifyWriteErr("Create - execute insert", err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись бизнеса по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "business_id": businessID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// FindConflicting возвращает активные записи сотрудника на дату, кроме ExcludeID.
// Пересечение интервалов проверяет вызывающий код.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindConflicting(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error) {
	filter.IncludeInactive = false
	return r.listStaffDay(ctx, "FindConflicting", filter, dbmetrics.IsInTransaction(ctx))
}

// ListStaffDay возвращает записи сотрудника на дату, отсортированные по времени начала
func (r *Repository) ListStaffDay(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error) {
	return r.listStaffDay(ctx, "ListStaffDay", filter, false)
}

func (r *Repository) listStaffDay(ctx context.Context, op string, filter domain.StaffDayFilter, lock bool) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"business_id":  filter.BusinessID,
			"staff_id":     filter.StaffID,
			"booking_date": filter.Date.Format(domain.DateFormat),
		}).
		OrderBy("start_at ASC")

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return appointments, nil
}

// ConditionalTransition переводит запись в cmd.To, только если текущий статус входит в cmd.From.
// false означает, что запись не найдена или уже в другом статусе.
func (r *Repository) ConditionalTransition(ctx context.Context, cmd domain.TransitionCommand) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", cmd.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          cmd.AppointmentID,
			"business_id": cmd.BusinessID,
			"status":      statusStrings(cmd.From),
		})

	if c := cmd.Cancellation; c != nil {
		updateBuilder = updateBuilder.
			Set("cancelled_at", c.CancelledAt).
			Set("cancelled_by", c.CancelledBy).
			Set("cancellation_reason", c.Reason).
			Set("refunded", c.Refunded).
			Set("refund_amount", c.RefundAmount)
	}

	if cmd.Tip != nil {
		updateBuilder = updateBuilder.
			Set("tip", *cmd.Tip).
			Set("final_total", squirrel.Expr("total + ?", *cmd.Tip))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ConditionalTransition - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "ConditionalTransition", query, args)
}

// Reschedule переносит запись, если её статус входит в cmd.From
func (r *Repository) Reschedule(ctx context.Context, cmd domain.RescheduleCommand) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("staff_id", cmd.StaffID).
		Set("staff_name", cmd.StaffName).
		Set("booking_date", cmd.Date.Format(domain.DateFormat)).
		Set("start_time", cmd.StartTime).
		Set("end_time", cmd.EndTime).
		Set("start_at", cmd.StartAt).
		Set("end_at", cmd.EndAt).
		Set("total_duration", cmd.TotalDuration).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          cmd.AppointmentID,
			"business_id": cmd.BusinessID,
			"status":      statusStrings(cmd.From),
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "Reschedule", query, args)
}

// MarkDepositPaid отмечает депозит оплаченным для записи, которая ещё занимает слот
func (r *Repository) MarkDepositPaid(ctx context.Context, businessID, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("deposit_paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"business_id": businessID,
			"status":      statusStrings(domain.ActiveStatuses),
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkDepositPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "MarkDepositPaid", query, args)
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (bool, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, classifyWriteErr(op+" - execute update", err)
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

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                  domain.Appointment
		services           []byte
		cancelledAt        sql.NullTime
		cancelledBy        sql.NullString
		cancellationReason sql.NullString
		refunded           sql.NullBool
		refundAmount       sql.NullFloat64
		createdAt          sql.NullTime
		updatedAt          sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.StaffID,
		&a.StaffName,
		&a.ClientID,
		&a.ClientInfo,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.StartAt,
		&a.EndAt,
		&a.TotalDuration,
		&services,
		&a.Pricing.Subtotal,
		&a.Pricing.DiscountAmount,
		&a.Pricing.PromotionID,
		&a.Pricing.Total,
		&a.Pricing.DepositAmount,
		&a.Pricing.DepositPaid,
		&a.Pricing.Tip,
		&a.Pricing.FinalTotal,
		&a.Status,
		&a.Source,
		&a.WaitlistEntryID,
		&a.Notes,
		&cancelledAt,
		&cancelledBy,
		&cancellationReason,
		&refunded,
		&refundAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(services, &a.Services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}

	if cancelledAt.Valid {
		c := &domain.Cancellation{
			CancelledAt:  cancelledAt.Time,
			CancelledBy:  domain.CancelledBy(cancelledBy.String),
			Refunded:     refunded.Bool,
			RefundAmount: refundAmount.Float64,
		}
		if cancellationReason.Valid {
			reason := cancellationReason.String
			c.Reason = &reason
		}
		a.Cancellation = c
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
