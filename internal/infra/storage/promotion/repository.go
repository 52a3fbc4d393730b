package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	table           = "promotions"
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"business_id",
	"code",
	"name",
	"discount_type",
	"value",
	"max_discount_amount",
	"valid_from",
	"valid_until",
	"min_purchase",
	"service_ids",
	"uses_count",
	"max_uses",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий промоакций
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промоакций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает промоакцию; код должен быть уже нормализован
func (r *Repository) Create(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"business_id",
			"code",
			"name",
			"discount_type",
			"value",
			"max_discount_amount",
			"valid_from",
			"valid_until",
			"min_purchase",
			"service_ids",
			"max_uses",
			"status",
		).
		Values(
			p.BusinessID,
			p.Code,
			p.Name,
			p.DiscountType,
			p.Value,
			p.MaxDiscountAmount,
			p.ValidFrom,
			p.ValidUntil,
			p.MinPurchase,
			pq.Array(nonNil(p.ServiceIDs)),
			p.MaxUses,
			p.Status,
		).
		Suffix("RETURNING id, uses_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.UsesCount, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetActiveByCode ищет активную промоакцию бизнеса по коду, действующую в момент now
func (r *Repository) GetActiveByCode(ctx context.Context, businessID int64, code string, now time.Time) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"business_id": businessID,
			"code":        code,
			"status":      domain.PromotionActive,
		}).
		Where(squirrel.LtOrEq{"valid_from": now}).
		Where(squirrel.GtOrEq{"valid_until": now}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCode - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCode - scan promotion: %w", ErrScanRow, err)
	}

	return p, nil
}

// ListByBusiness возвращает промоакции бизнеса, новые первыми
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	promotions := make([]*domain.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return promotions, nil
}

// IncrementUsage увеличивает счётчик использований, если лимит ещё не исчерпан.
// false означает, что промоакция исчерпана или не найдена.
func (r *Repository) IncrementUsage(ctx context.Context, businessID, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("uses_count", squirrel.Expr("uses_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		Where(squirrel.Or{
			squirrel.Eq{"max_uses": nil},
			squirrel.Expr("uses_count < max_uses"),
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: IncrementUsage - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: IncrementUsage - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var (
		p          domain.Promotion
		maxAmount  sql.NullFloat64
		maxUses    sql.NullInt64
		serviceIDs pq.Int64Array
		createdAt  sql.NullTime
		updatedAt  sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.Code,
		&p.Name,
		&p.DiscountType,
		&p.Value,
		&maxAmount,
		&p.ValidFrom,
		&p.ValidUntil,
		&p.MinPurchase,
		&serviceIDs,
		&p.UsesCount,
		&maxUses,
		&p.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxAmount.Valid {
		v := maxAmount.Float64
		p.MaxDiscountAmount = &v
	}
	if maxUses.Valid {
		v := int(maxUses.Int64)
		p.MaxUses = &v
	}
	p.ServiceIDs = []int64(serviceIDs)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
