package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий настроек бизнеса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки бизнеса
func (r *Repository) Get(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"buffer_minutes",
		"timezone",
		"allow_cancellation",
		"cancellation_hours_before",
		"penalty_type",
		"penalty_amount",
		"deposit_type",
		"deposit_amount",
		"created_at",
		"updated_at",
	).
		From("business_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BusinessSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.BusinessID,
		&s.BufferMinutes,
		&s.Timezone,
		&s.Cancellation.AllowCancellation,
		&s.Cancellation.HoursBeforeAppointment,
		&s.Cancellation.PenaltyType,
		&s.Cancellation.PenaltyAmount,
		&s.Deposit.Type,
		&s.Deposit.Amount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или полностью перезаписывает настройки бизнеса
func (r *Repository) Upsert(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_settings").
		Columns(
			"business_id",
			"buffer_minutes",
			"timezone",
			"allow_cancellation",
			"cancellation_hours_before",
			"penalty_type",
			"penalty_amount",
			"deposit_type",
			"deposit_amount",
		).
		Values(
			s.BusinessID,
			s.BufferMinutes,
			s.Timezone,
			s.Cancellation.AllowCancellation,
			s.Cancellation.HoursBeforeAppointment,
			s.Cancellation.PenaltyType,
			s.Cancellation.PenaltyAmount,
			s.Deposit.Type,
			s.Deposit.Amount,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			buffer_minutes = EXCLUDED.buffer_minutes,
			timezone = EXCLUDED.timezone,
			allow_cancellation = EXCLUDED.allow_cancellation,
			cancellation_hours_before = EXCLUDED.cancellation_hours_before,
			penalty_type = EXCLUDED.penalty_type,
			penalty_amount = EXCLUDED.penalty_amount,
			deposit_type = EXCLUDED.deposit_type,
			deposit_amount = EXCLUDED.deposit_amount,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
