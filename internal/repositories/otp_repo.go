package repositories

import (
	"context"
	"fmt"
	"time"

	"driveline/internal/database"
	"driveline/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OTPRepository handles one-time-code data access
type OTPRepository struct {
	db *database.DB
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *database.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

const otpColumns = `id, destination, channel, code, used, created_at, expires_at, verified_at`

// scanOTPRow handles nullable fields and populates a OneTimeCode model from a database row
func scanOTPRow(row rowScanner) (*models.OneTimeCode, error) {
	var otp models.OneTimeCode
	var verifiedAt *time.Time

	err := row.Scan(
		&otp.ID, &otp.Destination, &otp.Channel, &otp.Code,
		&otp.Used, &otp.CreatedAt, &otp.ExpiresAt, &verifiedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	otp.VerifiedAt = verifiedAt
	return &otp, nil
}

// CreateInvalidatingPrior marks every unused code for the destination
// and channel as used and inserts a fresh one, inside a single
// transaction. A concurrent verification can therefore never observe
// two live codes for the same destination, and two concurrent issues
// cannot both leave a live row behind.
func (r *OTPRepository) CreateInvalidatingPrior(ctx context.Context, destination string, channel models.Channel, code string, expiresAt time.Time) (*models.OneTimeCode, error) {
	var created *models.OneTimeCode

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		invalidate := `
			UPDATE one_time_codes
			SET used = TRUE
			WHERE destination = $1 AND channel = $2 AND used = FALSE
		`
		if _, err := tx.Exec(ctx, invalidate, destination, channel); err != nil {
			return fmt.Errorf("failed to invalidate prior codes: %w", err)
		}

		insert := `
			INSERT INTO one_time_codes (id, destination, channel, code, used, created_at, expires_at)
			VALUES ($1, $2, $3, $4, FALSE, $5, $6)
			RETURNING ` + otpColumns

		now := time.Now()
		otp, err := scanOTPRow(tx.QueryRow(ctx, insert,
			uuid.New().String(), destination, channel, code, now, expiresAt,
		))
		if err != nil {
			return fmt.Errorf("failed to create one-time code: %w", err)
		}

		created = otp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetMatching retrieves the most recently created live code matching the
// submitted value. Wrong codes and expired codes both come back as
// ErrNotFound; the service layer collapses them into one response.
func (r *OTPRepository) GetMatching(ctx context.Context, destination string, channel models.Channel, code string, now time.Time) (*models.OneTimeCode, error) {
	query := `
		SELECT ` + otpColumns + `
		FROM one_time_codes
		WHERE destination = $1 AND channel = $2 AND code = $3
		  AND used = FALSE AND expires_at >= $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	otp, err := scanOTPRow(r.db.Pool.QueryRow(ctx, query, destination, channel, code, now))
	if err != nil {
		return nil, err
	}

	return otp, nil
}

// MarkUsed marks a code as consumed. The used = FALSE guard makes a
// concurrent double-verify lose with ErrNotFound.
func (r *OTPRepository) MarkUsed(ctx context.Context, id string, verifiedAt time.Time) error {
	query := `
		UPDATE one_time_codes
		SET used = TRUE, verified_at = $2
		WHERE id = $1 AND used = FALSE
	`

	result, err := r.db.Pool.Exec(ctx, query, id, verifiedAt)
	if err != nil {
		return fmt.Errorf("failed to mark code as used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetLatest returns the newest code for a destination regardless of
// state. Used for support inspection, not by verification.
func (r *OTPRepository) GetLatest(ctx context.Context, destination string, channel models.Channel) (*models.OneTimeCode, error) {
	query := `
		SELECT ` + otpColumns + `
		FROM one_time_codes
		WHERE destination = $1 AND channel = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	otp, err := scanOTPRow(r.db.Pool.QueryRow(ctx, query, destination, channel))
	if err != nil {
		return nil, err
	}

	return otp, nil
}

// CleanupExpired deletes codes that expired more than 30 days ago
func (r *OTPRepository) CleanupExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM one_time_codes
		WHERE expires_at < NOW() - INTERVAL '30 days'
	`

	result, err := r.db.Pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired codes: %w", err)
	}

	return result.RowsAffected(), nil
}
