package repositories

import (
	"context"
	"fmt"
	"time"

	"driveline/internal/database"
	"driveline/internal/models"
	"github.com/google/uuid"
)

// AccountRepository handles account data access for providers, users and admins
type AccountRepository struct {
	db *database.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// rowScanner interface for scanning rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

const accountColumns = `id, name, email, mobile, alternate_mobile, address, city_id, state_id, zipcode,
		password_hash, role, is_active, email_verified, mobile_verified, status, created_at, updated_at`

// scanAccountRow handles nullable fields and populates an Account model from a database row
func scanAccountRow(scanner rowScanner) (*models.Account, error) {
	var account models.Account
	var passwordHash *string

	err := scanner.Scan(
		&account.ID, &account.Name, &account.Email, &account.Mobile,
		&account.AlternateMobile, &account.Address, &account.CityID, &account.StateID,
		&account.Zipcode, &passwordHash, &account.Role, &account.IsActive,
		&account.EmailVerified, &account.MobileVerified, &account.Status,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if passwordHash != nil {
		account.PasswordHash = *passwordHash
	}

	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.ID = uuid.New().String()

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if account.Status == "" {
		account.Status = models.StatusPending
	}

	query := `
		INSERT INTO accounts (id, name, email, mobile, alternate_mobile, address, city_id, state_id, zipcode,
			password_hash, role, is_active, email_verified, mobile_verified, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + accountColumns

	var passwordHash *string
	if account.PasswordHash != "" {
		passwordHash = &account.PasswordHash
	}

	created, err := scanAccountRow(r.db.Pool.QueryRow(ctx, query,
		account.ID, account.Name, account.Email, account.Mobile,
		account.AlternateMobile, account.Address, account.CityID, account.StateID,
		account.Zipcode, passwordHash, account.Role, account.IsActive,
		account.EmailVerified, account.MobileVerified, account.Status,
		account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccountRow(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetByEmail retrieves an account by email and role
func (r *AccountRepository) GetByEmail(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND role = $2`

	account, err := scanAccountRow(r.db.Pool.QueryRow(ctx, query, email, role))
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetByMobile retrieves an account by mobile and role
func (r *AccountRepository) GetByMobile(ctx context.Context, mobile string, role models.Role) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE mobile = $1 AND role = $2`

	account, err := scanAccountRow(r.db.Pool.QueryRow(ctx, query, mobile, role))
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAnyByEmail retrieves the account holding the email regardless of
// role. Used by admin login, which gates on role after the lookup.
func (r *AccountRepository) GetAnyByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 ORDER BY created_at LIMIT 1`

	account, err := scanAccountRow(r.db.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, err
	}

	return account, nil
}

// EmailInUse reports whether an account of the given role already holds the email
func (r *AccountRepository) EmailInUse(ctx context.Context, email string, role models.Role) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 AND role = $2)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, email, role).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// MobileInUse reports whether the number collides with any primary or
// alternate mobile across all accounts
func (r *AccountRepository) MobileInUse(ctx context.Context, mobile string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE mobile = $1 OR alternate_mobile = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, mobile).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check mobile: %w", err)
	}

	return exists, nil
}

// ListByStatus returns accounts of a role in a given registration status,
// oldest first. Backs the admin approval queue.
func (r *AccountRepository) ListByStatus(ctx context.Context, role models.Role, status string) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role = $1 AND status = $2 ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, role, status)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return accounts, nil
}

// SetVerified flips the channel's verified flag and moves the
// registration status in a single update
func (r *AccountRepository) SetVerified(ctx context.Context, id string, channel models.Channel, status string) (*models.Account, error) {
	var column string
	switch channel {
	case models.ChannelEmail:
		column = "email_verified"
	case models.ChannelMobile:
		column = "mobile_verified"
	default:
		return nil, fmt.Errorf("unknown channel: %s", channel)
	}

	query := fmt.Sprintf(`
		UPDATE accounts
		SET %s = TRUE, status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+accountColumns, column)

	account, err := scanAccountRow(r.db.Pool.QueryRow(ctx, query, id, status, time.Now()))
	if err != nil {
		return nil, err
	}

	return account, nil
}
