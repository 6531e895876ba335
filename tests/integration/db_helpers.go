package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"driveline/internal/database"
	"driveline/internal/models"
	"driveline/internal/repositories"
	pkgauth "driveline/pkg/auth"
)

// TestDB manages a PostgreSQL testcontainer and database operations
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase creates a PostgreSQL testcontainer, runs the embedded
// migrations and returns a ready TestDB
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("driveline"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Goose needs a database/sql connection; borrow the pool's config
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := database.MigrateDB(sqlDB); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         &database.DB{Pool: pool},
	}, nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all tables for test isolation
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"one_time_codes",
		"accounts",
		"cities",
		"states",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// InitializeRepositories creates all repository instances from the database wrapper
func InitializeRepositories(db *database.DB) (
	*repositories.AccountRepository,
	*repositories.OTPRepository,
	*repositories.LocationRepository,
) {
	return repositories.NewAccountRepository(db),
		repositories.NewOTPRepository(db),
		repositories.NewLocationRepository(db)
}

// SeedState inserts a state and returns its id
func SeedState(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	id := uuid.New().String()
	if _, err := pool.Exec(ctx, `INSERT INTO states (id, name) VALUES ($1, $2)`, id, name); err != nil {
		return "", fmt.Errorf("failed to insert state: %w", err)
	}
	return id, nil
}

// SeedCity inserts a city under the given state and returns its id
func SeedCity(ctx context.Context, pool *pgxpool.Pool, name, stateID string) (string, error) {
	id := uuid.New().String()
	if _, err := pool.Exec(ctx, `INSERT INTO cities (id, name, state_id) VALUES ($1, $2, $3)`, id, name, stateID); err != nil {
		return "", fmt.Errorf("failed to insert city: %w", err)
	}
	return id, nil
}

// SeedAccount inserts an account with a hashed password
func SeedAccount(ctx context.Context, pool *pgxpool.Pool, email, mobile, password string, role models.Role) (*models.Account, error) {
	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO accounts (id, name, email, mobile, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, name, email, mobile, role, status, created_at, updated_at
	`

	var account models.Account
	err = pool.QueryRow(ctx, query,
		uuid.New().String(), "Seeded Account", email, mobile, hashedPassword, role, models.StatusPending,
	).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Mobile,
		&account.Role,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	return &account, nil
}

// SeedExpiredOTP inserts a code whose window has already closed
func SeedExpiredOTP(ctx context.Context, pool *pgxpool.Pool, destination string, channel models.Channel, code string) (string, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO one_time_codes (id, destination, channel, code, used, created_at, expires_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW() - INTERVAL '1 hour', NOW() - INTERVAL '45 minutes')
	`
	if _, err := pool.Exec(ctx, query, id, destination, channel, code); err != nil {
		return "", fmt.Errorf("failed to insert expired code: %w", err)
	}
	return id, nil
}
