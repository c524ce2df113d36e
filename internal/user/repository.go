package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicate indicates a store-enforced uniqueness violation on
	// username, email, mobile number or wallet address.
	ErrDuplicate = errors.New("user already exists")

	// ErrNotFound indicates a lookup miss.
	ErrNotFound = errors.New("user not found")
)

// Repository persists users. The pre-insert ExistsAny check is advisory;
// the store's unique constraints are the binding defense against concurrent
// identical registrations.
type Repository interface {
	ExistsAny(ctx context.Context, username, email, mobileNumber string) (bool, error)
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
}

const uniqueViolationCode = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ExistsAny reports whether any record matches the username, email or mobile
// number. The three fields are each globally unique, so a hit on any one of
// them is a conflict.
func (r *PostgresRepository) ExistsAny(ctx context.Context, username, email, mobileNumber string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM users WHERE username = $1 OR email = $2 OR mobno = $3)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username, email, mobileNumber).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a fully-formed user record. Uniqueness violations surface
// as ErrDuplicate so races past the advisory check stay classifiable.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, username, email, password, dob, mobno, wallet_address, private_key, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		userID, user.Username, user.Email, user.PasswordHash, user.DateOfBirth,
		user.MobileNumber, user.WalletAddress, user.WalletPrivateKey, user.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, email, password, dob, mobno, wallet_address, private_key, created_at
        FROM users WHERE id = $1`, id)

	var (
		userID    uuid.UUID
		dob       time.Time
		createdAt time.Time
		user      User
	)
	if err := row.Scan(&userID, &user.Username, &user.Email, &user.PasswordHash, &dob,
		&user.MobileNumber, &user.WalletAddress, &user.WalletPrivateKey, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = userID.String()
	user.DateOfBirth = dob
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
