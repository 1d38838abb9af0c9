package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store is the persistence surface for the admin roster. Lookups return
// nil, nil when no row matches; mutations return ErrNotFound when the
// target id vanished between lookup and update.
type Store interface {
	FindByUserID(ctx context.Context, userID int64) (*Admin, error)
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	FindUnlinkedByUsername(ctx context.Context, username string) (*Admin, error)
	ListAll(ctx context.Context) ([]Admin, error)
	FindByPaymentID(ctx context.Context, value string) (*Admin, error)

	Create(ctx context.Context, username string) (*Admin, error)
	Delete(ctx context.Context, id int64) error
	SetRole(ctx context.Context, id int64, superAdmin bool) error
	SetPaymentID(ctx context.Context, id int64, method PaymentMethod, value string) error
	LinkUserID(ctx context.Context, id int64, userID int64) error

	IsSuperAdmin(ctx context.Context, userID int64) (bool, error)
	EnsureOwner(ctx context.Context, ownerID int64) error
}

const pqUniqueViolation = "23505"

const adminColumns = "id, user_id, username, crypto_address, upi_id, is_super_admin"

// PostgresStore implements Store on top of a sqlx Postgres handle.
type PostgresStore struct {
	db *sqlx.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an already connected database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindByUserID returns the admin linked to the given Telegram account.
func (s *PostgresStore) FindByUserID(ctx context.Context, userID int64) (*Admin, error) {
	return s.getOne(ctx, "find_by_user_id",
		"SELECT "+adminColumns+" FROM admins WHERE user_id = $1", userID)
}

// FindByUsername returns the admin with the exact username. Matching is
// case-sensitive; handles are stored without the leading "@".
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	return s.getOne(ctx, "find_by_username",
		"SELECT "+adminColumns+" FROM admins WHERE username = $1", username)
}

// FindUnlinkedByUsername returns the admin with the given username only
// when no Telegram account is attached yet. Used for account linking.
func (s *PostgresStore) FindUnlinkedByUsername(ctx context.Context, username string) (*Admin, error) {
	return s.getOne(ctx, "find_unlinked_by_username",
		"SELECT "+adminColumns+" FROM admins WHERE username = $1 AND user_id IS NULL", username)
}

// ListAll returns every admin, super-admins first, then by username.
func (s *PostgresStore) ListAll(ctx context.Context) ([]Admin, error) {
	var admins []Admin
	err := s.db.SelectContext(ctx, &admins,
		"SELECT "+adminColumns+" FROM admins ORDER BY is_super_admin DESC, username ASC")
	if err != nil {
		return nil, fmt.Errorf("roster list_all: %w", err)
	}
	return admins, nil
}

// FindByPaymentID matches the value against both payment columns and
// returns the first row in storage order. When the same identifier is
// registered for more than one admin the winner is unspecified.
func (s *PostgresStore) FindByPaymentID(ctx context.Context, value string) (*Admin, error) {
	return s.getOne(ctx, "find_by_payment_id",
		"SELECT "+adminColumns+" FROM admins WHERE crypto_address = $1 OR upi_id = $1 LIMIT 1", value)
}

// Create inserts a new regular admin with no linked account and no
// payment identifiers.
func (s *PostgresStore) Create(ctx context.Context, username string) (*Admin, error) {
	var admin Admin
	err := s.db.GetContext(ctx, &admin,
		"INSERT INTO admins (username) VALUES ($1) RETURNING "+adminColumns, username)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("roster create: %w", err)
	}
	return &admin, nil
}

// Delete removes the admin row.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM admins WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("roster delete: %w", err)
	}
	return requireAffected(res, "delete")
}

// SetRole flips the super-admin flag.
func (s *PostgresStore) SetRole(ctx context.Context, id int64, superAdmin bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE admins SET is_super_admin = $2 WHERE id = $1", id, superAdmin)
	if err != nil {
		return fmt.Errorf("roster set_role: %w", err)
	}
	return requireAffected(res, "set_role")
}

// SetPaymentID overwrites the selected payment identifier.
func (s *PostgresStore) SetPaymentID(ctx context.Context, id int64, method PaymentMethod, value string) error {
	var query string
	switch method {
	case MethodCrypto:
		query = "UPDATE admins SET crypto_address = $2 WHERE id = $1"
	case MethodUPI:
		query = "UPDATE admins SET upi_id = $2 WHERE id = $1"
	default:
		return ErrInvalidMethod
	}
	res, err := s.db.ExecContext(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("roster set_payment_id %s: %w", method, err)
	}
	return requireAffected(res, "set_payment_id")
}

// LinkUserID attaches a Telegram account to the roster row.
func (s *PostgresStore) LinkUserID(ctx context.Context, id int64, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE admins SET user_id = $2 WHERE id = $1", id, userID)
	if err != nil {
		return fmt.Errorf("roster link_user_id: %w", err)
	}
	return requireAffected(res, "link_user_id")
}

// IsSuperAdmin reports whether the Telegram account belongs to a
// super-admin. Unknown accounts answer false without error.
func (s *PostgresStore) IsSuperAdmin(ctx context.Context, userID int64) (bool, error) {
	var super bool
	err := s.db.GetContext(ctx, &super,
		"SELECT is_super_admin FROM admins WHERE user_id = $1", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("roster is_super_admin: %w", err)
	}
	return super, nil
}

func (s *PostgresStore) getOne(ctx context.Context, op, query string, arg any) (*Admin, error) {
	var admin Admin
	err := s.db.GetContext(ctx, &admin, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", op, err)
	}
	return &admin, nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("roster %s: rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}
