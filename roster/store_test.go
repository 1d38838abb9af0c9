package roster

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(sqlx.NewDb(db, "postgres")), mock
}

func adminRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "username", "crypto_address", "upi_id", "is_super_admin"})
}

func expectDone(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByUserIDFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, username, crypto_address, upi_id, is_super_admin FROM admins WHERE user_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(adminRows().AddRow(1, 42, "alice", nil, nil, true))

	admin, err := store.FindByUserID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin == nil {
		t.Fatal("expected admin, got nil")
	}
	if admin.Username != "alice" || !admin.IsSuperAdmin {
		t.Fatalf("unexpected row: %+v", admin)
	}
	if !admin.Linked() || admin.UserID.Int64 != 42 {
		t.Fatalf("expected linked user_id 42, got %+v", admin.UserID)
	}
	expectDone(t, mock)
}

func TestFindByUserIDAbsentReturnsNil(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .+ FROM admins WHERE user_id").
		WithArgs(int64(7)).
		WillReturnRows(adminRows())

	admin, err := store.FindByUserID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin != nil {
		t.Fatalf("expected nil for absent row, got %+v", admin)
	}
	expectDone(t, mock)
}

func TestFindUnlinkedByUsernameFiltersLinkedRows(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 AND user_id IS NULL")).
		WithArgs("bob").
		WillReturnRows(adminRows())

	admin, err := store.FindUnlinkedByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin != nil {
		t.Fatalf("expected nil when only linked rows match, got %+v", admin)
	}
	expectDone(t, mock)
}

func TestListAllOrdersSuperAdminsFirst(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY is_super_admin DESC, username ASC")).
		WillReturnRows(adminRows().
			AddRow(1, 42, "alice", "0xabc", nil, true).
			AddRow(2, nil, "bob", nil, "bob@upi", false))

	admins, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(admins))
	}
	if !admins[0].IsSuperAdmin || admins[1].IsSuperAdmin {
		t.Fatalf("expected super admin first, got %+v", admins)
	}
	if admins[1].Linked() {
		t.Fatal("expected second admin to be unlinked")
	}
	expectDone(t, mock)
}

func TestFindByPaymentIDMatchesEitherColumn(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE crypto_address = $1 OR upi_id = $1 LIMIT 1")).
		WithArgs("bob@upi").
		WillReturnRows(adminRows().AddRow(2, nil, "bob", nil, "bob@upi", false))

	admin, err := store.FindByPaymentID(context.Background(), "bob@upi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin == nil || admin.Username != "bob" {
		t.Fatalf("expected bob, got %+v", admin)
	}
	expectDone(t, mock)
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admins (username)")).
		WithArgs("alice").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := store.Create(context.Background(), "alice")
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	expectDone(t, mock)
}

func TestCreateReturnsInsertedRow(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admins (username) VALUES ($1) RETURNING")).
		WithArgs("carol").
		WillReturnRows(adminRows().AddRow(3, nil, "carol", nil, nil, false))

	admin, err := store.Create(context.Background(), "carol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.ID != 3 || admin.Username != "carol" || admin.IsSuperAdmin {
		t.Fatalf("unexpected row: %+v", admin)
	}
	expectDone(t, mock)
}

func TestDeleteMissingRowReturnsNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM admins WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Delete(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectDone(t, mock)
}

func TestSetRole(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET is_super_admin = $2 WHERE id = $1")).
		WithArgs(int64(2), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.SetRole(context.Background(), 2, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectDone(t, mock)
}

func TestSetPaymentIDSelectsColumnByMethod(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET crypto_address = $2 WHERE id = $1")).
		WithArgs(int64(1), "0xabc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET upi_id = $2 WHERE id = $1")).
		WithArgs(int64(1), "alice@upi").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.SetPaymentID(context.Background(), 1, MethodCrypto, "0xabc"); err != nil {
		t.Fatalf("crypto update: %v", err)
	}
	if err := store.SetPaymentID(context.Background(), 1, MethodUPI, "alice@upi"); err != nil {
		t.Fatalf("upi update: %v", err)
	}
	expectDone(t, mock)
}

func TestSetPaymentIDRejectsUnknownMethod(t *testing.T) {
	store, _ := newMockStore(t)
	err := store.SetPaymentID(context.Background(), 1, PaymentMethod(99), "x")
	if !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}
}

func TestIsSuperAdminUnknownUserIsFalse(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT is_super_admin FROM admins WHERE user_id = $1")).
		WithArgs(int64(555)).
		WillReturnRows(sqlmock.NewRows([]string{"is_super_admin"}))

	super, err := store.IsSuperAdmin(context.Background(), 555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if super {
		t.Fatal("unknown user must not be super admin")
	}
	expectDone(t, mock)
}

func TestEnsureOwnerCreatesPlaceholderRow(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .+ WHERE user_id").
		WithArgs(int64(100)).
		WillReturnRows(adminRows())
	mock.ExpectQuery("SELECT .+ WHERE username").
		WithArgs("owner_placeholder_100").
		WillReturnRows(adminRows())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admins (user_id, username, is_super_admin) VALUES ($1, $2, TRUE)")).
		WithArgs(int64(100), "owner_placeholder_100").
		WillReturnRows(adminRows().AddRow(1, 100, "owner_placeholder_100", nil, nil, true))

	if err := store.EnsureOwner(context.Background(), 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectDone(t, mock)
}

func TestEnsureOwnerSkipsWhenPlaceholderTaken(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .+ WHERE user_id").
		WithArgs(int64(100)).
		WillReturnRows(adminRows())
	mock.ExpectQuery("SELECT .+ WHERE username").
		WithArgs("owner_placeholder_100").
		WillReturnRows(adminRows().AddRow(5, nil, "owner_placeholder_100", nil, nil, false))

	if err := store.EnsureOwner(context.Background(), 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectDone(t, mock)
}

func TestEnsureOwnerPromotesDemotedOwner(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .+ WHERE user_id").
		WithArgs(int64(100)).
		WillReturnRows(adminRows().AddRow(1, 100, "boss", nil, nil, false))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET is_super_admin = $2 WHERE id = $1")).
		WithArgs(int64(1), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.EnsureOwner(context.Background(), 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectDone(t, mock)
}

func TestEnsureOwnerLeavesHealthyOwnerAlone(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .+ WHERE user_id").
		WithArgs(int64(100)).
		WillReturnRows(adminRows().AddRow(1, 100, "boss", nil, nil, true))

	if err := store.EnsureOwner(context.Background(), 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectDone(t, mock)
}

func TestPaymentMethodString(t *testing.T) {
	if MethodCrypto.String() != "crypto" || MethodUPI.String() != "upi" {
		t.Fatalf("unexpected method names: %s %s", MethodCrypto, MethodUPI)
	}
	if PaymentMethod(99).Valid() {
		t.Fatal("unexpected valid unknown method")
	}
}
