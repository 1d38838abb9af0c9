package bot

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/pagalworld/verifybot/roster"
)

// fakeStore keeps the roster in memory and can be forced to fail.
type fakeStore struct {
	admins []roster.Admin
	nextID int64
	err    error
}

var _ roster.Store = (*fakeStore)(nil)

func newFakeStore(admins ...roster.Admin) *fakeStore {
	s := &fakeStore{nextID: 1}
	for _, a := range admins {
		a.ID = s.nextID
		s.nextID++
		s.admins = append(s.admins, a)
	}
	return s
}

func linked(userID int64) sql.NullInt64 {
	return sql.NullInt64{Int64: userID, Valid: true}
}

func set(value string) sql.NullString {
	return sql.NullString{String: value, Valid: true}
}

func (s *fakeStore) find(match func(roster.Admin) bool) *roster.Admin {
	for i := range s.admins {
		if match(s.admins[i]) {
			a := s.admins[i]
			return &a
		}
	}
	return nil
}

func (s *fakeStore) FindByUserID(_ context.Context, userID int64) (*roster.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.find(func(a roster.Admin) bool { return a.UserID.Valid && a.UserID.Int64 == userID }), nil
}

func (s *fakeStore) FindByUsername(_ context.Context, username string) (*roster.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.find(func(a roster.Admin) bool { return a.Username == username }), nil
}

func (s *fakeStore) FindUnlinkedByUsername(_ context.Context, username string) (*roster.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.find(func(a roster.Admin) bool { return a.Username == username && !a.UserID.Valid }), nil
}

func (s *fakeStore) ListAll(_ context.Context) ([]roster.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := append([]roster.Admin(nil), s.admins...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsSuperAdmin != out[j].IsSuperAdmin {
			return out[i].IsSuperAdmin
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

func (s *fakeStore) FindByPaymentID(_ context.Context, value string) (*roster.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.find(func(a roster.Admin) bool {
		return (a.CryptoAddress.Valid && a.CryptoAddress.String == value) ||
			(a.UPIID.Valid && a.UPIID.String == value)
	}), nil
}

func (s *fakeStore) Create(_ context.Context, username string) (*roster.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.find(func(a roster.Admin) bool { return a.Username == username }) != nil {
		return nil, roster.ErrDuplicateUsername
	}
	admin := roster.Admin{ID: s.nextID, Username: username}
	s.nextID++
	s.admins = append(s.admins, admin)
	return &admin, nil
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	for i := range s.admins {
		if s.admins[i].ID == id {
			s.admins = append(s.admins[:i], s.admins[i+1:]...)
			return nil
		}
	}
	return roster.ErrNotFound
}

func (s *fakeStore) SetRole(_ context.Context, id int64, superAdmin bool) error {
	return s.update(id, func(a *roster.Admin) { a.IsSuperAdmin = superAdmin })
}

func (s *fakeStore) SetPaymentID(_ context.Context, id int64, method roster.PaymentMethod, value string) error {
	return s.update(id, func(a *roster.Admin) {
		switch method {
		case roster.MethodCrypto:
			a.CryptoAddress = set(value)
		case roster.MethodUPI:
			a.UPIID = set(value)
		}
	})
}

func (s *fakeStore) LinkUserID(_ context.Context, id int64, userID int64) error {
	return s.update(id, func(a *roster.Admin) { a.UserID = linked(userID) })
}

func (s *fakeStore) update(id int64, apply func(*roster.Admin)) error {
	if s.err != nil {
		return s.err
	}
	for i := range s.admins {
		if s.admins[i].ID == id {
			apply(&s.admins[i])
			return nil
		}
	}
	return roster.ErrNotFound
}

func (s *fakeStore) IsSuperAdmin(_ context.Context, userID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	a := s.find(func(a roster.Admin) bool { return a.UserID.Valid && a.UserID.Int64 == userID })
	return a != nil && a.IsSuperAdmin, nil
}

func (s *fakeStore) EnsureOwner(context.Context, int64) error {
	return s.err
}

const ownerID = int64(1000)

func newHandlers(store roster.Store) *Handlers {
	return NewHandlers(store, Options{OwnerID: ownerID, MainGroupLink: "https://t.me/+group"})
}

func wantKind(t *testing.T, reply Reply, kind ReplyKind) {
	t.Helper()
	if reply.Kind != kind {
		t.Fatalf("expected kind %s, got %s (text %q)", kind, reply.Kind, reply.Text)
	}
}

func wantContains(t *testing.T, reply Reply, substrings ...string) {
	t.Helper()
	for _, sub := range substrings {
		if !strings.Contains(reply.Text, sub) {
			t.Fatalf("reply text missing %q:\n%s", sub, reply.Text)
		}
	}
}

func TestStartPrivateLinksUnlinkedRowOnce(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "alice"})
	h := newHandlers(store)
	ctx := context.Background()

	reply := h.StartPrivate(ctx, 42, "alice")
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Admin Account Activated", "@alice")

	row, _ := store.FindByUserID(ctx, 42)
	if row == nil || row.Username != "alice" {
		t.Fatalf("expected alice linked to 42, got %+v", row)
	}

	// A second /start must show the menu, not re-activate.
	reply = h.StartPrivate(ctx, 42, "alice")
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "ADMIN DASHBOARD")
}

func TestStartPrivateMenusByRole(t *testing.T) {
	store := newFakeStore(
		roster.Admin{Username: "boss", UserID: linked(1), IsSuperAdmin: true},
		roster.Admin{Username: "helper", UserID: linked(2)},
	)
	h := newHandlers(store)
	ctx := context.Background()

	wantContains(t, h.StartPrivate(ctx, 1, "boss"), "SUPER ADMIN DASHBOARD", "/add_admin")
	reply := h.StartPrivate(ctx, 2, "helper")
	wantContains(t, reply, "ADMIN DASHBOARD", "/admins")
	if strings.Contains(reply.Text, "SUPER ADMIN") {
		t.Fatal("regular admin must not see the super admin menu")
	}
}

func TestStartPrivateUnknownUserGetsWelcomeWithJoinButton(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.StartPrivate(context.Background(), 7, "stranger")
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Welcome to the Verification Bot")
	if reply.JoinURL != "https://t.me/+group" {
		t.Fatalf("expected join url, got %q", reply.JoinURL)
	}
}

func TestStartGroupIsStatic(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.StartGroup()
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Pagal World Verification Bot", "/verify")
	if reply.JoinURL != "" {
		t.Fatal("group start must not carry a join button")
	}
}

func TestAdminsEmptyRoster(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.Admins(context.Background())
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "No admins are currently registered")
}

func TestAdminsListShowsStatusAndLegend(t *testing.T) {
	store := newFakeStore(
		roster.Admin{Username: "bob", CryptoAddress: set("0xabc")},
		roster.Admin{Username: "boss", UserID: linked(1), IsSuperAdmin: true, UPIID: set("boss@upi")},
	)
	h := newHandlers(store)

	reply := h.Admins(context.Background())
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply,
		"Registered Admin Team",
		"@boss", "👑 Super Admin", "💳",
		"@bob", "🛡️ Admin", "⚠️", "💰",
		"<b>Key:</b>",
	)
	if strings.Index(reply.Text, "@boss") > strings.Index(reply.Text, "@bob") {
		t.Fatal("super admins must be listed first")
	}
}

func TestVerifyWithoutArgsShowsUsage(t *testing.T) {
	h := newHandlers(newFakeStore())
	wantKind(t, h.Verify(context.Background(), nil), ReplyUsage)
}

func TestVerifyKnownIdentifier(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "boss", IsSuperAdmin: true, CryptoAddress: set("0xabc def")})
	h := newHandlers(store)

	reply := h.Verify(context.Background(), []string{"0xabc", "def"})
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "VERIFIED", "@boss", "👑", "<code>0xabc def</code>")
}

func TestVerifyUnknownIdentifierWarns(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.Verify(context.Background(), []string{"nope@upi"})
	wantKind(t, reply, ReplyNotFound)
	wantContains(t, reply, "UNVERIFIED", "DO NOT SEND FUNDS", "nope@upi")
}

func TestVerifyEscapesValue(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.Verify(context.Background(), []string{"<script>"})
	if strings.Contains(reply.Text, "<script>") {
		t.Fatal("payment value must be HTML escaped")
	}
	wantContains(t, reply, "&lt;script&gt;")
}

func TestAddAdminStripsHandlePrefix(t *testing.T) {
	store := newFakeStore()
	h := newHandlers(store)

	reply := h.AddAdmin(context.Background(), []string{"@carol"})
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Admin Added", "@carol")

	row, _ := store.FindByUsername(context.Background(), "carol")
	if row == nil || row.IsSuperAdmin || row.Linked() {
		t.Fatalf("expected unlinked regular admin, got %+v", row)
	}
}

func TestAddAdminDuplicateIsConflict(t *testing.T) {
	h := newHandlers(newFakeStore(roster.Admin{Username: "carol"}))
	reply := h.AddAdmin(context.Background(), []string{"carol"})
	wantKind(t, reply, ReplyConflict)
	wantContains(t, reply, "Already Exists")
}

func TestAddAdminWithoutArgsShowsUsage(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.AddAdmin(context.Background(), nil)
	wantKind(t, reply, ReplyUsage)
	wantContains(t, reply, "/add_admin")
}

func TestRemoveAdmin(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "bob"})
	h := newHandlers(store)

	reply := h.RemoveAdmin(context.Background(), []string{"bob"})
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Admin Removed")

	if row, _ := store.FindByUsername(context.Background(), "bob"); row != nil {
		t.Fatal("expected bob gone from the roster")
	}
}

func TestRemoveAdminUnknownTarget(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.RemoveAdmin(context.Background(), []string{"ghost"})
	wantKind(t, reply, ReplyNotFound)
	wantContains(t, reply, "Admin Not Found", "@ghost")
}

func TestRemoveAdminProtectsOwner(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "boss", UserID: linked(ownerID), IsSuperAdmin: true})
	h := newHandlers(store)

	reply := h.RemoveAdmin(context.Background(), []string{"boss"})
	wantKind(t, reply, ReplyBlocked)
	wantContains(t, reply, "cannot be removed")

	if row, _ := store.FindByUsername(context.Background(), "boss"); row == nil {
		t.Fatal("owner row must survive")
	}
}

func TestPromote(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "bob"})
	h := newHandlers(store)

	reply := h.Promote(context.Background(), []string{"@bob"})
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Promotion Successful")

	row, _ := store.FindByUsername(context.Background(), "bob")
	if row == nil || !row.IsSuperAdmin {
		t.Fatalf("expected bob promoted, got %+v", row)
	}
}

func TestPromoteIsIdempotent(t *testing.T) {
	h := newHandlers(newFakeStore(roster.Admin{Username: "boss", IsSuperAdmin: true}))
	reply := h.Promote(context.Background(), []string{"boss"})
	wantKind(t, reply, ReplyNoChange)
	wantContains(t, reply, "already a Super Admin")
}

func TestDemote(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "ex", IsSuperAdmin: true})
	h := newHandlers(store)

	reply := h.Demote(context.Background(), []string{"ex"})
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Demotion Successful")

	row, _ := store.FindByUsername(context.Background(), "ex")
	if row == nil || row.IsSuperAdmin {
		t.Fatalf("expected ex demoted, got %+v", row)
	}
}

func TestDemoteProtectsOwner(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "boss", UserID: linked(ownerID), IsSuperAdmin: true})
	h := newHandlers(store)

	reply := h.Demote(context.Background(), []string{"boss"})
	wantKind(t, reply, ReplyBlocked)
	wantContains(t, reply, "cannot be demoted")
}

func TestDemoteRegularAdminIsNoChange(t *testing.T) {
	h := newHandlers(newFakeStore(roster.Admin{Username: "bob"}))
	reply := h.Demote(context.Background(), []string{"bob"})
	wantKind(t, reply, ReplyNoChange)
	wantContains(t, reply, "already a regular Admin")
}

func TestSetPaymentJoinsValueTokens(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "bob"})
	h := newHandlers(store)

	reply := h.SetPayment(context.Background(), roster.MethodCrypto, []string{"@bob", "addr", "with", "spaces"})
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "Payment Info Updated", "CRYPTO", "<code>addr with spaces</code>")

	row, _ := store.FindByUsername(context.Background(), "bob")
	if row.CryptoAddress.String != "addr with spaces" {
		t.Fatalf("expected joined value, got %q", row.CryptoAddress.String)
	}
}

func TestSetPaymentUPI(t *testing.T) {
	store := newFakeStore(roster.Admin{Username: "bob"})
	h := newHandlers(store)

	reply := h.SetPayment(context.Background(), roster.MethodUPI, []string{"bob", "bob@upi"})
	wantKind(t, reply, ReplyOK)
	wantContains(t, reply, "UPI", "💳")

	row, _ := store.FindByUsername(context.Background(), "bob")
	if row.UPIID.String != "bob@upi" {
		t.Fatalf("expected upi set, got %q", row.UPIID.String)
	}
}

func TestSetPaymentUsageNeedsTwoArgs(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.SetPayment(context.Background(), roster.MethodUPI, []string{"bob"})
	wantKind(t, reply, ReplyUsage)
	wantContains(t, reply, "/setadmin_upi")
}

func TestSetPaymentUnknownTarget(t *testing.T) {
	h := newHandlers(newFakeStore())
	reply := h.SetPayment(context.Background(), roster.MethodCrypto, []string{"ghost", "0xabc"})
	wantKind(t, reply, ReplyNotFound)
}

func TestStoreErrorsBecomeFailureReplies(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection reset")
	h := newHandlers(store)
	ctx := context.Background()

	wantKind(t, h.Admins(ctx), ReplyFailure)
	wantKind(t, h.Verify(ctx, []string{"x"}), ReplyFailure)
	wantKind(t, h.AddAdmin(ctx, []string{"x"}), ReplyFailure)
	wantKind(t, h.RemoveAdmin(ctx, []string{"x"}), ReplyFailure)
	wantKind(t, h.Promote(ctx, []string{"x"}), ReplyFailure)
	wantKind(t, h.Demote(ctx, []string{"x"}), ReplyFailure)
	wantKind(t, h.SetPayment(ctx, roster.MethodUPI, []string{"x", "y"}), ReplyFailure)
	wantKind(t, h.StartPrivate(ctx, 1, "x"), ReplyFailure)
}
