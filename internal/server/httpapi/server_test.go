package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/dbx"
	"github.com/fieldpass/fieldpass/internal/logging"
	"github.com/fieldpass/fieldpass/internal/server/auth"
	"github.com/fieldpass/fieldpass/internal/server/config"
	"github.com/fieldpass/fieldpass/internal/server/models"
	couponsrepo "github.com/fieldpass/fieldpass/internal/server/repositories/coupons"
	usersrepo "github.com/fieldpass/fieldpass/internal/server/repositories/users"
	"github.com/fieldpass/fieldpass/internal/server/revocation"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Fixed uuids so handler-side id validation passes.
const (
	superadminID = "11111111-1111-4111-8111-111111111111"
	regularID    = "22222222-2222-4222-8222-222222222222"
	otherID      = "33333333-3333-4333-8333-333333333333"
	scoutID      = "44444444-4444-4444-8444-444444444444"
	ghostID      = "99999999-9999-4999-8999-999999999999"
	couponID     = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
)

const testSecret = "k"

type stubUsersRepo struct {
	users map[string]*models.User

	createErr       error
	setRoleCodeErrs []error

	lastRole models.Role
	lastCode string
	deleted  string

	referralCounts map[string]int64
}

func (f *stubUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *stubUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *stubUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *stubUsersRepo) GetByAffiliateCode(ctx context.Context, code string) (*models.User, error) {
	for _, u := range f.users {
		if u.AffiliateCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *stubUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *stubUsersRepo) ListScouts(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleScout {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *stubUsersRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *stubUsersRepo) SetRole(ctx context.Context, id string, role models.Role) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Role = role
	f.lastRole = role
	return nil
}

func (f *stubUsersRepo) SetRoleAndAffiliateCode(ctx context.Context, id string, role models.Role, code string) error {
	if len(f.setRoleCodeErrs) > 0 {
		err := f.setRoleCodeErrs[0]
		f.setRoleCodeErrs = f.setRoleCodeErrs[1:]
		if err != nil {
			return err
		}
	}
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Role = role
	u.AffiliateCode = code
	f.lastRole = role
	f.lastCode = code
	return nil
}

func (f *stubUsersRepo) SetResetChallenge(ctx context.Context, id string, codeHash string, expires time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.ResetCodeHash = codeHash
	u.ResetCodeExpires = expires
	return nil
}

func (f *stubUsersRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetCodeHash = ""
	u.TokenInvalidBefore = time.Now()
	return nil
}

func (f *stubUsersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	f.deleted = id
	return nil
}

func (f *stubUsersRepo) CountReferrals(ctx context.Context, code string) (int64, error) {
	return f.referralCounts[code], nil
}

type stubCouponsRepo struct {
	coupons map[string]*models.Coupon
}

func (f *stubCouponsRepo) Create(ctx context.Context, c *models.Coupon) (*models.Coupon, error) {
	for _, existing := range f.coupons {
		if existing.Code == c.Code {
			return nil, common.ErrCouponCodeTaken
		}
	}
	cp := *c
	f.coupons[c.ID] = &cp
	return c, nil
}

func (f *stubCouponsRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	c, ok := f.coupons[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *stubCouponsRepo) Update(ctx context.Context, c *models.Coupon) error {
	if _, ok := f.coupons[c.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *c
	f.coupons[c.ID] = &cp
	return nil
}

func (f *stubCouponsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.coupons[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.coupons, id)
	return nil
}

type stubRepoManager struct {
	u *stubUsersRepo
	c *stubCouponsRepo
}

func (m *stubRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *stubRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *stubRepoManager) Coupons(db dbx.DBTX) couponsrepo.Repository  { return m.c }

type stubMailer struct {
	code string
}

func (m *stubMailer) SendPasswordResetCode(ctx context.Context, email, name, code string) error {
	m.code = code
	return nil
}

type testEnv struct {
	router   *gin.Engine
	users    *stubUsersRepo
	coupons  *stubCouponsRepo
	denylist *revocation.MemoryDenylist
	mailer   *stubMailer
	mock     sqlmock.Sqlmock
}

// newTestEnv wires a Server over in-memory repositories. The seeded accounts
// cover every role the routes gate on; every password is "password123".
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hash, err := auth.HashPassword("password123", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	usersRepo := &stubUsersRepo{
		users: map[string]*models.User{
			superadminID: {ID: superadminID, Email: "admin@example.com", PasswordHash: hash, Name: "Admin", Provider: models.ProviderCredentials, Role: models.RoleSuperAdmin},
			regularID:    {ID: regularID, Email: "user@example.com", PasswordHash: hash, Name: "User", Provider: models.ProviderCredentials, Role: models.RoleUser},
			otherID:      {ID: otherID, Email: "other@example.com", PasswordHash: hash, Name: "Other", Provider: models.ProviderCredentials, Role: models.RoleUser},
			scoutID:      {ID: scoutID, Email: "scout@example.com", PasswordHash: hash, Name: "Scout", Provider: models.ProviderCredentials, Role: models.RoleScout, AffiliateCode: "SCOUT234"},
		},
		referralCounts: map[string]int64{},
	}
	couponsRepo := &stubCouponsRepo{
		coupons: map[string]*models.Coupon{
			couponID: {ID: couponID, Code: "SUMMER10", DiscountPct: 10, CreatedBy: scoutID},
		},
	}

	cfg := &config.Config{
		SecretKey:                 testSecret,
		TokenValidityDuration:     time.Hour,
		ResetCodeValidityDuration: 15 * time.Minute,
		PasswordHashCost:          4,
	}
	logger := logging.NewDiscardLogger()

	rm := &stubRepoManager{u: usersRepo, c: couponsRepo}
	denylist := revocation.NewMemoryDenylist()
	mailer := &stubMailer{}

	srv := NewServer(cfg, logger,
		services.NewAuthService(db, rm, denylist, mailer, cfg),
		services.NewIdentityService(db, rm, denylist, cfg),
		services.NewUserService(db, rm),
		services.NewScoutService(db, rm),
		services.NewCouponService(db, rm),
	)

	return &testEnv{
		router:   srv.Router(),
		users:    usersRepo,
		coupons:  couponsRepo,
		denylist: denylist,
		mailer:   mailer,
		mock:     mock,
	}
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return token
}

// perform runs a request through the router. body may be nil; token "" sends
// no Authorization header.
func (e *testEnv) perform(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// performRaw sends the Authorization header exactly as given, without the
// Bearer prefix perform adds.
func (e *testEnv) performRaw(t *testing.T, method, path, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestNoRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "GET", "/api/v1/nope", "", nil)
	if w.Code != 404 {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Not found" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestNoMethod(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "PATCH", "/api/v1/auth/login", "", nil)
	if w.Code != 405 {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Method not allowed" {
		t.Fatalf("unexpected body: %v", body)
	}
}
