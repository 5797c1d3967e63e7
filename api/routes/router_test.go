package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/devesh457/nea-website/api/controllers"
	"github.com/devesh457/nea-website/internal/auth"
	"github.com/devesh457/nea-website/internal/availability"
	"github.com/devesh457/nea-website/internal/bookings"
	"github.com/devesh457/nea-website/internal/circulars"
	"github.com/devesh457/nea-website/internal/governingbody"
	"github.com/devesh457/nea-website/internal/members"
	pkgAuth "github.com/devesh457/nea-website/pkg/auth"
	"github.com/devesh457/nea-website/pkg/auth/session"
	"github.com/devesh457/nea-website/pkg/config"
	"github.com/devesh457/nea-website/pkg/enums"
	"github.com/devesh457/nea-website/pkg/logger"
	"github.com/devesh457/nea-website/pkg/metrics"
	"github.com/devesh457/nea-website/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct{}

func (stubSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req auth.ChangePasswordRequest) error {
	return nil
}

type stubMembersService struct{}

func (stubMembersService) Directory(ctx context.Context, params pagination.Params) (*members.DirectoryPage, error) {
	return &members.DirectoryPage{}, nil
}

func (stubMembersService) Profile(ctx context.Context, userID uuid.UUID) (*members.UserView, error) {
	return &members.UserView{ID: userID}, nil
}

func (stubMembersService) UpdateProfile(ctx context.Context, input members.UpdateProfileInput) (*members.UserView, error) {
	return &members.UserView{ID: input.UserID}, nil
}

func (stubMembersService) ListPending(ctx context.Context) ([]members.UserView, error) {
	return nil, nil
}

func (stubMembersService) DecideRegistration(ctx context.Context, input members.RegistrationDecisionInput) (*members.UserView, error) {
	return &members.UserView{ID: input.UserID}, nil
}

type stubAvailabilityService struct{}

func (stubAvailabilityService) ListActive(ctx context.Context, filter availability.ListFilter) ([]availability.RoomView, error) {
	return nil, nil
}

func (stubAvailabilityService) ListAll(ctx context.Context) ([]availability.RoomView, error) {
	return nil, nil
}

func (stubAvailabilityService) Upsert(ctx context.Context, input availability.UpsertInput) (*availability.RoomView, error) {
	return &availability.RoomView{}, nil
}

func (stubAvailabilityService) UpdateByID(ctx context.Context, input availability.UpdateInput) (*availability.RoomView, error) {
	return &availability.RoomView{}, nil
}

type stubBookingsService struct{}

func (stubBookingsService) Create(ctx context.Context, input bookings.CreateInput) (*bookings.BookingView, error) {
	return &bookings.BookingView{}, nil
}

func (stubBookingsService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]bookings.BookingView, error) {
	return nil, nil
}

func (stubBookingsService) ListAll(ctx context.Context, filter bookings.ListFilter) ([]bookings.AdminBookingView, error) {
	return nil, nil
}

func (stubBookingsService) Decide(ctx context.Context, input bookings.DecisionInput) (*bookings.AdminBookingView, error) {
	return &bookings.AdminBookingView{}, nil
}

func (stubBookingsService) Cancel(ctx context.Context, input bookings.CancelInput) (*bookings.BookingView, error) {
	return &bookings.BookingView{}, nil
}

func (stubBookingsService) DeleteRejected(ctx context.Context, input bookings.DeleteRejectedInput) error {
	return nil
}

type stubCircularsService struct{}

func (stubCircularsService) ListPublished(ctx context.Context) ([]circulars.CircularView, error) {
	return nil, nil
}

func (stubCircularsService) ListAll(ctx context.Context) ([]circulars.CircularView, error) {
	return nil, nil
}

func (stubCircularsService) Create(ctx context.Context, input circulars.CreateInput) (*circulars.CircularView, error) {
	return &circulars.CircularView{}, nil
}

func (stubCircularsService) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return nil
}

type stubGoverningBodyService struct{}

func (stubGoverningBodyService) ListActive(ctx context.Context) ([]governingbody.MemberView, error) {
	return nil, nil
}

func (stubGoverningBodyService) ListAll(ctx context.Context) ([]governingbody.MemberView, error) {
	return nil, nil
}

func (stubGoverningBodyService) Upsert(ctx context.Context, input governingbody.UpsertInput) (*governingbody.MemberView, error) {
	return &governingbody.MemberView{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		Stores:         map[string]controllers.Pinger{"db": stubPinger{}},
		Sessions:       stubSessions{},
		Metrics:        metrics.NewHTTPMetrics(),
		AuthService:    stubAuthService{},
		MembersService: stubMembersService{},
		Availability:   stubAvailabilityService{},
		Bookings:       stubBookingsService{},
		Circulars:      stubCircularsService{},
		GoverningBody:  stubGoverningBodyService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live check got %d", resp.Code)
	}
}

func TestGoverningBodyIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/public/governing-body", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public roster got %d", resp.Code)
	}
}

func TestMemberGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestMemberGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleMember))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for member availability got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	member := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users/pending", nil)
	member.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleMember))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, member)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users/pending", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}
