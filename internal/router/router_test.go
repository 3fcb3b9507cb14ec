package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/openpetition/petition-api/internal/config"
	"github.com/openpetition/petition-api/internal/handler"
	"github.com/openpetition/petition-api/internal/repository"
	"github.com/openpetition/petition-api/internal/utils"
)

// newApp assembles an Echo instance with the full route table backed by a
// mock database, mirroring the wiring in cmd/server.
func newApp(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		JWTSecret:    "router-test-secret",
		JWTAlgorithm: "HS256",
		AccessTTLMin: 20,
		BcryptCost:   bcrypt.MinCost,
	}
	users := repository.NewUserRepo(db)
	petitions := repository.NewPetitionRepo(db)
	signatures := repository.NewSignatureRepo(db)
	complaints := repository.NewComplaintRepo(db)
	ctypes := repository.NewComplaintTypeRepo(db)

	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(cfg, users), nil)
	sigHandler := handler.NewSignatureHandler(cfg, signatures, petitions)
	RegisterPublic(e, handler.NewPublicHandler(petitions), sigHandler, nil)
	RegisterProtected(e, cfg.JWTSecret, cfg.JWTAlgorithm,
		handler.NewPetitionHandler(petitions),
		sigHandler,
		handler.NewComplaintHandler(complaints),
		handler.NewComplaintTypeHandler(ctypes),
		handler.NewUserHandler(cfg, users),
		handler.NewAdminHandler(petitions, signatures))
	return e, mock
}

func TestHealthz(t *testing.T) {
	e, _ := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _ := newApp(t)
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/petitions"},
		{http.MethodPost, "/v1/petitions"},
		{http.MethodGet, "/v1/signatures"},
		{http.MethodPut, "/v1/signatures/validate/1"},
		{http.MethodGet, "/v1/complaints"},
		{http.MethodGet, "/v1/complaint_types"},
		{http.MethodGet, "/v1/users"},
		{http.MethodGet, "/v1/admin/petitions"},
	}

	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401 without token", rt.method, rt.path, rec.Code)
		}
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	e, _ := newApp(t)
	tok, err := utils.NewAccessToken("router-test-secret", "HS256", "alice", 7, "User", 20)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/petitions", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for non-admin token", rec.Code)
	}
}

func TestAdminRouteWithAdminToken(t *testing.T) {
	e, mock := newApp(t)
	mock.ExpectQuery("SELECT (.+) FROM petition ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "petition_name", "petition_text", "image"}))

	tok, err := utils.NewAccessToken("router-test-secret", "HS256", "root", 1, "Admin", 20)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/petitions", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for admin token; body %s", rec.Code, rec.Body.String())
	}
}

// TestRegisterTokenCreateList walks the primary user journey through the
// full route table: register an account, obtain a token, create a petition
// with it, then list it back.
func TestRegisterTokenCreateList(t *testing.T) {
	e, mock := newApp(t)

	hash, err := utils.HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "email", "first_name", "last_name", "hashed_password", "is_active", "role"}).
			AddRow(5, "alice", "alice@example.com", "", "", hash, true, "User")
	}

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").WillReturnRows(userRows())
	mock.ExpectExec("INSERT INTO petition").
		WithArgs(uint64(5), "Clean Air Act", "We demand cleaner air in the city.", "").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("SELECT (.+) FROM petition WHERE user_id = \\?").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "petition_name", "petition_text", "image"}).
			AddRow(12, 5, "Clean Air Act", "We demand cleaner air in the city.", ""))

	do := func(method, path, body, token string) *httptest.ResponseRecorder {
		var rd io.Reader
		if body != "" {
			rd = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, rd)
		if body != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(http.MethodPost, "/v1/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1","role":"User"}`, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d; body %s", rec.Code, rec.Body.String())
	}

	rec := do(http.MethodPost, "/v1/auth/token", `{"username":"alice","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("token status = %d; body %s", rec.Code, rec.Body.String())
	}
	var tokResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tokResp); err != nil || tokResp.AccessToken == "" {
		t.Fatalf("token body = %s (err %v)", rec.Body.String(), err)
	}

	if rec := do(http.MethodPost, "/v1/petitions",
		`{"petition_name":"Clean Air Act","petition_text":"We demand cleaner air in the city."}`, tokResp.AccessToken); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body %s", rec.Code, rec.Body.String())
	}

	rec = do(http.MethodGet, "/v1/petitions", "", tokResp.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Clean Air Act") {
		t.Errorf("list body = %s, want the created petition", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPublicBrowseNoToken(t *testing.T) {
	e, mock := newApp(t)
	mock.ExpectQuery("SELECT (.+) FROM petition p").
		WillReturnRows(sqlmock.NewRows([]string{"id", "petition_name", "petition_text", "image", "count"}))

	req := httptest.NewRequest(http.MethodGet, "/v1/browse/petitions", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 without token; body %s", rec.Code, rec.Body.String())
	}
}
