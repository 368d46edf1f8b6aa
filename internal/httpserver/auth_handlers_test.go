package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"techshop/internal/domain"
	authsvc "techshop/internal/service/auth"
	"github.com/gin-gonic/gin"
)

func authRouter(svc authService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/register", registerHandler(svc))
	router.POST("/api/login", loginHandler(svc))
	return router
}

func TestRegister_Success(t *testing.T) {
	svc := &stubAuthSvc{
		user:  &domain.User{ID: "u1", Username: "sara", Role: domain.RoleUser},
		token: "issued-token",
	}
	router := authRouter(svc)

	body := `{"firstName":"Sara","lastName":"Moradi","username":"sara","email":"sara@example.com","phone":"09123456789","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.Username != "sara" {
		t.Fatalf("input not forwarded: %+v", svc.lastInput)
	}

	var resp struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "issued-token" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
	if resp.User.ID != "u1" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
}

func TestRegister_DuplicateUser(t *testing.T) {
	router := authRouter(&stubAuthSvc{registerErr: authsvc.ErrUserExists})

	body := `{"firstName":"Sara","lastName":"Moradi","username":"sara","email":"sara@example.com","phone":"09123456789","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	router := authRouter(&stubAuthSvc{})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	svc := &stubAuthSvc{
		user:  &domain.User{ID: "u1", Username: "sara"},
		token: "issued-token",
	}
	router := authRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"sara","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "issued-token") {
		t.Fatalf("token missing from response: %s", rec.Body.String())
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := authRouter(&stubAuthSvc{loginErr: authsvc.ErrInvalidCredentials})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"sara","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router := authRouter(&stubAuthSvc{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"sara"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
