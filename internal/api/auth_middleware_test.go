package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedback/internal/auth"
	"feedback/internal/config"
	"feedback/internal/entity"
	"feedback/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// fakeRepo implements the repository methods these tests touch; the embedded
// interface panics on anything else.
type fakeRepo struct {
	model.Repository
	usersByEmail map[string]*entity.DbUser
	rolesByName  map[string]*entity.DbRole
	nextUserID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByEmail: map[string]*entity.DbUser{},
		rolesByName: map[string]*entity.DbRole{
			entity.RoleSuperAdmin: {ID: 1, Name: entity.RoleSuperAdmin},
			entity.RoleAdmin:      {ID: 2, Name: entity.RoleAdmin},
			entity.RoleEndUser:    {ID: 3, Name: entity.RoleEndUser},
		},
		nextUserID: 1,
	}
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	if _, ok := f.usersByEmail[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	user.ID = f.nextUserID
	f.nextUserID++
	user.CreatedAt = time.Now()
	f.usersByEmail[user.Email] = user
	return nil
}

func (f *fakeRepo) GetRoleByName(_ context.Context, name string) (*entity.DbRole, error) {
	if role, ok := f.rolesByName[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetRoleByID(_ context.Context, id uint) (*entity.DbRole, error) {
	for _, role := range f.rolesByName {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) addUser(t *testing.T, email, password, roleName string) *entity.DbUser {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	role, ok := f.rolesByName[roleName]
	if !ok {
		t.Fatalf("unknown role %s", roleName)
	}
	user := &entity.DbUser{ID: f.nextUserID, Email: email, PasswordHash: hash, RoleID: role.ID}
	f.nextUserID++
	f.usersByEmail[email] = user
	return user
}

func newTestRouter(t *testing.T, repo model.Repository) (*gin.Engine, *HTTPHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{JWTSecret: "test-secret", JWTIssuer: "feedback-test"}
	handler, err := NewHTTPHandler(cfg, repo, nil)
	if err != nil {
		t.Fatalf("unexpected error creating handler: %v", err)
	}

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.GET("/api/auth/me", handler.AuthMiddleware(), handler.Me)

	protected := r.Group("/api", handler.AuthMiddleware())
	protected.GET("/users", handler.RequireSuperAdmin(), handler.ListUsers)
	protected.POST("/answers", handler.RequireEndUser(), handler.SubmitAnswer)

	return r, handler
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("unexpected error marshalling body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r, _ := newTestRouter(t, newFakeRepo())

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate Bearer, got %q", got)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r, _ := newTestRouter(t, newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r, _ := newTestRouter(t, newFakeRepo())

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeUnauthorized {
		t.Fatalf("expected code %s, got %s", ErrCodeUnauthorized, response.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "user@example.com", "S3curePass!", entity.RoleEndUser)
	r, _ := newTestRouter(t, repo)

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "user@example.com",
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error signing token: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", expired, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeSessionExpired {
		t.Fatalf("expected code %s, got %s", ErrCodeSessionExpired, response.Code)
	}
}

func TestLoginAndMe(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "admin@example.com", "S3curePass!", entity.RoleAdmin)
	r, _ := newTestRouter(t, repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", entity.AuthLoginRequest{
		Email:    "admin@example.com",
		Password: "S3curePass!",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var tokenResp entity.AuthTokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tokenResp); err != nil {
		t.Fatalf("failed to unmarshal token response: %v", err)
	}
	if tokenResp.AccessToken == "" {
		t.Fatal("expected access token to be populated")
	}
	if tokenResp.TokenType != "bearer" {
		t.Fatalf("expected token type bearer, got %s", tokenResp.TokenType)
	}
	if remaining := time.Until(tokenResp.ExpiresAt); remaining > auth.AccessTokenExpiry {
		t.Fatalf("expected expiry within %v, got %v", auth.AccessTokenExpiry, remaining)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", tokenResp.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var me entity.UserSummary
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("failed to unmarshal me response: %v", err)
	}
	if me.Email != "admin@example.com" {
		t.Fatalf("expected email admin@example.com, got %s", me.Email)
	}
	if me.Role != entity.RoleAdmin {
		t.Fatalf("expected role %s, got %s", entity.RoleAdmin, me.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "admin@example.com", "S3curePass!", entity.RoleAdmin)
	r, _ := newTestRouter(t, repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", entity.AuthLoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeInvalidCredentials {
		t.Fatalf("expected code %s, got %s", ErrCodeInvalidCredentials, response.Code)
	}
}

func TestRegisterAssignsEndUserRole(t *testing.T) {
	repo := newFakeRepo()
	r, _ := newTestRouter(t, repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", entity.AuthRegisterRequest{
		Email:    "new@example.com",
		Password: "S3curePass!",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var summary entity.UserSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if summary.Role != entity.RoleEndUser {
		t.Fatalf("expected role %s, got %s", entity.RoleEndUser, summary.Role)
	}

	stored, ok := repo.usersByEmail["new@example.com"]
	if !ok {
		t.Fatal("expected user to be persisted")
	}
	if stored.PasswordHash == "S3curePass!" {
		t.Fatal("expected password to be hashed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "new@example.com", "S3curePass!", entity.RoleEndUser)
	r, _ := newTestRouter(t, repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", entity.AuthRegisterRequest{
		Email:    "new@example.com",
		Password: "S3curePass!",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeEmailExists {
		t.Fatalf("expected code %s, got %s", ErrCodeEmailExists, response.Code)
	}
}

func TestRolePolicyForbidden(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "user@example.com", "S3curePass!", entity.RoleEndUser)
	r, handler := newTestRouter(t, repo)

	token, _, err := handler.tokens.Issue("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/users", token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeForbidden {
		t.Fatalf("expected code %s, got %s", ErrCodeForbidden, response.Code)
	}
}

func TestRolePolicyAdminCannotSubmitAnswers(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, "admin@example.com", "S3curePass!", entity.RoleAdmin)
	r, handler := newTestRouter(t, repo)

	token, _, err := handler.tokens.Issue("admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/answers", token, entity.AnswerCreateRequest{})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}
