package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shuzaifak/crowd/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	logger := zap.NewNop()
	tm, err := auth.NewTokenManager(
		"test-token-secret-must-be-32-chars-long",
		"crowd-test",
		24*time.Hour,
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return tm
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := auth.NewTokenManager("", "crowd-test", time.Hour, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	issued := &auth.TokenUser{
		ID:    "9c1e4f7a-2b4f-4c83-9a6e-8f37b2a6d501",
		Name:  "Test User",
		Email: "test@example.com",
		Role:  "organizer",
	}

	token, err := tm.Issue(issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned an empty token")
	}

	got, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != issued.ID {
		t.Errorf("ID: got %q, want %q", got.ID, issued.ID)
	}
	if got.Name != issued.Name {
		t.Errorf("Name: got %q, want %q", got.Name, issued.Name)
	}
	if got.Email != issued.Email {
		t.Errorf("Email: got %q, want %q", got.Email, issued.Email)
	}
	if got.Role != issued.Role {
		t.Errorf("Role: got %q, want %q", got.Role, issued.Role)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	tm := newTestTokenManager(t)
	other, err := auth.NewTokenManager(
		"a-completely-different-32-char-secret!!",
		"crowd-test",
		time.Hour,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create second manager: %v", err)
	}

	token, err := other.Issue(&auth.TokenUser{ID: "u1", Email: "a@b.com", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Error("expected verification to fail for a token signed with another key")
	}
}

func TestVerify_Expired(t *testing.T) {
	tm, err := auth.NewTokenManager(
		"test-token-secret-must-be-32-chars-long",
		"crowd-test",
		time.Nanosecond,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}

	token, err := tm.Issue(&auth.TokenUser{ID: "u1", Email: "a@b.com", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(time.Millisecond)

	if _, err := tm.Verify(token); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}

func TestLoadTokenUser_NoHeader_Anonymous(t *testing.T) {
	tm := newTestTokenManager(t)

	var sawUser bool
	handler := tm.LoadTokenUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawUser = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/events/public", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if sawUser {
		t.Error("expected no user in context for a request without a token")
	}
}

func TestLoadTokenUser_ValidToken_InjectsUser(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.Issue(&auth.TokenUser{
		ID:    "u1",
		Name:  "Test User",
		Email: "test@example.com",
		Role:  "organizer",
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *auth.TokenUser
	handler := tm.LoadTokenUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got == nil {
		t.Fatal("expected a user in context")
	}
	if got.ID != "u1" || got.Role != "organizer" {
		t.Errorf("unexpected user in context: %+v", got)
	}
}

func TestLoadTokenUser_MalformedHeader_Returns401(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.LoadTokenUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", "just-a-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/users/me", nil)
			req.Header.Set("Authorization", tc.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
		})
	}
}

func TestRequireSignedIn_NoUser_Returns401(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/users/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["code"] != "UNAUTHORIZED" {
		t.Errorf("code: got %v, want %q", body["code"], "UNAUTHORIZED")
	}
}

func TestRequireSignedIn_WithUser_Proceeds(t *testing.T) {
	tm := newTestTokenManager(t)

	called := false
	handler := tm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/users/me", nil)
	req = withTestUser(req, "user")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_NoUser_Returns401(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireRole_WrongRole_Returns403(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req = withTestUser(req, "user")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireRole_CorrectRole_Proceeds(t *testing.T) {
	tm := newTestTokenManager(t)

	called := false
	handler := tm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req = withTestUser(req, "admin")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.RequireRole("organizer", "admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		role     string
		expected int
	}{
		{"organizer", http.StatusOK},
		{"admin", http.StatusOK},
		{"user", http.StatusForbidden},
		{"guest", http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/events", nil)
			req = withTestUser(req, tc.role)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expected {
				t.Errorf("role %q: expected status %d, got %d", tc.role, tc.expected, rec.Code)
			}
		})
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req = withTestUser(req, "ADMIN")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for uppercase role, got %d", http.StatusOK, rec.Code)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	user, ok := auth.CurrentUser(req)

	if ok {
		t.Error("expected ok to be false when no user in context")
	}
	if user != nil {
		t.Error("expected user to be nil when no user in context")
	}
}

func TestCurrentUser_WithUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = withTestUser(req, "organizer")

	user, ok := auth.CurrentUser(req)

	if !ok {
		t.Error("expected ok to be true when user in context")
	}
	if user == nil {
		t.Fatal("expected user to not be nil")
	}
	if user.Role != "organizer" {
		t.Errorf("expected role 'organizer', got %q", user.Role)
	}
}

// withTestUser injects a TokenUser into the request context for testing.
// This simulates what LoadTokenUser middleware does.
func withTestUser(r *http.Request, role string) *http.Request {
	user := &auth.TokenUser{
		ID:    "9c1e4f7a-2b4f-4c83-9a6e-8f37b2a6d501",
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	}
	return auth.WithTestUser(r, user)
}
