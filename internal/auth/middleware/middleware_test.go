package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-grades/internal/rbac"
)

func login(t *testing.T, h http.Handler, body string) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))
	out := map[string]string{}
	if rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rr.Code, out
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a := NewAuthService("test-secret")
	opts := LoginOptions{AdminUser: "admin", AdminPassHash: string(hash), AllowDevLogin: true}
	h := LoginHandler(a, opts)

	code, out := login(t, h, `{"username":"admin","password":"s3cret"}`)
	if code != http.StatusOK || out["role"] != rbac.RoleAdmin {
		t.Fatalf("admin login: %d %v", code, out)
	}
	claims, err := a.Parse(out["access_token"])
	if err != nil || claims.Sub != "admin" || claims.Role != rbac.RoleAdmin {
		t.Fatalf("claims: %+v err=%v", claims, err)
	}

	if code, _ := login(t, h, `{"username":"admin","password":"wrong"}`); code != http.StatusUnauthorized {
		t.Fatalf("bad admin password: %d", code)
	}
	if code, out := login(t, h, `{"username":"dad","password":"dad","role":"grader"}`); code != http.StatusOK || out["role"] != rbac.RoleGrader {
		t.Fatalf("dev login: %d %v", code, out)
	}
	if code, _ := login(t, h, `{"username":"dad","password":"dad","role":"admin"}`); code != http.StatusUnauthorized {
		t.Fatalf("dev login must not grant admin: %d", code)
	}
	if code, _ := login(t, h, `{bad`); code != http.StatusBadRequest {
		t.Fatalf("bad json: %d", code)
	}

	opts.AllowDevLogin = false
	if code, _ := login(t, LoginHandler(a, opts), `{"username":"dad","password":"dad","role":"grader"}`); code != http.StatusUnauthorized {
		t.Fatalf("dev login disabled: %d", code)
	}
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("test-secret")
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = rbac.SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	tok, _ := a.IssueJWT("mom", rbac.RoleGrader)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || gotSub != "mom" || gotRole != rbac.RoleGrader {
		t.Fatalf("status=%d sub=%q role=%q", rr.Code, gotSub, gotRole)
	}

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer not-a-token",
		"other secret": "Bearer " + mustIssue(t, NewAuthService("other"), "x", rbac.RoleAdmin),
		"unknown role": "Bearer " + mustIssue(t, a, "x", "superuser"),
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status %d", name, rr.Code)
		}
	}
}

func TestParse_Expired(t *testing.T) {
	a := NewAuthService("test-secret")
	a.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }
	tok := mustIssue(t, a, "mom", rbac.RoleViewer)
	a.now = time.Now
	if _, err := a.Parse(tok); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	a := NewAuthService("test-secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{Sub: "x", Role: rbac.RoleAdmin})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Parse(s); err == nil {
		t.Fatal("expected HS512 token to be rejected")
	}
}

func mustIssue(t *testing.T, a *AuthService, sub, role string) string {
	t.Helper()
	tok, err := a.IssueJWT(sub, role)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}
