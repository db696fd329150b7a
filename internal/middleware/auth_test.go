package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graciegould/snaglet/internal/auth"
)

type fakeVerifier struct {
	calls    int
	identity *auth.Identity
	err      error
}

func (f *fakeVerifier) VerifyToken(ctx context.Context, raw string) (*auth.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func TestAuthenticateRejectsWithoutProviderCall(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwdw=="},
		{"empty token", "Bearer "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			verifier := &fakeVerifier{}
			mw := NewAuthMiddleware(verifier)

			nextCalled := false
			handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/secure-action", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "Unauthorized") {
				t.Errorf("body missing unauthorized error: %s", rr.Body.String())
			}
			if verifier.calls != 0 {
				t.Errorf("verifier called %d times, want 0", verifier.calls)
			}
			if nextCalled {
				t.Error("next handler ran for rejected request")
			}
		})
	}
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: auth.ErrInvalidCredential}
	mw := NewAuthMiddleware(verifier)

	nextCalled := false
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/secure-action", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if verifier.calls != 1 {
		t.Errorf("verifier called %d times, want 1", verifier.calls)
	}
	if nextCalled {
		t.Error("next handler ran with invalid token")
	}
}

func TestAuthenticateRejectsWhenProviderDown(t *testing.T) {
	verifier := &fakeVerifier{err: auth.ErrProviderUnavailable}
	mw := NewAuthMiddleware(verifier)

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler ran while provider down")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/secure-action", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// Same client-visible outcome as an invalid token.
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	verifier := &fakeVerifier{identity: &auth.Identity{
		SubjectID: "u-42",
		Email:     "dev@example.com",
		Claims:    map[string]any{"isAdmin": true},
	}}
	mw := NewAuthMiddleware(verifier)

	var seen *auth.Identity
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/secure-action", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if seen == nil || seen.SubjectID != "u-42" {
		t.Fatalf("identity not attached, got %+v", seen)
	}
}

func TestRequireClaimForbidsWithoutClaim(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
	}{
		{"absent", map[string]any{}},
		{"false", map[string]any{"isAdmin": false}},
		{"wrong type", map[string]any{"isAdmin": "yes"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mw := NewAuthMiddleware(&fakeVerifier{})
			handler := mw.RequireClaim("isAdmin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler ran without required claim")
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/set-admin-claim", nil)
			ctx := context.WithValue(req.Context(), identityKey, &auth.Identity{
				SubjectID: "u-1",
				Claims:    test.claims,
			})
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req.WithContext(ctx))

			if rr.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "Admin privileges required") {
				t.Errorf("unexpected body: %s", rr.Body.String())
			}
		})
	}
}

func TestRequireClaimPassesWithClaim(t *testing.T) {
	mw := NewAuthMiddleware(&fakeVerifier{})

	nextCalled := false
	handler := mw.RequireClaim("isAdmin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/set-admin-claim", nil)
	ctx := context.WithValue(req.Context(), identityKey, &auth.Identity{
		SubjectID: "u-1",
		Claims:    map[string]any{"isAdmin": true},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req.WithContext(ctx))

	if !nextCalled {
		t.Fatal("next handler did not run for admin identity")
	}
}

func TestRequireClaimPanicsWithoutAuthenticate(t *testing.T) {
	mw := NewAuthMiddleware(&fakeVerifier{})
	handler := mw.RequireClaim("isAdmin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when chained without Authenticate")
		}
	}()

	req := httptest.NewRequest(http.MethodPost, "/api/set-admin-claim", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
