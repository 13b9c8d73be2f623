package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolvePrincipal(t *testing.T) {
	t.Run("attaches the member id from the header", func(t *testing.T) {
		var captured Principal
		var found bool

		handler := ResolvePrincipal()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, found = PrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/schedules", nil)
		req.Header.Set(MemberIDHeader, "  member-42  ")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if !found {
			t.Fatalf("expected principal in context")
		}
		if captured.MemberID != "member-42" {
			t.Fatalf("expected trimmed member id, got %q", captured.MemberID)
		}
	})

	t.Run("leaves the context empty without the header", func(t *testing.T) {
		handler := ResolvePrincipal()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); ok {
				t.Fatalf("expected no principal")
			}
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/schedules", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})

	t.Run("blank header value counts as anonymous", func(t *testing.T) {
		handler := ResolvePrincipal()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); ok {
				t.Fatalf("expected no principal for blank header")
			}
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/schedules", nil)
		req.Header.Set(MemberIDHeader, "   ")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})
}
