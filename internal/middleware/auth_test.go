package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
)

// fakeValidator accepts the single token it was built with
type fakeValidator struct {
	token  string
	claims interface{}
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	if token != f.token {
		return nil, errors.New("signature mismatch")
	}
	return f.claims, nil
}

func TestGetAuth0ID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns auth0 id when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), Auth0IDKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			result := GetAuth0ID(c)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetCustomClaims(t *testing.T) {
	e := echo.New()

	t.Run("returns custom claims when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|test"},
			CustomClaims:     &CustomClaims{Email: "test@example.com", Name: "Test User"},
		}
		c.SetRequest(req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims)))

		result := GetCustomClaims(c)
		if result == nil {
			t.Fatal("Expected custom claims, got nil")
		}
		if result.Email != "test@example.com" {
			t.Errorf("Expected email 'test@example.com', got %q", result.Email)
		}
	})

	t.Run("returns nil when claims not present", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if GetCustomClaims(c) != nil {
			t.Error("Expected nil, got custom claims")
		}
		if GetClaims(c) != nil {
			t.Error("Expected nil, got claims")
		}
	})
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{Email: "test@example.com"}
	if err := claims.Validate(context.Background()); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestGetAccount(t *testing.T) {
	e := echo.New()

	t.Run("builds account from claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|cashier"},
			CustomClaims: &CustomClaims{
				Email:       "cajero@caja.test",
				Name:        "Cajero Uno",
				Picture:     "https://example.com/pic.jpg",
				Permissions: []string{"ROLE_USER"},
			},
		}
		ctx := context.WithValue(req.Context(), ClaimsKey, claims)
		ctx = context.WithValue(ctx, Auth0IDKey, "auth0|cashier")
		c := e.NewContext(req.WithContext(ctx), httptest.NewRecorder())

		account := GetAccount(c)
		if account == nil {
			t.Fatal("Expected account, got nil")
		}
		if account.Login != "auth0|cashier" || account.Email != "cajero@caja.test" {
			t.Errorf("Unexpected account %+v", account)
		}
		if account.ImageURL != "https://example.com/pic.jpg" {
			t.Errorf("Expected picture as image URL, got %q", account.ImageURL)
		}
		if len(account.Authorities) != 1 || account.Authorities[0] != "ROLE_USER" {
			t.Errorf("Unexpected authorities %v", account.Authorities)
		}
		if account.LangKey != DefaultLangKey {
			t.Errorf("Expected lang key %q, got %q", DefaultLangKey, account.LangKey)
		}
	})

	t.Run("nil when unauthenticated", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if GetAccount(c) != nil {
			t.Error("Expected nil account")
		}
	})
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	validClaims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|cashier"},
		CustomClaims:     &CustomClaims{Email: "cajero@caja.test"},
	}

	tests := []struct {
		name       string
		header     string
		claims     interface{}
		wantStatus int
		wantCalled bool
	}{
		{"missing header", "", validClaims, http.StatusUnauthorized, false},
		{"no bearer prefix", "invalid-token", validClaims, http.StatusUnauthorized, false},
		{"wrong prefix", "Basic good-token", validClaims, http.StatusUnauthorized, false},
		{"bad token", "Bearer other-token", validClaims, http.StatusUnauthorized, false},
		{"claims without subject", "Bearer good-token", &validator.ValidatedClaims{}, http.StatusUnauthorized, false},
		{"unexpected claims type", "Bearer good-token", "not claims", http.StatusUnauthorized, false},
		{"valid token", "Bearer good-token", validClaims, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			m := NewAuthMiddlewareWithValidator(&fakeValidator{token: "good-token", claims: tt.claims})

			called := false
			var subject string
			handler := m.Authenticate()(func(c echo.Context) error {
				called = true
				subject = GetAuth0ID(c)
				return c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)
			if called != tt.wantCalled {
				t.Fatalf("Expected handler called=%v, got %v", tt.wantCalled, called)
			}
			if tt.wantStatus == http.StatusOK {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				if subject != "auth0|cashier" {
					t.Errorf("Expected subject in context, got %q", subject)
				}
				return
			}

			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("Expected HTTPError, got %T", err)
			}
			if httpErr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, httpErr.Code)
			}
		})
	}
}

func TestNewAuthMiddleware(t *testing.T) {
	m, err := NewAuthMiddleware("test.auth0.com", "https://api.caja.test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.validator == nil {
		t.Error("Expected validator to be set")
	}
}
