package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/user"
)

func newCookieEnv(t *testing.T) (*gin.Engine, *auth.Issuer, *user.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := auth.NewIssuer("secret", time.Hour)
	u := &user.User{ID: primitive.NewObjectID(), Email: "a@x.com", Role: user.RoleUser}
	router := NewRouter(Deps{
		Config: &config.Config{
			AuthTransport: config.TransportCookie,
			CookieName:    "session",
			TokenTTL:      time.Hour,
			AllowOrigins:  []string{"http://localhost:5173"},
		},
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Issuer:   issuer,
		Auth:     &fakeAuthService{user: u, token: "issued-token"},
		Cart:     &fakeCartService{cart: &cart.Cart{UserID: u.ID, Items: []cart.Item{}}},
		Catalog:  &fakeCatalogService{},
		Wishlist: &fakeWishlistStore{user: u},
	})
	return router, issuer, u
}

func TestCookieTransportLoginSetsCookie(t *testing.T) {
	router, _, _ := newCookieEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"pw1234"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "issued-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// Token must not also appear in the body for the cookie transport.
	assert.NotContains(t, w.Body.String(), "issued-token")
}

func TestCookieTransportAuthenticatesCartRequests(t *testing.T) {
	router, issuer, u := newCookieEnv(t)
	token, err := issuer.Issue(auth.Identity{UserID: u.ID.Hex(), Email: u.Email})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Bearer header is not honored while the cookie transport is active.
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCookieTransportLogoutClearsCookie(t *testing.T) {
	router, _, _ := newCookieEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
