package sessions

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *CookieSessionStore {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCookieSessionStore(log, false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
}

// carry sends the cookies set on w back with a new request.
func carry(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSignInAndClear(t *testing.T) {
	store := newStore()

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	assert.False(t, store.IsAuthenticated(r))

	w := httptest.NewRecorder()
	require.NoError(t, store.SignIn(w, r, "admin@example.com"))

	r = carry(w)
	assert.True(t, store.IsAuthenticated(r))
	assert.Equal(t, "admin@example.com", store.GetUserEmail(r))

	w = httptest.NewRecorder()
	require.NoError(t, store.SetTheme(w, r, ThemeDark))
	r = carry(w)

	w = httptest.NewRecorder()
	require.NoError(t, store.ClearSession(w, r))
	r = carry(w)
	assert.False(t, store.IsAuthenticated(r))
	assert.Empty(t, store.GetUserEmail(r))
	assert.Equal(t, ThemeDark, store.GetTheme(r))
}

func TestPreferenceDefaults(t *testing.T) {
	store := newStore()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, ThemeLight, store.GetTheme(r))
	assert.Equal(t, DefaultLanguage, store.GetLanguage(r))
	assert.Empty(t, store.GetDashboardID(r))

	w := httptest.NewRecorder()
	require.NoError(t, store.SetLanguage(w, r, "ar"))
	assert.Equal(t, "ar", store.GetLanguage(carry(w)))
}

func TestUnreadableCookieStartsFresh(t *testing.T) {
	store := newStore()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})

	assert.False(t, store.IsAuthenticated(r))
	w := httptest.NewRecorder()
	require.NoError(t, store.SetDashboardID(w, r, "abc"))
	assert.Equal(t, "abc", store.GetDashboardID(carry(w)))
}
