package sessions

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const (
	sessionCookieName = "admin-dashboard-session"

	authenticatedSessionKey = "isAuthenticated"
	userEmailSessionKey     = "userEmail"
	themeSessionKey         = "theme"
	languageSessionKey      = "language"
	dashboardIDSessionKey   = "dashboardID"

	ThemeLight      = "light"
	ThemeDark       = "dark"
	DefaultLanguage = "en"
)

// SessionStore is what the admin's browser remembers between requests.
type SessionStore interface {
	IsAuthenticated(r *http.Request) bool
	GetUserEmail(r *http.Request) string
	SignIn(w http.ResponseWriter, r *http.Request, email string) error

	GetTheme(r *http.Request) string
	SetTheme(w http.ResponseWriter, r *http.Request, theme string) error
	GetLanguage(r *http.Request) string
	SetLanguage(w http.ResponseWriter, r *http.Request, lang string) error

	GetDashboardID(r *http.Request) string
	SetDashboardID(w http.ResponseWriter, r *http.Request, id string) error

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
	log   *logrus.Entry
}

func NewCookieSessionStore(log *logrus.Logger, secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(7 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store, log: log.WithField("component", "sessions")}
}

// getSession never fails. A cookie that cannot be decoded yields a fresh
// session that replaces it on the next save.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		c.log.WithError(err).Debug("discarding unreadable session cookie")
	}
	return session
}

func (c *CookieSessionStore) getString(r *http.Request, key string) string {
	v, _ := c.getSession(r).Values[key].(string)
	return v
}

func (c *CookieSessionStore) set(w http.ResponseWriter, r *http.Request, values map[string]interface{}) error {
	session := c.getSession(r)
	for k, v := range values {
		session.Values[k] = v
	}
	return session.Save(r, w)
}

func (c *CookieSessionStore) IsAuthenticated(r *http.Request) bool {
	ok, _ := c.getSession(r).Values[authenticatedSessionKey].(bool)
	return ok
}

func (c *CookieSessionStore) GetUserEmail(r *http.Request) string {
	return c.getString(r, userEmailSessionKey)
}

func (c *CookieSessionStore) SignIn(w http.ResponseWriter, r *http.Request, email string) error {
	return c.set(w, r, map[string]interface{}{
		authenticatedSessionKey: true,
		userEmailSessionKey:     email,
	})
}

func (c *CookieSessionStore) GetTheme(r *http.Request) string {
	if theme := c.getString(r, themeSessionKey); theme != "" {
		return theme
	}
	return ThemeLight
}

func (c *CookieSessionStore) SetTheme(w http.ResponseWriter, r *http.Request, theme string) error {
	return c.set(w, r, map[string]interface{}{themeSessionKey: theme})
}

func (c *CookieSessionStore) GetLanguage(r *http.Request) string {
	if lang := c.getString(r, languageSessionKey); lang != "" {
		return lang
	}
	return DefaultLanguage
}

func (c *CookieSessionStore) SetLanguage(w http.ResponseWriter, r *http.Request, lang string) error {
	return c.set(w, r, map[string]interface{}{languageSessionKey: lang})
}

func (c *CookieSessionStore) GetDashboardID(r *http.Request) string {
	return c.getString(r, dashboardIDSessionKey)
}

func (c *CookieSessionStore) SetDashboardID(w http.ResponseWriter, r *http.Request, id string) error {
	return c.set(w, r, map[string]interface{}{dashboardIDSessionKey: id})
}

// ClearSession signs the admin out. Theme and language survive.
func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	delete(session.Values, authenticatedSessionKey)
	delete(session.Values, userEmailSessionKey)
	delete(session.Values, dashboardIDSessionKey)
	return session.Save(r, w)
}
