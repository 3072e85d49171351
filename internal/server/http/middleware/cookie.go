package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
)

// SessionCookieName names the cookie carrying the signed session token.
const SessionCookieName = "storefront.sid"

// CookieConfig controls session cookie attributes.
type CookieConfig struct {
	Name     string
	MaxAge   int
	Secure   bool
	SameSite http.SameSite
}

// NewCookieConfig derives cookie attributes from application config.
func NewCookieConfig(cfg *config.Config) CookieConfig {
	return CookieConfig{
		Name:     SessionCookieName,
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		Secure:   cfg.CookieSecure,
		SameSite: parseSameSite(cfg.CookieSameSite),
	}
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (cc CookieConfig) name() string {
	if cc.Name == "" {
		return SessionCookieName
	}
	return cc.Name
}

// SetSessionCookie writes the session token cookie to the response.
func SetSessionCookie(c *gin.Context, cc CookieConfig, token string) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.name(), token, cc.MaxAge, "/", "", cc.Secure, true)
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context, cc CookieConfig) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.name(), "", -1, "/", "", cc.Secure, true)
}

// SessionToken reads the raw session token from the request cookie.
func SessionToken(c *gin.Context, cc CookieConfig) string {
	token, err := c.Cookie(cc.name())
	if err != nil {
		return ""
	}
	return token
}
