package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookie       = "portfolio_visitor"
	visitorCookieMaxAge = 365 * 24 * 60 * 60

	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// visitorID returns the visitor's id, issuing a new cookie when the request
// carries none or an invalid one.
func visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(visitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}

// prefersDark reads the system color scheme from the client hint.
func prefersDark(c *gin.Context) bool {
	return c.GetHeader(colorSchemeHint) == "dark"
}
