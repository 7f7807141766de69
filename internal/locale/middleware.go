package locale

import (
	"go-roster/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKey is the gin context key holding the negotiated language.
	ContextKey = "lang"
	CookieName = "lang"
	QueryParam = "lang"
)

// Middleware negotiates the request language from the lang query parameter,
// the lang cookie and Accept-Language, in that order. Without any of them
// the session language of the switcher is used.
func Middleware(t *Translator, sw *Switcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := resolve(c, t, sw)

		c.Set(ContextKey, lang)
		ctx := contextutil.WithLanguage(c.Request.Context(), lang)
		c.Request = c.Request.WithContext(ctx)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

func resolve(c *gin.Context, t *Translator, sw *Switcher) string {
	if q := c.Query(QueryParam); q != "" && t.IsSupported(q) {
		return q
	}
	if cookie, err := c.Cookie(CookieName); err == nil && t.IsSupported(cookie) {
		return cookie
	}
	if accept := c.GetHeader("Accept-Language"); accept != "" {
		return t.Match(accept, sw.Current())
	}
	return sw.Current()
}

// FromContext returns the language chosen by Middleware, or fallback.
func FromContext(c *gin.Context, fallback string) string {
	if lang := c.GetString(ContextKey); lang != "" {
		return lang
	}
	return fallback
}
