package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds the cross-origin policy for the ward API. It is the only
// CORS layer installed on the server; do not also register echo's CORS
// middleware.
type CORSConfig struct {
	AllowOrigins []string
	MaxAge       int // in seconds
}

// DefaultCORSConfig allows the two local front-end development origins.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		MaxAge:       3600,
	}
}

var corsAllowMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

var corsAllowHeaders = []string{
	"Authorization",
	"Content-Type",
	"Accept",
	"X-Requested-With",
	RequestIDHeader,
}

var corsExposeHeaders = []string{
	RequestIDHeader,
	"X-Total-Count",
	"X-Has-Next",
	"X-Has-Previous",
	"Content-Disposition",
}

// CORS returns middleware that attaches cross-origin headers to every
// response. The request origin is echoed only when it is on the allow-list;
// other origins get no Access-Control-Allow-Origin header and the request
// proceeds normally. Every OPTIONS request ends here with 204 No Content and
// never reaches routing. Install it with e.Pre so it runs before the router.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = DefaultCORSConfig().AllowOrigins
	}
	allowed := make(map[string]bool, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		allowed[o] = true
	}

	allowMethods := strings.Join(corsAllowMethods, ", ")
	allowHeaders := strings.Join(corsAllowHeaders, ", ")
	exposeHeaders := strings.Join(corsExposeHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			h := c.Response().Header()

			origin := req.Header.Get(echo.HeaderOrigin)
			if origin != "" {
				// Responses differ per origin; caches must key on it.
				h.Add(echo.HeaderVary, echo.HeaderOrigin)
				if allowed[origin] {
					h.Set(echo.HeaderAccessControlAllowOrigin, origin)
					h.Set(echo.HeaderAccessControlAllowCredentials, "true")
					h.Set(echo.HeaderAccessControlExposeHeaders, exposeHeaders)
				}
			}

			if req.Method == http.MethodOptions {
				h.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
				h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
				h.Set(echo.HeaderAccessControlMaxAge, maxAge)
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
