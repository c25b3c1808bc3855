package httpserver

import (
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.RequestID())

	s.echo.Use(s.middleware.Metrics.CollectHTTPMetrics())

	// Runs for every request so ?location= always reaches the cookie before
	// city resolution does.
	s.echo.Use(s.middleware.LocationCookie.CaptureLocation())
	s.echo.Use(s.middleware.Logging.RequestLogging())
}
