package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/afishaclub/afisha/internal/core/ports"
)

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	City           *CityMiddleware
	LocationCookie *LocationCookieMiddleware
	Logging        *LoggingMiddleware
	Metrics        *MetricsMiddleware
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(
	cityService ports.CityService,
	logger *logrus.Logger,
	requestsTotal *prometheus.CounterVec,
	requestDuration *prometheus.HistogramVec,
) *MiddlewareCollection {
	return &MiddlewareCollection{
		City:           NewCityMiddleware(cityService, logger),
		LocationCookie: NewLocationCookieMiddleware(),
		Logging:        NewLoggingMiddleware(logger),
		Metrics:        NewMetricsMiddleware(requestsTotal, requestDuration),
	}
}
