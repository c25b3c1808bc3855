package httpserver

import (
	"time"

	config "github.com/afishaclub/afisha/configs"
	"github.com/afishaclub/afisha/internal/core/ports"
	customMiddleware "github.com/afishaclub/afisha/internal/infrastructure/httpserver/middleware"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	CatalogService   ports.CatalogService
	CityService      ports.CityService
	FavoritesService ports.FavoritesService
	HealthCheckers   []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	kudagoConfig   *config.KudaGoConfig
	logger         *logrus.Logger
	catalogSvc     ports.CatalogService
	citySvc        ports.CityService
	favoritesSvc   ports.FavoritesService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, kudagoConfig *config.KudaGoConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		kudagoConfig:   kudagoConfig,
		logger:         logger,
		catalogSvc:     deps.CatalogService,
		citySvc:        deps.CityService,
		favoritesSvc:   deps.FavoritesService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.CityService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
