package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)
	s.echo.GET("/sitemap.xml", s.sitemap)

	api := s.echo.Group("/api")
	api.GET("/locations", s.listLocations)
	api.GET("/events", s.listEvents)
	api.GET("/events/:id", s.getEvent)

	cities := api.Group("/cities")
	cities.GET("", s.listCities)
	cities.GET("/current", s.currentCity)
	cities.PUT("/current", s.selectCity)
	cities.DELETE("/current", s.clearCity)

	fav := api.Group("/favorites")
	fav.GET("", s.listFavorites)
	fav.POST("/:id/toggle", s.toggleFavorite)
	fav.DELETE("/:id", s.removeFavorite)

	// Page routes run the city resolution chain; the favorites page is
	// city-agnostic and bypasses it.
	pages := s.echo.Group("", s.middleware.City.ResolveCity())
	pages.GET("/", s.rootPage)
	pages.GET("/favorites", s.favoritesPage)
	pages.GET("/:city/", s.cityPage)
	pages.GET("/:city/events/:id", s.eventPage)
}
