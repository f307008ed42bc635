package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	api.POST("/auth/login", s.login)

	// Presence reads and the event stream are public: both only reveal
	// liveness hints, never durable state.
	api.GET("/doctors/status", s.getAllStatuses)
	api.GET("/doctors/:id/status", s.getDoctorStatus)
	api.GET("/events/stream", s.streamEvents)

	protected := api.Group("")
	protected.Use(s.middleware.JWT.RequireJWT())

	protected.GET("/appointments", s.getMyAppointments)
	protected.POST("/appointments/:id/accept", s.acceptAppointment)
	protected.POST("/appointments/:id/reject", s.rejectAppointment)
	protected.PUT("/doctors/me/status", s.setMyStatus)
}
