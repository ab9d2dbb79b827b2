package server

import "net/http"

func (s *Server) initRoutes() {
	// OAuth login flow
	s.RegisterRouteHandler("GET "+RouteAuthStart, ChainMiddleware(s.StartAuthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware()...))

	// Profiles
	s.RegisterRouteHandler("GET "+RouteAPIUsers, ChainMiddleware(s.ListUsersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIUserByHandle, ChainMiddleware(s.GetUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIUsers, ChainMiddleware(s.RegisterUserHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAPIWallet, ChainMiddleware(s.ConnectWalletHandler(), s.APIMiddleware(s.RequireSessionAuth())...))

	// Thread submissions
	s.RegisterRouteHandler("GET "+RouteAPISubmissions, ChainMiddleware(s.ListSubmissionsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPISubmissionsToday, ChainMiddleware(s.SubmissionTodayHandler(), s.APIMiddleware(s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteAPISubmissions, ChainMiddleware(s.SubmitThreadHandler(), s.APIMiddleware(s.RequireSessionAuth())...))

	// Front end
	s.RegisterRouteFunc("GET /", s.StaticFileHandler())
}

// StaticFileHandler serves the front-end directory.
func (s *Server) StaticFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.fileServer.ServeHTTP(w, r)
	}
}
