package api

import (
	"net/http"

	"assetserver/src/api/handlers"
	"assetserver/src/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	cfg     *config.Config
}

func NewServer(cfg *config.Config, handler *handlers.Handler) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		cfg:     cfg,
	}
	server.InitMiddlewares()
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitMiddlewares() {
	s.Router.Use(middleware.RealIP)
	s.Router.Use(RequestLogger(s.Handler.Logger))
	s.Router.Use(Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins:       s.cfg.CORS.AllowedOrigins,
		AllowedMethods:       s.cfg.CORS.AllowedMethods,
		AllowedHeaders:       s.cfg.CORS.AllowedHeaders,
		OptionsSuccessStatus: http.StatusOK,
	}).Handler)
}

func (s *Server) InitRoutes() {
	s.Router.Handle("/alive", http.HandlerFunc(handlers.Healthcheck))

	assets := http.HandlerFunc(s.Handler.Assets)
	for _, prefix := range []string{"/assets", "/api/assets"} {
		s.Router.Handle(prefix, assets)
		s.Router.Handle(prefix+"/*", assets)
	}
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  cfg.Service.ReadTimeout,
		WriteTimeout: cfg.Service.WriteTimeout,
		Handler:      server,
	}
	return httpServer
}
