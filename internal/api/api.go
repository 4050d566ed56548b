// Package api exposes the relay over HTTP: health and stats probes plus
// format and command endpoints for driving the pipeline without a chat
// client.
package api

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avenkat/caprelay/internal/commands"
	"github.com/avenkat/caprelay/internal/formatter"
	"github.com/avenkat/caprelay/internal/forwarder"
	"github.com/avenkat/caprelay/internal/settings"
	"github.com/avenkat/caprelay/internal/stats"
	"github.com/avenkat/caprelay/internal/store"
)

// Server represents the API server
type Server struct {
	router     *gin.Engine
	formatter  *formatter.Formatter
	forwarder  *forwarder.Forwarder
	dispatcher *commands.Dispatcher
	settings   *settings.Settings
	stats      *stats.Stats
	store      *store.Store
}

// NewServer creates a new API server instance. The store may be nil; the
// server then serves requests without recording activity.
func NewServer(f *formatter.Formatter, fw *forwarder.Forwarder, d *commands.Dispatcher, set *settings.Settings, st *stats.Stats, db *store.Store) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(requestIDMiddleware())
	router.Use(errorHandlerMiddleware())

	s := &Server{
		router:     router,
		formatter:  f,
		forwarder:  fw,
		dispatcher: d,
		settings:   set,
		stats:      st,
		store:      db,
	}

	s.setupRoutes()

	return s
}

// Run starts the API server on the specified port
func (s *Server) Run(port int) error {
	return s.router.Run(fmt.Sprintf(":%d", port))
}

// Router exposes the underlying engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/stats", s.getStats)
		v1.POST("/format", s.formatCaption)
		v1.POST("/command", s.runCommand)
	}
}
