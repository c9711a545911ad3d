package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/courtside/courtside/internal/commentary"
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/inspector"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/merger"
	"github.com/courtside/courtside/internal/pipeline"
	"github.com/courtside/courtside/internal/progress"
	"github.com/courtside/courtside/internal/speech"
	"github.com/courtside/courtside/internal/store"
)

// Server wires the pipeline components behind the HTTP/JSON boundary.
type Server struct {
	cfg         *config.Config
	logger      logger.Logger
	store       *store.Store
	inspector   inspector.Inspector
	generator   commentary.Generator
	synthesizer speech.Synthesizer
	merger      merger.Merger
	runner      pipeline.Runner
	broker      *progress.Broker
	upgrader    websocket.Upgrader
}

// New creates a new Server instance
func New(
	cfg *config.Config,
	log logger.Logger,
	st *store.Store,
	insp inspector.Inspector,
	gen commentary.Generator,
	synth speech.Synthesizer,
	mrg merger.Merger,
	runner pipeline.Runner,
	broker *progress.Broker,
) *Server {
	return &Server{
		cfg:         cfg,
		logger:      log,
		store:       st,
		inspector:   insp,
		generator:   gen,
		synthesizer: synth,
		merger:      mrg,
		runner:      runner,
		broker:      broker,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	api := r.Group("/api")

	videos := api.Group("/videos")
	videos.POST("/upload", s.handleUpload)
	videos.GET("/:videoId", s.handleGetVideo)
	videos.DELETE("/:videoId", s.handleDeleteVideo)

	com := api.Group("/commentary")
	com.POST("/generate", s.handleGenerate)
	com.POST("/text-to-speech", s.handleTextToSpeech)
	com.POST("/merge", s.handleMerge)
	com.POST("/process", s.handleProcess)
	com.GET("/result/:resultId", s.handleGetResult)
	com.GET("/progress/:videoId", s.handleProgress)

	r.Static("/uploads", s.cfg.Paths.Uploads)
	r.Static("/thumbnails", s.cfg.Paths.Thumbnails)
	r.Static("/audio", s.cfg.Paths.Audio)
	r.Static("/results", s.cfg.Paths.Results)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
