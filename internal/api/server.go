// Package api exposes the HTTP boundary over the stream engine, knowledge
// base and advisor. Handlers only read core state; the engine's generator
// task is the sole writer.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"finstream-go/internal/docs"
	"finstream-go/internal/insight"
	"finstream-go/internal/market"
	"finstream-go/internal/metrics"
	"finstream-go/internal/stream"
)

// Response page sizes fixed by the API contract.
const (
	latestLimit = 20
	alertsLimit = 10
)

// Server wires the gin router to the core components.
type Server struct {
	engine  *stream.Engine
	docs    *docs.Store
	advisor *insight.Advisor
	log     zerolog.Logger
	router  *gin.Engine
}

// NewServer builds the router with CORS and all /api routes registered.
func NewServer(engine *stream.Engine, store *docs.Store, advisor *insight.Advisor, corsOrigins []string, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	router.Use(cors.New(corsCfg))

	s := &Server{engine: engine, docs: store, advisor: advisor, log: log, router: router}
	s.registerRoutes()
	return s
}

// Handler returns the http handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	api.GET("/", s.rootHandler)
	api.GET("/stream/data", s.streamDataHandler)
	api.GET("/stream/aggregates", s.aggregatesHandler)
	api.GET("/stream/alerts", s.alertsHandler)
	api.GET("/stream/ws", s.streamWSHandler)
	api.GET("/stats", s.statsHandler)
	api.GET("/documents", s.documentsHandler)
	api.POST("/documents", s.addDocumentHandler)
	api.POST("/query", s.queryHandler)
}

func respTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *Server) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Financial Intelligence Platform", "status": "active"})
}

func (s *Server) streamDataHandler(c *gin.Context) {
	data := s.engine.Latest(latestLimit)
	if data == nil {
		data = []market.Observation{}
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "timestamp": respTimestamp()})
}

func (s *Server) aggregatesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"aggregates": s.engine.Aggregates(), "timestamp": respTimestamp()})
}

func (s *Server) alertsHandler(c *gin.Context) {
	alerts := s.engine.Alerts(alertsLimit)
	if alerts == nil {
		alerts = []market.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{
		"alerts":    alerts,
		"count":     s.engine.AlertCount(),
		"timestamp": respTimestamp(),
	})
}

func (s *Server) statsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total_documents":  s.docs.Count(),
		"streaming_active": s.engine.Running(),
		"data_points":      s.engine.WindowLen(),
		"total_alerts":     s.engine.AlertCount(),
		"llm_available":    s.advisor.Available(),
	})
}

func (s *Server) documentsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.docs.All())
}

type documentCreate struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func (s *Server) addDocumentHandler(c *gin.Context) {
	var req documentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc := s.docs.Add(req.Title, req.Content, req.Category)
	s.log.Info().Str("id", doc.ID).Str("category", doc.Category).Msg("document added")
	c.JSON(http.StatusCreated, doc)
}

type queryRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id"`
}

func (s *Server) queryHandler(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	answer, err := s.advisor.Ask(c.Request.Context(), req.Question)
	if err != nil {
		s.log.Error().Err(err).Msg("query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query processing failed"})
		return
	}
	metrics.QueriesTotal.Inc()
	c.JSON(http.StatusOK, gin.H{
		"answer":    answer.Answer,
		"sources":   answer.Sources,
		"timestamp": respTimestamp(),
	})
}
