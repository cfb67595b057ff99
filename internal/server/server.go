// Package server exposes the optimizer over HTTP. It is a thin protocol
// surface: scenario in, allocation result out; the formulation core stays
// free of transport concerns.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agriplan/cropalloc/internal/logging"
	"github.com/agriplan/cropalloc/internal/planner"
	"github.com/agriplan/cropalloc/pkg/config"
	"github.com/agriplan/cropalloc/pkg/core"
)

// Server wires the planner into a gin engine.
type Server struct {
	planner *planner.Planner
	logger  logr.Logger
	engine  *gin.Engine
}

// New builds the HTTP server around a planner.
func New(pl *planner.Planner, logger logr.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		planner: pl,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/healthz", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/v1")
	{
		v1.POST("/optimize", s.optimize)
	}
	return s
}

// Handler returns the underlying HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("serving optimizer API", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

// optimize accepts a scenario document and returns the run result. Invalid
// input is a 400; infeasible or unbounded runs are 200s with the status in
// the report, because they are expected user-correctable outcomes, not
// transport failures.
func (s *Server) optimize(c *gin.Context) {
	var scenario config.Scenario
	if err := c.ShouldBindJSON(&scenario); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid scenario document: " + err.Error()})
		return
	}
	if err := scenario.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	params, err := scenario.Parameters()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := logging.IntoContext(c.Request.Context(), s.logger)
	result, err := s.planner.Run(ctx, planner.Request{
		Params:  params,
		Weights: scenario.Weights,
		Formula: scenario.ScoreFormula(),
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidParameter) || errors.Is(err, core.ErrEmptyIndexSet) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error(err, "optimization run failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "optimization run failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
