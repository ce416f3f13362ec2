// Package api is the thin HTTP layer over the reporting engine. It is
// responsible only for input ingestion, engine orchestration, and output
// serialization; no aggregation logic lives here.
package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"census-report/core/engine"
	"census-report/core/types"
	"census-report/internal/errors"
	"census-report/internal/logging"
	"census-report/internal/metrics"
)

// Server is the HTTP API server.
type Server struct {
	echo    *echo.Echo
	engine  *engine.Engine
	version string
}

// NewServer creates an API server over an engine.
func NewServer(eng *engine.Engine, version string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{echo: e, engine: eng, version: version}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")
	api.POST("/query", s.handleQuery)
	api.GET("/reference", s.handleReference)

	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// Start blocks serving on the address.
func (s *Server) Start(address string) error {
	logging.Info("api server listening", zap.String("address", address))
	return s.echo.Start(address)
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// handleQuery runs one reporting query.
func (s *Server) handleQuery(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}()

	var req types.QueryRequest
	if err := c.Bind(&req); err != nil {
		metrics.QueriesTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{
			Type:    string(errors.TypeInput),
			Message: "invalid JSON request body",
		})
	}

	result, err := s.engine.Run(c.Request().Context(), req)
	if err != nil {
		if errors.IsType(err, errors.TypeInput) {
			metrics.QueriesTotal.WithLabelValues("bad_request").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{
				Type:    string(errors.TypeInput),
				Message: err.Error(),
			})
		}
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		logging.Error("query failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Type:    string(errors.TypeInternal),
			Message: err.Error(),
		})
	}

	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	metrics.OutputRows.Observe(float64(result.RecordCount))
	return c.JSON(http.StatusOK, result)
}

// referenceResponse lists what queries can select from.
type referenceResponse struct {
	Years     []string `json:"years"`
	Counties  []string `json:"counties"`
	AgeGroups []string `json:"age_groups"`
	Regions   []string `json:"regions"`
}

// handleReference describes the loaded reference data.
func (s *Server) handleReference(c echo.Context) error {
	ref := s.engine.Reference()
	ageGroups := make([]string, 0, len(ref.Aliases))
	for alias := range ref.Aliases {
		ageGroups = append(ageGroups, alias)
	}
	sort.Strings(ageGroups)
	resp := referenceResponse{
		Years:     s.engine.Years(),
		Counties:  ref.Counties.Names(),
		AgeGroups: ageGroups,
		Regions:   ref.Regions.Labels(),
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"version": s.version})
}
