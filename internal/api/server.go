// Package api serves fill-reducing orderings over HTTP.
package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/samcharles93/amdorder/internal/logger"
	"github.com/samcharles93/amdorder/internal/matrixio"
	"github.com/samcharles93/amdorder/internal/version"
	"github.com/samcharles93/amdorder/pkg/amd"
	"github.com/samcharles93/amdorder/pkg/ordering"
)

// DefaultMaxDimension caps the matrix size accepted per request.
const DefaultMaxDimension = 4096

// Config holds server-wide defaults. Zero values select the built-in ones.
type Config struct {
	Logger logger.Logger
	// NewOrderer returns the backend for one request. Defaults to
	// ordering.MinimumDegree.
	NewOrderer   func() ordering.Orderer
	Dense        *float64
	Aggressive   *bool
	MaxDimension int
}

type Server struct {
	store      *OrderingStore
	log        logger.Logger
	newOrderer func() ordering.Orderer
	dense      *float64
	aggressive *bool
	maxDim     int
	clock      func() time.Time
}

func NewServer(store *OrderingStore, cfg Config) *Server {
	if store == nil {
		store = NewOrderingStore()
	}
	s := &Server{
		store:      store,
		log:        cfg.Logger,
		newOrderer: cfg.NewOrderer,
		dense:      cfg.Dense,
		aggressive: cfg.Aggressive,
		maxDim:     cfg.MaxDimension,
		clock:      time.Now,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.newOrderer == nil {
		s.newOrderer = func() ordering.Orderer {
			return &ordering.MinimumDegree{Log: s.log}
		}
	}
	if s.maxDim <= 0 {
		s.maxDim = DefaultMaxDimension
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/orderings", s.handleCreateOrdering)
	e.GET("/v1/orderings/:id", s.handleGetOrdering)
	e.DELETE("/v1/orderings/:id", s.handleDeleteOrdering)
	e.GET("/v1/version", s.handleVersion)
}

func (s *Server) handleCreateOrdering(c *echo.Context) error {
	req, err := decodeJSON[OrderingRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := s.validate(&req); err != nil {
		return writeClassified(c, err)
	}

	v, err := matrixio.Document{Format: req.Format, Rows: req.Matrix}.View()
	if err != nil {
		return writeClassified(c, err)
	}

	opts := []amd.Option{
		amd.WithOrderer(s.newOrderer()),
		amd.WithLogger(s.log),
	}
	if d := firstNonNil(req.Dense, s.dense); d != nil {
		opts = append(opts, amd.WithDense(*d))
	}
	if a := firstNonNil(req.Aggressive, s.aggressive); a != nil {
		opts = append(opts, amd.WithAggressive(*a))
	}

	res, err := amd.Order(v, opts...)
	if err != nil {
		s.log.Warn("ordering failed", "error", err, "n", len(req.Matrix))
		return writeClassified(c, err)
	}

	resp := s.store.Create(res, req.DensePermutation, s.clock())
	s.log.Info("ordering created", "id", resp.ID, "n", resp.N, "nnz", resp.NNZ)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) validate(req *OrderingRequest) error {
	if req.Matrix == nil {
		return newInvalidRequest("matrix", "matrix is required")
	}
	if n := len(req.Matrix); n > s.maxDim {
		return newInvalidRequest("matrix", fmt.Sprintf("matrix has %d rows, limit is %d", n, s.maxDim))
	}
	for i, row := range req.Matrix {
		if len(row) > s.maxDim {
			return newInvalidRequest("matrix", fmt.Sprintf("matrix row %d has %d columns, limit is %d", i, len(row), s.maxDim))
		}
	}
	return nil
}

func (s *Server) handleGetOrdering(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return writeNotFound(c, "ordering not found")
	}
	resp, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "ordering not found")
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteOrdering(c *echo.Context) error {
	id := c.Param("id")
	if id == "" || !s.store.Delete(id) {
		return writeNotFound(c, "ordering not found")
	}
	return c.JSON(http.StatusOK, DeleteOrderingResp{
		ID:      id,
		Object:  "ordering",
		Deleted: true,
	})
}

func (s *Server) handleVersion(c *echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{
		Info:    version.Resolve(),
		Backend: s.newOrderer().Version().String(),
	})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "")
}

func writeClassified(c *echo.Context, err error) error {
	status, errType := classify(err)
	var param string
	if ir, ok := err.(invalidRequestError); ok {
		param = ir.param
	}
	return writeError(c, status, errType, err.Error(), param)
}

func writeError(c *echo.Context, status int, errType, msg, param string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Param:   param,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func firstNonNil[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
