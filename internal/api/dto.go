package api

import (
	"github.com/samcharles93/amdorder/internal/version"
	"github.com/samcharles93/amdorder/pkg/ordering"
)

// OrderingRequest is the body of POST /v1/orderings. Matrix holds the dense
// rows; Format selects the element encoding they are packed into ("d" when
// empty). Dense and Aggressive override the server defaults when present.
type OrderingRequest struct {
	Matrix           [][]float64 `json:"matrix"`
	Format           string      `json:"format,omitempty"`
	Dense            *float64    `json:"dense,omitempty"`
	Aggressive       *bool       `json:"aggressive,omitempty"`
	DensePermutation bool        `json:"dense_permutation,omitempty"`
}

type OrderingResponse struct {
	ID          string         `json:"id"`
	Object      string         `json:"object"`
	CreatedAt   int64          `json:"created_at"`
	N           int            `json:"n"`
	NNZ         int            `json:"nnz"`
	Permutation []int          `json:"permutation"`
	Matrix      [][]int        `json:"matrix,omitempty"`
	Info        ordering.Stats `json:"info"`
	Status      string         `json:"status"`
	Backend     string         `json:"backend_version"`
	Dense       float64        `json:"dense"`
	Aggressive  bool           `json:"aggressive"`
}

type DeleteOrderingResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type VersionResponse struct {
	version.Info
	Backend string `json:"backend_version"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
