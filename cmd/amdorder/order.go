package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/samcharles93/amdorder/internal/logger"
	"github.com/samcharles93/amdorder/internal/matrixio"
	"github.com/samcharles93/amdorder/pkg/amd"
	"github.com/samcharles93/amdorder/pkg/ordering"
	"github.com/samcharles93/amdorder/pkg/strided"
	"github.com/urfave/cli/v3"
)

func orderCmd() *cli.Command {
	var (
		outFormat        string
		densePermutation bool
		tensor           string
		showInfo         bool
	)

	return &cli.Command{
		Name:      "order",
		Usage:     "Compute a fill-reducing ordering of a matrix file (.json, .csv, .safetensors; - reads JSON from stdin)",
		ArgsUsage: "FILE",
		Flags: append(orderingFlags(),
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (json, text)",
				Value:       "text",
				Destination: &outFormat,
			},
			&cli.BoolFlag{
				Name:        "dense-permutation",
				Usage:       "also print the permutation as a dense 0/1 matrix",
				Destination: &densePermutation,
			},
			&cli.StringFlag{
				Name:        "tensor",
				Usage:       "tensor name inside a .safetensors file",
				Destination: &tensor,
			},
			&cli.BoolFlag{
				Name:        "info",
				Usage:       "include ordering statistics in text output",
				Destination: &showInfo,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			path := cmd.Args().First()
			if path == "" {
				return errors.New("order: FILE is required")
			}

			v, err := loadMatrix(path, tensor, os.Stdin)
			if err != nil {
				return fmt.Errorf("order: load %s: %w", path, err)
			}

			opts := []amd.Option{amd.WithLogger(log)}
			d, a := orderingOverrides(cmd, LoadConfig())
			if d != nil {
				opts = append(opts, amd.WithDense(*d))
			}
			if a != nil {
				opts = append(opts, amd.WithAggressive(*a))
			}

			res, err := amd.Order(v, opts...)
			if err != nil {
				return fmt.Errorf("order: %w", err)
			}
			log.Debug("ordering complete", "n", len(res.Permutation), "nnz", res.NNZ, "status", res.Status.String())
			return writeOrdering(cmd.Root().Writer, outFormat, res, densePermutation, showInfo)
		},
	}
}

func loadMatrix(path, tensor string, stdin io.Reader) (*strided.View, error) {
	if path == "-" {
		return matrixio.ReadJSON(stdin)
	}
	return matrixio.Load(path, tensor)
}

type orderOutput struct {
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

func writeOrdering(w io.Writer, format string, res *amd.Result, densePermutation, showInfo bool) error {
	var matrix [][]int
	if densePermutation {
		matrix = amd.Matrix(res.Permutation)
	}

	switch strings.ToLower(format) {
	case "json":
		out := orderOutput{
			N:           len(res.Permutation),
			NNZ:         res.NNZ,
			Permutation: res.Permutation,
			Matrix:      matrix,
			Info:        res.Info.Stats(),
			Status:      res.Status.String(),
			Backend:     res.Version.String(),
			Dense:       res.Control[ordering.Dense],
			Aggressive:  res.Control[ordering.Aggressive] != 0,
		}
		if out.Permutation == nil {
			out.Permutation = []int{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "text", "":
		if _, err := fmt.Fprintln(w, joinInts(res.Permutation)); err != nil {
			return err
		}
		for _, row := range matrix {
			if _, err := fmt.Fprintln(w, joinInts(row)); err != nil {
				return err
			}
		}
		if showInfo {
			return writeStats(w, res)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or text)", format)
	}
}

func writeStats(w io.Writer, res *amd.Result) error {
	s := res.Info.Stats()
	rows := []struct {
		name  string
		value any
	}{
		{"backend", res.Version.String()},
		{"status", s.Status},
		{"n", s.N},
		{"nz", s.NZ},
		{"symmetry", s.Symmetry},
		{"nz diag", s.NZDiag},
		{"nz A+A'", s.NZAPlusAT},
		{"dense rows", s.NDense},
		{"memory", s.Memory},
		{"nnz(L)", s.LNZ},
		{"divisions", s.NDiv},
		{"LDL mult-subs", s.NMultSubsLDL},
		{"LU mult-subs", s.NMultSubsLU},
		{"max col count", s.DMax},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-14s %v\n", r.name+":", r.value); err != nil {
			return err
		}
	}
	return nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
