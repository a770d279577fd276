// Package matrixio loads dense matrices from files into strided views.
package matrixio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/samcharles93/amdorder/internal/csc"
	"github.com/samcharles93/amdorder/internal/safetensors"
	"github.com/samcharles93/amdorder/pkg/strided"
)

// Document is the JSON form of a dense matrix. Format is a buffer-protocol
// code selecting the element type of the built buffer; empty means "d".
type Document struct {
	Format string      `json:"format,omitempty"`
	Rows   [][]float64 `json:"rows"`
}

// ReadJSON decodes either a Document or a bare array of rows.
func ReadJSON(r io.Reader) (*strided.View, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var doc Document
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &doc.Rows); err != nil {
			return nil, fmt.Errorf("decode matrix rows: %w", err)
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode matrix document: %w", err)
	}
	return doc.View()
}

// View packs the document rows into a buffer of the requested format.
func (d Document) View() (*strided.View, error) {
	format := strided.Float64
	if d.Format != "" {
		f, _, err := strided.ParseFormat(d.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return FromRows(format, d.Rows)
}

// FromRows stores rows using the Go type that backs format. A value the
// format cannot hold exactly is an error, since storing it would change
// which entries are nonzero.
func FromRows(format strided.Format, rows [][]float64) (*strided.View, error) {
	switch format {
	case strided.Float64:
		return strided.FromRows(rows)
	case strided.Float32:
		return fromRows[float32](format, rows)
	case strided.Int8:
		return fromRows[int8](format, rows)
	case strided.Uint8:
		return fromRows[uint8](format, rows)
	case strided.Int16:
		return fromRows[int16](format, rows)
	case strided.Uint16:
		return fromRows[uint16](format, rows)
	case strided.Int32:
		return fromRows[int32](format, rows)
	case strided.Uint32:
		return fromRows[uint32](format, rows)
	case strided.Int64:
		return fromRows[int64](format, rows)
	case strided.Uint64:
		return fromRows[uint64](format, rows)
	case strided.Long:
		return fromRows[int](format, rows)
	case strided.Ulong:
		return fromRows[uint](format, rows)
	case strided.Bool:
		out := make([][]bool, len(rows))
		for i, row := range rows {
			out[i] = make([]bool, len(row))
			for j, v := range row {
				out[i][j] = v != 0
			}
		}
		return strided.FromRows(out)
	default:
		return nil, fmt.Errorf("%w: cannot build a %s buffer from JSON rows", strided.ErrFormat, format)
	}
}

type number interface {
	float32 | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | int | uint
}

func fromRows[T number](format strided.Format, rows [][]float64) (*strided.View, error) {
	out, err := convert[T](format, rows)
	if err != nil {
		return nil, err
	}
	return strided.FromRows(out)
}

func convert[T number](format strided.Format, rows [][]float64) ([][]T, error) {
	out := make([][]T, len(rows))
	for i, row := range rows {
		out[i] = make([]T, len(row))
		for j, v := range row {
			x := T(v)
			if !representable(x, v) {
				return nil, fmt.Errorf("%w: %v at (%d, %d) is not representable as %s", strided.ErrValue, v, i, j, format)
			}
			out[i][j] = x
		}
	}
	return out, nil
}

// representable reports whether x holds v. Integer formats need the exact
// value; float32 may round but must stay finite and keep v's zero-ness.
func representable[T number](x T, v float64) bool {
	got := float64(x)
	if _, ok := any(x).(float32); ok {
		return !math.IsInf(got, 0) && (got != 0) == (v != 0)
	}
	return got == v
}

// ReadTriplets reads "row,col,value" records into an n x n float64 matrix.
// When n <= 0 the size is one more than the largest index seen. Later
// records overwrite earlier ones for the same position.
func ReadTriplets(r io.Reader, n int) (*strided.View, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	type entry struct {
		i, j int
		v    float64
	}
	var (
		entries []entry
		maxIdx  = -1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read triplets: %w", err)
		}
		line, _ := cr.FieldPos(0)
		i, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: row index: %w", line, err)
		}
		j, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: column index: %w", line, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: value: %w", line, err)
		}
		if i < 0 || j < 0 {
			return nil, fmt.Errorf("line %d: negative index (%d, %d)", line, i, j)
		}
		maxIdx = max(maxIdx, i, j)
		entries = append(entries, entry{i, j, v})
	}

	if n <= 0 {
		if maxIdx >= math.MaxInt32 {
			return nil, fmt.Errorf("%w: index %d exceeds the 32-bit dimension range", strided.ErrShape, maxIdx)
		}
		n = maxIdx + 1
	} else if maxIdx >= n {
		return nil, fmt.Errorf("index %d outside a %dx%d matrix", maxIdx, n, n)
	}
	if n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: dimension %d exceeds the 32-bit index range", strided.ErrShape, n)
	}
	if n > 0 && n > math.MaxInt/8/n {
		return nil, fmt.Errorf("%w: a %dx%d dense matrix overflows the addressable size", strided.ErrShape, n, n)
	}
	data, err := allocDense(n * n)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data[e.i*n+e.j] = e.v
	}
	return strided.FromSlice(data, n, n)
}

func allocDense(n int) (s []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", csc.ErrAllocation, r)
		}
	}()
	return make([]float64, n), nil
}

// Load reads a matrix file, choosing the decoder from the extension:
// .json, .csv/.txt (triplets) or .safetensors. tensor selects the tensor in
// a safetensors file and is ignored otherwise.
func Load(path, tensor string) (*strided.View, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".safetensors" {
		f, err := safetensors.Open(path)
		if err != nil {
			return nil, err
		}
		return f.View(tensor)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	switch ext {
	case ".json":
		return ReadJSON(file)
	case ".csv", ".txt":
		return ReadTriplets(file, 0)
	default:
		return nil, fmt.Errorf("unsupported matrix file extension %q", ext)
	}
}
