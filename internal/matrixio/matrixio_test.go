package matrixio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samcharles93/amdorder/internal/csc"
	"github.com/samcharles93/amdorder/pkg/strided"
)

func TestReadJSONBareRows(t *testing.T) {
	t.Parallel()
	v, err := ReadJSON(strings.NewReader(" [[1, 0], [0, 2]]\n"))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if v.Format != strided.Float64 || v.Rows() != 2 || v.Cols() != 2 {
		t.Fatalf("unexpected view %+v", v)
	}
	if got, _ := v.At(1, 1); got != 2 {
		t.Fatalf("At(1,1) = %v", got)
	}
}

func TestReadJSONDocumentFormats(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code string
		want strided.Format
	}{
		{"d", strided.Float64},
		{"f", strided.Float32},
		{"b", strided.Int8},
		{"B", strided.Uint8},
		{"h", strided.Int16},
		{"H", strided.Uint16},
		{"i", strided.Int32},
		{"I", strided.Uint32},
		{"l", strided.Long},
		{"L", strided.Ulong},
		{"q", strided.Int64},
		{"Q", strided.Uint64},
		{"?", strided.Bool},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			doc := `{"format":"` + tt.code + `","rows":[[0,1],[1,0]]}`
			v, err := ReadJSON(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if v.Format != tt.want {
				t.Fatalf("format = %s, want %s", v.Format, tt.want)
			}
			if err := v.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if got, _ := v.At(0, 1); got != 1 {
				t.Fatalf("At(0,1) = %v", got)
			}
			if got, _ := v.At(1, 1); got != 0 {
				t.Fatalf("At(1,1) = %v", got)
			}
		})
	}
}

func TestReadJSONErrors(t *testing.T) {
	t.Parallel()
	if _, err := ReadJSON(strings.NewReader(`{"format":"Zd","rows":[[1]]}`)); !errors.Is(err, strided.ErrFormat) {
		t.Fatalf("complex format: expected ErrFormat, got %v", err)
	}
	if _, err := ReadJSON(strings.NewReader(`{"format":"e","rows":[[1]]}`)); !errors.Is(err, strided.ErrFormat) {
		t.Fatalf("half format: expected ErrFormat, got %v", err)
	}
	if _, err := ReadJSON(strings.NewReader(`[[1,2],[3]]`)); !errors.Is(err, strided.ErrShape) {
		t.Fatalf("ragged rows: expected ErrShape, got %v", err)
	}
	if _, err := ReadJSON(strings.NewReader(`{"rows":`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestReadJSONRejectsUnrepresentableValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
	}{
		{"fraction as int32", `{"format":"i","rows":[[0.5,0],[0,1]]}`},
		{"negative fraction as int8", `{"format":"b","rows":[[-0.25,0],[0,1]]}`},
		{"256 as uint8", `{"format":"B","rows":[[256,0],[0,1]]}`},
		{"negative as uint16", `{"format":"H","rows":[[-1,0],[0,1]]}`},
		{"underflow as float32", `{"format":"f","rows":[[1e-300,0],[0,1]]}`},
		{"overflow as float32", `{"format":"f","rows":[[1e300,0],[0,1]]}`},
	}
	for _, tt := range tests {
		_, err := ReadJSON(strings.NewReader(tt.doc))
		if !errors.Is(err, strided.ErrValue) {
			t.Fatalf("%s: expected ErrValue, got %v", tt.name, err)
		}
		if !strings.Contains(err.Error(), "(0, 0)") {
			t.Fatalf("%s: error should name the position: %v", tt.name, err)
		}
	}

	v, err := ReadJSON(strings.NewReader(`{"format":"f","rows":[[0.1,0],[0,-3]]}`))
	if err != nil {
		t.Fatalf("rounded float32: %v", err)
	}
	if got, _ := v.At(1, 1); got != -3 {
		t.Fatalf("At(1,1) = %v", got)
	}
}

func TestReadTriplets(t *testing.T) {
	t.Parallel()
	input := "# row,col,value\n0,1,2.5\n1, 0, -1\n2,2,4\n0,1,3\n"
	v, err := ReadTriplets(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("ReadTriplets: %v", err)
	}
	if v.Rows() != 3 || v.Cols() != 3 {
		t.Fatalf("shape = %v", v.Shape)
	}
	checks := []struct {
		i, j int
		want float64
	}{
		{0, 1, 3},
		{1, 0, -1},
		{2, 2, 4},
		{0, 0, 0},
	}
	for _, c := range checks {
		if got, _ := v.At(c.i, c.j); got != c.want {
			t.Fatalf("At(%d,%d) = %v, want %v", c.i, c.j, got, c.want)
		}
	}
}

func TestReadTripletsFixedSize(t *testing.T) {
	t.Parallel()
	v, err := ReadTriplets(strings.NewReader("0,0,1\n"), 4)
	if err != nil {
		t.Fatalf("ReadTriplets: %v", err)
	}
	if v.Rows() != 4 {
		t.Fatalf("rows = %d, want 4", v.Rows())
	}
	if _, err := ReadTriplets(strings.NewReader("5,0,1\n"), 4); err == nil {
		t.Fatal("expected error for index outside the matrix")
	}
}

func TestReadTripletsErrors(t *testing.T) {
	t.Parallel()
	bad := []string{
		"0,1\n",
		"a,1,2\n",
		"0,b,2\n",
		"0,1,x\n",
		"-1,0,1\n",
		"0,4000000000,1\n",
		"9223372036854775807,0,1\n",
	}
	for _, in := range bad {
		if _, err := ReadTriplets(strings.NewReader(in), 0); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestReadTripletsDimensionLimit(t *testing.T) {
	t.Parallel()
	if _, err := ReadTriplets(strings.NewReader("0,4000000000,1\n"), 0); !errors.Is(err, strided.ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	if _, err := ReadTriplets(strings.NewReader("0,0,1\n"), 1<<31); !errors.Is(err, strided.ErrShape) {
		t.Fatalf("expected ErrShape for fixed size, got %v", err)
	}
	if _, err := ReadTriplets(strings.NewReader("0,100000000,1\n"), 0); !errors.Is(err, csc.ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
}

func TestReadTripletsEmpty(t *testing.T) {
	t.Parallel()
	v, err := ReadTriplets(strings.NewReader(""), 0)
	if err != nil {
		t.Fatalf("ReadTriplets: %v", err)
	}
	if v.Rows() != 0 || v.Cols() != 0 {
		t.Fatalf("expected empty matrix, got %v", v.Shape)
	}
}

func TestLoadByExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "m.json")
	if err := os.WriteFile(jsonPath, []byte(`[[0,1],[1,0]]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err := Load(jsonPath, "")
	if err != nil {
		t.Fatalf("Load json: %v", err)
	}
	if v.Rows() != 2 {
		t.Fatalf("json rows = %d", v.Rows())
	}

	csvPath := filepath.Join(dir, "m.CSV")
	if err := os.WriteFile(csvPath, []byte("2,2,1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err = Load(csvPath, "")
	if err != nil {
		t.Fatalf("Load csv: %v", err)
	}
	if v.Rows() != 3 {
		t.Fatalf("csv rows = %d", v.Rows())
	}

	if _, err := Load(filepath.Join(dir, "m.bin"), ""); err == nil {
		t.Fatal("expected error for unknown extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
