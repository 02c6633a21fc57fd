package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"algebraics/internal/solve"
)

// ErrUnknownFormat is returned by NewWriter.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output encoding.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
	FormatText  Format = "text"
)

// Writer consumes solved root sets. Flush must be called once at the end.
type Writer interface {
	Write(r solve.Result) error
	Flush() error
}

// NewWriter returns a Writer for format that drops roots outside viewport.
func NewWriter(format Format, w io.Writer, viewport Viewport) (Writer, error) {
	if err := viewport.Validate(); err != nil {
		return nil, err
	}
	switch Format(strings.ToLower(string(format))) {
	case FormatJSONL:
		bw := bufio.NewWriter(w)
		return &jsonlWriter{bw: bw, enc: json.NewEncoder(bw), viewport: viewport}, nil
	case FormatCSV:
		return &csvWriter{w: csv.NewWriter(w), viewport: viewport}, nil
	case FormatText:
		return &textWriter{bw: bufio.NewWriter(w), viewport: viewport}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// visible returns the points of r inside the viewport.
func visible(r solve.Result, viewport Viewport) []Point {
	all := Points(r)
	out := all[:0]
	for _, p := range all {
		if viewport.Contains(p.Z) {
			out = append(out, p)
		}
	}
	return out
}

// Record is the JSON shape of one root set.
type Record struct {
	Polynomial   string       `json:"polynomial"`
	Coefficients [][2]float64 `json:"coefficients"`
	Degree       int          `json:"degree"`
	Length       float64      `json:"length"`
	Roots        [][2]float64 `json:"roots"`
}

type jsonlWriter struct {
	bw       *bufio.Writer
	enc      *json.Encoder
	viewport Viewport
}

func (w *jsonlWriter) Write(r solve.Result) error {
	points := visible(r, w.viewport)
	if len(points) == 0 && len(r.Roots.Roots) > 0 {
		return nil
	}
	rec := Record{
		Polynomial: r.Polynomial.String(),
		Degree:     r.Polynomial.Degree(),
		Length:     r.Roots.Length,
		Roots:      make([][2]float64, 0, len(points)),
	}
	for _, c := range r.Polynomial.Coefficients() {
		rec.Coefficients = append(rec.Coefficients, [2]float64{real(c), imag(c)})
	}
	for _, p := range points {
		rec.Roots = append(rec.Roots, [2]float64{real(p.Z), imag(p.Z)})
	}
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode root set: %w", err)
	}
	return nil
}

func (w *jsonlWriter) Flush() error { return w.bw.Flush() }

var csvHeader = []string{"re", "im", "length", "degree", "leading_coeff"}

type csvWriter struct {
	w        *csv.Writer
	viewport Viewport
	started  bool
}

func (w *csvWriter) Write(r solve.Result) error {
	if !w.started {
		w.started = true
		if err := w.w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}
	for _, p := range visible(r, w.viewport) {
		row := []string{
			formatFloat(real(p.Z)),
			formatFloat(imag(p.Z)),
			formatFloat(p.Length),
			strconv.Itoa(p.Degree),
			formatFloat(p.LeadingCoeff),
		}
		if err := w.w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	return nil
}

func (w *csvWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

type textWriter struct {
	bw       *bufio.Writer
	viewport Viewport
}

func (w *textWriter) Write(r solve.Result) error {
	points := visible(r, w.viewport)
	if len(points) == 0 && len(r.Roots.Roots) > 0 {
		return nil
	}
	roots := make([]string, len(points))
	for i, p := range points {
		roots[i] = strconv.FormatComplex(p.Z, 'g', 8, 128)
	}
	_, err := fmt.Fprintf(w.bw, "%s\t%s\n", r.Polynomial, strings.Join(roots, " "))
	return err
}

func (w *textWriter) Flush() error { return w.bw.Flush() }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
