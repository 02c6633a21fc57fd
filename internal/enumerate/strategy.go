// Package enumerate produces lazy, finite streams of integer-coefficient
// polynomials bounded by length and degree.
//
// Two strategies cover the same universe. The composition strategy recurses
// over ordered compositions and emits both p and -p. The dense strategy
// decodes bit patterns, emits one polynomial per sign class and measures
// size by weight (length + degree + 1).
//
// Streams are iter.Seq values; each range over one starts from the beginning.
package enumerate

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"algebraics/internal/poly"
)

// ErrUnknownStrategy is returned by ParseStrategy.
var ErrUnknownStrategy = errors.New("unknown enumeration strategy")

// Strategy selects an enumerator.
type Strategy string

const (
	StrategyComposition Strategy = "composition"
	StrategyDense       Strategy = "dense"
)

// ParseStrategy accepts a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyComposition:
		return StrategyComposition, nil
	case StrategyDense:
		return StrategyDense, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Bounds limit an enumeration. MaxDegree is ignored by the dense strategy,
// whose weight bound already limits the degree.
type Bounds struct {
	MaxLength int `yaml:"max_length"`
	MaxDegree int `yaml:"max_degree"`
}

// Stream returns the polynomials of the given strategy within bounds.
func Stream(strategy Strategy, bounds Bounds) (iter.Seq[poly.Polynomial], error) {
	switch strategy {
	case StrategyComposition:
		return Polynomials(bounds.MaxLength, bounds.MaxDegree), nil
	case StrategyDense:
		return Dense(bounds.MaxLength), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
}

// Count drains seq and returns the number of polynomials it produced.
func Count(seq iter.Seq[poly.Polynomial]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
