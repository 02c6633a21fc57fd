package enumerate

import (
	"iter"

	"algebraics/internal/poly"
)

// Compositions yields every ordered sequence of slots positive integers
// summing to total, in lexicographic order. Each yielded slice belongs to the
// consumer. (0, 0) yields a single empty composition; totals that cannot be
// split into the given number of positive parts yield nothing.
func Compositions(total, slots int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if slots < 0 || total < slots || (slots == 0 && total != 0) {
			return
		}
		current := make([]int, 0, slots)
		compose(total, slots, current, yield)
	}
}

// compose extends current one slot at a time, backtracking after each
// choice. It returns false once the consumer stops.
func compose(remaining, slots int, current []int, yield func([]int) bool) bool {
	if len(current) == slots {
		if remaining != 0 {
			return true
		}
		out := make([]int, len(current))
		copy(out, current)
		return yield(out)
	}
	// Every slot still to fill needs at least 1.
	left := slots - len(current) - 1
	for i := 1; i <= remaining-left; i++ {
		if !compose(remaining-i, slots, append(current, i), yield) {
			return false
		}
	}
	return true
}

// Signs yields every sign assignment of values: non-zero entries offer +v
// then -v, zero entries stay as they are. The first entry varies slowest.
// Assignments are produced one at a time, never collected.
func Signs(values []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		// Positions that have a sign choice, and which choice each is on.
		var free []int
		for i, v := range values {
			if v != 0 {
				free = append(free, i)
			}
		}
		negated := make([]bool, len(free))

		for {
			out := make([]int, len(values))
			copy(out, values)
			for k, i := range free {
				if negated[k] {
					out[i] = -out[i]
				}
			}
			if !yield(out) {
				return
			}

			// Advance the odometer, last position fastest.
			k := len(free) - 1
			for ; k >= 0; k-- {
				if !negated[k] {
					negated[k] = true
					break
				}
				negated[k] = false
			}
			if k < 0 {
				return
			}
		}
	}
}

// Polynomials enumerates integer polynomials by length and coefficient
// count: for every length in [0, maxLength) and slot count in
// [0, maxDegree), the compositions of length+slots into slots are shifted
// down by one so slots may be zero, and each sign assignment of the
// result becomes a polynomial. Vectors whose last entry is zero would not
// reach that degree and are skipped. Both bounds are exclusive, and every
// polynomial yielded has Length() equal to its length.
func Polynomials(maxLength, maxDegree int) iter.Seq[poly.Polynomial] {
	return func(yield func(poly.Polynomial) bool) {
		for length := 0; length < maxLength; length++ {
			for slots := 0; slots < maxDegree; slots++ {
				for composition := range Compositions(length+slots, slots) {
					for i := range composition {
						composition[i]--
					}
					if len(composition) == 0 || composition[len(composition)-1] == 0 {
						continue
					}
					for signed := range Signs(composition) {
						if !yield(poly.FromInts(signed...)) {
							return
						}
					}
				}
			}
		}
	}
}
