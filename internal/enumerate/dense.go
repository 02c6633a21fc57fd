package enumerate

import (
	"iter"

	"algebraics/internal/poly"
)

// Dense enumerates integer polynomials level by level for every weight in
// [2, maxLength] by decoding bit patterns rather than recursing. See DenseAt.
func Dense(maxLength int) iter.Seq[poly.Polynomial] {
	return func(yield func(poly.Polynomial) bool) {
		for length := 2; length <= maxLength; length++ {
			for p := range DenseAt(length) {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// DenseAt yields the polynomials of a single weight level.
//
// Each odd bits value below 2^(length-1) is read from bit length-2 down to
// bit 0: a set bit adds one to the magnitude of the current coefficient, a
// clear bit moves on to the next coefficient. Keeping bit 0 set means the
// leading coefficient is never zero. The leading sign is fixed positive and
// the remaining non-zero coefficients take their signs from sign_bits, so p
// and -p are never both produced. Every polynomial yielded has
// Weight() == length.
func DenseAt(length int) iter.Seq[poly.Polynomial] {
	return func(yield func(poly.Polynomial) bool) {
		if length < 2 {
			return
		}
		coeffMags := make([]int, length)

		for bits := 1<<(length-1) - 1; bits >= 0; bits -= 2 {
			coeffMags[0] = 0
			order := 0
			for shift := length - 2; shift >= 0; shift-- {
				if (bits>>shift)&1 == 1 {
					coeffMags[order]++
				} else {
					order++
					coeffMags[order] = 0
				}
			}
			if order <= 0 {
				continue
			}

			nonZero := 0
			for _, m := range coeffMags[:order+1] {
				if m != 0 {
					nonZero++
				}
			}
			if nonZero == 0 {
				continue
			}

			for signBits := 1<<(nonZero-1) - 1; signBits >= 0; signBits-- {
				coeffs := make([]int, order+1)
				signBit := 1
				for c := order; c >= 0; c-- {
					mag := coeffMags[c]
					if mag == 0 || c == order {
						coeffs[c] = mag
						continue
					}
					if signBits&signBit != 0 {
						coeffs[c] = mag
					} else {
						coeffs[c] = -mag
					}
					signBit <<= 1
				}
				if !yield(poly.FromInts(coeffs...)) {
					return
				}
			}
		}
	}
}
