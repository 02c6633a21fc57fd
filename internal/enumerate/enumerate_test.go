package enumerate

import (
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algebraics/internal/poly"
)

func collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestCompositions_SevenIntoThree(t *testing.T) {
	got := collect(Compositions(7, 3))
	require.Len(t, got, 15)

	seen := make(map[[3]int]bool)
	for _, c := range got {
		require.Len(t, c, 3)
		sum := 0
		for _, v := range c {
			assert.Positive(t, v)
			sum += v
		}
		assert.Equal(t, 7, sum)
		key := [3]int{c[0], c[1], c[2]}
		assert.False(t, seen[key], "duplicate composition %v", c)
		seen[key] = true
	}

	assert.Equal(t, []int{1, 1, 5}, got[0])
	assert.Equal(t, []int{5, 1, 1}, got[len(got)-1])
}

func TestCompositions_EdgeCases(t *testing.T) {
	tests := []struct {
		name         string
		total, slots int
		want         [][]int
	}{
		{"empty", 0, 0, [][]int{{}}},
		{"nothing to split", 3, 0, nil},
		{"too few units", 2, 3, nil},
		{"single slot", 4, 1, [][]int{{4}}},
		{"all ones", 3, 3, [][]int{{1, 1, 1}}},
		{"negative slots", 1, -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(Compositions(tt.total, tt.slots))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compositions(%d, %d) (-want +got):\n%s", tt.total, tt.slots, diff)
			}
		})
	}
}

func TestCompositions_StopsEarly(t *testing.T) {
	n := 0
	for range Compositions(10, 4) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSigns(t *testing.T) {
	got := collect(Signs([]int{1, 0, 2}))
	want := [][]int{
		{1, 0, 2},
		{1, 0, -2},
		{-1, 0, 2},
		{-1, 0, -2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Signs (-want +got):\n%s", diff)
	}

	assert.Equal(t, [][]int{{0, 0}}, collect(Signs([]int{0, 0})))
	assert.Len(t, collect(Signs([]int{1, 2, 3, 4, 5})), 32)
}

func TestSigns_DoesNotMutateInput(t *testing.T) {
	in := []int{3, 1}
	for s := range Signs(in) {
		s[0] = 100
	}
	assert.Equal(t, []int{3, 1}, in)
}

func TestPolynomials_Invariants(t *testing.T) {
	const maxLength, maxDegree = 6, 5
	count := 0
	for p := range Polynomials(maxLength, maxDegree) {
		count++
		require.GreaterOrEqual(t, p.Degree(), 0)
		assert.NotZero(t, p.Leading(), "leading coefficient of %s", p)
		assert.Less(t, p.Length(), float64(maxLength))
		assert.Less(t, p.Degree(), maxDegree-1)
	}
	assert.Positive(t, count)
}

func TestPolynomials_SmallUniverse(t *testing.T) {
	// length < 3, at most two coefficients.
	got := make(map[string]bool)
	for p := range Polynomials(3, 3) {
		got[p.String()] = true
	}
	want := map[string]bool{
		"1": true, "-1": true, "2": true, "-2": true,
		"x": true, "-x": true,
		"x + 1": true, "x - 1": true, "-x + 1": true, "-x - 1": true,
		"2x": true, "-2x": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Polynomials(3, 3) (-want +got):\n%s", diff)
	}
}

func TestPolynomials_LengthIsExact(t *testing.T) {
	for length := 0; length < 5; length++ {
		for slots := 0; slots < 5; slots++ {
			for c := range Compositions(length+slots, slots) {
				sum := 0
				for _, v := range c {
					sum += v - 1
				}
				assert.Equal(t, length, sum)
			}
		}
	}
	for p := range Polynomials(5, 5) {
		l := p.Length()
		assert.Equal(t, float64(int(l)), l)
	}
}

func TestDense_Level4(t *testing.T) {
	var got []string
	for p := range DenseAt(4) {
		got = append(got, p.String())
	}
	want := []string{"x + 1", "x - 1", "2x", "x^2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DenseAt(4) (-want +got):\n%s", diff)
	}

	assert.Empty(t, collect(DenseAt(2)))
	assert.Equal(t, []string{"x"}, stringsOf(collect(DenseAt(3))))
}

func stringsOf(ps []poly.Polynomial) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func TestDense_Invariants(t *testing.T) {
	const maxLength = 9
	for length := 2; length <= maxLength; length++ {
		for p := range DenseAt(length) {
			require.Positive(t, p.Degree())
			assert.NotZero(t, p.Leading())
			assert.Positive(t, real(p.Leading()), "leading sign of %s", p)
			assert.Equal(t, length, p.Weight(), "weight of %s", p)
		}
	}
}

func TestDense_NoSignDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for p := range Dense(10) {
		key := p.Key()
		assert.False(t, seen[key], "duplicate polynomial up to sign: %s", p)
		seen[key] = true
	}
}

// The dense enumeration at weight L covers every non-constant polynomial
// with length + degree < L. Composition bounds (m, d) reach length m-1 and
// degree d-2, so m+d <= L+2 keeps the composition universe inside it.
func TestDense_CoversCompositions(t *testing.T) {
	const weight, maxLength, maxDegree = 8, 5, 5

	dense := make(map[string]bool)
	for p := range Dense(weight) {
		dense[p.Key()] = true
	}

	nonConstant := 0
	for p := range Polynomials(maxLength, maxDegree) {
		if p.Degree() < 1 {
			continue
		}
		nonConstant++
		assert.True(t, dense[p.Key()], "%s missing from dense enumeration", p)
	}

	require.Zero(t, nonConstant%2, "composition output comes in sign pairs")
	assert.GreaterOrEqual(t, len(dense), nonConstant/2)
}

func TestDense_StopsEarly(t *testing.T) {
	n := 0
	for range Dense(12) {
		n++
		if n == 10 {
			break
		}
	}
	assert.Equal(t, 10, n)
}

func TestStream(t *testing.T) {
	seq, err := Stream(StrategyDense, Bounds{MaxLength: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, Count(seq))

	seq, err = Stream(StrategyComposition, Bounds{MaxLength: 3, MaxDegree: 3})
	require.NoError(t, err)
	assert.Equal(t, 12, Count(seq))

	_, err = Stream("spiral", Bounds{})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Dense ")
	require.NoError(t, err)
	assert.Equal(t, StrategyDense, s)

	_, err = ParseStrategy("bogus")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
