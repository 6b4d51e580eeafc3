package rangemap

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// checkInvariants asserts totality, contiguity and coalescing: the intervals
// cover the whole alphabet exactly, in order, and no two neighbours carry
// equal values.
func checkInvariants(t *testing.T, m *Map) {
	t.Helper()

	prevEnd := MinRune - 1
	var prevValue StateSet
	first := true
	m.Ranges(func(iv *Interval) bool {
		require.Equal(t, prevEnd+1, iv.Start, "gap or overlap before %v", iv)
		require.LessOrEqual(t, iv.Start, iv.End, "inverted interval %v", iv)
		if !first {
			require.False(t, prevValue.Equal(iv.Value), "uncoalesced neighbours at %v", iv)
		}
		first = false
		prevEnd = iv.End
		prevValue = iv.Value
		return true
	})
	require.Equal(t, MaxRune, prevEnd, "intervals do not reach the end of the alphabet")
}

func TestMap_Initial(t *testing.T) {
	m := NewMap(newRNG(1))
	checkInvariants(t, m)

	require.Equal(t, 1, m.Len())
	require.True(t, m.Get(MinRune).IsEmpty())
	require.True(t, m.Get('x').IsEmpty())
	require.True(t, m.Get(MaxRune).IsEmpty())
}

func TestMap_AddRangeSplitsEncloser(t *testing.T) {
	m := NewMap(newRNG(2))
	v := NewStateSet(7)
	m.AddRange('b', 'y', v)
	checkInvariants(t, m)

	require.Equal(t, 3, m.Len())
	require.True(t, m.Get('a').IsEmpty())
	require.True(t, m.Get('b').Contains(7))
	require.True(t, m.Get('y').Contains(7))
	require.True(t, m.Get('z').IsEmpty())
}

func TestMap_AddRangeStraddlers(t *testing.T) {
	m := NewMap(newRNG(3))
	m.AddRange('d', 'm', NewStateSet(1))
	m.AddRange('h', 't', NewStateSet(2))
	checkInvariants(t, m)

	require.True(t, m.Get('e').Contains(1))
	require.False(t, m.Get('e').Contains(2))
	require.True(t, m.Get('h').Contains(1))
	require.True(t, m.Get('h').Contains(2))
	require.True(t, m.Get('m').Contains(2))
	require.False(t, m.Get('n').Contains(1))
	require.True(t, m.Get('t').Contains(2))
	require.True(t, m.Get('u').IsEmpty())
}

func TestMap_AddRangeAtBounds(t *testing.T) {
	m := NewMap(newRNG(4))
	m.AddRange(MinRune, 'a', NewStateSet(1))
	checkInvariants(t, m)
	m.AddRange('z', MaxRune, NewStateSet(2))
	checkInvariants(t, m)
	m.AddRange(MinRune, MaxRune, NewStateSet(3))
	checkInvariants(t, m)

	require.True(t, m.Get(MinRune).Contains(1))
	require.True(t, m.Get(MinRune).Contains(3))
	require.True(t, m.Get(MaxRune).Contains(2))
	require.True(t, m.Get(MaxRune).Contains(3))
	require.True(t, m.Get('m').Contains(3))
	require.False(t, m.Get('m').Contains(1))
}

func TestMap_SinglePointRange(t *testing.T) {
	m := NewMap(newRNG(5))
	m.AddRange('x', 'x', NewStateSet(9))
	checkInvariants(t, m)

	require.Equal(t, 3, m.Len())
	require.True(t, m.Get('x').Contains(9))
	require.True(t, m.Get('w').IsEmpty())
	require.True(t, m.Get('y').IsEmpty())

	// A point at either edge of the alphabet splits just once.
	m2 := NewMap(newRNG(5))
	m2.AddRange(MinRune, MinRune, NewStateSet(1))
	checkInvariants(t, m2)
	require.Equal(t, 2, m2.Len())

	m3 := NewMap(newRNG(5))
	m3.AddRange(MaxRune, MaxRune, NewStateSet(1))
	checkInvariants(t, m3)
	require.Equal(t, 2, m3.Len())
}

func TestMap_CoalesceEqualNeighbours(t *testing.T) {
	m := NewMap(newRNG(6))
	m.AddRange('a', 'f', NewStateSet(1))
	m.AddRange('g', 'm', NewStateSet(1))
	checkInvariants(t, m)

	// [a,f] and [g,m] carry the same value and must have merged.
	require.Equal(t, 3, m.Len())

	// Overwriting the middle with the outer value merges everything back.
	m.AddRange('c', 'k', NewStateSet(1))
	checkInvariants(t, m)
	require.Equal(t, 3, m.Len())
}

func TestMap_GetCoverage(t *testing.T) {
	m := NewMap(newRNG(7))
	m.AddRange(0x100, 0x1F0, NewStateSet(3))
	for c := rune(0x100); c <= 0x1F0; c++ {
		require.True(t, m.Get(c).Contains(3), "missing value at %#x", c)
	}
	require.False(t, m.Get(0xFF).Contains(3))
	require.False(t, m.Get(0x1F1).Contains(3))
}

func TestMap_QueryOverlap(t *testing.T) {
	m := NewMap(newRNG(8))
	m.AddRange('d', 'f', NewStateSet(1))
	m.AddRange('j', 'l', NewStateSet(2))
	// Intervals now: [min,c] [d,f] [g,i] [j,l] [m,max]

	left, middle, right := m.QueryOverlap('e', 'k')
	require.NotNil(t, left)
	require.Equal(t, rune('d'), left.Start)
	require.NotNil(t, right)
	require.Equal(t, rune('l'), right.End)
	require.Len(t, middle, 1)
	require.Equal(t, rune('g'), middle[0].Start)

	// A range lining up with interval bounds has no straddlers.
	left, middle, right = m.QueryOverlap('d', 'i')
	require.Nil(t, left)
	require.Nil(t, right)
	require.Len(t, middle, 2)

	// A range strictly inside one interval returns it on both sides.
	left, middle, right = m.QueryOverlap('h', 'h')
	require.NotNil(t, left)
	require.Same(t, left, right)
	require.Empty(t, middle)
}

// rangeOp is one AddRange call for the permutation test.
type rangeOp struct {
	start, end rune
	value      uint32
}

func TestMap_PermutationInvariance(t *testing.T) {
	ops := []rangeOp{
		{'a', 'z', 1},
		{'m', 0x2000, 2},
		{MinRune, 'c', 3},
		{'x', 'x', 4},
		{0x1F00, MaxRune, 5},
		{'b', 'n', 2},
	}

	snapshot := func(m *Map) []Interval {
		var out []Interval
		m.Ranges(func(iv *Interval) bool {
			out = append(out, Interval{Start: iv.Start, End: iv.End, Value: iv.Value.Clone()})
			return true
		})
		return out
	}

	base := NewMap(newRNG(100))
	for _, op := range ops {
		base.AddRange(op.start, op.end, NewStateSet(op.value))
	}
	checkInvariants(t, base)
	want := snapshot(base)

	for seed := uint64(0); seed < 8; seed++ {
		perm := rand.New(rand.NewPCG(seed, 42)).Perm(len(ops))
		m := NewMap(newRNG(seed))
		for _, i := range perm {
			op := ops[i]
			m.AddRange(op.start, op.end, NewStateSet(op.value))
		}
		checkInvariants(t, m)

		got := snapshot(m)
		require.Equal(t, len(want), len(got), "interval count differs for permutation %v", perm)
		for i := range want {
			require.Equal(t, want[i].Start, got[i].Start, "permutation %v", perm)
			require.Equal(t, want[i].End, got[i].End, "permutation %v", perm)
			require.True(t, want[i].Value.Equal(got[i].Value), "permutation %v", perm)
		}
	}
}

func TestStateSet_Basics(t *testing.T) {
	s := NewStateSet(3, 1, 2, 1)
	require.Equal(t, 3, s.Len())
	require.Equal(t, []uint32{1, 2, 3}, s.IDs())
	require.True(t, s.Contains(2))
	require.False(t, s.Contains(4))

	u := s.Union(NewStateSet(4, 2))
	require.Equal(t, []uint32{1, 2, 3, 4}, u.IDs())
	require.Equal(t, 3, s.Len(), "Union mutated the receiver")

	require.True(t, s.Equal(NewStateSet(1, 2, 3)))
	require.False(t, s.Equal(u))
	require.True(t, StateSet{}.IsEmpty())
	require.Equal(t, "{1,2,3}", s.String())
}

func TestStateSet_KeyAgreesWithEqual(t *testing.T) {
	a := NewStateSet(10, 20, 30)
	b := NewStateSet(30, 10, 20)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), NewStateSet(10, 20).Key())
}
