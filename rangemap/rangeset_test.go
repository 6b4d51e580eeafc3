package rangemap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func trueRanges(s *Set) [][2]rune {
	var out [][2]rune
	s.TrueRanges(func(start, end rune) bool {
		out = append(out, [2]rune{start, end})
		return true
	})
	return out
}

func TestSet_AddAndContains(t *testing.T) {
	s := NewSet(newRNG(1))
	s.AddRange('a', 'f')
	s.AddChar('x')

	require.True(t, s.Contains('a'))
	require.True(t, s.Contains('c'))
	require.True(t, s.Contains('x'))
	require.False(t, s.Contains('g'))
	require.False(t, s.Contains('w'))

	require.Equal(t, [][2]rune{{'a', 'f'}, {'x', 'x'}}, trueRanges(s))
}

func TestSet_AdjacentRangesCoalesce(t *testing.T) {
	s := NewSet(newRNG(2))
	s.AddRange('a', 'm')
	s.AddRange('n', 'z')
	require.Equal(t, [][2]rune{{'a', 'z'}}, trueRanges(s))

	// Overlapping adds are idempotent.
	s.AddRange('c', 'q')
	require.Equal(t, [][2]rune{{'a', 'z'}}, trueRanges(s))
}

func TestSet_Complement(t *testing.T) {
	s := NewSet(newRNG(3))
	s.AddRange('b', 'y')
	s.Complement()

	require.False(t, s.Contains('m'))
	require.True(t, s.Contains('a'))
	require.True(t, s.Contains('z'))
	require.True(t, s.Contains(MinRune))
	require.True(t, s.Contains(MaxRune))
	require.Equal(t, [][2]rune{{MinRune, 'a'}, {'z', MaxRune}}, trueRanges(s))
	checkInvariants(t, s.m)
}

func TestSet_ComplementIsInvolution(t *testing.T) {
	s := NewSet(newRNG(4))
	s.AddRange('0', '9')
	s.AddRange('a', 'f')
	s.AddChar(0x3000)
	want := trueRanges(s)

	s.Complement()
	s.Complement()
	require.Equal(t, want, trueRanges(s))
	checkInvariants(t, s.m)
}

func TestSet_ComplementOfEmptyAndAll(t *testing.T) {
	s := NewSet(newRNG(5))
	require.Empty(t, trueRanges(s))
	s.Complement()
	require.Equal(t, [][2]rune{{MinRune, MaxRune}}, trueRanges(s))

	all := All(newRNG(5))
	require.Equal(t, [][2]rune{{MinRune, MaxRune}}, trueRanges(all))
	all.Complement()
	require.Empty(t, trueRanges(all))
}

func TestSet_FullRangeBounds(t *testing.T) {
	// Adding up to the outermost scalars must not probe beyond them.
	s := NewSet(newRNG(6))
	s.AddRange(MinRune, 'a')
	s.AddRange(0x10FFFE, MaxRune)

	require.True(t, s.Contains(MinRune))
	require.True(t, s.Contains(MaxRune))
	require.False(t, s.Contains('b'))
	checkInvariants(t, s.m)
}
