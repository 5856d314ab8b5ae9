package concise

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddRemoveContains(t *testing.T) {
	s := New()
	added, err := s.Add(42)
	require.NoError(t, err)
	require.True(t, added)

	added, err = s.Add(42)
	require.NoError(t, err)
	require.False(t, added)

	require.True(t, s.Contains(42))
	require.False(t, s.Contains(43))

	removed, err := s.Remove(42)
	require.NoError(t, err)
	require.True(t, removed)
	require.False(t, s.Contains(42))

	removed, err = s.Remove(42)
	require.NoError(t, err)
	require.False(t, removed)
}

func TestAddRemoveInsideExistingRange(t *testing.T) {
	s := New()
	require.NoError(t, s.Fill(0, 1000))

	removed, err := s.Remove(500)
	require.NoError(t, err)
	require.True(t, removed)
	require.False(t, s.Contains(500))
	require.Equal(t, 1000, s.Size())

	added, err := s.Add(500)
	require.NoError(t, err)
	require.True(t, added)
	require.True(t, s.Contains(500))
	require.Equal(t, 1001, s.Size())
}

func TestOutOfRangeErrors(t *testing.T) {
	s := New()
	_, err := s.Add(-1)
	require.True(t, errors.Is(err, ErrOutOfRange))

	_, err = s.Add(MaxAllowedInteger + 1)
	require.True(t, errors.Is(err, ErrOutOfRange))
}

func TestGetAndIndexOf(t *testing.T) {
	s, err := FromInts([]int{5, 10, 15, 20})
	require.NoError(t, err)

	v, err := s.Get(0)
	require.NoError(t, err)
	require.Equal(t, 5, v)

	v, err = s.Get(3)
	require.NoError(t, err)
	require.Equal(t, 20, v)

	_, err = s.Get(4)
	require.True(t, errors.Is(err, ErrNoSuchElement))

	idx, err := s.IndexOf(15)
	require.NoError(t, err)
	require.Equal(t, 2, idx)

	_, err = s.IndexOf(16)
	require.True(t, errors.Is(err, ErrNoSuchElement))
}

func TestFillAndClear(t *testing.T) {
	s := New()
	require.NoError(t, s.Fill(10, 20))
	require.Equal(t, 11, s.Size())

	require.NoError(t, s.Clear(15, 17))
	require.Equal(t, 8, s.Size())
	for v := 15; v <= 17; v++ {
		require.False(t, s.Contains(v))
	}
	require.True(t, s.Contains(10))
	require.True(t, s.Contains(20))
}

func TestEqualAndClone(t *testing.T) {
	a, err := FromInts([]int{1, 2, 3})
	require.NoError(t, err)
	b := a.Clone()
	require.True(t, a.Equal(b))

	_, err = b.Add(4)
	require.NoError(t, err)
	require.False(t, a.Equal(b))
}

func TestCompareTerminatesWithInteriorZeroRun(t *testing.T) {
	// Same last element and same size, so Compare has to walk both sets in
	// reverse across the zero runs before 5000 and 1000 to find 62 < 63.
	a, err := FromInts([]int{0, 1, 30, 31, 62, 1000, 1001, 5000})
	require.NoError(t, err)
	b, err := FromInts([]int{0, 1, 30, 31, 63, 1000, 1001, 5000})
	require.NoError(t, err)

	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
}

func TestCompareOrdering(t *testing.T) {
	a, _ := FromInts([]int{1, 2, 3})
	b, _ := FromInts([]int{1, 2, 3, 4})
	c, _ := FromInts([]int{1, 2, 3})

	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(c))
}

func TestComplementMasksPastLastElement(t *testing.T) {
	s, err := FromInts([]int{2, 5})
	require.NoError(t, err)

	c := s.Complemented()
	require.Equal(t, []int{0, 1, 3, 4}, c.ToSlice())
	last, err := c.Last()
	require.NoError(t, err)
	require.Equal(t, 4, last)
}

func TestComplementSize(t *testing.T) {
	s, err := FromInts([]int{2, 5})
	require.NoError(t, err)
	require.Equal(t, 4, s.ComplementSize())
	require.Equal(t, s.Complemented().Size(), s.ComplementSize())

	require.Equal(t, 0, New().ComplementSize())
}

func TestFlip(t *testing.T) {
	s := New()
	present, err := s.Flip(7)
	require.NoError(t, err)
	require.True(t, present)
	require.True(t, s.Contains(7))

	present, err = s.Flip(7)
	require.NoError(t, err)
	require.False(t, present)
	require.False(t, s.Contains(7))
}

func TestBulkOperations(t *testing.T) {
	a, err := FromInts([]int{1, 2, 3})
	require.NoError(t, err)
	b, err := FromInts([]int{3, 4, 5})
	require.NoError(t, err)

	union := a.Clone()
	union.AddAll(b)
	require.Equal(t, []int{1, 2, 3, 4, 5}, union.ToSlice())

	diff := a.Clone()
	diff.RemoveAll(b)
	require.Equal(t, []int{1, 2}, diff.ToSlice())

	retained := a.Clone()
	retained.RetainAll(b)
	require.Equal(t, []int{3}, retained.ToSlice())
}

func TestContainsAllAndContainsAny(t *testing.T) {
	s, err := FromInts([]int{1, 2, 3, 4})
	require.NoError(t, err)
	subset, err := FromInts([]int{2, 3})
	require.NoError(t, err)
	disjoint, err := FromInts([]int{10, 11})
	require.NoError(t, err)

	require.True(t, s.ContainsAll(subset))
	require.False(t, subset.ContainsAll(s))
	require.True(t, s.ContainsAny(subset))
	require.False(t, s.ContainsAny(disjoint))
}

func TestHashEqualForEqualSets(t *testing.T) {
	a, err := FromInts([]int{1, 2, 3, 1000})
	require.NoError(t, err)
	b, err := FromInts([]int{1000, 3, 2, 1})
	require.NoError(t, err)

	require.Equal(t, a.Hash(), b.Hash())

	_, err = b.Add(42)
	require.NoError(t, err)
	require.NotEqual(t, a.Hash(), b.Hash())
}

func TestContainsAtLeast(t *testing.T) {
	s, err := FromInts([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	ok, err := s.ContainsAtLeast(5)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.ContainsAtLeast(6)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.ContainsAtLeast(0)
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestSizeIdentities(t *testing.T) {
	a, _ := FromInts([]int{1, 2, 3, 100})
	b, _ := FromInts([]int{2, 3, 4, 200})

	require.Equal(t, a.Union(b).Size(), a.UnionSize(b))
	require.Equal(t, a.Intersection(b).Size(), a.IntersectionSize(b))
	require.Equal(t, a.Difference(b).Size(), a.DifferenceSize(b))
	require.Equal(t, a.SymmetricDifference(b).Size(), a.SymmetricDifferenceSize(b))
}

func TestMarshalRoundTrip(t *testing.T) {
	s, err := FromInts([]int{0, 1, 2, 1000, 100000, 100001})
	require.NoError(t, err)

	data, err := s.MarshalBinary()
	require.NoError(t, err)

	out := New()
	require.NoError(t, out.UnmarshalBinary(data))
	require.True(t, s.Equal(out))
	require.Equal(t, s.ToSlice(), out.ToSlice())
}

func TestFromSortedRejectsUnsortedInput(t *testing.T) {
	_, err := FromSorted([]int{3, 2, 1})
	require.True(t, errors.Is(err, ErrInvalidArgument))
}
