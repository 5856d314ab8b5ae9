package concise

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForwardIteratorOrder(t *testing.T) {
	values := []int{0, 1, 30, 31, 62, 1000, 5000}
	s, err := FromInts(values)
	require.NoError(t, err)

	it := s.Iterator()
	var got []int
	for {
		v, err := it.Next()
		if err != nil {
			require.True(t, errors.Is(err, ErrNoSuchElement))
			break
		}
		got = append(got, v)
	}
	require.Equal(t, values, got)
}

func TestReverseIteratorOrder(t *testing.T) {
	values := []int{0, 1, 30, 31, 62, 1000, 5000}
	s, err := FromInts(values)
	require.NoError(t, err)

	it := s.ReverseIterator()
	var got []int
	for {
		v, err := it.Next()
		if err != nil {
			break
		}
		got = append(got, v)
	}
	reversed := make([]int, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}
	require.Equal(t, reversed, got)
}

func TestForwardIteratorSkipAllBefore(t *testing.T) {
	s, err := FromInts([]int{1, 2, 100, 5000, 5001, 100000})
	require.NoError(t, err)

	it := s.Iterator()
	require.NoError(t, it.SkipAllBefore(101))
	v, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, 5000, v)
}

func TestReverseIteratorSkipAllBefore(t *testing.T) {
	s, err := FromInts([]int{1, 2, 100, 5000, 5001, 100000})
	require.NoError(t, err)

	it := s.ReverseIterator()
	require.NoError(t, it.SkipAllBefore(5001))
	v, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, 5001, v)
}

func TestIteratorFailsFastOnMutation(t *testing.T) {
	s, err := FromInts([]int{1, 2, 3})
	require.NoError(t, err)

	it := s.Iterator()
	_, err = it.Next()
	require.NoError(t, err)

	_, err = s.Add(1000)
	require.NoError(t, err)

	_, err = it.Next()
	require.True(t, errors.Is(err, ErrConcurrentModification))
}

func TestIteratorOverRuns(t *testing.T) {
	s := New()
	require.NoError(t, s.Fill(100, 200))

	it := s.Iterator()
	count := 0
	for {
		_, err := it.Next()
		if err != nil {
			break
		}
		count++
	}
	require.Equal(t, 101, count)
}
