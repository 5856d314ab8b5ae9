package concise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendElementSingleBlock(t *testing.T) {
	s := New()
	_, err := s.Add(0)
	require.NoError(t, err)
	_, err = s.Add(5)
	require.NoError(t, err)
	_, err = s.Add(30)
	require.NoError(t, err)

	require.Equal(t, 1, len(s.words))
	require.True(t, isLiteral(s.words[0]))
	require.Equal(t, 3, s.Size())
	require.True(t, s.Contains(0))
	require.True(t, s.Contains(5))
	require.True(t, s.Contains(30))
	require.False(t, s.Contains(1))
}

func TestAppendElementCrossesBlocks(t *testing.T) {
	s := New()
	for _, v := range []int{0, 31, 62, 93} {
		_, err := s.Add(v)
		require.NoError(t, err)
	}
	require.Equal(t, 4, s.Size())
	for _, v := range []int{0, 31, 62, 93} {
		require.True(t, s.Contains(v))
	}
	last, err := s.Last()
	require.NoError(t, err)
	require.Equal(t, 93, last)
}

func TestAppendFillMergesIntoSequence(t *testing.T) {
	s := New()
	require.NoError(t, s.Fill(0, 1000))
	require.Equal(t, 1001, s.Size())
	// A contiguous run compresses to very few words.
	require.Less(t, len(s.words), 10)
}

func TestAppendLiteralAllOnesPromotesToSequence(t *testing.T) {
	s := New()
	require.NoError(t, s.Fill(0, 30)) // exactly one full block of ones
	require.Equal(t, 31, s.Size())
	require.True(t, isSequence(s.words[s.lastWordIndex]))
	require.True(t, isOneSequence(s.words[s.lastWordIndex]))
}

func TestTrimZerosDropsTrailingEmptyWords(t *testing.T) {
	s := New()
	s.appendFill(3, false)
	s.trimZeros()
	require.Equal(t, -1, s.lastWordIndex)
}

func TestFlipBitCreatedOnPromotion(t *testing.T) {
	s := New()
	_, err := s.Add(0)
	require.NoError(t, err)
	_, err = s.Add(10000) // huge gap: the single-bit literal becomes a flipped zero-run
	require.NoError(t, err)

	require.Equal(t, 2, len(s.words))
	require.True(t, isZeroSequence(s.words[0]))
	require.Equal(t, 0, flippedBitPosition(s.words[0]))
}

func TestAppendElementMergesAllOnesLiteralIntoSequence(t *testing.T) {
	s := New()
	for v := 0; v <= 61; v++ {
		_, err := s.Add(v)
		require.NoError(t, err)
	}

	require.Equal(t, 1, len(s.words))
	require.True(t, isOneSequence(s.words[0]))
	require.Equal(t, 1, sequenceCount(s.words[0]))

	filled := New()
	require.NoError(t, filled.Fill(0, 61))
	require.True(t, s.Equal(filled))
	require.Equal(t, s.Hash(), filled.Hash())
}

func TestUpdateLastHandlesFlippedZeroSequenceTail(t *testing.T) {
	s := New()
	_, err := s.Add(5)
	require.NoError(t, err)

	// Manually extend the trailing literal into a multi-block flipped
	// zero-run: block 0 keeps bit 5 set, blocks 1-3 are genuinely empty.
	// The highest element must still resolve to 5, not to the end of the
	// (mostly empty) run. trimZeros folds the run back into its first block.
	s.appendFill(3, false)
	require.True(t, isZeroSequence(s.words[s.lastWordIndex]))
	require.Equal(t, 5, flippedBitPosition(s.words[s.lastWordIndex]))

	s.trimZeros()
	s.updateLast()

	require.Equal(t, 5, s.last)
	last, err := s.Last()
	require.NoError(t, err)
	require.Equal(t, 5, last)
	require.True(t, s.Contains(5))
	require.False(t, s.Contains(6))
}

func TestWAHModeDisablesFlipCreation(t *testing.T) {
	s := New(WithWAHMode(true))
	_, err := s.Add(0)
	require.NoError(t, err)
	_, err = s.Add(10000)
	require.NoError(t, err)

	for _, w := range s.words {
		require.Equal(t, -1, flippedBitPosition(w))
	}
	require.Equal(t, 3, len(s.words))
}
