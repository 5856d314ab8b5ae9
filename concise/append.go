package concise

import "math/bits"

// pushWord appends a brand new word to the backing array with no merge
// attempt.
func (s *Set) pushWord(word uint32) {
	s.words = append(s.words, word)
	s.lastWordIndex = len(s.words) - 1
}

// appendFill appends length (>=0) uniform 31-bit blocks of the given fill
// type, merging into the previous word when the invariants allow it.
func (s *Set) appendFill(length int, isOne bool) {
	if length <= 0 {
		return
	}
	s.modCount++

	if s.lastWordIndex < 0 {
		s.pushWord(newSequenceWord(isOne, length-1))
		return
	}

	last := s.words[s.lastWordIndex]

	if isSequence(last) && isOneSequence(last) == isOne {
		if isSequenceWithNoBits(last) {
			s.words[s.lastWordIndex] = withSequenceCount(last, sequenceCount(last)+length)
			return
		}
		// A flip is already pinned to the first block of this run; a new
		// run of the same fill type cannot be folded into it.
		s.pushWord(newSequenceWord(isOne, length-1))
		return
	}

	if isSequence(last) {
		// Different fill type: cannot merge.
		s.pushWord(newSequenceWord(isOne, length-1))
		return
	}

	// last is a literal: it may become the first block of the new run.
	fill := fillBlock(isOne)
	payload := literalBits(last)
	if payload == fill {
		s.words[s.lastWordIndex] = newSequenceWord(isOne, length)
		return
	}
	if !s.simulateWAH {
		if diff := payload ^ fill; containsOnlyOneBit(diff) {
			word := newSequenceWord(isOne, length)
			word = withFlippedBit(word, bits.TrailingZeros32(diff))
			s.words[s.lastWordIndex] = word
			return
		}
	}
	s.pushWord(newSequenceWord(isOne, length-1))
}

// appendLiteral appends a single 31-bit literal block. A literal whose
// payload is uniformly all-zero or all-one is redirected through
// appendFill so the zero/one-sequence merge rules apply.
func (s *Set) appendLiteral(word uint32) {
	bitCount := literalBitCount(word)
	switch bitCount {
	case 0:
		s.appendFill(1, false)
		return
	case maxLiteralLength:
		s.appendFill(1, true)
		return
	}
	s.modCount++
	s.pushWord(word)
}

// trimZeros drops trailing words that encode no bits at all, restoring the
// invariant that the last word (if any) is a non-empty literal or a
// one-sequence.
func (s *Set) trimZeros() {
	for s.lastWordIndex >= 0 {
		w := s.words[s.lastWordIndex]
		if isLiteral(w) {
			if literalBitCount(w) != 0 {
				return
			}
		} else if !isZeroSequence(w) {
			return
		} else if !isSequenceWithNoBits(w) {
			// A zero-run with a flipped bit still carries one set bit in its
			// first block; the blocks after it are empty, so keep only that
			// first block, as a literal.
			s.words[s.lastWordIndex] = literalFromSequence(w)
			return
		}
		s.words = s.words[:s.lastWordIndex]
		s.lastWordIndex--
	}
}

// compact drops any excess backing-array capacity left over from growth.
func (s *Set) compact() {
	if s.lastWordIndex+1 == len(s.words) && cap(s.words) == len(s.words) {
		return
	}
	words := make([]uint32, s.lastWordIndex+1)
	copy(words, s.words[:s.lastWordIndex+1])
	s.words = words
}

// updateLast recomputes the index of the highest element from scratch.
func (s *Set) updateLast() {
	if s.lastWordIndex < 0 {
		s.last = -1
		return
	}
	blocks := 0
	for i := 0; i < s.lastWordIndex; i++ {
		w := s.words[i]
		if isLiteral(w) {
			blocks++
		} else {
			blocks += sequenceCount(w) + 1
		}
	}
	blockStart := blocks * maxLiteralLength
	last := s.words[s.lastWordIndex]
	switch {
	case isLiteral(last):
		pos := 31 - bits.LeadingZeros32(literalBits(last))
		s.last = blockStart + pos
	case isOneSequence(last):
		totalBlocks := sequenceCount(last) + 1
		s.last = blockStart + (totalBlocks-1)*maxLiteralLength + (maxLiteralLength - 1)
	default:
		// A zero-sequence can only be a non-empty last word if it carries a
		// flipped bit in its first block; any later blocks in the run are
		// genuinely empty tail, so the highest element lives in block 0.
		s.last = blockStart + flippedBitPosition(last)
	}
}

// appendElement appends a brand-new maximum element i (i > s.last) to the
// set, extending the word array as needed.
func (s *Set) appendElement(i int) {
	if s.lastWordIndex < 0 {
		blocksBefore := i / maxLiteralLength
		bitPos := i % maxLiteralLength
		if blocksBefore > 0 {
			s.appendFill(blocksBefore, false)
		}
		s.appendLiteral(literalBit | (uint32(1) << uint(bitPos)))
		s.last = i
		s.size = -1
		return
	}

	sameBlock := i/maxLiteralLength == s.last/maxLiteralLength
	if sameBlock {
		last := s.words[s.lastWordIndex]
		word := last | (uint32(1) << uint(i%maxLiteralLength))
		if word == allOnesLiteral {
			s.lastWordIndex--
			s.words = s.words[:s.lastWordIndex+1]
			s.appendLiteral(allOnesLiteral)
		} else {
			s.words[s.lastWordIndex] = word
			s.modCount++
		}
		s.last = i
		s.size = -1
		return
	}

	blockDelta := i/maxLiteralLength - s.last/maxLiteralLength
	emptyBlocks := blockDelta - 1
	if emptyBlocks > 0 {
		s.appendFill(emptyBlocks, false)
	}
	s.appendLiteral(literalBit | (uint32(1) << uint(i%maxLiteralLength)))
	s.last = i
	s.size = -1
}
