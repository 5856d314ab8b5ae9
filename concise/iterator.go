package concise

import "math/bits"

func nextSetBitFrom(lit uint32, from int) int {
	if from >= maxLiteralLength {
		return -1
	}
	payload := literalBits(lit) &^ (uint32(1)<<uint(from) - 1)
	if payload == 0 {
		return -1
	}
	return bits.TrailingZeros32(payload)
}

func prevSetBitFrom(lit uint32, from int) int {
	if from < 0 {
		return -1
	}
	mask := uint32(1)<<uint(from+1) - 1
	payload := literalBits(lit) & mask
	if payload == 0 {
		return -1
	}
	return 31 - bits.LeadingZeros32(payload)
}

// BitIterator walks the elements of a Set in increasing order. It is
// invalidated (returning an error from every method) by any mutation of
// the underlying Set made after the iterator was created.
type BitIterator struct {
	set      *Set
	modCount uint64
	cursor   *wordCursor
	base     int
	nextBit  int
}

// Iterator returns a forward BitIterator over s's elements.
func (s *Set) Iterator() *BitIterator {
	return &BitIterator{set: s, modCount: s.modCount, cursor: newWordCursor(s.words)}
}

func (it *BitIterator) checkModCount() error {
	if it.modCount != it.set.modCount {
		return concurrentModificationError()
	}
	return nil
}

func (it *BitIterator) advanceBlock() {
	it.cursor.advanceBlocks(1)
	it.base += maxLiteralLength
	it.nextBit = 0
}

// HasNext reports whether Next would return another element.
func (it *BitIterator) HasNext() (bool, error) {
	if err := it.checkModCount(); err != nil {
		return false, err
	}
	for !it.cursor.done() {
		if it.cursor.atLiteral() {
			if nextSetBitFrom(it.cursor.literalValue(), it.nextBit) >= 0 {
				return true, nil
			}
			it.advanceBlock()
			continue
		}
		if it.cursor.fillIsOne() {
			return true, nil
		}
		n := it.cursor.runLength()
		it.cursor.advanceBlocks(n)
		it.base += n * maxLiteralLength
		it.nextBit = 0
	}
	return false, nil
}

// Next returns the next element in increasing order.
func (it *BitIterator) Next() (int, error) {
	ok, err := it.HasNext()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, noSuchElementError()
	}
	if it.cursor.atLiteral() {
		pos := nextSetBitFrom(it.cursor.literalValue(), it.nextBit)
		value := it.base + pos
		it.nextBit = pos + 1
		if it.nextBit >= maxLiteralLength {
			it.advanceBlock()
		}
		return value, nil
	}
	value := it.base + it.nextBit
	it.nextBit++
	if it.nextBit >= maxLiteralLength {
		it.advanceBlock()
	}
	return value, nil
}

// SkipAllBefore advances the iterator so that the next call to Next, if
// any, returns the smallest element >= target. It never moves the
// iterator backward.
func (it *BitIterator) SkipAllBefore(target int) error {
	if err := it.checkModCount(); err != nil {
		return err
	}
	if target < MinAllowedInteger {
		return invalidArgumentError("skip target must be non-negative")
	}
	for !it.cursor.done() {
		if it.base+maxLiteralLength > target {
			break
		}
		if it.cursor.atLiteral() {
			it.advanceBlock()
			continue
		}
		remaining := it.cursor.runLength()
		avail := (target - it.base) / maxLiteralLength
		if avail > remaining {
			avail = remaining
		}
		if avail < 1 {
			avail = 1
		}
		it.cursor.advanceBlocks(avail)
		it.base += avail * maxLiteralLength
		it.nextBit = 0
	}
	if offset := target - it.base; offset > it.nextBit {
		it.nextBit = offset
	}
	return nil
}

// ReverseBitIterator walks the elements of a Set in decreasing order.
type ReverseBitIterator struct {
	set       *Set
	modCount  uint64
	cursor    *reverseWordCursor
	base      int
	bitOffset int
}

// ReverseIterator returns a ReverseBitIterator over s's elements.
func (s *Set) ReverseIterator() *ReverseBitIterator {
	base := 0
	if s.lastWordIndex >= 0 {
		base = (s.last / maxLiteralLength) * maxLiteralLength
	}
	return &ReverseBitIterator{
		set:       s,
		modCount:  s.modCount,
		cursor:    newReverseWordCursor(s.words, s.lastWordIndex),
		base:      base,
		bitOffset: maxLiteralLength - 1,
	}
}

func (it *ReverseBitIterator) checkModCount() error {
	if it.modCount != it.set.modCount {
		return concurrentModificationError()
	}
	return nil
}

func (it *ReverseBitIterator) retreatBlock() {
	it.cursor.advanceBlocks(1)
	it.base -= maxLiteralLength
	it.bitOffset = maxLiteralLength - 1
}

// HasNext reports whether Next would return another element.
func (it *ReverseBitIterator) HasNext() (bool, error) {
	if err := it.checkModCount(); err != nil {
		return false, err
	}
	for !it.cursor.done() {
		if it.cursor.atLiteral() {
			if prevSetBitFrom(it.cursor.literalValue(), it.bitOffset) >= 0 {
				return true, nil
			}
			it.retreatBlock()
			continue
		}
		if it.cursor.fillIsOne() {
			return true, nil
		}
		n := it.cursor.runLength()
		it.cursor.advanceBlocks(n)
		it.base -= n * maxLiteralLength
		it.bitOffset = maxLiteralLength - 1
	}
	return false, nil
}

// Next returns the next element in decreasing order.
func (it *ReverseBitIterator) Next() (int, error) {
	ok, err := it.HasNext()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, noSuchElementError()
	}
	if it.cursor.atLiteral() {
		pos := prevSetBitFrom(it.cursor.literalValue(), it.bitOffset)
		value := it.base + pos
		it.bitOffset = pos - 1
		if it.bitOffset < 0 {
			it.retreatBlock()
		}
		return value, nil
	}
	value := it.base + it.bitOffset
	it.bitOffset--
	if it.bitOffset < 0 {
		it.retreatBlock()
	}
	return value, nil
}

// SkipAllBefore advances the iterator so that the next call to Next, if
// any, returns the largest element <= target (elements strictly greater
// than target, which come first in reverse order, are skipped).
func (it *ReverseBitIterator) SkipAllBefore(target int) error {
	if err := it.checkModCount(); err != nil {
		return err
	}
	if target < MinAllowedInteger {
		return invalidArgumentError("skip target must be non-negative")
	}
	for !it.cursor.done() {
		if it.base <= target {
			break
		}
		if it.cursor.atLiteral() {
			it.retreatBlock()
			continue
		}
		remaining := it.cursor.runLength()
		avail := (it.base - target) / maxLiteralLength
		if avail > remaining {
			avail = remaining
		}
		if avail < 1 {
			avail = 1
		}
		it.cursor.advanceBlocks(avail)
		it.base -= avail * maxLiteralLength
		it.bitOffset = maxLiteralLength - 1
	}
	if offset := target - it.base; offset < it.bitOffset {
		it.bitOffset = offset
	}
	return nil
}
