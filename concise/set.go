package concise

import (
	"sort"
)

// Set is a compressed, sorted set of non-negative integers encoded as a
// sequence of CONCISE words. The zero value is not usable; construct with
// New, FromSorted, or FromInts.
type Set struct {
	words         []uint32
	lastWordIndex int // index of the last used word, -1 if empty
	last          int // highest element, -1 if empty
	size          int // cached cardinality, -1 if it needs recomputing
	simulateWAH   bool
	modCount      uint64
}

// Option configures a Set at construction time.
type Option func(*Set)

// WithWAHMode disables the CONCISE flip-bit extension, giving strict WAH
// semantics when enabled.
func WithWAHMode(enabled bool) Option {
	return func(s *Set) { s.simulateWAH = enabled }
}

func newEmptySet(wah bool) *Set {
	return &Set{lastWordIndex: -1, last: -1, size: 0, simulateWAH: wah}
}

// New returns an empty Set.
func New(opts ...Option) *Set {
	s := newEmptySet(false)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromSorted builds a Set from a strictly increasing slice of elements.
func FromSorted(values []int, opts ...Option) (*Set, error) {
	s := New(opts...)
	prev := -1
	for _, v := range values {
		if v < MinAllowedInteger || v > MaxAllowedInteger {
			return nil, outOfRangeError(v)
		}
		if v <= prev {
			return nil, invalidArgumentError("values must be strictly increasing")
		}
		s.appendElement(v)
		prev = v
	}
	return s, nil
}

// FromInts builds a Set from an arbitrarily ordered, possibly duplicated
// slice of elements.
func FromInts(values []int, opts ...Option) (*Set, error) {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	deduped := sorted[:0]
	prev := -1
	first := true
	for _, v := range sorted {
		if first || v != prev {
			deduped = append(deduped, v)
			prev = v
			first = false
		}
	}
	return FromSorted(deduped, opts...)
}

func singleton(i int, wah bool) *Set {
	s := newEmptySet(wah)
	s.appendElement(i)
	return s
}

// rangeSet builds the contiguous [from, to] range as a Set, used as the
// operand for Fill/Clear.
func rangeSet(from, to int, wah bool) *Set {
	r := newEmptySet(wah)
	if from > to {
		return r
	}
	r.last = to
	r.size = to - from + 1
	fromBlock, fromPos := from/maxLiteralLength, from%maxLiteralLength
	toBlock, toPos := to/maxLiteralLength, to%maxLiteralLength

	if fromBlock > 0 {
		r.appendFill(fromBlock, false)
	}
	if fromBlock == toBlock {
		var payload uint32
		for p := fromPos; p <= toPos; p++ {
			payload |= uint32(1) << uint(p)
		}
		r.appendLiteral(literalBit | payload)
		return r
	}

	var firstPayload uint32
	for p := fromPos; p < maxLiteralLength; p++ {
		firstPayload |= uint32(1) << uint(p)
	}
	r.appendLiteral(literalBit | firstPayload)

	if middle := toBlock - fromBlock - 1; middle > 0 {
		r.appendFill(middle, true)
	}

	var lastPayload uint32
	for p := 0; p <= toPos; p++ {
		lastPayload |= uint32(1) << uint(p)
	}
	r.appendLiteral(literalBit | lastPayload)
	return r
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	words := make([]uint32, len(s.words))
	copy(words, s.words)
	return &Set{
		words:         words,
		lastWordIndex: s.lastWordIndex,
		last:          s.last,
		size:          s.size,
		simulateWAH:   s.simulateWAH,
	}
}

func (s *Set) replaceWith(other *Set) {
	s.words = other.words
	s.lastWordIndex = other.lastWordIndex
	s.last = other.last
	s.size = -1
	s.modCount++
}

// IsEmpty reports whether the set holds no elements.
func (s *Set) IsEmpty() bool {
	return s.lastWordIndex < 0
}

// WAHMode reports whether the set operates in strict WAH mode (the
// CONCISE flip-bit extension disabled).
func (s *Set) WAHMode() bool {
	return s.simulateWAH
}

// locate finds the word and the block-within-word containing element i.
// i must satisfy 0 <= i <= s.last.
func (s *Set) locate(i int) (wordIndex, blockInWord, bitPos int) {
	blockTarget := i / maxLiteralLength
	bitPos = i % maxLiteralLength
	blocksSoFar := 0
	for idx := 0; idx <= s.lastWordIndex; idx++ {
		bc := blockCount(s.words[idx])
		if blocksSoFar+bc > blockTarget {
			return idx, blockTarget - blocksSoFar, bitPos
		}
		blocksSoFar += bc
	}
	return -1, -1, bitPos
}

// Contains reports whether i is a member of the set.
func (s *Set) Contains(i int) bool {
	if i < 0 || i > s.last {
		return false
	}
	wordIndex, blockInWord, bitPos := s.locate(i)
	if wordIndex < 0 {
		return false
	}
	w := s.words[wordIndex]
	if isLiteral(w) {
		return w&(uint32(1)<<uint(bitPos)) != 0
	}
	if blockInWord == 0 {
		lit := literalFromSequence(w)
		return lit&(uint32(1)<<uint(bitPos)) != 0
	}
	return isOneSequence(w)
}

// Add inserts i into the set, returning whether it was newly added.
func (s *Set) Add(i int) (bool, error) {
	if i < MinAllowedInteger || i > MaxAllowedInteger {
		return false, outOfRangeError(i)
	}
	if s.Contains(i) {
		return false, nil
	}
	if i > s.last {
		s.appendElement(i)
		return true, nil
	}
	res := performOperation(s, singleton(i, s.simulateWAH), opOr)
	s.replaceWith(res)
	return true, nil
}

// Remove deletes i from the set, returning whether it was present.
func (s *Set) Remove(i int) (bool, error) {
	if i < MinAllowedInteger || i > MaxAllowedInteger {
		return false, outOfRangeError(i)
	}
	if !s.Contains(i) {
		return false, nil
	}
	res := performOperation(s, singleton(i, s.simulateWAH), opAndNot)
	s.replaceWith(res)
	return true, nil
}

// Flip toggles membership of i, returning whether i is present afterward.
func (s *Set) Flip(i int) (bool, error) {
	if i < MinAllowedInteger || i > MaxAllowedInteger {
		return false, outOfRangeError(i)
	}
	if s.Contains(i) {
		if _, err := s.Remove(i); err != nil {
			return false, err
		}
		return false, nil
	}
	if _, err := s.Add(i); err != nil {
		return false, err
	}
	return true, nil
}

// AddAll inserts every element of other into s, in place.
func (s *Set) AddAll(other *Set) {
	s.replaceWith(performOperation(s, other, opOr))
}

// RemoveAll deletes every element of other from s, in place.
func (s *Set) RemoveAll(other *Set) {
	s.replaceWith(performOperation(s, other, opAndNot))
}

// RetainAll keeps only the elements s shares with other, in place.
func (s *Set) RetainAll(other *Set) {
	s.replaceWith(performOperation(s, other, opAnd))
}

// ContainsAll reports whether every element of other is also in s.
func (s *Set) ContainsAll(other *Set) bool {
	return performOperation(other, s, opAndNot).IsEmpty()
}

// ContainsAny reports whether s and other share at least one element.
func (s *Set) ContainsAny(other *Set) bool {
	return !performOperation(s, other, opAnd).IsEmpty()
}

// Fill sets every element in [from, to] to present.
func (s *Set) Fill(from, to int) error {
	if from < MinAllowedInteger || to > MaxAllowedInteger || from > to {
		return invalidArgumentError("fill range must satisfy 0 <= from <= to <= MaxAllowedInteger")
	}
	res := performOperation(s, rangeSet(from, to, s.simulateWAH), opOr)
	s.replaceWith(res)
	return nil
}

// Clear removes every element in [from, to].
func (s *Set) Clear(from, to int) error {
	if from < MinAllowedInteger || to > MaxAllowedInteger || from > to {
		return invalidArgumentError("clear range must satisfy 0 <= from <= to <= MaxAllowedInteger")
	}
	res := performOperation(s, rangeSet(from, to, s.simulateWAH), opAndNot)
	s.replaceWith(res)
	return nil
}

// Get returns the index-th smallest element (0-based).
func (s *Set) Get(index int) (int, error) {
	if index < 0 {
		return 0, invalidArgumentError("get index must be non-negative")
	}
	it := s.Iterator()
	var v int
	var err error
	for n := 0; n <= index; n++ {
		v, err = it.Next()
		if err != nil {
			return 0, err
		}
	}
	return v, nil
}

// IndexOf returns the 0-based rank of e among the set's elements. Unlike the
// reference implementation's -1 sentinel, an absent e reports ErrNoSuchElement,
// matching the error-return idiom used by Get, First, and Last throughout
// this package.
func (s *Set) IndexOf(e int) (int, error) {
	if e < 0 || e > MaxAllowedInteger {
		return 0, outOfRangeError(e)
	}
	if !s.Contains(e) {
		return 0, noSuchElementError()
	}
	it := s.Iterator()
	idx := 0
	for {
		v, err := it.Next()
		if err != nil {
			return 0, err
		}
		if v == e {
			return idx, nil
		}
		idx++
	}
}

// Last returns the highest element in the set.
func (s *Set) Last() (int, error) {
	if s.lastWordIndex < 0 {
		return 0, noSuchElementError()
	}
	return s.last, nil
}

// First returns the lowest element in the set.
func (s *Set) First() (int, error) {
	return s.Iterator().Next()
}

// Union returns a new Set containing every element in s or other.
func (s *Set) Union(other *Set) *Set { return performOperation(s, other, opOr) }

// Intersection returns a new Set containing every element in both s and other.
func (s *Set) Intersection(other *Set) *Set { return performOperation(s, other, opAnd) }

// Difference returns a new Set containing every element in s but not other.
func (s *Set) Difference(other *Set) *Set { return performOperation(s, other, opAndNot) }

// SymmetricDifference returns a new Set containing every element in
// exactly one of s or other.
func (s *Set) SymmetricDifference(other *Set) *Set { return performOperation(s, other, opXor) }

func (s *Set) complementWords() {
	for i := 0; i <= s.lastWordIndex; i++ {
		w := s.words[i]
		if isLiteral(w) {
			s.words[i] = literalBit | (literalBitsMask &^ literalBits(w))
		} else {
			s.words[i] = w ^ sequenceBit
		}
	}
}

// Complement flips membership of every element in [0, last], in place. The
// old last element is always removed, so the new last is lower.
func (s *Set) Complement() {
	last := s.last
	lastWasLiteral := s.lastWordIndex >= 0 && isLiteral(s.words[s.lastWordIndex])
	s.complementWords()
	if lastWasLiteral {
		s.clearBitsAfterInLastWord(last % maxLiteralLength)
	}
	s.trimZeros()
	if s.lastWordIndex >= 0 {
		s.updateLast()
	} else {
		s.last = -1
	}
	s.size = -1
	s.modCount++
}

// clearBitsAfterInLastWord clears every bit above pos in the last word's
// literal payload. Complementing a set only flips bits up to its previous
// highest element; flipping a literal's unused high bits would otherwise
// manufacture elements beyond the original last.
func (s *Set) clearBitsAfterInLastWord(pos int) {
	mask := uint32(1)<<uint(pos+1) - 1
	w := s.words[s.lastWordIndex]
	s.words[s.lastWordIndex] = literalBit | (literalBits(w) & mask)
}

// Complemented returns a complemented copy of s, leaving s unchanged.
func (s *Set) Complemented() *Set {
	c := s.Clone()
	c.Complement()
	return c
}

// ContainsAtLeast reports whether the set has at least n elements,
// short-circuiting once the threshold is reached.
func (s *Set) ContainsAtLeast(n int) (bool, error) {
	if n < 1 {
		return false, invalidArgumentError("n must be >= 1")
	}
	count := 0
	for i := 0; i <= s.lastWordIndex; i++ {
		count += blockContribution(s.words[i])
		if count >= n {
			return true, nil
		}
	}
	return count >= n, nil
}

func blockContribution(w uint32) int {
	if isLiteral(w) {
		return literalBitCount(w)
	}
	blocks := blockCount(w)
	if isOneSequence(w) {
		total := blocks * maxLiteralLength
		if flippedBitPosition(w) >= 0 {
			total--
		}
		return total
	}
	if flippedBitPosition(w) >= 0 {
		return 1
	}
	return 0
}

// Size returns the number of elements in the set.
func (s *Set) Size() int {
	if s.size >= 0 {
		return s.size
	}
	total := 0
	for i := 0; i <= s.lastWordIndex; i++ {
		total += blockContribution(s.words[i])
	}
	s.size = total
	return s.size
}

// ComplementSize returns len(s.Complemented()) without materializing it.
func (s *Set) ComplementSize() int {
	if s.IsEmpty() {
		return 0
	}
	return s.last + 1 - s.Size()
}

// UnionSize returns len(s.Union(other)), computed by building the union and
// counting it.
func (s *Set) UnionSize(other *Set) int { return performOperation(s, other, opOr).Size() }

// IntersectionSize returns len(s.Intersection(other)), computed by building
// the intersection and counting it.
func (s *Set) IntersectionSize(other *Set) int { return performOperation(s, other, opAnd).Size() }

// DifferenceSize returns len(s.Difference(other)), computed by building the
// difference and counting it.
func (s *Set) DifferenceSize(other *Set) int { return performOperation(s, other, opAndNot).Size() }

// SymmetricDifferenceSize returns len(s.SymmetricDifference(other)),
// computed by building the symmetric difference and counting it.
func (s *Set) SymmetricDifferenceSize(other *Set) int {
	return performOperation(s, other, opXor).Size()
}

// CompressionRatio returns the fraction of words saved relative to the
// number of 31-bit blocks a fully literal encoding would need, in [0, 1).
// An empty set reports 0.
func (s *Set) CompressionRatio() float64 {
	if s.lastWordIndex < 0 {
		return 0
	}
	theoreticalWords := s.last/maxLiteralLength + 1
	return 1 - float64(s.lastWordIndex+1)/float64(theoreticalWords)
}

// CollectionCompressionRatio returns the ratio of words used to elements
// stored, i.e. how this encoding compares to storing each element boxed
// individually. An empty set reports 0.
func (s *Set) CollectionCompressionRatio() float64 {
	size := s.Size()
	if size == 0 {
		return 0
	}
	return float64(s.lastWordIndex+1) / float64(size)
}

// ToSlice materializes the set's elements in increasing order.
func (s *Set) ToSlice() []int {
	elems := make([]int, 0, s.Size())
	it := s.Iterator()
	for {
		v, err := it.Next()
		if err != nil {
			break
		}
		elems = append(elems, v)
	}
	return elems
}

// Equal reports whether s and other contain the same elements.
func (s *Set) Equal(other *Set) bool {
	if s.last != other.last || s.lastWordIndex != other.lastWordIndex {
		return false
	}
	for i := 0; i <= s.lastWordIndex; i++ {
		if s.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Compare defines a total order over Sets: by highest element, then by
// size, then lexicographically from the highest element downward.
func (s *Set) Compare(other *Set) int {
	if s.last != other.last {
		if s.last < other.last {
			return -1
		}
		return 1
	}
	sSize, oSize := s.Size(), other.Size()
	if sSize != oSize {
		if sSize < oSize {
			return -1
		}
		return 1
	}
	ri, ro := s.ReverseIterator(), other.ReverseIterator()
	for {
		av, aerr := ri.Next()
		bv, berr := ro.Next()
		if aerr != nil && berr != nil {
			return 0
		}
		if aerr != nil {
			return -1
		}
		if berr != nil {
			return 1
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
}

// Hash returns a content hash of s, folding each word into a running
// accumulator starting at 1: h = h*31 + w. Equal sets always hash equal.
func (s *Set) Hash() uint32 {
	h := uint32(1)
	for i := 0; i <= s.lastWordIndex; i++ {
		h = (h << 5) - h + s.words[i]
	}
	return h
}
