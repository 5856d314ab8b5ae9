package concise

// operator identifies one of the four supported binary set operations.
type operator int

const (
	opAnd operator = iota
	opOr
	opXor
	opAndNot
)

// combineBlocks applies the operator to two literal blocks' payload bits.
func (op operator) combineBlocks(a, b uint32) uint32 {
	pa, pb := literalBits(a), literalBits(b)
	switch op {
	case opAnd:
		return literalBit | (pa & pb)
	case opOr:
		return literalBit | (pa | pb)
	case opXor:
		return literalBit | (pa ^ pb)
	default: // opAndNot
		return literalBit | (pa &^ pb)
	}
}

// combineFill applies the operator to two fill types, returning the fill
// type of the resulting run.
func (op operator) combineFill(aIsOne, bIsOne bool) bool {
	switch op {
	case opAnd:
		return aIsOne && bIsOne
	case opOr:
		return aIsOne || bIsOne
	case opXor:
		return aIsOne != bIsOne
	default: // opAndNot
		return aIsOne && !bIsOne
	}
}

func fillLiteral(isOne bool) uint32 {
	return literalBit | fillBlock(isOne)
}

func newEmptyLike(s *Set) *Set {
	return newEmptySet(s.simulateWAH)
}

// flushRemainder copies every block still unvisited by c into res.
func flushRemainder(res *Set, c *wordCursor) {
	for !c.done() {
		if c.atLiteral() {
			res.appendLiteral(c.literalValue())
			c.advanceBlocks(1)
			continue
		}
		n := c.runLength()
		res.appendFill(n, c.fillIsOne())
		c.advanceBlocks(n)
	}
}

// performOperation computes a OP b, block by block, via a pair of word
// cursors walking both operands in lockstep.
func performOperation(a, b *Set, op operator) *Set {
	if a.lastWordIndex < 0 {
		switch op {
		case opAnd, opAndNot:
			return newEmptyLike(a)
		default:
			return b.Clone()
		}
	}
	if b.lastWordIndex < 0 {
		switch op {
		case opAnd:
			return newEmptyLike(a)
		default:
			return a.Clone()
		}
	}

	res := newEmptySet(a.simulateWAH || b.simulateWAH)
	res.words = make([]uint32, 0, a.lastWordIndex+b.lastWordIndex+2)

	ca := newWordCursor(a.words)
	cb := newWordCursor(b.words)

	for !ca.done() && !cb.done() {
		switch {
		case !ca.atLiteral() && !cb.atLiteral():
			n := min(ca.runLength(), cb.runLength())
			res.appendFill(n, op.combineFill(ca.fillIsOne(), cb.fillIsOne()))
			ca.advanceBlocks(n)
			cb.advanceBlocks(n)
		case ca.atLiteral() && cb.atLiteral():
			res.appendLiteral(op.combineBlocks(ca.literalValue(), cb.literalValue()))
			ca.advanceBlocks(1)
			cb.advanceBlocks(1)
		case ca.atLiteral():
			res.appendLiteral(op.combineBlocks(ca.literalValue(), fillLiteral(cb.fillIsOne())))
			ca.advanceBlocks(1)
			cb.advanceBlocks(1)
		default:
			res.appendLiteral(op.combineBlocks(fillLiteral(ca.fillIsOne()), cb.literalValue()))
			ca.advanceBlocks(1)
			cb.advanceBlocks(1)
		}
	}

	switch op {
	case opOr, opXor:
		flushRemainder(res, ca)
		flushRemainder(res, cb)
	case opAndNot:
		flushRemainder(res, ca)
	case opAnd:
		// Whatever remains in either operand contributes nothing.
	}

	res.trimZeros()
	res.size = -1
	if res.lastWordIndex >= 0 {
		res.updateLast()
	} else {
		res.last = -1
	}
	res.compact()
	return res
}
