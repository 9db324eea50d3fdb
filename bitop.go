package bitvec

// BitOp is a binary word operation used by combined cursors to derive a
// word stream from two vectors on demand.
type BitOp uint8

const (
	// OpAnd derives a AND b.
	OpAnd BitOp = iota
	// OpOr derives a OR b.
	OpOr
	// OpXor derives a XOR b.
	OpXor
	// OpNotAnd derives NOT(a AND b).
	OpNotAnd
	// OpNotOr derives NOT(a OR b).
	OpNotOr
	// OpNotXor derives NOT(a XOR b).
	OpNotXor
)

func (op BitOp) word(a, b uint64) uint64 {
	switch op {
	case OpAnd:
		return a & b
	case OpOr:
		return a | b
	case OpXor:
		return a ^ b
	case OpNotAnd:
		return ^(a & b)
	case OpNotOr:
		return ^(a | b)
	case OpNotXor:
		return ^(a ^ b)
	default:
		return 0
	}
}

// estimate predicts the density of the derived word stream from the
// operand densities, assuming the operands are uncorrelated.
func (op BitOp) estimate(d1, d2 float64) float64 {
	switch op {
	case OpAnd:
		return d1 * d2
	case OpOr:
		return d1 + d2 - d1*d2
	case OpXor:
		return d1 + d2 - 2*d1*d2
	case OpNotAnd:
		return 1 - d1*d2
	case OpNotOr:
		return 1 - (d1 + d2 - d1*d2)
	case OpNotXor:
		return 1 - (d1 + d2 - 2*d1*d2)
	default:
		return 0
	}
}

func (op BitOp) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpNotAnd:
		return "not-and"
	case OpNotOr:
		return "not-or"
	case OpNotXor:
		return "not-xor"
	default:
		return "unknown"
	}
}
