package nodes

// The three mixins below give value and predicate nodes their operator
// ergonomics by composition. Each is an embeddable struct whose self field
// must point back at the embedding node so the produced expression
// references the correct operand.
//
// Predications and Arithmetics are embedded only by value expressions
// (attributes, literals, functions, math); Combinable only by
// boolean-valued predicate nodes. The split keeps "predicate where a value
// is expected" unrepresentable: predicates have no Eq/Plus, values have no
// And/Or.

// Predications provides comparison methods producing predicate nodes.
type Predications struct {
	self Node
}

func (p Predications) compare(op ComparisonOp, val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), op)
}

// Eq creates an equality comparison: self = val. A nil val compiles to
// IS NULL rather than "= NULL".
func (p Predications) Eq(val any) *ComparisonNode { return p.compare(OpEq, val) }

// NotEq creates an inequality comparison: self != val. A nil val compiles
// to IS NOT NULL.
func (p Predications) NotEq(val any) *ComparisonNode { return p.compare(OpNotEq, val) }

// Gt creates self > val.
func (p Predications) Gt(val any) *ComparisonNode { return p.compare(OpGt, val) }

// GtEq creates self >= val.
func (p Predications) GtEq(val any) *ComparisonNode { return p.compare(OpGtEq, val) }

// Lt creates self < val.
func (p Predications) Lt(val any) *ComparisonNode { return p.compare(OpLt, val) }

// LtEq creates self <= val.
func (p Predications) LtEq(val any) *ComparisonNode { return p.compare(OpLtEq, val) }

// Like creates self LIKE val.
func (p Predications) Like(val any) *ComparisonNode { return p.compare(OpLike, val) }

// NotLike creates self NOT LIKE val.
func (p Predications) NotLike(val any) *ComparisonNode { return p.compare(OpNotLike, val) }

// ILike creates a case-insensitive LIKE. Dialects with a native operator
// (PostgreSQL ILIKE) use it; others fall back to LOWER(a) LIKE LOWER(b).
func (p Predications) ILike(val any) *ComparisonNode { return p.compare(OpILike, val) }

// NotILike creates a negated case-insensitive LIKE.
func (p Predications) NotILike(val any) *ComparisonNode { return p.compare(OpNotILike, val) }

// Matches creates a regexp match: self ~ val.
func (p Predications) Matches(val any) *ComparisonNode { return p.compare(OpRegexp, val) }

// DoesNotMatch creates a negated regexp match: self !~ val.
func (p Predications) DoesNotMatch(val any) *ComparisonNode { return p.compare(OpNotRegexp, val) }

// IsDistinctFrom creates an IS DISTINCT FROM comparison.
func (p Predications) IsDistinctFrom(val any) *ComparisonNode {
	return p.compare(OpDistinctFrom, val)
}

// IsNotDistinctFrom creates an IS NOT DISTINCT FROM comparison.
func (p Predications) IsNotDistinctFrom(val any) *ComparisonNode {
	return p.compare(OpNotDistinctFrom, val)
}

// Contains creates an array/JSONB containment comparison: self @> val.
func (p Predications) Contains(val any) *ComparisonNode { return p.compare(OpContains, val) }

// Overlaps creates an array overlap comparison: self && val.
func (p Predications) Overlaps(val any) *ComparisonNode { return p.compare(OpOverlaps, val) }

// In creates self IN (vals...). With zero values the predicate compiles to
// the constant 1=0: an empty set matches nothing, and the constant form
// avoids both invalid "IN ()" syntax and NULL three-valued-logic surprises.
func (p Predications) In(vals ...any) *InNode {
	wrapped := make([]Node, len(vals))
	for i, v := range vals {
		wrapped[i] = Literal(v)
	}
	n := &InNode{Expr: p.self, Vals: wrapped}
	n.self = n
	return n
}

// NotIn creates self NOT IN (vals...). With zero values it compiles to the
// constant 1=1 — everything is outside the empty set, even NULL.
func (p Predications) NotIn(vals ...any) *InNode {
	n := p.In(vals...)
	n.Negate = true
	return n
}

// InQuery creates self IN (subquery).
func (p Predications) InQuery(query Node) *InNode {
	n := &InNode{Expr: p.self, Query: query}
	n.self = n
	return n
}

// NotInQuery creates self NOT IN (subquery).
func (p Predications) NotInQuery(query Node) *InNode {
	n := p.InQuery(query)
	n.Negate = true
	return n
}

// Between creates self BETWEEN low AND high, inclusive on both ends.
func (p Predications) Between(low, high any) *BetweenNode {
	n := &BetweenNode{Expr: p.self, Low: Literal(low), High: Literal(high)}
	n.self = n
	return n
}

// NotBetween creates self NOT BETWEEN low AND high.
func (p Predications) NotBetween(low, high any) *BetweenNode {
	n := &BetweenNode{Expr: p.self, Low: Literal(low), High: Literal(high), Negate: true}
	n.self = n
	return n
}

// IsNull creates self IS NULL.
func (p Predications) IsNull() *UnaryNode {
	n := &UnaryNode{Expr: p.self, Op: OpIsNull}
	n.self = n
	return n
}

// IsNotNull creates self IS NOT NULL.
func (p Predications) IsNotNull() *UnaryNode {
	n := &UnaryNode{Expr: p.self, Op: OpIsNotNull}
	n.self = n
	return n
}

// As creates an AliasNode wrapping self with the given alias name.
func (p Predications) As(name string) *AliasNode {
	return NewAliasNode(p.self, name)
}

// Asc creates an ascending ordering node.
func (p Predications) Asc() *OrderingNode {
	return &OrderingNode{Expr: p.self, Direction: Asc}
}

// Desc creates a descending ordering node.
func (p Predications) Desc() *OrderingNode {
	return &OrderingNode{Expr: p.self, Direction: Desc}
}

// JSON creates a JSON path expression over self keeping JSON typing
// (PostgreSQL ->). Keys are object keys or array indices in path order.
func (p Predications) JSON(keys ...string) *JSONPathNode {
	return newJSONPath(p.self, keys, false)
}

// JSONText creates a JSON path expression over self extracting the leaf as
// text (PostgreSQL ->>).
func (p Predications) JSONText(keys ...string) *JSONPathNode {
	return newJSONPath(p.self, keys, true)
}

// Arithmetics provides math, bitwise, and concat methods producing value
// expressions.
type Arithmetics struct {
	self Node
}

func (a Arithmetics) newInfix(op InfixOp, val any) *InfixNode {
	return NewInfixNode(a.self, Literal(val), op)
}

func (a Arithmetics) Plus(val any) *InfixNode       { return a.newInfix(OpPlus, val) }
func (a Arithmetics) Minus(val any) *InfixNode      { return a.newInfix(OpMinus, val) }
func (a Arithmetics) Multiply(val any) *InfixNode   { return a.newInfix(OpMultiply, val) }
func (a Arithmetics) Divide(val any) *InfixNode     { return a.newInfix(OpDivide, val) }
func (a Arithmetics) Modulo(val any) *InfixNode     { return a.newInfix(OpModulo, val) }
func (a Arithmetics) Concat(val any) *InfixNode     { return a.newInfix(OpConcat, val) }
func (a Arithmetics) BitwiseAnd(val any) *InfixNode { return a.newInfix(OpBitwiseAnd, val) }
func (a Arithmetics) BitwiseOr(val any) *InfixNode  { return a.newInfix(OpBitwiseOr, val) }
func (a Arithmetics) BitwiseXor(val any) *InfixNode { return a.newInfix(OpBitwiseXor, val) }
func (a Arithmetics) ShiftLeft(val any) *InfixNode  { return a.newInfix(OpShiftLeft, val) }
func (a Arithmetics) ShiftRight(val any) *InfixNode { return a.newInfix(OpShiftRight, val) }

func (a Arithmetics) BitwiseNot() *UnaryMathNode {
	return NewUnaryMathNode(a.self, OpBitwiseNot)
}

// Combinable provides logical chaining methods for predicate nodes.
type Combinable struct {
	self Node
}

// And creates self AND other.
func (c Combinable) And(other Node) *AndNode {
	n := &AndNode{Left: c.self, Right: other}
	n.self = n
	return n
}

// Or creates (self OR other). The result is wrapped in parentheses so the
// OR can never bind looser than a surrounding AND.
func (c Combinable) Or(other Node) *GroupingNode {
	or := &OrNode{Left: c.self, Right: other}
	or.self = or
	return NewGrouping(or)
}

// Not creates NOT (self).
func (c Combinable) Not() *NotNode {
	n := &NotNode{Expr: c.self}
	n.self = n
	return n
}
