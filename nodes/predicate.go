package nodes

// ComparisonOp represents a binary comparison operator.
type ComparisonOp int

const (
	OpEq ComparisonOp = iota
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpLike
	OpNotLike
	OpILike
	OpNotILike
	OpRegexp
	OpNotRegexp
	OpDistinctFrom
	OpNotDistinctFrom
	OpContains
	OpOverlaps
)

// ComparisonNode represents a binary comparison: Left Op Right.
type ComparisonNode struct {
	Combinable
	Left  Node
	Right Node
	Op    ComparisonOp
}

// NewComparisonNode creates a ComparisonNode with its Combinable
// initialised.
func NewComparisonNode(left, right Node, op ComparisonOp) *ComparisonNode {
	n := &ComparisonNode{Left: left, Right: right, Op: op}
	n.self = n
	return n
}

func (n *ComparisonNode) Accept(v Visitor) string { return v.VisitComparison(n) }

// UnaryOp represents a unary postfix predicate operator.
type UnaryOp int

const (
	OpIsNull UnaryOp = iota
	OpIsNotNull
)

// UnaryNode represents Expr IS NULL / IS NOT NULL.
type UnaryNode struct {
	Combinable
	Expr Node
	Op   UnaryOp
}

func (n *UnaryNode) Accept(v Visitor) string { return v.VisitUnary(n) }

// InNode represents an IN / NOT IN predicate over either a value list or a
// subquery. Exactly one of Vals and Query is used; Query wins if set.
type InNode struct {
	Combinable
	Expr   Node
	Vals   []Node
	Query  Node // subquery; rendered parenthesized
	Negate bool
}

func (n *InNode) Accept(v Visitor) string { return v.VisitIn(n) }

// BetweenNode represents a BETWEEN / NOT BETWEEN range predicate,
// inclusive on both ends.
type BetweenNode struct {
	Combinable
	Expr   Node
	Low    Node
	High   Node
	Negate bool
}

func (n *BetweenNode) Accept(v Visitor) string { return v.VisitBetween(n) }

// ExistsNode represents EXISTS (subquery) / NOT EXISTS (subquery).
type ExistsNode struct {
	Combinable
	Subquery Node
	Negated  bool
}

// Exists creates an EXISTS predicate over the given subquery.
func Exists(subquery Node) *ExistsNode {
	n := &ExistsNode{Subquery: subquery}
	n.self = n
	return n
}

// NotExists creates a NOT EXISTS predicate over the given subquery.
func NotExists(subquery Node) *ExistsNode {
	n := &ExistsNode{Subquery: subquery, Negated: true}
	n.self = n
	return n
}

func (n *ExistsNode) Accept(v Visitor) string { return v.VisitExists(n) }

// AndNode represents a logical AND between two predicates.
type AndNode struct {
	Combinable
	Left  Node
	Right Node
}

func (n *AndNode) Accept(v Visitor) string { return v.VisitAnd(n) }

// OrNode represents a logical OR between two predicates. Combinable.Or
// always wraps the OrNode in a GroupingNode.
type OrNode struct {
	Combinable
	Left  Node
	Right Node
}

func (n *OrNode) Accept(v Visitor) string { return v.VisitOr(n) }

// NotNode represents a logical NOT of a predicate.
type NotNode struct {
	Combinable
	Expr Node
}

func (n *NotNode) Accept(v Visitor) string { return v.VisitNot(n) }
