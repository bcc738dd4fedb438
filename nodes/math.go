package nodes

// InfixOp identifies a binary math, bitwise, or concat operator.
type InfixOp int

const (
	OpPlus InfixOp = iota
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
	OpConcat
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
)

// InfixNode represents a binary math, bitwise, or concat expression.
// Nested infix operands are parenthesized by the visitor so construction
// order fixes evaluation order.
type InfixNode struct {
	Predications
	Arithmetics
	Combinable
	Left  Node
	Right Node
	Op    InfixOp
}

// NewInfixNode creates an InfixNode with its mixins initialised.
func NewInfixNode(left, right Node, op InfixOp) *InfixNode {
	n := &InfixNode{Left: left, Right: right, Op: op}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *InfixNode) Accept(v Visitor) string { return v.VisitInfix(n) }

// UnaryMathOp identifies a unary math operator.
type UnaryMathOp int

const (
	OpBitwiseNot UnaryMathOp = iota
)

// UnaryMathNode represents a unary math expression (bitwise NOT).
type UnaryMathNode struct {
	Predications
	Arithmetics
	Combinable
	Expr Node
	Op   UnaryMathOp
}

// NewUnaryMathNode creates a UnaryMathNode with its mixins initialised.
func NewUnaryMathNode(expr Node, op UnaryMathOp) *UnaryMathNode {
	n := &UnaryMathNode{Expr: expr, Op: op}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *UnaryMathNode) Accept(v Visitor) string { return v.VisitUnaryMath(n) }
