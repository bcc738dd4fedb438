package nodes

// NamedFunctionNode represents a named SQL function call (COALESCE, LOWER,
// NOW, ...). The function name is validated by the visitor against an
// identifier character set before rendering.
type NamedFunctionNode struct {
	Predications
	Arithmetics
	Combinable
	Name     string
	Args     []Node
	Distinct bool
}

// NewNamedFunction creates a NamedFunctionNode with its mixins initialised.
func NewNamedFunction(name string, args ...Node) *NamedFunctionNode {
	n := &NamedFunctionNode{Name: name, Args: args}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *NamedFunctionNode) Accept(v Visitor) string { return v.VisitNamedFunction(n) }

// Coalesce creates COALESCE(args...).
func Coalesce(args ...Node) *NamedFunctionNode {
	return NewNamedFunction("COALESCE", args...)
}

// Lower creates LOWER(expr).
func Lower(expr Node) *NamedFunctionNode {
	return NewNamedFunction("LOWER", expr)
}

// Upper creates UPPER(expr).
func Upper(expr Node) *NamedFunctionNode {
	return NewNamedFunction("UPPER", expr)
}

// Over wraps the function call with an inline window definition.
func (n *NamedFunctionNode) Over(def *WindowDefinition) *OverNode {
	o := NewOverNode(n)
	o.Window = def
	return o
}

// OverName wraps the function call with a named window reference.
func (n *NamedFunctionNode) OverName(name string) *OverNode {
	o := NewOverNode(n)
	o.WindowName = name
	return o
}

// AggregateFunc identifies the aggregate function.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

// AggregateNode represents an aggregate function call.
type AggregateNode struct {
	Predications
	Arithmetics
	Combinable
	Func     AggregateFunc
	Expr     Node // argument (nil for COUNT(*))
	Distinct bool // COUNT(DISTINCT ...)
	Filter   Node // FILTER (WHERE ...) clause, nil if not used
}

// NewAggregateNode creates an AggregateNode with its mixins initialised.
func NewAggregateNode(fn AggregateFunc, expr Node) *AggregateNode {
	n := &AggregateNode{Func: fn, Expr: expr}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *AggregateNode) Accept(v Visitor) string { return v.VisitAggregate(n) }

// Count creates a COUNT aggregate. Pass nil for COUNT(*).
func Count(expr Node) *AggregateNode { return NewAggregateNode(AggCount, expr) }

// Sum creates a SUM aggregate.
func Sum(expr Node) *AggregateNode { return NewAggregateNode(AggSum, expr) }

// Avg creates an AVG aggregate.
func Avg(expr Node) *AggregateNode { return NewAggregateNode(AggAvg, expr) }

// Min creates a MIN aggregate.
func Min(expr Node) *AggregateNode { return NewAggregateNode(AggMin, expr) }

// Max creates a MAX aggregate.
func Max(expr Node) *AggregateNode { return NewAggregateNode(AggMax, expr) }

// CountDistinct creates COUNT(DISTINCT expr).
func CountDistinct(expr Node) *AggregateNode {
	n := NewAggregateNode(AggCount, expr)
	n.Distinct = true
	return n
}

// Over wraps the aggregate with an inline window definition.
func (n *AggregateNode) Over(def *WindowDefinition) *OverNode {
	o := NewOverNode(n)
	o.Window = def
	return o
}

// OverName wraps the aggregate with a named window reference.
func (n *AggregateNode) OverName(name string) *OverNode {
	o := NewOverNode(n)
	o.WindowName = name
	return o
}

// WithFilter returns a copy of the aggregate with a FILTER (WHERE ...)
// clause. The receiver is not modified.
func (n *AggregateNode) WithFilter(condition Node) *AggregateNode {
	out := &AggregateNode{Func: n.Func, Expr: n.Expr, Distinct: n.Distinct, Filter: condition}
	out.Predications.self = out
	out.Arithmetics.self = out
	out.Combinable.self = out
	return out
}

// ExtractField identifies the date/time field for EXTRACT.
type ExtractField int

const (
	ExtractYear ExtractField = iota
	ExtractMonth
	ExtractDay
	ExtractHour
	ExtractMinute
	ExtractSecond
	ExtractDow // day of week
	ExtractDoy // day of year
	ExtractEpoch
	ExtractQuarter
	ExtractWeek
)

// ExtractNode represents EXTRACT(field FROM expr).
type ExtractNode struct {
	Predications
	Arithmetics
	Combinable
	Field ExtractField
	Expr  Node
}

// Extract creates an EXTRACT(field FROM expr) node.
func Extract(field ExtractField, expr Node) *ExtractNode {
	n := &ExtractNode{Field: field, Expr: expr}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *ExtractNode) Accept(v Visitor) string { return v.VisitExtract(n) }

// CaseWhen represents a single WHEN ... THEN ... pair in a CASE expression.
type CaseWhen struct {
	Condition Node
	Result    Node
}

// CaseNode represents a SQL CASE expression. If Operand is nil, it is a
// searched CASE (CASE WHEN cond THEN ...).
type CaseNode struct {
	Predications
	Arithmetics
	Combinable
	Operand Node
	Whens   []CaseWhen
	ElseVal Node
}

// NewCase creates a CaseNode. Pass an operand for simple CASE, or no args
// for searched CASE.
func NewCase(operand ...Node) *CaseNode {
	n := &CaseNode{}
	if len(operand) > 0 {
		n.Operand = operand[0]
	}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// When adds a WHEN ... THEN ... pair and returns the CaseNode for chaining.
func (n *CaseNode) When(cond, result Node) *CaseNode {
	n.Whens = append(n.Whens, CaseWhen{Condition: cond, Result: result})
	return n
}

// Else sets the ELSE value and returns the CaseNode for chaining.
func (n *CaseNode) Else(result Node) *CaseNode {
	n.ElseVal = result
	return n
}

func (n *CaseNode) Accept(v Visitor) string { return v.VisitCase(n) }
