package nodes

// LiteralNode wraps a raw Go value (string, int, float, bool, time, ...)
// as an AST node. In parameterized mode it compiles to one placeholder and
// contributes exactly one bind parameter. A nil value renders as the NULL
// keyword and contributes nothing; comparisons against a nil literal are
// rewritten to IS NULL / IS NOT NULL by the dialect.
type LiteralNode struct {
	Predications
	Arithmetics
	Combinable
	Value any
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }

// BindParamNode is an explicit placeholder carrying a value for driver
// binding. Unlike LiteralNode it never renders inline, even when the
// visitor runs without parameterization.
type BindParamNode struct {
	Predications
	Arithmetics
	Combinable
	Value any
}

// NewBindParam creates a BindParamNode for the given value.
func NewBindParam(val any) *BindParamNode {
	n := &BindParamNode{Value: val}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *BindParamNode) Accept(v Visitor) string { return v.VisitBindParam(n) }

// StarNode represents a SQL star (*) or qualified star (table.*).
type StarNode struct {
	Table *Table // nil for unqualified *
}

func (n *StarNode) Accept(v Visitor) string { return v.VisitStar(n) }

// Star returns an unqualified StarNode representing SQL *.
func Star() *StarNode {
	return &StarNode{}
}

// SqlLiteral represents a raw SQL fragment injected verbatim.
//
// SECURITY: the Raw field is rendered without escaping or
// parameterization. Never pass user-controlled input here; use
// LiteralNode or BindParamNode for values.
type SqlLiteral struct {
	Predications
	Arithmetics
	Combinable
	Raw   string
	Binds []any // optional bind parameters appended in parameterized mode
}

func NewSqlLiteral(raw string) *SqlLiteral {
	n := &SqlLiteral{Raw: raw}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// NewBoundSqlLiteral creates a SqlLiteral with bind parameters. Only the
// binds are parameterized; the raw string is still injected verbatim.
func NewBoundSqlLiteral(raw string, binds ...any) *SqlLiteral {
	n := NewSqlLiteral(raw)
	n.Binds = binds
	return n
}

func (n *SqlLiteral) Accept(v Visitor) string { return v.VisitSqlLiteral(n) }

// CastedNode renders CAST(value AS type). The type name is validated by
// the visitor against an identifier-ish character set.
type CastedNode struct {
	Predications
	Arithmetics
	Combinable
	Value    any
	TypeName string
}

// NewCasted creates a CastedNode wrapping val with the given SQL type.
func NewCasted(val any, typeName string) *CastedNode {
	n := &CastedNode{Value: val, TypeName: typeName}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *CastedNode) Accept(v Visitor) string { return v.VisitCasted(n) }

// AliasNode renders "expr AS name" in a projection list.
type AliasNode struct {
	Predications
	Combinable
	Expr Node
	Name string
}

// NewAliasNode creates an AliasNode for expr with the given alias name.
func NewAliasNode(expr Node, name string) *AliasNode {
	n := &AliasNode{Expr: expr, Name: name}
	n.Predications.self = n
	n.Combinable.self = n
	return n
}

func (n *AliasNode) Accept(v Visitor) string { return v.VisitAlias(n) }

// GroupingNode wraps an expression in parentheses. Logical Or chains wrap
// themselves in a GroupingNode so that generated SQL never relies on
// implicit AND/OR precedence.
type GroupingNode struct {
	Predications
	Combinable
	Expr Node
}

// NewGrouping wraps expr in parentheses.
func NewGrouping(expr Node) *GroupingNode {
	g := &GroupingNode{Expr: expr}
	g.Predications.self = g
	g.Combinable.self = g
	return g
}

func (n *GroupingNode) Accept(v Visitor) string { return v.VisitGrouping(n) }
