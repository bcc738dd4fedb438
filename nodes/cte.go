package nodes

// CTENode represents one common table expression in a WITH clause:
// name [(columns...)] AS [MATERIALIZED|NOT MATERIALIZED] (query), with
// optional RECURSIVE. Recursive marks the whole WITH clause RECURSIVE
// when any attached CTE sets it.
type CTENode struct {
	Name         string
	Columns      []string // optional explicit column list
	Query        Node     // *SelectCore, *SetOperationNode, or DML with RETURNING
	Recursive    bool
	Materialized *bool // nil means no hint
}

func (n *CTENode) Accept(v Visitor) string { return v.VisitCTE(n) }

// NewCTE creates a named common table expression over query.
func NewCTE(name string, query Node) *CTENode {
	return &CTENode{Name: name, Query: query}
}

// WithColumns sets the explicit column list.
func (n *CTENode) WithColumns(cols ...string) *CTENode {
	n.Columns = cols
	return n
}

// AsRecursive marks the CTE (and the WITH clause carrying it) RECURSIVE.
func (n *CTENode) AsRecursive() *CTENode {
	n.Recursive = true
	return n
}

// Materialize adds a MATERIALIZED or NOT MATERIALIZED hint.
func (n *CTENode) Materialize(on bool) *CTENode {
	n.Materialized = &on
	return n
}

// Ref returns a Table referring to the CTE by name, usable in FROM and
// JOIN clauses of the attached query.
func (n *CTENode) Ref() *Table {
	return NewTable(n.Name)
}
