package nodes

// TableFunctionNode represents a table-valued function used as a relation
// in FROM or JOIN clauses, e.g. generate_series(1, 10) or unnest(arr).
// Alias names the produced relation; ColumnAliases optionally name its
// columns.
type TableFunctionNode struct {
	Name          string
	Args          []Node
	Alias         string
	ColumnAliases []string
	Ordinality    bool // WITH ORDINALITY (PostgreSQL)
}

// NewTableFunction creates a table-valued function relation. Raw Go values
// in args are wrapped with Literal.
func NewTableFunction(name string, args ...any) *TableFunctionNode {
	wrapped := make([]Node, len(args))
	for i, a := range args {
		wrapped[i] = Literal(a)
	}
	return &TableFunctionNode{Name: name, Args: wrapped}
}

// As sets the relation alias.
func (n *TableFunctionNode) As(alias string, cols ...string) *TableFunctionNode {
	n.Alias = alias
	n.ColumnAliases = cols
	return n
}

// WithOrdinality adds WITH ORDINALITY.
func (n *TableFunctionNode) WithOrdinality() *TableFunctionNode {
	n.Ordinality = true
	return n
}

// Col returns an attribute of the aliased relation. The function must be
// aliased first.
func (n *TableFunctionNode) Col(name string) *Attribute {
	return NewAttribute(&Table{Name: n.Alias}, name)
}

func (n *TableFunctionNode) Accept(v Visitor) string { return v.VisitTableFunction(n) }
