package nodes

// GroupingSetKind identifies the grouping-set flavour.
type GroupingSetKind int

const (
	GroupingSets GroupingSetKind = iota
	Rollup
	Cube
)

// GroupingSetNode represents GROUPING SETS ((...), ...), ROLLUP (...), or
// CUBE (...) inside a GROUP BY clause. For Rollup and Cube the Sets slice
// holds a single row of expressions; for GroupingSets each entry is one
// parenthesised set (an empty entry renders as the grand-total "()").
type GroupingSetNode struct {
	Kind GroupingSetKind
	Sets [][]Node
}

func (n *GroupingSetNode) Accept(v Visitor) string { return v.VisitGroupingSet(n) }

// NewGroupingSets creates a GROUPING SETS node from explicit sets.
func NewGroupingSets(sets ...[]Node) *GroupingSetNode {
	return &GroupingSetNode{Kind: GroupingSets, Sets: sets}
}

// NewRollup creates a ROLLUP node over the given expressions.
func NewRollup(exprs ...Node) *GroupingSetNode {
	return &GroupingSetNode{Kind: Rollup, Sets: [][]Node{exprs}}
}

// NewCube creates a CUBE node over the given expressions.
func NewCube(exprs ...Node) *GroupingSetNode {
	return &GroupingSetNode{Kind: Cube, Sets: [][]Node{exprs}}
}
