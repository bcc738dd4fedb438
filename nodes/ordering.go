package nodes

// OrderDirection represents ASC or DESC ordering. The zero value is Asc,
// so an entry without an explicit direction sorts ascending.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// NullsDirection controls NULLS FIRST/LAST positioning.
type NullsDirection int

const (
	NullsDefault NullsDirection = iota
	NullsFirst
	NullsLast
)

// OrderingNode represents one ORDER BY entry: an expression paired with a
// direction.
type OrderingNode struct {
	Expr      Node
	Direction OrderDirection
	Nulls     NullsDirection
}

func (n *OrderingNode) Accept(v Visitor) string { return v.VisitOrdering(n) }

// NullsFirstOrder returns a copy with NULLS FIRST.
func (n *OrderingNode) NullsFirstOrder() *OrderingNode {
	return &OrderingNode{Expr: n.Expr, Direction: n.Direction, Nulls: NullsFirst}
}

// NullsLastOrder returns a copy with NULLS LAST.
func (n *OrderingNode) NullsLastOrder() *OrderingNode {
	return &OrderingNode{Expr: n.Expr, Direction: n.Direction, Nulls: NullsLast}
}
