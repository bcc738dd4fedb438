package nodes

// JoinType represents the type of SQL JOIN.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
	StringJoin // raw SQL join fragment
)

// String returns the display name for this join type.
func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "INNER JOIN"
	case LeftOuterJoin:
		return "LEFT OUTER JOIN"
	case RightOuterJoin:
		return "RIGHT OUTER JOIN"
	case FullOuterJoin:
		return "FULL OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	case StringJoin:
		return "STRING JOIN"
	default:
		return "JOIN"
	}
}

// JoinNode represents a SQL JOIN clause. Joins built through the managers
// associate left-to-right in construction order; compiled SQL preserves
// that order exactly.
//
// Exactly one of On, Using, Natural describes the join condition
// (all absent for CROSS JOIN).
type JoinNode struct {
	Left    Node     // source table
	Right   Node     // target table or subquery
	Type    JoinType // join type
	On      Node     // join condition
	Using   []Node   // USING (col, ...) column list
	Natural bool     // NATURAL join, no explicit condition
	Lateral bool     // LATERAL modifier
}

func (n *JoinNode) Accept(v Visitor) string { return v.VisitJoin(n) }
