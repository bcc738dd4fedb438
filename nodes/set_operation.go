package nodes

// SetOpType identifies the set operation combining two queries.
type SetOpType int

const (
	Union SetOpType = iota
	UnionAll
	Intersect
	IntersectAll
	Except
	ExceptAll
)

// String returns the SQL keywords for the set operation.
func (t SetOpType) String() string {
	switch t {
	case Union:
		return "UNION"
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case IntersectAll:
		return "INTERSECT ALL"
	case Except:
		return "EXCEPT"
	case ExceptAll:
		return "EXCEPT ALL"
	default:
		return ""
	}
}

// SetOperationNode combines two queries with UNION/INTERSECT/EXCEPT.
// Operands may themselves be set operations, so chains nest naturally.
// Outer ORDER BY and LIMIT/OFFSET apply to the combined result.
type SetOperationNode struct {
	Op     SetOpType
	Left   Node // *SelectCore or *SetOperationNode
	Right  Node
	Orders []Node
	Limit  Node
	Offset Node
}

func (n *SetOperationNode) Accept(v Visitor) string { return v.VisitSetOperation(n) }

// As wraps the set operation in a TableAlias for use as a subquery.
func (n *SetOperationNode) As(name string) *TableAlias {
	return &TableAlias{Relation: n, AliasName: name}
}

// NewSetOperation combines left and right with the given operation.
func NewSetOperation(op SetOpType, left, right Node) *SetOperationNode {
	return &SetOperationNode{Op: op, Left: left, Right: right}
}
