package nodes

// AssignmentNode represents a column = value pair in SET clauses. Right
// may be any value expression, so "quantity = quantity - 1" is expressible.
type AssignmentNode struct {
	Left  Node // column (Attribute)
	Right Node // value expression
}

// Assign creates an assignment of val to col. Raw Go values are wrapped
// with Literal.
func Assign(col Node, val any) *AssignmentNode {
	return &AssignmentNode{Left: col, Right: Literal(val)}
}

func (n *AssignmentNode) Accept(v Visitor) string { return v.VisitAssignment(n) }

// OnConflictAction specifies the action for ON CONFLICT clauses.
type OnConflictAction int

const (
	DoNothing OnConflictAction = iota
	DoUpdate
)

// OnConflictNode represents ON CONFLICT (...) DO NOTHING / DO UPDATE SET.
// Dialects with a different upsert spelling (MySQL ON DUPLICATE KEY
// UPDATE) translate it; dialects without one reject it at compile time.
type OnConflictNode struct {
	Columns     []Node            // conflict target columns
	Action      OnConflictAction  // DoNothing or DoUpdate
	Assignments []*AssignmentNode // SET for DO UPDATE
	Wheres      []Node            // WHERE for DO UPDATE
}

func (n *OnConflictNode) Accept(v Visitor) string { return v.VisitOnConflict(n) }

// InsertStatement represents INSERT INTO ... VALUES / SELECT, with an
// optional upsert clause and optional RETURNING.
type InsertStatement struct {
	Into       Node            // *Table
	Columns    []Node          // column list
	Values     [][]Node        // rows of values (multi-row batches)
	Select     Node            // INSERT ... SELECT (mutually exclusive with Values)
	Returning  []Node          // RETURNING columns (feature-gated per dialect)
	OnConflict *OnConflictNode // upsert clause
}

func (n *InsertStatement) Accept(v Visitor) string { return v.VisitInsertStatement(n) }

// UpdateStatement represents UPDATE ... SET ... [FROM ...] WHERE ...
// [RETURNING ...]. From enables join-style updates on dialects that
// support it.
type UpdateStatement struct {
	Table       Node
	Assignments []*AssignmentNode
	From        []Node // additional relations (feature-gated per dialect)
	Wheres      []Node
	Returning   []Node
}

func (n *UpdateStatement) Accept(v Visitor) string { return v.VisitUpdateStatement(n) }

// DeleteStatement represents DELETE FROM ... [USING ...] WHERE ...
// [RETURNING ...]. Using enables join-deletes on dialects that support it.
type DeleteStatement struct {
	From      Node
	Using     []Node // additional relations (feature-gated per dialect)
	Wheres    []Node
	Returning []Node
}

func (n *DeleteStatement) Accept(v Visitor) string { return v.VisitDeleteStatement(n) }
