package nodes

// MergeWhen identifies the branch a merge action belongs to.
type MergeWhen int

const (
	WhenMatched MergeWhen = iota
	WhenNotMatched
)

// MergeActionType identifies what a merge branch does.
type MergeActionType int

const (
	MergeUpdate MergeActionType = iota
	MergeInsert
	MergeDelete
	MergeDoNothing
)

// MergeAction represents one WHEN MATCHED / WHEN NOT MATCHED branch.
// Branches compile in the order they were added to the statement.
type MergeAction struct {
	When        MergeWhen
	Condition   Node            // optional extra AND condition
	Action      MergeActionType //
	Assignments []*AssignmentNode
	Columns     []Node // insert column list
	Values      []Node // insert value row
}

// MergeStatement represents MERGE INTO target USING source ON condition
// followed by ordered WHEN branches.
type MergeStatement struct {
	Target  Node // *Table or *TableAlias
	Source  Node // table, aliased subquery, or VALUES wrapper
	On      Node // join predicate
	Actions []*MergeAction
}

func (n *MergeStatement) Accept(v Visitor) string { return v.VisitMergeStatement(n) }
