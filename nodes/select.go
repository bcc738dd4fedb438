package nodes

// LockMode represents row-level locking for SELECT queries.
type LockMode int

const (
	NoLock         LockMode = iota
	ForUpdate               // FOR UPDATE
	ForShare                // FOR SHARE
	ForNoKeyUpdate          // FOR NO KEY UPDATE
	ForKeyShare             // FOR KEY SHARE
)

// String returns the SQL keyword for this lock mode.
func (m LockMode) String() string {
	switch m {
	case ForUpdate:
		return "FOR UPDATE"
	case ForShare:
		return "FOR SHARE"
	case ForNoKeyUpdate:
		return "FOR NO KEY UPDATE"
	case ForKeyShare:
		return "FOR KEY SHARE"
	default:
		return ""
	}
}

// SelectCore is the data container for a SELECT statement. The fluent API
// for building queries lives in the managers package. Clauses compile in
// fixed order: CTEs, SELECT (DISTINCT [ON]), projections, FROM, JOINs,
// WHERE, GROUP BY, HAVING, WINDOW, QUALIFY, ORDER BY, LIMIT/OFFSET, locks.
// An absent clause contributes nothing to the output.
type SelectCore struct {
	From        Node
	Projections []Node
	Wheres      []Node // combined with AND
	Joins       []*JoinNode
	Groups      []Node              // GROUP BY expressions
	Havings     []Node              // HAVING conditions, combined with AND
	Qualifies   []Node              // QUALIFY conditions, combined with AND
	Windows     []*WindowDefinition // named WINDOW definitions
	Orders      []Node              // OrderingNode values
	Limit       Node                // nil or a value node
	Offset      Node                // nil or a value node
	Distinct    bool
	DistinctOn  []Node     // DISTINCT ON columns
	Lock        LockMode   // FOR UPDATE/SHARE...
	NoWait      bool       // NOWAIT
	SkipLocked  bool       // SKIP LOCKED
	Comment     string     // query comment /* ... */
	CTEs        []*CTENode // WITH clause
}

func (n *SelectCore) Accept(v Visitor) string { return v.VisitSelectCore(n) }

// As wraps the query in a TableAlias so it can be used as a named subquery
// in FROM or JOIN clauses.
func (n *SelectCore) As(name string) *TableAlias {
	return &TableAlias{Relation: n, AliasName: name}
}
