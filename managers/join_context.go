package managers

import "github.com/arbordev/arbor/nodes"

// JoinContext is returned by SelectManager.Join() and enforces that a join
// condition is provided via On(), Using(), or Natural() before continuing
// to build the query. This prevents incomplete JOINs in the AST.
type JoinContext struct {
	manager *SelectManager
	join    *nodes.JoinNode
}

// On sets the join condition and returns the SelectManager for continued
// method chaining.
func (jc *JoinContext) On(condition nodes.Node) *SelectManager {
	jc.join.On = condition
	return jc.manager
}

// Using sets a USING column list instead of an ON condition.
func (jc *JoinContext) Using(cols ...nodes.Node) *SelectManager {
	jc.join.Using = cols
	return jc.manager
}

// Natural marks the join NATURAL; the server matches columns by name.
func (jc *JoinContext) Natural() *SelectManager {
	jc.join.Natural = true
	return jc.manager
}
