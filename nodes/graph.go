package nodes

// EdgeDirection gives the arrow direction of one hop in a graph pattern.
type EdgeDirection int

const (
	EdgeOut EdgeDirection = iota // node-(edge)->node
	EdgeIn                       // node<-(edge)-node
)

// GraphHop is one edge-plus-target step in a MATCH path.
type GraphHop struct {
	Edge      Node // edge table or alias
	Target    Node // vertex table or alias
	Direction EdgeDirection
}

// MatchNode represents a property-graph MATCH predicate over node and edge
// tables (SQL Server SQL Graph). It starts at a vertex and follows hops in
// order; the whole pattern is a boolean predicate usable in WHERE.
type MatchNode struct {
	Combinable
	Start Node // vertex table or alias
	Hops  []GraphHop
}

func (n *MatchNode) Accept(v Visitor) string { return v.VisitMatch(n) }

// Match starts a graph pattern at the given vertex relation.
func Match(start Node) *MatchNode {
	n := &MatchNode{Start: start}
	n.self = n
	return n
}

// Out appends an outgoing hop: current-(edge)->target.
func (n *MatchNode) Out(edge, target Node) *MatchNode {
	n.Hops = append(n.Hops, GraphHop{Edge: edge, Target: target, Direction: EdgeOut})
	return n
}

// In appends an incoming hop: current<-(edge)-target.
func (n *MatchNode) In(edge, target Node) *MatchNode {
	n.Hops = append(n.Hops, GraphHop{Edge: edge, Target: target, Direction: EdgeIn})
	return n
}
