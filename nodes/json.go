package nodes

// JSONPathNode represents extraction of a value from a JSON document by a
// key path. Dialects spell it differently: PostgreSQL chains -> / ->>,
// MySQL and SQLite use JSON_EXTRACT (MySQL unquotes with ->> semantics via
// JSON_UNQUOTE), MSSQL uses JSON_QUERY / JSON_VALUE. AsText extracts the
// leaf as text instead of a JSON fragment.
type JSONPathNode struct {
	Predications
	Arithmetics
	Combinable
	Expr   Node     // the JSON-valued expression
	Keys   []string // object keys or numeric array indices, in path order
	AsText bool
}

func newJSONPath(expr Node, keys []string, asText bool) *JSONPathNode {
	n := &JSONPathNode{Expr: expr, Keys: keys, AsText: asText}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// NewJSONPath creates a JSON extraction keeping JSON typing.
func NewJSONPath(expr Node, keys ...string) *JSONPathNode {
	return newJSONPath(expr, keys, false)
}

// NewJSONTextPath creates a JSON extraction returning the leaf as text.
func NewJSONTextPath(expr Node, keys ...string) *JSONPathNode {
	return newJSONPath(expr, keys, true)
}

func (n *JSONPathNode) Accept(v Visitor) string { return v.VisitJSONPath(n) }
