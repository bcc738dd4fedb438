// Package nodes defines the immutable AST node types that represent SQL
// constructs. Nodes hold only the data needed to render themselves; all
// dialect-sensitive rendering happens in a Visitor.
package nodes

// Node is the interface that all AST nodes implement.
type Node interface {
	Accept(visitor Visitor) string
}

// Visitor walks the AST and produces SQL text. Concrete dialect visitors
// (Postgres, MySQL, SQLite, MSSQL) implement this interface.
type Visitor interface {
	VisitTable(node *Table) string
	VisitTableAlias(node *TableAlias) string
	VisitAttribute(node *Attribute) string
	VisitLiteral(node *LiteralNode) string
	VisitStar(node *StarNode) string
	VisitSqlLiteral(node *SqlLiteral) string
	VisitBindParam(node *BindParamNode) string
	VisitCasted(node *CastedNode) string
	VisitAlias(node *AliasNode) string
	VisitGrouping(node *GroupingNode) string

	VisitComparison(node *ComparisonNode) string
	VisitUnary(node *UnaryNode) string
	VisitAnd(node *AndNode) string
	VisitOr(node *OrNode) string
	VisitNot(node *NotNode) string
	VisitIn(node *InNode) string
	VisitBetween(node *BetweenNode) string
	VisitExists(node *ExistsNode) string

	VisitInfix(node *InfixNode) string
	VisitUnaryMath(node *UnaryMathNode) string

	VisitNamedFunction(node *NamedFunctionNode) string
	VisitAggregate(node *AggregateNode) string
	VisitExtract(node *ExtractNode) string
	VisitCase(node *CaseNode) string

	VisitOrdering(node *OrderingNode) string
	VisitJoin(node *JoinNode) string

	VisitSelectCore(node *SelectCore) string
	VisitInsertStatement(node *InsertStatement) string
	VisitUpdateStatement(node *UpdateStatement) string
	VisitDeleteStatement(node *DeleteStatement) string
	VisitMergeStatement(node *MergeStatement) string
	VisitAssignment(node *AssignmentNode) string
	VisitOnConflict(node *OnConflictNode) string

	VisitCreateTable(node *CreateTableStatement) string
	VisitDropTable(node *DropTableStatement) string
	VisitCreateView(node *CreateViewStatement) string
	VisitDropView(node *DropViewStatement) string
	VisitColumnDef(node *ColumnDef) string

	VisitWindowFunction(node *WindowFuncNode) string
	VisitOver(node *OverNode) string
	VisitSetOperation(node *SetOperationNode) string
	VisitCTE(node *CTENode) string
	VisitGroupingSet(node *GroupingSetNode) string
	VisitJSONPath(node *JSONPathNode) string
	VisitTableFunction(node *TableFunctionNode) string
	VisitMatch(node *MatchNode) string
}

// Compiler is implemented by visitors that track compilation state: the
// bind parameters collected while emitting placeholders, and the first
// error encountered (construction contract violations surface earlier, in
// the managers; Compiler errors are dialect capability gaps).
//
// Callers type-assert after SQL generation to extract parameters and to
// check that the dialect could actually express the tree.
type Compiler interface {
	Params() []any
	Err() error
	Reset()
}

// Literal wraps a raw Go value into a LiteralNode. If val already
// implements Node, it is returned as-is.
func Literal(val any) Node {
	if n, ok := val.(Node); ok {
		return n
	}
	lit := &LiteralNode{Value: val}
	lit.Predications.self = lit
	lit.Arithmetics.self = lit
	lit.Combinable.self = lit
	return lit
}
