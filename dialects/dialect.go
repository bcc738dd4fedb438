// Package dialects provides SQL dialect compilers that walk the AST and
// produce (sql, params) pairs. Each dialect embeds the shared base visitor
// and overrides only the spellings it disagrees with.
package dialects

import (
	"fmt"
	"strings"

	"github.com/arbordev/arbor/internal/quoting"
	"github.com/arbordev/arbor/nodes"
)

// Operator SQL strings for InfixOp values.
var infixOpSQL = [...]string{
	nodes.OpPlus:       "+",
	nodes.OpMinus:      "-",
	nodes.OpMultiply:   "*",
	nodes.OpDivide:     "/",
	nodes.OpModulo:     "%",
	nodes.OpConcat:     "||",
	nodes.OpBitwiseAnd: "&",
	nodes.OpBitwiseOr:  "|",
	nodes.OpBitwiseXor: "^",
	nodes.OpShiftLeft:  "<<",
	nodes.OpShiftRight: ">>",
}

// needsParens returns true if the node should be wrapped in parentheses
// when used as a child of an infix or unary math expression.
func needsParens(n nodes.Node) bool {
	switch n.(type) {
	case *nodes.InfixNode, *nodes.UnaryMathNode:
		return true
	}
	return false
}

// Operator SQL strings for ComparisonOp values.
var comparisonOpSQL = [...]string{
	nodes.OpEq:              "=",
	nodes.OpNotEq:           "!=",
	nodes.OpGt:              ">",
	nodes.OpGtEq:            ">=",
	nodes.OpLt:              "<",
	nodes.OpLtEq:            "<=",
	nodes.OpLike:            "LIKE",
	nodes.OpNotLike:         "NOT LIKE",
	nodes.OpRegexp:          "~",
	nodes.OpNotRegexp:       "!~",
	nodes.OpDistinctFrom:    "IS DISTINCT FROM",
	nodes.OpNotDistinctFrom: "IS NOT DISTINCT FROM",
	nodes.OpContains:        "@>",
	nodes.OpOverlaps:        "&&",
}

// SQL keywords for JoinType values.
var joinTypeSQL = [...]string{
	nodes.InnerJoin:      "INNER JOIN",
	nodes.LeftOuterJoin:  "LEFT OUTER JOIN",
	nodes.RightOuterJoin: "RIGHT OUTER JOIN",
	nodes.FullOuterJoin:  "FULL OUTER JOIN",
	nodes.CrossJoin:      "CROSS JOIN",
	nodes.StringJoin:     "",
}

// SQL keywords for LockMode values.
var lockModeSQL = [...]string{
	nodes.NoLock:         "",
	nodes.ForUpdate:      "FOR UPDATE",
	nodes.ForShare:       "FOR SHARE",
	nodes.ForNoKeyUpdate: "FOR NO KEY UPDATE",
	nodes.ForKeyShare:    "FOR KEY SHARE",
}

// Option configures a visitor at construction time.
type Option func(*baseVisitor)

// WithParams enables parameterized query mode. Parameterized mode is on by
// default; this option is kept so call sites can state it explicitly.
func WithParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = true
	}
}

// WithoutParams disables parameterized query mode.
//
// ⚠️ WARNING: Disables SQL injection protection. Only use for debugging or
// when you're certain all values are trusted. Production code should NEVER
// use this option.
//
// When disabled, literal values are interpolated directly into the SQL
// string with basic escaping only.
func WithoutParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = false
	}
}

// WithFeature force-enables a capability flag, for servers newer than the
// dialect's default matrix assumes.
func WithFeature(f Feature) Option {
	return func(b *baseVisitor) {
		b.features[f] = true
	}
}

// WithoutFeature force-disables a capability flag.
func WithoutFeature(f Feature) Option {
	return func(b *baseVisitor) {
		delete(b.features, f)
	}
}

// baseVisitor implements the shared SQL generation logic used by all
// dialects. Dialect-specific visitors embed *baseVisitor and set the outer
// field to themselves, enabling correct virtual dispatch through the
// Visitor interface.
type baseVisitor struct {
	// outer is the concrete dialect visitor. All recursive Accept calls
	// go through outer so that dialect overrides are respected.
	outer nodes.Visitor

	// name is the dialect name used in error messages.
	name string

	// quoteIdent quotes a SQL identifier (table name, column name).
	quoteIdent func(string) string

	// placeholder returns the bind placeholder for a given parameter index.
	// PostgreSQL uses $1, $2; MySQL/SQLite use ?; MSSQL uses @p1, @p2.
	placeholder func(int) string

	// paging writes the LIMIT/OFFSET portion of a SELECT. nil means the
	// ANSI-ish default (LIMIT n OFFSET m).
	paging func(sb *strings.Builder, n *nodes.SelectCore)

	// cteKeyword renders the WITH-clause prefix. nil means the standard
	// WITH / WITH RECURSIVE pair; SQL Server spells recursive CTEs with a
	// plain WITH.
	cteKeyword func(recursive bool) string

	// emptyInsert is the clause for an INSERT carrying no rows and no
	// SELECT. Empty means the standard " DEFAULT VALUES"; MySQL has no
	// such form and inserts an empty row instead.
	emptyInsert string

	// parameterize enables bind-parameter mode.
	parameterize bool

	// params accumulates bind parameter values during SQL generation.
	params []any

	// paramIndex tracks the next parameter number (1-based).
	paramIndex int

	// features is the dialect capability matrix.
	features map[Feature]bool

	// typeMap maps abstract column types to native type names for DDL.
	typeMap map[nodes.ColumnType]string

	// boolLiteral renders an inline boolean. nil means TRUE/FALSE keywords;
	// MSSQL has no boolean keywords and uses 1/0.
	boolLiteral func(bool) string

	// err records the first compilation error. Once set, generated SQL is
	// garbage and callers must discard it.
	err error
}

// applyOptions applies functional options to the baseVisitor.
func (b *baseVisitor) applyOptions(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

// Params returns the collected bind parameters from the last SQL generation.
func (b *baseVisitor) Params() []any {
	return b.params
}

// Err returns the first error recorded during the last SQL generation.
func (b *baseVisitor) Err() error {
	return b.err
}

// Reset clears collected parameters and the error for reuse.
func (b *baseVisitor) Reset() {
	b.params = nil
	b.paramIndex = 0
	b.err = nil
}

// fail records the first compilation error and returns an empty fragment.
func (b *baseVisitor) fail(err error) string {
	if b.err == nil {
		b.err = err
	}
	return ""
}

// Supports reports whether the dialect can express the given feature.
func (b *baseVisitor) Supports(f Feature) bool {
	return b.features[f]
}

// require checks a capability flag, recording an UnsupportedFeatureError
// when it is absent.
func (b *baseVisitor) require(f Feature) bool {
	if b.features[f] {
		return true
	}
	b.fail(&UnsupportedFeatureError{Feature: f, Dialect: b.name})
	return false
}

func (b *baseVisitor) VisitTable(n *nodes.Table) string {
	return b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitTableAlias(n *nodes.TableAlias) string {
	switch rel := n.Relation.(type) {
	case *nodes.Table:
		return b.quoteIdent(rel.Name) + " AS " + b.quoteIdent(n.AliasName)
	case *nodes.TableFunctionNode:
		return rel.Accept(b.outer) + " AS " + b.quoteIdent(n.AliasName)
	default:
		return "(" + n.Relation.Accept(b.outer) + ") AS " + b.quoteIdent(n.AliasName)
	}
}

func (b *baseVisitor) VisitAttribute(n *nodes.Attribute) string {
	return b.qualifierName(n.Relation) + "." + b.quoteIdent(n.Name)
}

// qualifierName returns the quoted name used to qualify a column reference.
func (b *baseVisitor) qualifierName(rel nodes.Node) string {
	return b.quoteIdent(nodes.RelationName(rel))
}

func (b *baseVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return b.literalToSQL(n.Value)
}

func (b *baseVisitor) literalToSQL(val any) string {
	// nil always renders as the NULL keyword, never parameterized.
	if val == nil {
		return "NULL"
	}

	// In parameterize mode, emit a placeholder and collect the value.
	if b.parameterize {
		b.paramIndex++
		b.params = append(b.params, val)
		return b.placeholder(b.paramIndex)
	}

	switch v := val.(type) {
	case string:
		return "'" + quoting.EscapeString(v) + "'"
	case bool:
		if b.boolLiteral != nil {
			return b.boolLiteral(v)
		}
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%g", v)
	default:
		return b.fail(fmt.Errorf("arbor: unsupported literal type %T", v))
	}
}

func (b *baseVisitor) VisitStar(n *nodes.StarNode) string {
	if n.Table != nil {
		return b.quoteIdent(n.Table.Name) + ".*"
	}
	return "*"
}

func (b *baseVisitor) VisitSqlLiteral(n *nodes.SqlLiteral) string {
	if b.parameterize && len(n.Binds) > 0 {
		b.params = append(b.params, n.Binds...)
		for range n.Binds {
			b.paramIndex++
		}
	}
	return n.Raw
}

func (b *baseVisitor) VisitBindParam(n *nodes.BindParamNode) string {
	// Always parameterize, even when the visitor runs without params.
	b.paramIndex++
	b.params = append(b.params, n.Value)
	return b.placeholder(b.paramIndex)
}

func (b *baseVisitor) VisitCasted(n *nodes.CastedNode) string {
	valSQL := b.literalToSQL(n.Value)
	if n.TypeName != "" {
		if !b.validTypeName(n.TypeName) {
			return ""
		}
		return "CAST(" + valSQL + " AS " + n.TypeName + ")"
	}
	return valSQL
}

func (b *baseVisitor) VisitAlias(n *nodes.AliasNode) string {
	return n.Expr.Accept(b.outer) + " AS " + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	return "(" + n.Expr.Accept(b.outer) + ")"
}

// isNullLiteral reports whether a node is a literal nil value.
func isNullLiteral(n nodes.Node) bool {
	lit, ok := n.(*nodes.LiteralNode)
	return ok && lit.Value == nil
}

func (b *baseVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	// Comparisons against a nil literal are rewritten to IS [NOT] NULL so
	// they never produce the always-unknown "= NULL".
	if isNullLiteral(n.Right) {
		switch n.Op {
		case nodes.OpEq:
			return n.Left.Accept(b.outer) + " IS NULL"
		case nodes.OpNotEq:
			return n.Left.Accept(b.outer) + " IS NOT NULL"
		}
	}
	left := n.Left.Accept(b.outer)
	right := n.Right.Accept(b.outer)
	// Case-insensitive LIKE: dialects with a native operator override this;
	// everyone else lowers both sides.
	switch n.Op {
	case nodes.OpILike:
		return "LOWER(" + left + ") LIKE LOWER(" + right + ")"
	case nodes.OpNotILike:
		return "LOWER(" + left + ") NOT LIKE LOWER(" + right + ")"
	}
	return left + " " + comparisonOpSQL[n.Op] + " " + right
}

func (b *baseVisitor) VisitUnary(n *nodes.UnaryNode) string {
	expr := n.Expr.Accept(b.outer)
	switch n.Op {
	case nodes.OpIsNull:
		return expr + " IS NULL"
	case nodes.OpIsNotNull:
		return expr + " IS NOT NULL"
	default:
		return expr
	}
}

func (b *baseVisitor) VisitAnd(n *nodes.AndNode) string {
	return n.Left.Accept(b.outer) + " AND " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitOr(n *nodes.OrNode) string {
	return n.Left.Accept(b.outer) + " OR " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitNot(n *nodes.NotNode) string {
	return "NOT (" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitIn(n *nodes.InNode) string {
	if n.Query != nil {
		expr := n.Expr.Accept(b.outer)
		keyword := "IN"
		if n.Negate {
			keyword = "NOT IN"
		}
		return expr + " " + keyword + " (" + n.Query.Accept(b.outer) + ")"
	}
	// Empty value lists compile to a constant predicate: nothing is inside
	// the empty set, everything is outside it. The constant forms avoid
	// invalid "IN ()" syntax and NULL three-valued-logic surprises.
	if len(n.Vals) == 0 {
		if n.Negate {
			return "1=1"
		}
		return "1=0"
	}
	expr := n.Expr.Accept(b.outer)
	vals := make([]string, len(n.Vals))
	for i, v := range n.Vals {
		vals[i] = v.Accept(b.outer)
	}
	keyword := "IN"
	if n.Negate {
		keyword = "NOT IN"
	}
	return expr + " " + keyword + " (" + strings.Join(vals, ", ") + ")"
}

func (b *baseVisitor) VisitBetween(n *nodes.BetweenNode) string {
	expr := n.Expr.Accept(b.outer)
	low := n.Low.Accept(b.outer)
	high := n.High.Accept(b.outer)
	keyword := "BETWEEN"
	if n.Negate {
		keyword = "NOT BETWEEN"
	}
	return expr + " " + keyword + " " + low + " AND " + high
}

func (b *baseVisitor) VisitExists(n *nodes.ExistsNode) string {
	var sb strings.Builder
	if n.Negated {
		sb.WriteString("NOT ")
	}
	sb.WriteString("EXISTS (")
	sb.WriteString(n.Subquery.Accept(b.outer))
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitInfix(n *nodes.InfixNode) string {
	left := n.Left.Accept(b.outer)
	if needsParens(n.Left) {
		left = "(" + left + ")"
	}
	right := n.Right.Accept(b.outer)
	if needsParens(n.Right) {
		right = "(" + right + ")"
	}
	return left + " " + infixOpSQL[n.Op] + " " + right
}

func (b *baseVisitor) VisitUnaryMath(n *nodes.UnaryMathNode) string {
	expr := n.Expr.Accept(b.outer)
	if needsParens(n.Expr) {
		expr = "(" + expr + ")"
	}
	return "~" + expr
}

func (b *baseVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	if !b.validFunctionName(n.Name) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.Name)
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for i, arg := range n.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Accept(b.outer))
	}
	sb.WriteString(")")
	return sb.String()
}

// Aggregate function SQL names.
var aggregateFuncSQL = [...]string{
	nodes.AggCount: "COUNT",
	nodes.AggSum:   "SUM",
	nodes.AggAvg:   "AVG",
	nodes.AggMin:   "MIN",
	nodes.AggMax:   "MAX",
}

func (b *baseVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	var sb strings.Builder
	sb.WriteString(aggregateFuncSQL[n.Func])
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if n.Expr == nil {
		sb.WriteString("*")
	} else {
		sb.WriteString(n.Expr.Accept(b.outer))
	}
	sb.WriteString(")")
	if n.Filter != nil {
		sb.WriteString(" FILTER (WHERE ")
		sb.WriteString(n.Filter.Accept(b.outer))
		sb.WriteString(")")
	}
	return sb.String()
}

// Extract field SQL names.
var extractFieldSQL = [...]string{
	nodes.ExtractYear:    "YEAR",
	nodes.ExtractMonth:   "MONTH",
	nodes.ExtractDay:     "DAY",
	nodes.ExtractHour:    "HOUR",
	nodes.ExtractMinute:  "MINUTE",
	nodes.ExtractSecond:  "SECOND",
	nodes.ExtractDow:     "DOW",
	nodes.ExtractDoy:     "DOY",
	nodes.ExtractEpoch:   "EPOCH",
	nodes.ExtractQuarter: "QUARTER",
	nodes.ExtractWeek:    "WEEK",
}

func (b *baseVisitor) VisitExtract(n *nodes.ExtractNode) string {
	return "EXTRACT(" + extractFieldSQL[n.Field] + " FROM " + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitCase(n *nodes.CaseNode) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	if n.Operand != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Operand.Accept(b.outer))
	}
	for _, w := range n.Whens {
		sb.WriteString(" WHEN ")
		sb.WriteString(w.Condition.Accept(b.outer))
		sb.WriteString(" THEN ")
		sb.WriteString(w.Result.Accept(b.outer))
	}
	if n.ElseVal != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(n.ElseVal.Accept(b.outer))
	}
	sb.WriteString(" END")
	return sb.String()
}

func (b *baseVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(b.outer)
	if n.Direction == nodes.Desc {
		expr += " DESC"
	} else {
		expr += " ASC"
	}
	switch n.Nulls {
	case nodes.NullsFirst:
		expr += " NULLS FIRST"
	case nodes.NullsLast:
		expr += " NULLS LAST"
	}
	return expr
}

func (b *baseVisitor) VisitJoin(n *nodes.JoinNode) string {
	// StringJoin: raw SQL fragment, output directly.
	if n.Type == nodes.StringJoin {
		return n.Right.Accept(b.outer)
	}
	if n.Type == nodes.FullOuterJoin && !b.require(FeatureFullOuterJoin) {
		return ""
	}
	if n.Lateral && !b.require(FeatureLateral) {
		return ""
	}

	rightSQL := n.Right.Accept(b.outer)

	// Wrap subqueries in parentheses.
	switch n.Right.(type) {
	case *nodes.SelectCore, *nodes.SetOperationNode:
		rightSQL = "(" + rightSQL + ")"
	}

	var sb strings.Builder
	if n.Natural {
		sb.WriteString("NATURAL ")
	}
	sb.WriteString(joinTypeSQL[n.Type])
	if n.Lateral {
		sb.WriteString(" LATERAL")
	}
	sb.WriteString(" ")
	sb.WriteString(rightSQL)

	switch {
	case n.On != nil:
		sb.WriteString(" ON ")
		sb.WriteString(n.On.Accept(b.outer))
	case len(n.Using) > 0:
		sb.WriteString(" USING (")
		cols := make([]string, len(n.Using))
		for i, c := range n.Using {
			cols[i] = b.columnName(c)
		}
		sb.WriteString(strings.Join(cols, ", "))
		sb.WriteString(")")
	}

	return sb.String()
}

// columnName renders a bare (unqualified) column name from an attribute or
// passes other nodes through the visitor.
func (b *baseVisitor) columnName(n nodes.Node) string {
	if attr, ok := n.(*nodes.Attribute); ok {
		return b.quoteIdent(attr.Name)
	}
	return n.Accept(b.outer)
}

func (b *baseVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	var sb strings.Builder

	b.writeCTEs(&sb, n.CTEs)
	b.writeComment(&sb, n.Comment)
	sb.WriteString("SELECT ")
	b.writeDistinct(&sb, n.Distinct, n.DistinctOn)
	b.writeProjections(&sb, n.Projections)
	b.writeFrom(&sb, n.From)
	b.writeJoins(&sb, n.Joins)
	b.writeClause(&sb, " WHERE ", n.Wheres, " AND ")
	b.writeClause(&sb, " GROUP BY ", n.Groups, ", ")
	b.writeClause(&sb, " HAVING ", n.Havings, " AND ")
	b.writeWindowClause(&sb, n.Windows)
	if len(n.Qualifies) > 0 && b.require(FeatureQualify) {
		b.writeClause(&sb, " QUALIFY ", n.Qualifies, " AND ")
	}
	b.writeClause(&sb, " ORDER BY ", n.Orders, ", ")
	b.writePaging(&sb, n)
	b.writeLock(&sb, n)

	return sb.String()
}

// writePaging emits LIMIT/OFFSET through the dialect hook, defaulting to
// the ANSI-ish LIMIT n OFFSET m.
func (b *baseVisitor) writePaging(sb *strings.Builder, n *nodes.SelectCore) {
	if n.Limit == nil && n.Offset == nil {
		return
	}
	if b.paging != nil {
		b.paging(sb, n)
		return
	}
	b.writeNodeClause(sb, " LIMIT ", n.Limit)
	b.writeNodeClause(sb, " OFFSET ", n.Offset)
}

// writeClause writes "keyword item1 sep item2 sep ..." if items is non-empty.
func (b *baseVisitor) writeClause(sb *strings.Builder, keyword string, items []nodes.Node, sep string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(keyword)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(item.Accept(b.outer))
	}
}

// writeNodeClause writes "keyword node" if node is non-nil.
func (b *baseVisitor) writeNodeClause(sb *strings.Builder, keyword string, n nodes.Node) {
	if n != nil {
		sb.WriteString(keyword)
		sb.WriteString(n.Accept(b.outer))
	}
}

func (b *baseVisitor) writeCTEs(sb *strings.Builder, ctes []*nodes.CTENode) {
	if len(ctes) == 0 {
		return
	}
	if !b.require(FeatureCTE) {
		return
	}
	hasRecursive := false
	for _, cte := range ctes {
		if cte.Recursive {
			hasRecursive = true
			break
		}
	}
	if hasRecursive && !b.require(FeatureRecursiveCTE) {
		return
	}
	if b.cteKeyword != nil {
		sb.WriteString(b.cteKeyword(hasRecursive))
	} else if hasRecursive {
		sb.WriteString("WITH RECURSIVE ")
	} else {
		sb.WriteString("WITH ")
	}
	for i, cte := range ctes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(cte.Accept(b.outer))
	}
	sb.WriteString(" ")
}

func (b *baseVisitor) VisitCTE(n *nodes.CTENode) string {
	var sb strings.Builder
	sb.WriteString(b.quoteIdent(n.Name))
	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		quoted := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			quoted[i] = b.quoteIdent(c)
		}
		sb.WriteString(strings.Join(quoted, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" AS ")
	if n.Materialized != nil {
		if *n.Materialized {
			sb.WriteString("MATERIALIZED ")
		} else {
			sb.WriteString("NOT MATERIALIZED ")
		}
	}
	sb.WriteString("(")
	sb.WriteString(n.Query.Accept(b.outer))
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) writeComment(sb *strings.Builder, comment string) {
	if comment != "" {
		sb.WriteString("/* ")
		sb.WriteString(strings.ReplaceAll(comment, "*/", "* /"))
		sb.WriteString(" */ ")
	}
}

func (b *baseVisitor) writeDistinct(sb *strings.Builder, distinct bool, distinctOn []nodes.Node) {
	if len(distinctOn) > 0 {
		if !b.require(FeatureDistinctOn) {
			return
		}
		sb.WriteString("DISTINCT ON (")
		for i, c := range distinctOn {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.Accept(b.outer))
		}
		sb.WriteString(") ")
	} else if distinct {
		sb.WriteString("DISTINCT ")
	}
}

func (b *baseVisitor) writeProjections(sb *strings.Builder, projections []nodes.Node) {
	if len(projections) == 0 {
		sb.WriteString("*")
		return
	}
	for i, p := range projections {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Accept(b.outer))
	}
}

func (b *baseVisitor) writeFrom(sb *strings.Builder, from nodes.Node) {
	if from != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(from.Accept(b.outer))
	}
}

func (b *baseVisitor) writeJoins(sb *strings.Builder, joins []*nodes.JoinNode) {
	for _, j := range joins {
		sb.WriteString(" ")
		sb.WriteString(j.Accept(b.outer))
	}
}

func (b *baseVisitor) writeWindowClause(sb *strings.Builder, windows []*nodes.WindowDefinition) {
	if len(windows) == 0 {
		return
	}
	if !b.require(FeatureWindowFunctions) {
		return
	}
	sb.WriteString(" WINDOW ")
	for i, w := range windows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.quoteIdent(w.Name))
		sb.WriteString(" AS ")
		sb.WriteString(b.renderWindowDef(&nodes.WindowDefinition{
			PartitionBy: w.PartitionBy,
			OrderBy:     w.OrderBy,
			Frame:       w.Frame,
		}))
	}
}

func (b *baseVisitor) writeLock(sb *strings.Builder, n *nodes.SelectCore) {
	if n.Lock == nodes.NoLock {
		return
	}
	if !b.require(FeatureRowLocking) {
		return
	}
	sb.WriteString(" ")
	sb.WriteString(lockModeSQL[n.Lock])
	if n.NoWait {
		sb.WriteString(" NOWAIT")
	} else if n.SkipLocked {
		if !b.require(FeatureSkipLocked) {
			return
		}
		sb.WriteString(" SKIP LOCKED")
	}
}

// Window function SQL names.
var windowFuncSQL = [...]string{
	nodes.WinRowNumber:   "ROW_NUMBER",
	nodes.WinRank:        "RANK",
	nodes.WinDenseRank:   "DENSE_RANK",
	nodes.WinNtile:       "NTILE",
	nodes.WinLag:         "LAG",
	nodes.WinLead:        "LEAD",
	nodes.WinFirstValue:  "FIRST_VALUE",
	nodes.WinLastValue:   "LAST_VALUE",
	nodes.WinNthValue:    "NTH_VALUE",
	nodes.WinCumeDist:    "CUME_DIST",
	nodes.WinPercentRank: "PERCENT_RANK",
}

func (b *baseVisitor) VisitWindowFunction(n *nodes.WindowFuncNode) string {
	var sb strings.Builder
	sb.WriteString(windowFuncSQL[n.Func])
	sb.WriteString("(")
	for i, arg := range n.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Accept(b.outer))
	}
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitOver(n *nodes.OverNode) string {
	if !b.require(FeatureWindowFunctions) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.Expr.Accept(b.outer))
	sb.WriteString(" OVER ")
	if n.WindowName != "" {
		sb.WriteString(b.quoteIdent(n.WindowName))
	} else {
		sb.WriteString(b.renderWindowDef(n.Window))
	}
	return sb.String()
}

// renderWindowDef renders a window definition: (PARTITION BY ... ORDER BY
// ... ROWS/RANGE ...).
func (b *baseVisitor) renderWindowDef(w *nodes.WindowDefinition) string {
	if w == nil {
		return "()"
	}
	var sb strings.Builder
	sb.WriteString("(")
	needSpace := false
	if len(w.PartitionBy) > 0 {
		sb.WriteString("PARTITION BY ")
		parts := make([]string, len(w.PartitionBy))
		for i, p := range w.PartitionBy {
			parts[i] = p.Accept(b.outer)
		}
		sb.WriteString(strings.Join(parts, ", "))
		needSpace = true
	}
	if len(w.OrderBy) > 0 {
		if needSpace {
			sb.WriteString(" ")
		}
		sb.WriteString("ORDER BY ")
		orders := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			orders[i] = o.Accept(b.outer)
		}
		sb.WriteString(strings.Join(orders, ", "))
		needSpace = true
	}
	if w.Frame != nil {
		if needSpace {
			sb.WriteString(" ")
		}
		sb.WriteString(b.renderFrame(w.Frame))
	}
	sb.WriteString(")")
	return sb.String()
}

// Frame type SQL keywords.
var frameTypeSQL = [...]string{
	nodes.FrameRows:  "ROWS",
	nodes.FrameRange: "RANGE",
}

func (b *baseVisitor) renderFrame(f *nodes.WindowFrame) string {
	var sb strings.Builder
	sb.WriteString(frameTypeSQL[f.Type])
	if f.End != nil {
		sb.WriteString(" BETWEEN ")
		sb.WriteString(b.renderBound(f.Start))
		sb.WriteString(" AND ")
		sb.WriteString(b.renderBound(*f.End))
	} else {
		sb.WriteString(" ")
		sb.WriteString(b.renderBound(f.Start))
	}
	return sb.String()
}

func (b *baseVisitor) renderBound(fb nodes.FrameBound) string {
	switch fb.Type {
	case nodes.BoundUnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case nodes.BoundPreceding:
		return fb.Offset.Accept(b.outer) + " PRECEDING"
	case nodes.BoundCurrentRow:
		return "CURRENT ROW"
	case nodes.BoundFollowing:
		return fb.Offset.Accept(b.outer) + " FOLLOWING"
	case nodes.BoundUnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	default:
		return ""
	}
}

func (b *baseVisitor) VisitSetOperation(n *nodes.SetOperationNode) string {
	switch n.Op {
	case nodes.IntersectAll:
		if !b.require(FeatureIntersectAll) {
			return ""
		}
	case nodes.ExceptAll:
		if !b.require(FeatureExceptAll) {
			return ""
		}
	}
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.Left.Accept(b.outer))
	sb.WriteString(") ")
	sb.WriteString(n.Op.String())
	sb.WriteString(" (")
	sb.WriteString(n.Right.Accept(b.outer))
	sb.WriteString(")")
	b.writeClause(&sb, " ORDER BY ", n.Orders, ", ")
	// Paging on the combined result goes through the dialect hook, same as
	// on a plain SELECT. The synthetic core carries only the paging fields.
	b.writePaging(&sb, &nodes.SelectCore{Orders: n.Orders, Limit: n.Limit, Offset: n.Offset})
	return sb.String()
}

// Grouping set kind SQL keywords.
var groupingSetKindSQL = [...]string{
	nodes.GroupingSets: "GROUPING SETS",
	nodes.Rollup:       "ROLLUP",
	nodes.Cube:         "CUBE",
}

func (b *baseVisitor) VisitGroupingSet(n *nodes.GroupingSetNode) string {
	if !b.require(FeatureGroupingSets) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(groupingSetKindSQL[n.Kind])
	sb.WriteString(" (")
	if n.Kind == nodes.GroupingSets {
		for i, set := range n.Sets {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			for j, col := range set {
				if j > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(col.Accept(b.outer))
			}
			sb.WriteString(")")
		}
	} else if len(n.Sets) > 0 {
		for i, col := range n.Sets[0] {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(col.Accept(b.outer))
		}
	}
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitInsertStatement(n *nodes.InsertStatement) string {
	var sb strings.Builder

	sb.WriteString("INSERT INTO ")
	sb.WriteString(n.Into.Accept(b.outer))

	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		cols := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = b.columnName(c)
		}
		sb.WriteString(strings.Join(cols, ", "))
		sb.WriteString(")")
	}

	if n.Select != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Select.Accept(b.outer))
	} else if len(n.Values) > 0 {
		sb.WriteString(" VALUES ")
		rows := make([]string, len(n.Values))
		for i, row := range n.Values {
			vals := make([]string, len(row))
			for j, v := range row {
				vals[j] = v.Accept(b.outer)
			}
			rows[i] = "(" + strings.Join(vals, ", ") + ")"
		}
		sb.WriteString(strings.Join(rows, ", "))
	} else if b.emptyInsert != "" {
		sb.WriteString(b.emptyInsert)
	} else {
		sb.WriteString(" DEFAULT VALUES")
	}

	if n.OnConflict != nil {
		if !b.require(FeatureOnConflict) {
			return ""
		}
		sb.WriteString(" ")
		sb.WriteString(n.OnConflict.Accept(b.outer))
	}

	b.writeReturning(&sb, n.Returning)
	return sb.String()
}

func (b *baseVisitor) writeReturning(sb *strings.Builder, returning []nodes.Node) {
	if len(returning) == 0 {
		return
	}
	if !b.require(FeatureReturning) {
		return
	}
	sb.WriteString(" RETURNING ")
	rets := make([]string, len(returning))
	for i, r := range returning {
		rets[i] = r.Accept(b.outer)
	}
	sb.WriteString(strings.Join(rets, ", "))
}

func (b *baseVisitor) VisitOnConflict(n *nodes.OnConflictNode) string {
	var sb strings.Builder

	sb.WriteString("ON CONFLICT")

	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		cols := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = b.columnName(c)
		}
		sb.WriteString(strings.Join(cols, ", "))
		sb.WriteString(")")
	}

	if n.Action == nodes.DoNothing {
		sb.WriteString(" DO NOTHING")
	} else {
		sb.WriteString(" DO UPDATE SET ")
		assigns := make([]string, len(n.Assignments))
		for i, a := range n.Assignments {
			assigns[i] = a.Accept(b.outer)
		}
		sb.WriteString(strings.Join(assigns, ", "))

		if len(n.Wheres) > 0 {
			sb.WriteString(" WHERE ")
			wheres := make([]string, len(n.Wheres))
			for i, w := range n.Wheres {
				wheres[i] = w.Accept(b.outer)
			}
			sb.WriteString(strings.Join(wheres, " AND "))
		}
	}

	return sb.String()
}

func (b *baseVisitor) VisitUpdateStatement(n *nodes.UpdateStatement) string {
	var sb strings.Builder

	sb.WriteString("UPDATE ")
	sb.WriteString(n.Table.Accept(b.outer))

	if len(n.Assignments) > 0 {
		sb.WriteString(" SET ")
		assigns := make([]string, len(n.Assignments))
		for i, a := range n.Assignments {
			assigns[i] = a.Accept(b.outer)
		}
		sb.WriteString(strings.Join(assigns, ", "))
	}

	if len(n.From) > 0 {
		if !b.require(FeatureUpdateFrom) {
			return ""
		}
		sb.WriteString(" FROM ")
		froms := make([]string, len(n.From))
		for i, f := range n.From {
			froms[i] = f.Accept(b.outer)
		}
		sb.WriteString(strings.Join(froms, ", "))
	}

	b.writeClause(&sb, " WHERE ", n.Wheres, " AND ")
	b.writeReturning(&sb, n.Returning)
	return sb.String()
}

func (b *baseVisitor) VisitDeleteStatement(n *nodes.DeleteStatement) string {
	var sb strings.Builder

	sb.WriteString("DELETE FROM ")
	sb.WriteString(n.From.Accept(b.outer))

	if len(n.Using) > 0 {
		if !b.require(FeatureDeleteUsing) {
			return ""
		}
		sb.WriteString(" USING ")
		usings := make([]string, len(n.Using))
		for i, u := range n.Using {
			usings[i] = u.Accept(b.outer)
		}
		sb.WriteString(strings.Join(usings, ", "))
	}

	b.writeClause(&sb, " WHERE ", n.Wheres, " AND ")
	b.writeReturning(&sb, n.Returning)
	return sb.String()
}

func (b *baseVisitor) VisitAssignment(n *nodes.AssignmentNode) string {
	// SET targets are bare column names: "UPDATE t SET t.c" is invalid on
	// most servers.
	return b.columnName(n.Left) + " = " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitMergeStatement(n *nodes.MergeStatement) string {
	if !b.require(FeatureMerge) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("MERGE INTO ")
	sb.WriteString(n.Target.Accept(b.outer))
	sb.WriteString(" USING ")
	sb.WriteString(n.Source.Accept(b.outer))
	sb.WriteString(" ON ")
	sb.WriteString(n.On.Accept(b.outer))
	for _, a := range n.Actions {
		sb.WriteString(b.renderMergeAction(a))
	}
	return sb.String()
}

func (b *baseVisitor) renderMergeAction(a *nodes.MergeAction) string {
	var sb strings.Builder
	if a.When == nodes.WhenMatched {
		sb.WriteString(" WHEN MATCHED")
	} else {
		sb.WriteString(" WHEN NOT MATCHED")
	}
	if a.Condition != nil {
		sb.WriteString(" AND ")
		sb.WriteString(a.Condition.Accept(b.outer))
	}
	sb.WriteString(" THEN ")
	switch a.Action {
	case nodes.MergeUpdate:
		sb.WriteString("UPDATE SET ")
		assigns := make([]string, len(a.Assignments))
		for i, as := range a.Assignments {
			assigns[i] = as.Accept(b.outer)
		}
		sb.WriteString(strings.Join(assigns, ", "))
	case nodes.MergeInsert:
		sb.WriteString("INSERT")
		if len(a.Columns) > 0 {
			sb.WriteString(" (")
			cols := make([]string, len(a.Columns))
			for i, c := range a.Columns {
				cols[i] = b.columnName(c)
			}
			sb.WriteString(strings.Join(cols, ", "))
			sb.WriteString(")")
		}
		sb.WriteString(" VALUES (")
		vals := make([]string, len(a.Values))
		for i, v := range a.Values {
			vals[i] = v.Accept(b.outer)
		}
		sb.WriteString(strings.Join(vals, ", "))
		sb.WriteString(")")
	case nodes.MergeDelete:
		sb.WriteString("DELETE")
	case nodes.MergeDoNothing:
		sb.WriteString("DO NOTHING")
	}
	return sb.String()
}

// typeName maps an abstract column type to the dialect's native type name.
func (b *baseVisitor) typeName(t nodes.ColumnType, size int) string {
	name, ok := b.typeMap[t]
	if !ok {
		return b.fail(fmt.Errorf("arbor: %s has no type mapping for %s", b.name, t))
	}
	if t == nodes.TypeString && size > 0 {
		return fmt.Sprintf("%s(%d)", name, size)
	}
	return name
}

func (b *baseVisitor) VisitColumnDef(n *nodes.ColumnDef) string {
	var sb strings.Builder
	sb.WriteString(b.quoteIdent(n.Name))
	sb.WriteString(" ")
	sb.WriteString(b.typeName(n.Type, n.Size))
	if n.PrimaryKey {
		sb.WriteString(" PRIMARY KEY")
	}
	if n.NotNull && !n.PrimaryKey {
		sb.WriteString(" NOT NULL")
	}
	if n.Unique && !n.PrimaryKey {
		sb.WriteString(" UNIQUE")
	}
	if n.Default != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(n.Default.Accept(b.outer))
	}
	return sb.String()
}

func (b *baseVisitor) VisitCreateTable(n *nodes.CreateTableStatement) string {
	if len(n.Columns) == 0 {
		return b.fail(fmt.Errorf("arbor: CREATE TABLE %s has no columns", n.Table.Name))
	}
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if n.Temporary {
		sb.WriteString("TEMPORARY ")
	}
	sb.WriteString("TABLE ")
	if n.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(n.Table.Accept(b.outer))
	sb.WriteString(" (")
	cols := make([]string, len(n.Columns))
	for i, c := range n.Columns {
		cols[i] = c.Accept(b.outer)
	}
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitDropTable(n *nodes.DropTableStatement) string {
	var sb strings.Builder
	sb.WriteString("DROP TABLE ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(n.Table.Accept(b.outer))
	return sb.String()
}

func (b *baseVisitor) VisitCreateView(n *nodes.CreateViewStatement) string {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if n.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	sb.WriteString("VIEW ")
	sb.WriteString(b.quoteIdent(n.Name))
	sb.WriteString(" AS ")
	sb.WriteString(n.Query.Accept(b.outer))
	return sb.String()
}

func (b *baseVisitor) VisitDropView(n *nodes.DropViewStatement) string {
	var sb strings.Builder
	sb.WriteString("DROP VIEW ")
	if n.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(b.quoteIdent(n.Name))
	return sb.String()
}

// VisitJSONPath renders PostgreSQL-style arrow chains. Other dialects
// override with their own extraction functions.
func (b *baseVisitor) VisitJSONPath(n *nodes.JSONPathNode) string {
	var sb strings.Builder
	sb.WriteString(n.Expr.Accept(b.outer))
	last := len(n.Keys) - 1
	for i, key := range n.Keys {
		if i == last && n.AsText {
			sb.WriteString(" ->> ")
		} else {
			sb.WriteString(" -> ")
		}
		sb.WriteString("'" + quoting.EscapeString(key) + "'")
	}
	return sb.String()
}

func (b *baseVisitor) VisitTableFunction(n *nodes.TableFunctionNode) string {
	if !b.require(FeatureTableFunctions) {
		return ""
	}
	if !b.validFunctionName(n.Name) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.Name)
	sb.WriteString("(")
	for i, arg := range n.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Accept(b.outer))
	}
	sb.WriteString(")")
	if n.Ordinality {
		sb.WriteString(" WITH ORDINALITY")
	}
	if n.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(b.quoteIdent(n.Alias))
		if len(n.ColumnAliases) > 0 {
			sb.WriteString(" (")
			cols := make([]string, len(n.ColumnAliases))
			for i, c := range n.ColumnAliases {
				cols[i] = b.quoteIdent(c)
			}
			sb.WriteString(strings.Join(cols, ", "))
			sb.WriteString(")")
		}
	}
	return sb.String()
}

func (b *baseVisitor) VisitMatch(n *nodes.MatchNode) string {
	if !b.require(FeatureGraphMatch) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("MATCH(")
	sb.WriteString(b.graphName(n.Start))
	for _, hop := range n.Hops {
		if hop.Direction == nodes.EdgeOut {
			sb.WriteString("-(")
			sb.WriteString(b.graphName(hop.Edge))
			sb.WriteString(")->")
		} else {
			sb.WriteString("<-(")
			sb.WriteString(b.graphName(hop.Edge))
			sb.WriteString(")-")
		}
		sb.WriteString(b.graphName(hop.Target))
	}
	sb.WriteString(")")
	return sb.String()
}

// graphName renders a vertex or edge reference inside a MATCH pattern.
func (b *baseVisitor) graphName(n nodes.Node) string {
	if name := nodes.RelationName(n); name != "" {
		return b.quoteIdent(name)
	}
	return n.Accept(b.outer)
}

// validTypeName records an error when the type name contains characters
// outside letters, digits, spaces, parentheses, commas, and underscores.
// This prevents SQL injection through crafted type names.
func (b *baseVisitor) validTypeName(name string) bool {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != ' ' && c != '(' &&
			c != ')' && c != ',' && c != '_' {
			b.fail(fmt.Errorf("arbor: invalid SQL type name character %q in %q", string(c), name))
			return false
		}
	}
	return true
}

// validFunctionName records an error when the function name contains
// characters outside letters, digits, and underscores.
func (b *baseVisitor) validFunctionName(name string) bool {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' {
			b.fail(fmt.Errorf("arbor: invalid SQL function name character %q in %q", string(c), name))
			return false
		}
	}
	return true
}
