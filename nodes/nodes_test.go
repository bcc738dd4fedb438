package nodes

import "testing"

// --- Table / Attribute creation ---

func TestTableCreatesAttributes(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	col := users.Col("id")

	if col.Name != "id" {
		t.Errorf("expected col name %q, got %q", "id", col.Name)
	}
	if col.Relation != users {
		t.Error("expected attribute relation to be the users table")
	}
}

func TestTableAlias(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	u := users.Alias("u")

	if u.AliasName != "u" {
		t.Errorf("expected alias %q, got %q", "u", u.AliasName)
	}
	if u.Relation != users {
		t.Error("expected alias to reference the original table")
	}
}

func TestTableAliasCreatesAttributes(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	u := users.Alias("u")
	col := u.Col("name")

	if col.Name != "name" {
		t.Errorf("expected col name %q, got %q", "name", col.Name)
	}
	if col.Relation != u {
		t.Error("expected attribute relation to be the table alias")
	}
}

func TestTableStar(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	star := users.Star()

	if star.Table != users {
		t.Error("expected qualified star to reference the table")
	}
}

func TestUnqualifiedStar(t *testing.T) {
	t.Parallel()
	star := Star()
	if star.Table != nil {
		t.Error("expected unqualified star to have nil table")
	}
}

func TestRelationName(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	if got := RelationName(users); got != "users" {
		t.Errorf("expected %q, got %q", "users", got)
	}
	if got := RelationName(users.Alias("u")); got != "u" {
		t.Errorf("expected %q, got %q", "u", got)
	}
	if got := RelationName(Literal(1)); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
}

func TestTableSourceNameLooksThroughAliases(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	if got := TableSourceName(users.Alias("u")); got != "users" {
		t.Errorf("expected %q, got %q", "users", got)
	}
}

// --- Literal wrapping ---

func TestLiteralWrapsRawValues(t *testing.T) {
	t.Parallel()
	n := Literal(42)
	lit, ok := n.(*LiteralNode)
	if !ok {
		t.Fatalf("expected *LiteralNode, got %T", n)
	}
	if lit.Value != 42 {
		t.Errorf("expected value 42, got %v", lit.Value)
	}
}

func TestLiteralPassesThroughNodes(t *testing.T) {
	t.Parallel()
	attr := NewAttribute(NewTable("t"), "col")
	n := Literal(attr)
	if n != attr {
		t.Error("expected Literal to pass through an existing Node")
	}
}

func TestLiteralSetsSelfPointers(t *testing.T) {
	t.Parallel()
	n := Literal(42)
	lit := n.(*LiteralNode)

	// Predications.self must be set so chaining works without nil panic
	cmp := lit.Eq(10)
	if cmp.Left != lit {
		t.Error("expected Left to be the literal node")
	}

	// Combinable.self must be set so And/Or work
	other := NewAttribute(NewTable("t"), "col").Eq(1)
	andNode := lit.Eq(10).And(other)
	if andNode == nil {
		t.Error("expected And to produce a non-nil node")
	}
}

// --- Predications return correct node types ---

func TestEqReturnsComparisonNodeWithOpEq(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	col := users.Col("name")
	cmp := col.Eq("Alice")

	if cmp.Op != OpEq {
		t.Errorf("expected OpEq, got %d", cmp.Op)
	}
	if cmp.Left != col {
		t.Error("expected left to be the attribute")
	}
	right, ok := cmp.Right.(*LiteralNode)
	if !ok {
		t.Fatalf("expected right to be *LiteralNode, got %T", cmp.Right)
	}
	if right.Value != "Alice" {
		t.Errorf("expected right value %q, got %v", "Alice", right.Value)
	}
}

func TestComparisons(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x")

	tests := []struct {
		name string
		node *ComparisonNode
		want ComparisonOp
	}{
		{"NotEq", col.NotEq(1), OpNotEq},
		{"Gt", col.Gt(10), OpGt},
		{"GtEq", col.GtEq(10), OpGtEq},
		{"Lt", col.Lt(5), OpLt},
		{"LtEq", col.LtEq(5), OpLtEq},
		{"Like", col.Like("%foo%"), OpLike},
		{"NotLike", col.NotLike("%bar%"), OpNotLike},
		{"ILike", col.ILike("%foo%"), OpILike},
		{"NotILike", col.NotILike("%bar%"), OpNotILike},
		{"Matches", col.Matches("^A.*"), OpRegexp},
		{"DoesNotMatch", col.DoesNotMatch("^A.*"), OpNotRegexp},
		{"IsDistinctFrom", col.IsDistinctFrom(nil), OpDistinctFrom},
		{"IsNotDistinctFrom", col.IsNotDistinctFrom(42), OpNotDistinctFrom},
		{"Contains", col.Contains("{1,2}"), OpContains},
		{"Overlaps", col.Overlaps("{3,4}"), OpOverlaps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.node.Op != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.node.Op)
			}
		})
	}
}

func TestNodeToNodePredicate(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	posts := NewTable("posts")
	cmp := users.Col("id").Eq(posts.Col("author_id"))

	if _, ok := cmp.Right.(*Attribute); !ok {
		t.Errorf("expected right to be *Attribute, got %T", cmp.Right)
	}
}

// --- Unary predicates ---

func TestIsNull(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("deleted_at")
	u := col.IsNull()

	if u.Op != OpIsNull {
		t.Errorf("expected OpIsNull, got %d", u.Op)
	}
	if u.Expr != col {
		t.Error("expected expr to be the attribute")
	}
}

func TestIsNotNull(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("deleted_at")
	u := col.IsNotNull()

	if u.Op != OpIsNotNull {
		t.Errorf("expected OpIsNotNull, got %d", u.Op)
	}
}

// --- In / NotIn ---

func TestIn(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("status")
	in := col.In("active", "pending")

	if in.Negate {
		t.Error("expected In to not be negated")
	}
	if len(in.Vals) != 2 {
		t.Fatalf("expected 2 values, got %d", len(in.Vals))
	}
	if in.Expr != col {
		t.Error("expected expr to be the attribute")
	}
}

func TestNotIn(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("status")
	in := col.NotIn("deleted")

	if !in.Negate {
		t.Error("expected NotIn to be negated")
	}
	if len(in.Vals) != 1 {
		t.Fatalf("expected 1 value, got %d", len(in.Vals))
	}
}

func TestInQuery(t *testing.T) {
	t.Parallel()
	col := NewTable("users").Col("id")
	sub := &SelectCore{From: NewTable("banned")}
	in := col.InQuery(sub)

	if in.Query != sub {
		t.Error("expected Query to be the subquery")
	}
	if len(in.Vals) != 0 {
		t.Errorf("expected no values, got %d", len(in.Vals))
	}
	if in.Negate {
		t.Error("expected InQuery to not be negated")
	}
}

func TestNotInQuery(t *testing.T) {
	t.Parallel()
	col := NewTable("users").Col("id")
	in := col.NotInQuery(&SelectCore{From: NewTable("banned")})
	if !in.Negate {
		t.Error("expected NotInQuery to be negated")
	}
}

// --- Between ---

func TestBetween(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("age")
	b := col.Between(18, 65)

	if b.Expr != col {
		t.Error("expected expr to be the attribute")
	}
	low, ok := b.Low.(*LiteralNode)
	if !ok {
		t.Fatalf("expected low to be *LiteralNode, got %T", b.Low)
	}
	if low.Value != 18 {
		t.Errorf("expected low value 18, got %v", low.Value)
	}
	high, ok := b.High.(*LiteralNode)
	if !ok {
		t.Fatalf("expected high to be *LiteralNode, got %T", b.High)
	}
	if high.Value != 65 {
		t.Errorf("expected high value 65, got %v", high.Value)
	}
}

func TestNotBetween(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("age")
	b := col.NotBetween(18, 65)

	if !b.Negate {
		t.Error("expected NotBetween to be negated")
	}
	if b.Expr != col {
		t.Error("expected expr to be the attribute")
	}
}

// --- Exists ---

func TestExists(t *testing.T) {
	t.Parallel()
	sub := &SelectCore{From: NewTable("orders")}
	e := Exists(sub)
	if e.Subquery != sub {
		t.Error("expected subquery to be set")
	}
	if e.Negated {
		t.Error("expected Exists to not be negated")
	}
}

func TestNotExists(t *testing.T) {
	t.Parallel()
	e := NotExists(&SelectCore{From: NewTable("orders")})
	if !e.Negated {
		t.Error("expected NotExists to be negated")
	}
}

func TestExistsIsCombinable(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	and := Exists(&SelectCore{From: NewTable("orders")}).And(users.Col("active").Eq(true))
	if and.Left == nil || and.Right == nil {
		t.Error("expected And to have both sides")
	}
}

// --- Combinators ---

func TestAndChaining(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	cond1 := users.Col("active").Eq(true)
	cond2 := users.Col("age").Gt(18)
	and := cond1.And(cond2)

	if and.Left != cond1 {
		t.Error("expected left to be cond1")
	}
	if and.Right != cond2 {
		t.Error("expected right to be cond2")
	}
}

func TestOrWrapsInGrouping(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	cond1 := users.Col("role").Eq("admin")
	cond2 := users.Col("role").Eq("moderator")
	grouped := cond1.Or(cond2)

	// Or returns a GroupingNode wrapping an OrNode
	or, ok := grouped.Expr.(*OrNode)
	if !ok {
		t.Fatalf("expected GroupingNode.Expr to be *OrNode, got %T", grouped.Expr)
	}
	if or.Left != cond1 {
		t.Error("expected or.Left to be cond1")
	}
	if or.Right != cond2 {
		t.Error("expected or.Right to be cond2")
	}
}

func TestNotCombinator(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("active")
	cmp := col.Eq(true)
	not := cmp.Not()

	if not.Expr != cmp {
		t.Error("expected not.Expr to be the comparison")
	}
}

func TestGroupingIsCombinable(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	grouped := users.Col("a").Eq(1).Or(users.Col("b").Eq(2))
	and := grouped.And(users.Col("c").Eq(3))
	if and.Left != grouped {
		t.Error("expected left to be the grouping")
	}
}

// --- SqlLiteral ---

func TestSqlLiteralPredications(t *testing.T) {
	t.Parallel()
	raw := NewSqlLiteral("COUNT(*)")
	cmp := raw.Eq(0)

	if cmp.Op != OpEq {
		t.Errorf("expected OpEq, got %d", cmp.Op)
	}
	if cmp.Left != raw {
		t.Error("expected left to be the SqlLiteral")
	}
}

func TestBoundSqlLiteralCarriesBinds(t *testing.T) {
	t.Parallel()
	raw := NewBoundSqlLiteral("lower(name) = ?", "alice")
	if raw.Raw != "lower(name) = ?" {
		t.Errorf("unexpected raw SQL %q", raw.Raw)
	}
	if len(raw.Binds) != 1 || raw.Binds[0] != "alice" {
		t.Errorf("expected binds [alice], got %v", raw.Binds)
	}
}

// --- BindParam / Casted ---

func TestNewBindParam(t *testing.T) {
	t.Parallel()
	bp := NewBindParam(7)
	if bp.Value != 7 {
		t.Errorf("expected value 7, got %v", bp.Value)
	}
	cmp := bp.Eq(7)
	if cmp.Left != bp {
		t.Error("expected left to be the bind param")
	}
}

func TestNewCasted(t *testing.T) {
	t.Parallel()
	c := NewCasted("5", "INTEGER")
	if c.TypeName != "INTEGER" {
		t.Errorf("expected type INTEGER, got %q", c.TypeName)
	}
}

func TestAttributeTypedCoerce(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("age").Typed("integer")
	n := col.Coerce("42")
	casted, ok := n.(*CastedNode)
	if !ok {
		t.Fatalf("expected *CastedNode, got %T", n)
	}
	if casted.TypeName != "integer" {
		t.Errorf("expected type integer, got %q", casted.TypeName)
	}

	plain := NewTable("t").Col("age").Coerce(42)
	if _, ok := plain.(*LiteralNode); !ok {
		t.Errorf("expected *LiteralNode without a type, got %T", plain)
	}
}

// --- Arithmetic operations ---

func TestArithmeticOperations(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x")

	tests := []struct {
		name string
		node *InfixNode
		want InfixOp
	}{
		{"Plus", col.Plus(5), OpPlus},
		{"Minus", col.Minus(3), OpMinus},
		{"Multiply", col.Multiply(2), OpMultiply},
		{"Divide", col.Divide(4), OpDivide},
		{"Modulo", col.Modulo(2), OpModulo},
		{"Concat", col.Concat(" "), OpConcat},
		{"BitwiseAnd", col.BitwiseAnd(0xFF), OpBitwiseAnd},
		{"BitwiseOr", col.BitwiseOr(0x01), OpBitwiseOr},
		{"BitwiseXor", col.BitwiseXor(0x0F), OpBitwiseXor},
		{"ShiftLeft", col.ShiftLeft(2), OpShiftLeft},
		{"ShiftRight", col.ShiftRight(1), OpShiftRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.node.Op != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.node.Op)
			}
		})
	}
}

func TestBitwiseNotCreatesUnaryMathNode(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("flags")
	n := col.BitwiseNot()
	if n.Op != OpBitwiseNot {
		t.Errorf("expected OpBitwiseNot, got %d", n.Op)
	}
	if n.Expr != col {
		t.Error("expected expr to be the attribute")
	}
}

func TestArithmeticChainingOnResult(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x")
	n := col.Plus(5).Multiply(3)
	if n.Op != OpMultiply {
		t.Errorf("expected OpMultiply, got %d", n.Op)
	}
	inner, ok := n.Left.(*InfixNode)
	if !ok {
		t.Fatalf("expected left to be *InfixNode, got %T", n.Left)
	}
	if inner.Op != OpPlus {
		t.Errorf("expected inner op OpPlus, got %d", inner.Op)
	}
}

func TestArithmeticThenPredication(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x")
	cmp := col.Plus(5).Eq(10)
	if cmp.Op != OpEq {
		t.Errorf("expected OpEq, got %d", cmp.Op)
	}
	if _, ok := cmp.Left.(*InfixNode); !ok {
		t.Errorf("expected left to be *InfixNode, got %T", cmp.Left)
	}
}

func TestArithmeticThenCombinable(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x")
	other := NewTable("t").Col("y").Eq(1)
	and := col.Plus(5).Eq(10).And(other)
	if and.Left == nil || and.Right == nil {
		t.Error("expected And to have both sides")
	}
}

func TestUnaryMathThenPredication(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("flags")
	cmp := col.BitwiseNot().Eq(0)
	if cmp.Op != OpEq {
		t.Errorf("expected OpEq, got %d", cmp.Op)
	}
}

// --- Aggregate functions ---

func TestCountCreatesAggregateNode(t *testing.T) {
	t.Parallel()
	col := NewTable("users").Col("id")
	n := Count(col)
	if n.Func != AggCount {
		t.Errorf("expected AggCount, got %d", n.Func)
	}
	if n.Expr != col {
		t.Error("expected expr to be the attribute")
	}
	if n.Distinct {
		t.Error("expected Distinct to be false")
	}
}

func TestCountStar(t *testing.T) {
	t.Parallel()
	n := Count(nil)
	if n.Expr != nil {
		t.Error("expected expr to be nil for COUNT(*)")
	}
}

func TestAggregateConstructors(t *testing.T) {
	t.Parallel()
	col := NewTable("orders").Col("total")
	tests := []struct {
		name string
		node *AggregateNode
		want AggregateFunc
	}{
		{"Sum", Sum(col), AggSum},
		{"Avg", Avg(col), AggAvg},
		{"Min", Min(col), AggMin},
		{"Max", Max(col), AggMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.node.Func != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.node.Func)
			}
		})
	}
}

func TestCountDistinctSetsFlag(t *testing.T) {
	t.Parallel()
	n := CountDistinct(NewTable("users").Col("country"))
	if !n.Distinct {
		t.Error("expected Distinct to be true")
	}
}

func TestAggregateWithFilterCopies(t *testing.T) {
	t.Parallel()
	col := NewTable("orders").Col("total")
	cond := NewTable("orders").Col("status").Eq("completed")
	base := Sum(col)
	filtered := base.WithFilter(cond)

	if base.Filter != nil {
		t.Error("expected receiver to be unmodified")
	}
	if filtered.Filter != cond {
		t.Error("expected Filter to be set on the copy")
	}
	// The copy must have working mixins of its own.
	cmp := filtered.Gt(100)
	if cmp.Left != filtered {
		t.Error("expected the copy to be its own self pointer")
	}
}

func TestAggregateThenPredication(t *testing.T) {
	t.Parallel()
	cmp := Count(nil).Eq(0)
	if cmp.Op != OpEq {
		t.Errorf("expected OpEq, got %d", cmp.Op)
	}
	if _, ok := cmp.Left.(*AggregateNode); !ok {
		t.Errorf("expected left to be *AggregateNode, got %T", cmp.Left)
	}
}

// --- Extract ---

func TestExtractFields(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("ts")
	fields := []ExtractField{
		ExtractYear, ExtractMonth, ExtractDay, ExtractHour,
		ExtractMinute, ExtractSecond, ExtractDow, ExtractDoy,
		ExtractEpoch, ExtractQuarter, ExtractWeek,
	}
	for _, f := range fields {
		n := Extract(f, col)
		if n.Field != f {
			t.Errorf("expected field %d, got %d", f, n.Field)
		}
	}
}

func TestExtractThenPredication(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("ts")
	cmp := Extract(ExtractYear, col).Eq(2024)
	if cmp.Op != OpEq {
		t.Errorf("expected OpEq, got %d", cmp.Op)
	}
	if _, ok := cmp.Left.(*ExtractNode); !ok {
		t.Errorf("expected left to be *ExtractNode, got %T", cmp.Left)
	}
}

// --- NamedFunctionNode ---

func TestNewNamedFunction(t *testing.T) {
	t.Parallel()
	col := NewTable("users").Col("name")
	fn := NewNamedFunction("LOWER", col)
	if fn.Name != "LOWER" {
		t.Errorf("expected name LOWER, got %q", fn.Name)
	}
	if len(fn.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(fn.Args))
	}
	if fn.Args[0] != col {
		t.Error("expected arg to be the attribute")
	}
}

func TestFunctionConveniences(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("name")
	if fn := Lower(col); fn.Name != "LOWER" {
		t.Errorf("expected LOWER, got %q", fn.Name)
	}
	if fn := Upper(col); fn.Name != "UPPER" {
		t.Errorf("expected UPPER, got %q", fn.Name)
	}
	if fn := Coalesce(col, Literal(0)); fn.Name != "COALESCE" || len(fn.Args) != 2 {
		t.Errorf("unexpected COALESCE node: %q with %d args", fn.Name, len(fn.Args))
	}
}

func TestNamedFunctionPredications(t *testing.T) {
	t.Parallel()
	fn := Lower(NewTable("t").Col("name"))
	cmp := fn.Eq("alice")
	if cmp.Op != OpEq {
		t.Errorf("expected OpEq, got %d", cmp.Op)
	}
}

func TestNamedFunctionAs(t *testing.T) {
	t.Parallel()
	fn := Lower(NewTable("t").Col("name"))
	alias := fn.As("lower_name")
	if alias.Name != "lower_name" {
		t.Errorf("expected alias name %q, got %q", "lower_name", alias.Name)
	}
	if alias.Expr != fn {
		t.Error("expected expr to be the named function")
	}
}

// --- CaseNode ---

func TestNewCaseSearched(t *testing.T) {
	t.Parallel()
	c := NewCase()
	if c.Operand != nil {
		t.Error("expected nil operand for searched CASE")
	}
}

func TestNewCaseSimple(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("status")
	c := NewCase(col)
	if c.Operand != col {
		t.Error("expected operand to be the attribute")
	}
}

func TestCaseWhenElse(t *testing.T) {
	t.Parallel()
	c := NewCase().
		When(Literal(true), Literal(1)).
		When(Literal(false), Literal(0)).
		Else(Literal(-1))
	if len(c.Whens) != 2 {
		t.Errorf("expected 2 whens, got %d", len(c.Whens))
	}
	if c.ElseVal == nil {
		t.Error("expected else value to be set")
	}
}

// --- Ordering ---

func TestAscOrdering(t *testing.T) {
	t.Parallel()
	col := NewTable("users").Col("name")
	ord := col.Asc()

	if ord.Direction != Asc {
		t.Errorf("expected Asc, got %d", ord.Direction)
	}
	if ord.Expr != col {
		t.Error("expected expr to be the attribute")
	}
}

func TestDescOrdering(t *testing.T) {
	t.Parallel()
	col := NewTable("users").Col("created_at")
	ord := col.Desc()

	if ord.Direction != Desc {
		t.Errorf("expected Desc, got %d", ord.Direction)
	}
}

func TestOrderingNullsCopies(t *testing.T) {
	t.Parallel()
	ord := NewTable("t").Col("x").Asc()
	first := ord.NullsFirstOrder()
	last := ord.NullsLastOrder()

	if ord.Nulls != NullsDefault {
		t.Error("expected original ordering to be unmodified")
	}
	if first.Nulls != NullsFirst {
		t.Errorf("expected NullsFirst, got %d", first.Nulls)
	}
	if last.Nulls != NullsLast {
		t.Errorf("expected NullsLast, got %d", last.Nulls)
	}
	if first.Direction != Asc || last.Direction != Asc {
		t.Error("expected direction to carry over")
	}
}

// --- JSON paths ---

func TestJSONPathKeepsTyping(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("doc")
	p := col.JSON("a", "b")
	if p.AsText {
		t.Error("expected AsText to be false")
	}
	if len(p.Keys) != 2 || p.Keys[0] != "a" || p.Keys[1] != "b" {
		t.Errorf("unexpected keys %v", p.Keys)
	}
	if p.Expr != col {
		t.Error("expected expr to be the attribute")
	}
}

func TestJSONTextExtractsLeaf(t *testing.T) {
	t.Parallel()
	p := NewTable("t").Col("doc").JSONText("status")
	if !p.AsText {
		t.Error("expected AsText to be true")
	}
}

func TestJSONPathPredicable(t *testing.T) {
	t.Parallel()
	p := NewTable("t").Col("doc").JSONText("status")
	cmp := p.Eq("active")
	if cmp.Left != p {
		t.Error("expected left to be the JSON path")
	}
}

// --- Window functions ---

func TestWindowFuncConstructors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		node *WindowFuncNode
		want WindowFunc
	}{
		{"RowNumber", RowNumber(), WinRowNumber},
		{"Rank", Rank(), WinRank},
		{"DenseRank", DenseRank(), WinDenseRank},
		{"CumeDist", CumeDist(), WinCumeDist},
		{"PercentRank", PercentRank(), WinPercentRank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.node.Func != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.node.Func)
			}
		})
	}
}

func TestLagLeadArgs(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x")
	if n := Lag(col, Literal(1), Literal(0)); len(n.Args) != 3 {
		t.Errorf("expected 3 args, got %d", len(n.Args))
	}
	if n := Lead(col); len(n.Args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(n.Args))
	}
	if n := NthValue(col, Literal(3)); len(n.Args) != 2 {
		t.Errorf("expected 2 args, got %d", len(n.Args))
	}
}

func TestWindowFuncOverCreatesOverNode(t *testing.T) {
	t.Parallel()
	def := NewWindowDef().Partition(NewTable("t").Col("dept"))
	over := RowNumber().Over(def)
	if over.Window != def {
		t.Error("expected Window to be the definition")
	}
	if over.WindowName != "" {
		t.Error("expected empty WindowName")
	}
	if _, ok := over.Expr.(*WindowFuncNode); !ok {
		t.Errorf("expected Expr to be *WindowFuncNode, got %T", over.Expr)
	}
}

func TestAggregateOverCreatesOverNode(t *testing.T) {
	t.Parallel()
	over := Sum(NewTable("t").Col("salary")).OverName("w")
	if over.WindowName != "w" {
		t.Errorf("expected WindowName %q, got %q", "w", over.WindowName)
	}
	if _, ok := over.Expr.(*AggregateNode); !ok {
		t.Errorf("expected Expr to be *AggregateNode, got %T", over.Expr)
	}
}

func TestOverNodePredications(t *testing.T) {
	t.Parallel()
	over := RowNumber().Over(NewWindowDef())
	cmp := over.LtEq(3)
	if cmp.Op != OpLtEq {
		t.Errorf("expected OpLtEq, got %d", cmp.Op)
	}
	if cmp.Left != over {
		t.Error("expected left to be the over node")
	}
}

func TestWindowDefinitionBuilder(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("dept")
	ord := NewTable("t").Col("salary").Desc()
	def := NewWindowDef("w").Partition(col).Order(ord).Rows(UnboundedPreceding(), CurrentRow())

	if def.Name != "w" {
		t.Errorf("expected name %q, got %q", "w", def.Name)
	}
	if len(def.PartitionBy) != 1 {
		t.Errorf("expected 1 partition, got %d", len(def.PartitionBy))
	}
	if len(def.OrderBy) != 1 {
		t.Errorf("expected 1 order, got %d", len(def.OrderBy))
	}
	if def.Frame == nil {
		t.Fatal("expected frame to be set")
	}
	if def.Frame.Type != FrameRows {
		t.Errorf("expected FrameRows, got %d", def.Frame.Type)
	}
	if def.Frame.Start.Type != BoundUnboundedPreceding {
		t.Errorf("expected BoundUnboundedPreceding, got %d", def.Frame.Start.Type)
	}
	if def.Frame.End == nil || def.Frame.End.Type != BoundCurrentRow {
		t.Error("expected end bound to be CurrentRow")
	}
}

func TestWindowDefinitionRangeFrame(t *testing.T) {
	t.Parallel()
	def := NewWindowDef().Range(UnboundedPreceding(), UnboundedFollowing())
	if def.Frame.Type != FrameRange {
		t.Errorf("expected FrameRange, got %d", def.Frame.Type)
	}
}

func TestFrameBounds(t *testing.T) {
	t.Parallel()
	if fb := Preceding(Literal(3)); fb.Type != BoundPreceding || fb.Offset == nil {
		t.Error("unexpected Preceding bound")
	}
	if fb := Following(Literal(5)); fb.Type != BoundFollowing {
		t.Errorf("expected BoundFollowing, got %d", fb.Type)
	}
}

// --- CTE ---

func TestNewCTE(t *testing.T) {
	t.Parallel()
	inner := &SelectCore{From: NewTable("users")}
	cte := NewCTE("active", inner)
	if cte.Name != "active" {
		t.Errorf("expected name %q, got %q", "active", cte.Name)
	}
	if cte.Query != inner {
		t.Error("expected query to be the select core")
	}
	if cte.Recursive {
		t.Error("expected non-recursive by default")
	}
	if cte.Materialized != nil {
		t.Error("expected no materialization hint by default")
	}
}

func TestCTEBuilders(t *testing.T) {
	t.Parallel()
	inner := &SelectCore{From: NewTable("t")}
	cte := NewCTE("c", inner).WithColumns("a", "b").AsRecursive().Materialize(false)
	if len(cte.Columns) != 2 {
		t.Errorf("expected 2 columns, got %d", len(cte.Columns))
	}
	if !cte.Recursive {
		t.Error("expected recursive")
	}
	if cte.Materialized == nil || *cte.Materialized {
		t.Error("expected NOT MATERIALIZED hint")
	}
}

// --- Set operations ---

func TestNewSetOperation(t *testing.T) {
	t.Parallel()
	a := &SelectCore{From: NewTable("a")}
	b := &SelectCore{From: NewTable("b")}
	op := NewSetOperation(Union, a, b)
	if op.Op != Union {
		t.Errorf("expected Union, got %d", op.Op)
	}
	if op.Left != a || op.Right != b {
		t.Error("expected operands to be set")
	}
}

func TestSetOperationAs(t *testing.T) {
	t.Parallel()
	op := NewSetOperation(UnionAll, &SelectCore{}, &SelectCore{})
	alias := op.As("combined")
	if alias.AliasName != "combined" {
		t.Errorf("expected alias %q, got %q", "combined", alias.AliasName)
	}
	if alias.Relation != op {
		t.Error("expected relation to be the set operation")
	}
}

// --- Grouping sets ---

func TestNewGroupingSets(t *testing.T) {
	t.Parallel()
	col1 := NewTable("t").Col("a")
	col2 := NewTable("t").Col("b")
	n := NewGroupingSets([]Node{col1, col2}, []Node{col1}, nil)
	if n.Kind != GroupingSets {
		t.Errorf("expected GroupingSets, got %d", n.Kind)
	}
	if len(n.Sets) != 3 {
		t.Errorf("expected 3 sets, got %d", len(n.Sets))
	}
}

func TestNewRollupAndCube(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("a")
	r := NewRollup(col)
	if r.Kind != Rollup || len(r.Sets) != 1 || len(r.Sets[0]) != 1 {
		t.Error("unexpected rollup shape")
	}
	c := NewCube(col)
	if c.Kind != Cube {
		t.Errorf("expected Cube, got %d", c.Kind)
	}
}

// --- Table functions ---

func TestNewTableFunctionWrapsArgs(t *testing.T) {
	t.Parallel()
	fn := NewTableFunction("generate_series", 1, 10)
	if fn.Name != "generate_series" {
		t.Errorf("expected name %q, got %q", "generate_series", fn.Name)
	}
	if len(fn.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(fn.Args))
	}
	if _, ok := fn.Args[0].(*LiteralNode); !ok {
		t.Errorf("expected wrapped literal, got %T", fn.Args[0])
	}
}

func TestTableFunctionBuilders(t *testing.T) {
	t.Parallel()
	fn := NewTableFunction("unnest").WithOrdinality().As("u", "val", "ord")
	if !fn.Ordinality {
		t.Error("expected ordinality")
	}
	if fn.Alias != "u" {
		t.Errorf("expected alias %q, got %q", "u", fn.Alias)
	}
	if len(fn.ColumnAliases) != 2 {
		t.Errorf("expected 2 column aliases, got %d", len(fn.ColumnAliases))
	}
}

// --- Graph MATCH ---

func TestMatchBuildsHops(t *testing.T) {
	t.Parallel()
	person := NewTable("Person")
	friends := NewTable("Friends")
	other := NewTable("Person2")
	m := Match(person).Out(friends, other)

	if m.Start != person {
		t.Error("expected start vertex to be set")
	}
	if len(m.Hops) != 1 {
		t.Fatalf("expected 1 hop, got %d", len(m.Hops))
	}
	if m.Hops[0].Direction != EdgeOut {
		t.Error("expected outgoing hop")
	}
}

func TestMatchIsCombinable(t *testing.T) {
	t.Parallel()
	m := Match(NewTable("a")).In(NewTable("e"), NewTable("b"))
	and := m.And(NewTable("a").Col("x").Eq(1))
	if and.Left != m {
		t.Error("expected left to be the match")
	}
}

// --- DML node types ---

func TestAssignWrapsValue(t *testing.T) {
	t.Parallel()
	col := NewAttribute(NewTable("users"), "name")
	a := Assign(col, "Alice")
	if a.Left != col {
		t.Error("Left not set correctly")
	}
	right, ok := a.Right.(*LiteralNode)
	if !ok {
		t.Fatalf("expected right to be *LiteralNode, got %T", a.Right)
	}
	if right.Value != "Alice" {
		t.Errorf("expected value Alice, got %v", right.Value)
	}
}

func TestInsertStatementFields(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	stmt := &InsertStatement{
		Into:    users,
		Columns: []Node{NewAttribute(users, "name")},
		Values: [][]Node{
			{Literal("Alice")},
			{Literal("Bob")},
		},
	}
	if stmt.Into != users {
		t.Error("Into not set")
	}
	if len(stmt.Values) != 2 {
		t.Errorf("expected 2 rows, got %d", len(stmt.Values))
	}
}

func TestOnConflictNodeDoUpdate(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	node := &OnConflictNode{
		Columns:     []Node{NewAttribute(users, "email")},
		Action:      DoUpdate,
		Assignments: []*AssignmentNode{Assign(NewAttribute(users, "name"), "updated")},
	}
	if node.Action != DoUpdate {
		t.Error("expected DoUpdate action")
	}
	if len(node.Assignments) != 1 {
		t.Errorf("expected 1 assignment, got %d", len(node.Assignments))
	}
}

// --- SelectCore ---

func TestSelectCoreHoldsData(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	posts := NewTable("posts")

	join := &JoinNode{
		Left:  users,
		Right: posts,
		Type:  InnerJoin,
		On:    users.Col("id").Eq(posts.Col("user_id")),
	}

	sc := &SelectCore{
		From:        users,
		Projections: []Node{users.Col("name"), users.Col("email")},
		Wheres:      []Node{users.Col("active").Eq(true)},
		Joins:       []*JoinNode{join},
		Orders:      []Node{users.Col("name").Asc()},
		Limit:       Literal(10),
		Offset:      Literal(20),
	}

	if sc.From != users {
		t.Error("expected From to be users table")
	}
	if len(sc.Projections) != 2 {
		t.Errorf("expected 2 projections, got %d", len(sc.Projections))
	}
	if len(sc.Joins) != 1 || sc.Joins[0].Type != InnerJoin {
		t.Error("unexpected joins")
	}
	if sc.Limit == nil || sc.Offset == nil {
		t.Error("expected paging to be set")
	}
}

func TestSelectCoreAs(t *testing.T) {
	t.Parallel()
	sc := &SelectCore{From: NewTable("users")}
	alias := sc.As("u")
	if alias.AliasName != "u" {
		t.Errorf("expected alias %q, got %q", "u", alias.AliasName)
	}
	if alias.Relation != sc {
		t.Error("expected relation to be the select core")
	}
}

// --- Accept methods (ensure all nodes implement Node) ---

// stubVisitor implements Visitor for compile-time verification of the node
// types. It never renders real SQL.
type stubVisitor struct{}

func (sv stubVisitor) VisitTable(n *Table) string                     { return n.Name }
func (sv stubVisitor) VisitTableAlias(n *TableAlias) string           { return n.AliasName }
func (sv stubVisitor) VisitAttribute(*Attribute) string               { return "attr" }
func (sv stubVisitor) VisitLiteral(*LiteralNode) string               { return "lit" }
func (sv stubVisitor) VisitStar(*StarNode) string                     { return "*" }
func (sv stubVisitor) VisitSqlLiteral(n *SqlLiteral) string           { return n.Raw }
func (sv stubVisitor) VisitBindParam(*BindParamNode) string           { return "bind_param" }
func (sv stubVisitor) VisitCasted(*CastedNode) string                 { return "casted" }
func (sv stubVisitor) VisitAlias(*AliasNode) string                   { return "alias" }
func (sv stubVisitor) VisitGrouping(*GroupingNode) string             { return "grouping" }
func (sv stubVisitor) VisitComparison(*ComparisonNode) string         { return "comparison" }
func (sv stubVisitor) VisitUnary(*UnaryNode) string                   { return "unary" }
func (sv stubVisitor) VisitAnd(*AndNode) string                       { return "and" }
func (sv stubVisitor) VisitOr(*OrNode) string                         { return "or" }
func (sv stubVisitor) VisitNot(*NotNode) string                       { return "not" }
func (sv stubVisitor) VisitIn(*InNode) string                         { return "in" }
func (sv stubVisitor) VisitBetween(*BetweenNode) string               { return "between" }
func (sv stubVisitor) VisitExists(*ExistsNode) string                 { return "exists" }
func (sv stubVisitor) VisitInfix(*InfixNode) string                   { return "infix" }
func (sv stubVisitor) VisitUnaryMath(*UnaryMathNode) string           { return "unary_math" }
func (sv stubVisitor) VisitNamedFunction(*NamedFunctionNode) string   { return "named_func" }
func (sv stubVisitor) VisitAggregate(*AggregateNode) string           { return "aggregate" }
func (sv stubVisitor) VisitExtract(*ExtractNode) string               { return "extract" }
func (sv stubVisitor) VisitCase(*CaseNode) string                     { return "case" }
func (sv stubVisitor) VisitOrdering(*OrderingNode) string             { return "ordering" }
func (sv stubVisitor) VisitJoin(*JoinNode) string                     { return "join" }
func (sv stubVisitor) VisitSelectCore(*SelectCore) string             { return "select_core" }
func (sv stubVisitor) VisitInsertStatement(*InsertStatement) string   { return "insert" }
func (sv stubVisitor) VisitUpdateStatement(*UpdateStatement) string   { return "update" }
func (sv stubVisitor) VisitDeleteStatement(*DeleteStatement) string   { return "delete" }
func (sv stubVisitor) VisitMergeStatement(*MergeStatement) string     { return "merge" }
func (sv stubVisitor) VisitAssignment(*AssignmentNode) string         { return "assign" }
func (sv stubVisitor) VisitOnConflict(*OnConflictNode) string         { return "conflict" }
func (sv stubVisitor) VisitCreateTable(*CreateTableStatement) string  { return "create_table" }
func (sv stubVisitor) VisitDropTable(*DropTableStatement) string      { return "drop_table" }
func (sv stubVisitor) VisitCreateView(*CreateViewStatement) string    { return "create_view" }
func (sv stubVisitor) VisitDropView(*DropViewStatement) string        { return "drop_view" }
func (sv stubVisitor) VisitColumnDef(*ColumnDef) string               { return "column_def" }
func (sv stubVisitor) VisitWindowFunction(*WindowFuncNode) string     { return "window_func" }
func (sv stubVisitor) VisitOver(*OverNode) string                     { return "over" }
func (sv stubVisitor) VisitSetOperation(*SetOperationNode) string     { return "set_op" }
func (sv stubVisitor) VisitCTE(*CTENode) string                       { return "cte" }
func (sv stubVisitor) VisitGroupingSet(*GroupingSetNode) string       { return "grouping_set" }
func (sv stubVisitor) VisitJSONPath(*JSONPathNode) string             { return "json_path" }
func (sv stubVisitor) VisitTableFunction(*TableFunctionNode) string   { return "table_func" }
func (sv stubVisitor) VisitMatch(*MatchNode) string                   { return "match" }

func TestAllNodesImplementNodeInterface(t *testing.T) {
	t.Parallel()
	sv := stubVisitor{}

	users := NewTable("users")
	all := []Node{
		users,
		users.Alias("u"),
		NewAttribute(users, "c"),
		&LiteralNode{Value: 1},
		&StarNode{},
		NewSqlLiteral("raw"),
		NewBindParam(42),
		NewCasted(42, "integer"),
		NewAliasNode(users.Col("c"), "alias"),
		NewGrouping(Literal(1)),
		users.Col("c").Eq(1),
		users.Col("c").IsNull(),
		users.Col("a").Eq(1).And(users.Col("b").Eq(2)),
		&OrNode{Left: Literal(1), Right: Literal(2)},
		users.Col("c").Eq(1).Not(),
		users.Col("c").In(1, 2),
		users.Col("c").Between(1, 2),
		Exists(&SelectCore{}),
		users.Col("c").Plus(1),
		users.Col("c").BitwiseNot(),
		NewNamedFunction("COALESCE", Literal(1)),
		NewAggregateNode(AggCount, nil),
		Extract(ExtractYear, users.Col("c")),
		NewCase().When(Literal(true), Literal(1)),
		users.Col("c").Asc(),
		&JoinNode{Left: users, Right: NewTable("posts")},
		&SelectCore{},
		&InsertStatement{Into: users},
		&UpdateStatement{Table: users},
		&DeleteStatement{From: users},
		&MergeStatement{Target: users, Source: NewTable("s"), On: Literal(true)},
		Assign(users.Col("c"), 1),
		&OnConflictNode{Action: DoNothing},
		&CreateTableStatement{Table: users},
		&DropTableStatement{Table: users},
		&CreateViewStatement{Name: "v", Query: &SelectCore{}},
		&DropViewStatement{Name: "v"},
		&ColumnDef{Name: "c", Type: TypeInt},
		RowNumber(),
		RowNumber().Over(NewWindowDef()),
		NewSetOperation(Union, &SelectCore{}, &SelectCore{}),
		NewCTE("cte", &SelectCore{}),
		NewCube(users.Col("c")),
		users.Col("doc").JSON("k"),
		NewTableFunction("unnest"),
		Match(users).Out(NewTable("e"), NewTable("b")),
	}

	for _, n := range all {
		n.Accept(sv) // should not panic
	}
}
