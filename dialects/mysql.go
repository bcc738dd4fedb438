package dialects

import (
	"fmt"
	"strings"

	"github.com/arbordev/arbor/internal/quoting"
	"github.com/arbordev/arbor/nodes"
)

// MySQLVisitor generates MySQL-dialect SQL.
// Identifiers are quoted with backticks: `table`.`column`.
type MySQLVisitor struct {
	*baseVisitor
}

// NewMySQLVisitor creates a MySQLVisitor ready for use.
// Parameterized mode is enabled by default for SQL injection protection.
// Pass WithoutParams() to disable (not recommended for production).
func NewMySQLVisitor(opts ...Option) *MySQLVisitor {
	v := &MySQLVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		name:         "mysql",
		quoteIdent:   quoting.Backtick,
		placeholder:  func(_ int) string { return "?" },
		parameterize: true,
		features: featureSet(
			FeatureOnConflict,
			FeatureWindowFunctions,
			FeatureCTE,
			FeatureRecursiveCTE,
			FeatureRowLocking,
			FeatureSkipLocked,
			FeatureLateral,
			FeatureIntersectAll,
			FeatureExceptAll,
		),
		typeMap: map[nodes.ColumnType]string{
			nodes.TypeBool:    "TINYINT(1)",
			nodes.TypeInt:     "INT",
			nodes.TypeBigInt:  "BIGINT",
			nodes.TypeFloat:   "DOUBLE",
			nodes.TypeDecimal: "DECIMAL",
			nodes.TypeString:  "VARCHAR",
			nodes.TypeText:    "TEXT",
			nodes.TypeBytes:   "BLOB",
			nodes.TypeTime:    "DATETIME",
			nodes.TypeDate:    "DATE",
			nodes.TypeUUID:    "CHAR(36)",
			nodes.TypeJSON:    "JSON",
		},
		// MySQL has no DEFAULT VALUES; an all-defaults row is spelled
		// with empty lists.
		emptyInsert: " () VALUES ()",
	}
	v.paging = v.writeMySQLPaging
	v.applyOptions(opts)
	return v
}

func (v *MySQLVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	switch n.Op {
	case nodes.OpRegexp:
		return n.Left.Accept(v) + " REGEXP " + n.Right.Accept(v)
	case nodes.OpNotRegexp:
		return n.Left.Accept(v) + " NOT REGEXP " + n.Right.Accept(v)
	case nodes.OpDistinctFrom:
		// MySQL spells the null-safe comparison with <=>.
		return "NOT (" + n.Left.Accept(v) + " <=> " + n.Right.Accept(v) + ")"
	case nodes.OpNotDistinctFrom:
		return n.Left.Accept(v) + " <=> " + n.Right.Accept(v)
	default:
		return v.baseVisitor.VisitComparison(n)
	}
}

func (v *MySQLVisitor) VisitInfix(n *nodes.InfixNode) string {
	// || is a logical OR under default sql_mode, so string concat must go
	// through CONCAT().
	if n.Op == nodes.OpConcat {
		return "CONCAT(" + n.Left.Accept(v) + ", " + n.Right.Accept(v) + ")"
	}
	return v.baseVisitor.VisitInfix(n)
}

func (v *MySQLVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	if n.Nulls != nodes.NullsDefault {
		return v.fail(fmt.Errorf("arbor: mysql does not support NULLS FIRST/LAST"))
	}
	return v.baseVisitor.VisitOrdering(n)
}

func (v *MySQLVisitor) VisitExtract(n *nodes.ExtractNode) string {
	// EXTRACT covers the calendar fields; the rest have dedicated functions.
	switch n.Field {
	case nodes.ExtractDow:
		return "DAYOFWEEK(" + n.Expr.Accept(v) + ")"
	case nodes.ExtractDoy:
		return "DAYOFYEAR(" + n.Expr.Accept(v) + ")"
	case nodes.ExtractEpoch:
		return "UNIX_TIMESTAMP(" + n.Expr.Accept(v) + ")"
	default:
		return v.baseVisitor.VisitExtract(n)
	}
}

// VisitOnConflict translates the portable upsert clause into MySQL's
// ON DUPLICATE KEY UPDATE. The conflict target columns are dropped: MySQL
// matches on whichever unique key collides. DO NOTHING has no MySQL
// spelling that preserves "insert or silently skip" semantics without also
// suppressing other errors, so it is rejected.
func (v *MySQLVisitor) VisitOnConflict(n *nodes.OnConflictNode) string {
	if n.Action == nodes.DoNothing {
		return v.fail(fmt.Errorf("arbor: mysql cannot express ON CONFLICT DO NOTHING"))
	}
	if len(n.Wheres) > 0 {
		return v.fail(fmt.Errorf("arbor: mysql does not support a WHERE clause on upserts"))
	}
	var sb strings.Builder
	sb.WriteString("ON DUPLICATE KEY UPDATE ")
	assigns := make([]string, len(n.Assignments))
	for i, a := range n.Assignments {
		assigns[i] = a.Accept(v)
	}
	sb.WriteString(strings.Join(assigns, ", "))
	return sb.String()
}

// VisitJSONPath renders MySQL's arrow operators with a $-rooted path:
// doc -> '$.a.b' keeps JSON typing, doc ->> '$.a.b' unquotes the leaf.
func (v *MySQLVisitor) VisitJSONPath(n *nodes.JSONPathNode) string {
	arrow := " -> "
	if n.AsText {
		arrow = " ->> "
	}
	return n.Expr.Accept(v) + arrow + "'" + quoting.EscapeString(jsonDollarPath(n.Keys)) + "'"
}

// jsonDollarPath builds a $-rooted JSON path: keys become .key members and
// all-digit keys become [n] array indices.
func jsonDollarPath(keys []string) string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, k := range keys {
		if isDigits(k) {
			sb.WriteString("[" + k + "]")
		} else {
			sb.WriteString("." + k)
		}
	}
	return sb.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// writeMySQLPaging emits LIMIT/OFFSET. MySQL has no bare OFFSET, so an
// offset without a limit gets the documented "very large number" limit.
func (v *MySQLVisitor) writeMySQLPaging(sb *strings.Builder, n *nodes.SelectCore) {
	if n.Limit == nil && n.Offset != nil {
		sb.WriteString(" LIMIT 18446744073709551615")
		sb.WriteString(" OFFSET ")
		sb.WriteString(n.Offset.Accept(v))
		return
	}
	v.writeNodeClause(sb, " LIMIT ", n.Limit)
	v.writeNodeClause(sb, " OFFSET ", n.Offset)
}
