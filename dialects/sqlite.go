package dialects

import (
	"fmt"

	"github.com/arbordev/arbor/internal/quoting"
	"github.com/arbordev/arbor/nodes"
)

// SQLiteVisitor generates SQLite-dialect SQL.
// Identifiers are quoted with double quotes like PostgreSQL, but bind
// placeholders are positional question marks.
type SQLiteVisitor struct {
	*baseVisitor
}

// NewSQLiteVisitor creates a SQLiteVisitor ready for use.
// Parameterized mode is enabled by default for SQL injection protection.
// Pass WithoutParams() to disable (not recommended for production).
func NewSQLiteVisitor(opts ...Option) *SQLiteVisitor {
	v := &SQLiteVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		name:         "sqlite",
		quoteIdent:   quoting.DoubleQuote,
		placeholder:  func(_ int) string { return "?" },
		parameterize: true,
		features: featureSet(
			FeatureReturning,
			FeatureOnConflict,
			FeatureWindowFunctions,
			FeatureCTE,
			FeatureRecursiveCTE,
			FeatureUpdateFrom,
			FeatureFullOuterJoin,
			FeatureTableFunctions,
		),
		typeMap: map[nodes.ColumnType]string{
			nodes.TypeBool:    "INTEGER",
			nodes.TypeInt:     "INTEGER",
			nodes.TypeBigInt:  "INTEGER",
			nodes.TypeFloat:   "REAL",
			nodes.TypeDecimal: "NUMERIC",
			nodes.TypeString:  "TEXT",
			nodes.TypeText:    "TEXT",
			nodes.TypeBytes:   "BLOB",
			nodes.TypeTime:    "TEXT",
			nodes.TypeDate:    "TEXT",
			nodes.TypeUUID:    "TEXT",
			nodes.TypeJSON:    "TEXT",
		},
	}
	v.applyOptions(opts)
	return v
}

func (v *SQLiteVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	switch n.Op {
	case nodes.OpDistinctFrom:
		// SQLite's IS / IS NOT are null-safe.
		return n.Left.Accept(v) + " IS NOT " + n.Right.Accept(v)
	case nodes.OpNotDistinctFrom:
		return n.Left.Accept(v) + " IS " + n.Right.Accept(v)
	default:
		return v.baseVisitor.VisitComparison(n)
	}
}

// strftime format strings per extract field.
var sqliteStrftime = map[nodes.ExtractField]string{
	nodes.ExtractYear:   "%Y",
	nodes.ExtractMonth:  "%m",
	nodes.ExtractDay:    "%d",
	nodes.ExtractHour:   "%H",
	nodes.ExtractMinute: "%M",
	nodes.ExtractSecond: "%S",
	nodes.ExtractDow:    "%w",
	nodes.ExtractDoy:    "%j",
	nodes.ExtractEpoch:  "%s",
	nodes.ExtractWeek:   "%W",
}

// VisitExtract renders date part access through strftime; SQLite has no
// EXTRACT. CAST to INTEGER keeps comparisons numeric.
func (v *SQLiteVisitor) VisitExtract(n *nodes.ExtractNode) string {
	format, ok := sqliteStrftime[n.Field]
	if !ok {
		return v.fail(fmt.Errorf("arbor: sqlite cannot extract %s", extractFieldSQL[n.Field]))
	}
	return "CAST(strftime('" + format + "', " + n.Expr.Accept(v) + ") AS INTEGER)"
}
