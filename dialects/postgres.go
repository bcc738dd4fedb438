package dialects

import (
	"fmt"

	"github.com/arbordev/arbor/internal/quoting"
	"github.com/arbordev/arbor/nodes"
)

// PostgresVisitor generates PostgreSQL-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column".
type PostgresVisitor struct {
	*baseVisitor
}

// NewPostgresVisitor creates a PostgresVisitor ready for use.
// Parameterized mode is enabled by default for SQL injection protection.
// Pass WithoutParams() to disable (not recommended for production).
func NewPostgresVisitor(opts ...Option) *PostgresVisitor {
	v := &PostgresVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		name:         "postgres",
		quoteIdent:   quoting.DoubleQuote,
		placeholder:  func(i int) string { return fmt.Sprintf("$%d", i) },
		parameterize: true,
		features: featureSet(
			FeatureReturning,
			FeatureOnConflict,
			FeatureMerge,
			FeatureWindowFunctions,
			FeatureCTE,
			FeatureRecursiveCTE,
			FeatureRowLocking,
			FeatureSkipLocked,
			FeatureDistinctOn,
			FeatureLateral,
			FeatureUpdateFrom,
			FeatureDeleteUsing,
			FeatureFullOuterJoin,
			FeatureGroupingSets,
			FeatureTableFunctions,
			FeatureIntersectAll,
			FeatureExceptAll,
		),
		typeMap: map[nodes.ColumnType]string{
			nodes.TypeBool:    "BOOLEAN",
			nodes.TypeInt:     "INTEGER",
			nodes.TypeBigInt:  "BIGINT",
			nodes.TypeFloat:   "DOUBLE PRECISION",
			nodes.TypeDecimal: "NUMERIC",
			nodes.TypeString:  "VARCHAR",
			nodes.TypeText:    "TEXT",
			nodes.TypeBytes:   "BYTEA",
			nodes.TypeTime:    "TIMESTAMPTZ",
			nodes.TypeDate:    "DATE",
			nodes.TypeUUID:    "UUID",
			nodes.TypeJSON:    "JSONB",
		},
	}
	v.applyOptions(opts)
	return v
}

func (v *PostgresVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	switch n.Op {
	case nodes.OpILike:
		return n.Left.Accept(v) + " ILIKE " + n.Right.Accept(v)
	case nodes.OpNotILike:
		return n.Left.Accept(v) + " NOT ILIKE " + n.Right.Accept(v)
	default:
		return v.baseVisitor.VisitComparison(n)
	}
}
