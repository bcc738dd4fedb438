package dialects

import (
	"fmt"
	"strings"

	"github.com/arbordev/arbor/internal/quoting"
	"github.com/arbordev/arbor/nodes"
)

// MSSQLVisitor generates SQL Server dialect SQL.
// Identifiers are quoted with square brackets: [table].[column]; bind
// placeholders are named @p1, @p2 as the go-mssqldb driver expects.
type MSSQLVisitor struct {
	*baseVisitor
}

// NewMSSQLVisitor creates an MSSQLVisitor ready for use.
// Parameterized mode is enabled by default for SQL injection protection.
// Pass WithoutParams() to disable (not recommended for production).
func NewMSSQLVisitor(opts ...Option) *MSSQLVisitor {
	v := &MSSQLVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		name:         "mssql",
		quoteIdent:   quoting.Bracket,
		placeholder:  func(i int) string { return fmt.Sprintf("@p%d", i) },
		parameterize: true,
		features: featureSet(
			FeatureMerge,
			FeatureWindowFunctions,
			FeatureCTE,
			FeatureRecursiveCTE,
			FeatureUpdateFrom,
			FeatureFullOuterJoin,
			FeatureGroupingSets,
			FeatureTableFunctions,
			FeatureGraphMatch,
		),
		typeMap: map[nodes.ColumnType]string{
			nodes.TypeBool:    "BIT",
			nodes.TypeInt:     "INT",
			nodes.TypeBigInt:  "BIGINT",
			nodes.TypeFloat:   "FLOAT",
			nodes.TypeDecimal: "DECIMAL",
			nodes.TypeString:  "NVARCHAR",
			nodes.TypeText:    "NVARCHAR(MAX)",
			nodes.TypeBytes:   "VARBINARY(MAX)",
			nodes.TypeTime:    "DATETIME2",
			nodes.TypeDate:    "DATE",
			nodes.TypeUUID:    "UNIQUEIDENTIFIER",
			nodes.TypeJSON:    "NVARCHAR(MAX)",
		},
		boolLiteral: func(val bool) string {
			if val {
				return "1"
			}
			return "0"
		},
		// T-SQL has no RECURSIVE keyword; recursion is implied by the
		// CTE referencing itself.
		cteKeyword: func(bool) string { return "WITH " },
	}
	v.paging = v.writeMSSQLPaging
	v.applyOptions(opts)
	return v
}

func (v *MSSQLVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	switch n.Op {
	case nodes.OpRegexp, nodes.OpNotRegexp:
		return v.fail(fmt.Errorf("arbor: mssql has no regular expression operator"))
	case nodes.OpContains, nodes.OpOverlaps:
		return v.fail(fmt.Errorf("arbor: mssql has no array containment operators"))
	default:
		return v.baseVisitor.VisitComparison(n)
	}
}

func (v *MSSQLVisitor) VisitInfix(n *nodes.InfixNode) string {
	// SQL Server concatenates with +.
	if n.Op == nodes.OpConcat {
		left := n.Left.Accept(v)
		if needsParens(n.Left) {
			left = "(" + left + ")"
		}
		right := n.Right.Accept(v)
		if needsParens(n.Right) {
			right = "(" + right + ")"
		}
		return left + " + " + right
	}
	return v.baseVisitor.VisitInfix(n)
}

// DATEPART field names per extract field.
var mssqlDatePart = map[nodes.ExtractField]string{
	nodes.ExtractYear:    "year",
	nodes.ExtractMonth:   "month",
	nodes.ExtractDay:     "day",
	nodes.ExtractHour:    "hour",
	nodes.ExtractMinute:  "minute",
	nodes.ExtractSecond:  "second",
	nodes.ExtractDow:     "weekday",
	nodes.ExtractDoy:     "dayofyear",
	nodes.ExtractQuarter: "quarter",
	nodes.ExtractWeek:    "week",
}

// VisitExtract renders date part access through DATEPART; SQL Server has
// no EXTRACT. Epoch becomes a DATEDIFF from the Unix epoch.
func (v *MSSQLVisitor) VisitExtract(n *nodes.ExtractNode) string {
	if n.Field == nodes.ExtractEpoch {
		return "DATEDIFF(second, '1970-01-01', " + n.Expr.Accept(v) + ")"
	}
	part, ok := mssqlDatePart[n.Field]
	if !ok {
		return v.fail(fmt.Errorf("arbor: mssql cannot extract %s", extractFieldSQL[n.Field]))
	}
	return "DATEPART(" + part + ", " + n.Expr.Accept(v) + ")"
}

func (v *MSSQLVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	if n.Nulls != nodes.NullsDefault {
		return v.fail(fmt.Errorf("arbor: mssql does not support NULLS FIRST/LAST"))
	}
	return v.baseVisitor.VisitOrdering(n)
}

// VisitJSONPath renders JSON_VALUE for text leaves and JSON_QUERY for
// fragments that keep JSON typing.
func (v *MSSQLVisitor) VisitJSONPath(n *nodes.JSONPathNode) string {
	fn := "JSON_QUERY"
	if n.AsText {
		fn = "JSON_VALUE"
	}
	path := jsonDollarPath(n.Keys)
	return fn + "(" + n.Expr.Accept(v) + ", '" + quoting.EscapeString(path) + "')"
}

// VisitMergeStatement appends the statement terminator SQL Server requires
// on MERGE. DO NOTHING branches are rejected: T-SQL MERGE only knows
// UPDATE, INSERT, and DELETE actions.
func (v *MSSQLVisitor) VisitMergeStatement(n *nodes.MergeStatement) string {
	for _, a := range n.Actions {
		if a.Action == nodes.MergeDoNothing {
			return v.fail(fmt.Errorf("arbor: mssql cannot express a MERGE DO NOTHING branch"))
		}
	}
	sql := v.baseVisitor.VisitMergeStatement(n)
	if sql == "" {
		return sql
	}
	return sql + ";"
}

// writeMSSQLPaging emits OFFSET ... ROWS FETCH NEXT ... ROWS ONLY, the only
// paging form SQL Server accepts, and it is only legal after an ORDER BY.
func (v *MSSQLVisitor) writeMSSQLPaging(sb *strings.Builder, n *nodes.SelectCore) {
	if len(n.Orders) == 0 {
		v.fail(fmt.Errorf("arbor: mssql requires ORDER BY when using LIMIT or OFFSET"))
		return
	}
	sb.WriteString(" OFFSET ")
	if n.Offset != nil {
		sb.WriteString(n.Offset.Accept(v))
	} else {
		sb.WriteString("0")
	}
	sb.WriteString(" ROWS")
	if n.Limit != nil {
		sb.WriteString(" FETCH NEXT ")
		sb.WriteString(n.Limit.Accept(v))
		sb.WriteString(" ROWS ONLY")
	}
}
