// Package arbor provides a fluent SQL query builder for Go.
//
// Queries are built as immutable ASTs and compiled per dialect into a
// (sql, params) pair. This package re-exports commonly used types and
// functions from subpackages for convenience. Advanced users can import
// subpackages directly:
//   - github.com/arbordev/arbor/managers (query builders)
//   - github.com/arbordev/arbor/nodes (AST nodes)
//   - github.com/arbordev/arbor/dialects (SQL generation)
//   - github.com/arbordev/arbor/plugins (query transformers)
package arbor

import (
	"github.com/arbordev/arbor/dialects"
	"github.com/arbordev/arbor/managers"
	"github.com/arbordev/arbor/nodes"
)

// --- Manager Types ---

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager = managers.SelectManager

// InsertManager provides a fluent API for building INSERT queries.
type InsertManager = managers.InsertManager

// UpdateManager provides a fluent API for building UPDATE queries.
type UpdateManager = managers.UpdateManager

// DeleteManager provides a fluent API for building DELETE queries.
type DeleteManager = managers.DeleteManager

// MergeManager provides a fluent API for building MERGE statements.
type MergeManager = managers.MergeManager

// --- Manager Constructors ---

// NewSelect creates a new SelectManager with the given table as FROM.
func NewSelect(from nodes.Node) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// NewInsert creates a new InsertManager for inserting into the given table.
func NewInsert(into nodes.Node) *managers.InsertManager {
	return managers.NewInsertManager(into)
}

// NewUpdate creates a new UpdateManager for updating the given table.
func NewUpdate(table nodes.Node) *managers.UpdateManager {
	return managers.NewUpdateManager(table)
}

// NewDelete creates a new DeleteManager for deleting from the given table.
func NewDelete(from nodes.Node) *managers.DeleteManager {
	return managers.NewDeleteManager(from)
}

// NewMerge creates a new MergeManager targeting the given table.
func NewMerge(target nodes.Node) *managers.MergeManager {
	return managers.NewMergeManager(target)
}

// NewCreateTable creates a CreateTableManager for the given table.
func NewCreateTable(table *nodes.Table) *managers.CreateTableManager {
	return managers.NewCreateTableManager(table)
}

// NewDropTable creates a DropTableManager for the given table.
func NewDropTable(table *nodes.Table) *managers.DropTableManager {
	return managers.NewDropTableManager(table)
}

// NewCreateView creates a CreateViewManager defining the named view.
func NewCreateView(name string, query nodes.Node) *managers.CreateViewManager {
	return managers.NewCreateViewManager(name, query)
}

// NewDropView creates a DropViewManager for the named view.
func NewDropView(name string) *managers.DropViewManager {
	return managers.NewDropViewManager(name)
}

// --- Column Types and Options ---

// ColumnType is the abstract column type used in CREATE TABLE statements.
type ColumnType = nodes.ColumnType

// Abstract column types, mapped to native type names per dialect.
const (
	TypeBool    = nodes.TypeBool
	TypeInt     = nodes.TypeInt
	TypeBigInt  = nodes.TypeBigInt
	TypeFloat   = nodes.TypeFloat
	TypeDecimal = nodes.TypeDecimal
	TypeString  = nodes.TypeString
	TypeText    = nodes.TypeText
	TypeBytes   = nodes.TypeBytes
	TypeTime    = nodes.TypeTime
	TypeDate    = nodes.TypeDate
	TypeUUID    = nodes.TypeUUID
	TypeJSON    = nodes.TypeJSON
)

// Size sets the length for variable-length string columns: VARCHAR(n).
func Size(n int) managers.ColumnOption { return managers.Size(n) }

// NotNull adds a NOT NULL constraint.
func NotNull() managers.ColumnOption { return managers.NotNull() }

// PrimaryKey marks the column as PRIMARY KEY.
func PrimaryKey() managers.ColumnOption { return managers.PrimaryKey() }

// Unique adds a UNIQUE constraint.
func Unique() managers.ColumnOption { return managers.Unique() }

// Default sets the column's default expression.
func Default(val any) managers.ColumnOption { return managers.Default(val) }

// --- Core Node Types ---

// Table represents a SQL table reference.
type Table = nodes.Table

// Attribute represents a column reference (e.g., table.column).
type Attribute = nodes.Attribute

// Node is the base interface all AST nodes implement.
type Node = nodes.Node

// --- Common Node Constructors ---

// NewTable creates a new table reference.
func NewTable(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// Literal creates a SQL literal node (e.g., numbers, strings).
func Literal(value any) nodes.Node {
	return nodes.Literal(value)
}

// BindParam creates a parameterised placeholder (e.g., $1, ?, @p1).
func BindParam(value any) *nodes.BindParamNode {
	return nodes.NewBindParam(value)
}

// Star creates an unqualified star (*) for SELECT *.
func Star() *nodes.StarNode {
	return nodes.Star()
}

// Exists creates an EXISTS predicate over the given subquery.
func Exists(subquery nodes.Node) *nodes.ExistsNode {
	return nodes.Exists(subquery)
}

// NotExists creates a NOT EXISTS predicate over the given subquery.
func NotExists(subquery nodes.Node) *nodes.ExistsNode {
	return nodes.NotExists(subquery)
}

// --- Aggregate Functions ---

// Count creates a COUNT(expr) aggregate. Pass nil for COUNT(*).
func Count(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Count(expr)
}

// Sum creates a SUM(expr) aggregate.
func Sum(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Sum(expr)
}

// Avg creates an AVG(expr) aggregate.
func Avg(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Avg(expr)
}

// Min creates a MIN(expr) aggregate.
func Min(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Min(expr)
}

// Max creates a MAX(expr) aggregate.
func Max(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Max(expr)
}

// CountDistinct creates a COUNT(DISTINCT expr) aggregate.
func CountDistinct(expr nodes.Node) *nodes.AggregateNode {
	return nodes.CountDistinct(expr)
}

// --- Dialect Types ---

// PostgresVisitor generates PostgreSQL-compatible SQL.
type PostgresVisitor = dialects.PostgresVisitor

// MySQLVisitor generates MySQL-compatible SQL.
type MySQLVisitor = dialects.MySQLVisitor

// SQLiteVisitor generates SQLite-compatible SQL.
type SQLiteVisitor = dialects.SQLiteVisitor

// MSSQLVisitor generates SQL Server-compatible SQL.
type MSSQLVisitor = dialects.MSSQLVisitor

// --- Dialect Constructors ---

// NewPostgresVisitor creates a new PostgreSQL visitor.
func NewPostgresVisitor(opts ...dialects.Option) *dialects.PostgresVisitor {
	return dialects.NewPostgresVisitor(opts...)
}

// NewMySQLVisitor creates a new MySQL visitor.
func NewMySQLVisitor(opts ...dialects.Option) *dialects.MySQLVisitor {
	return dialects.NewMySQLVisitor(opts...)
}

// NewSQLiteVisitor creates a new SQLite visitor.
func NewSQLiteVisitor(opts ...dialects.Option) *dialects.SQLiteVisitor {
	return dialects.NewSQLiteVisitor(opts...)
}

// NewMSSQLVisitor creates a new SQL Server visitor.
func NewMSSQLVisitor(opts ...dialects.Option) *dialects.MSSQLVisitor {
	return dialects.NewMSSQLVisitor(opts...)
}

// --- Dialect Options ---

// WithParams enables parameterisation mode for visitors. Parameterisation
// is on by default; this option exists so call sites can state it
// explicitly.
func WithParams() dialects.Option {
	return dialects.WithParams()
}

// WithoutParams disables parameterised query mode.
//
// ⚠️ WARNING: Disables SQL injection protection. Only use for debugging or
// when you're certain all values are trusted. Production code should NEVER
// use this option.
func WithoutParams() dialects.Option {
	return dialects.WithoutParams()
}

// WithFeature force-enables a dialect capability flag.
func WithFeature(f dialects.Feature) dialects.Option {
	return dialects.WithFeature(f)
}

// WithoutFeature force-disables a dialect capability flag.
func WithoutFeature(f dialects.Feature) dialects.Option {
	return dialects.WithoutFeature(f)
}

// ToSQL compiles any AST node with the given visitor and returns the SQL
// text plus collected bind parameters. Managers have their own ToSQL that
// also runs transformer pipelines; this helper serves bare nodes.
func ToSQL(n nodes.Node, v nodes.Visitor) (string, []any, error) {
	c, _ := v.(nodes.Compiler)
	if c != nil {
		c.Reset()
	}
	sql := n.Accept(v)
	if c != nil {
		if err := c.Err(); err != nil {
			return "", nil, err
		}
		return sql, c.Params(), nil
	}
	return sql, nil, nil
}
