package managers

import "github.com/arbordev/arbor/nodes"

// ColumnOption configures a column definition in a CREATE TABLE statement.
type ColumnOption func(*nodes.ColumnDef)

// Size sets the length for variable-length string columns: VARCHAR(n).
func Size(n int) ColumnOption {
	return func(c *nodes.ColumnDef) { c.Size = n }
}

// NotNull adds a NOT NULL constraint.
func NotNull() ColumnOption {
	return func(c *nodes.ColumnDef) { c.NotNull = true }
}

// PrimaryKey marks the column as PRIMARY KEY.
func PrimaryKey() ColumnOption {
	return func(c *nodes.ColumnDef) { c.PrimaryKey = true }
}

// Unique adds a UNIQUE constraint.
func Unique() ColumnOption {
	return func(c *nodes.ColumnDef) { c.Unique = true }
}

// Default sets the column's default expression. Raw Go values are wrapped
// with nodes.Literal.
func Default(val any) ColumnOption {
	return func(c *nodes.ColumnDef) { c.Default = nodes.Literal(val) }
}

// CreateTableManager provides a fluent API for building CREATE TABLE
// statements.
type CreateTableManager struct {
	Statement *nodes.CreateTableStatement
}

// NewCreateTableManager creates a CreateTableManager for the given table.
func NewCreateTableManager(table *nodes.Table) *CreateTableManager {
	return &CreateTableManager{
		Statement: &nodes.CreateTableStatement{Table: table},
	}
}

// IfNotExists adds IF NOT EXISTS.
func (m *CreateTableManager) IfNotExists() *CreateTableManager {
	m.Statement.IfNotExists = true
	return m
}

// Temporary marks the table TEMPORARY.
func (m *CreateTableManager) Temporary() *CreateTableManager {
	m.Statement.Temporary = true
	return m
}

// Column appends a column definition.
func (m *CreateTableManager) Column(name string, t nodes.ColumnType, opts ...ColumnOption) *CreateTableManager {
	def := &nodes.ColumnDef{Name: name, Type: t}
	for _, o := range opts {
		o(def)
	}
	m.Statement.Columns = append(m.Statement.Columns, def)
	return m
}

// ToSQL generates the CREATE TABLE statement. DDL carries no bind
// parameters on any supported dialect, so only SQL and an error come back.
func (m *CreateTableManager) ToSQL(v nodes.Visitor) (string, error) {
	if len(m.Statement.Columns) == 0 {
		return "", ErrNoColumns
	}
	sql, _, err := toSQLParams(v, func(v nodes.Visitor) (string, error) {
		return m.Statement.Accept(v), nil
	})
	return sql, err
}

// DropTableManager provides a fluent API for building DROP TABLE statements.
type DropTableManager struct {
	Statement *nodes.DropTableStatement
}

// NewDropTableManager creates a DropTableManager for the given table.
func NewDropTableManager(table *nodes.Table) *DropTableManager {
	return &DropTableManager{
		Statement: &nodes.DropTableStatement{Table: table},
	}
}

// IfExists adds IF EXISTS.
func (m *DropTableManager) IfExists() *DropTableManager {
	m.Statement.IfExists = true
	return m
}

// ToSQL generates the DROP TABLE statement.
func (m *DropTableManager) ToSQL(v nodes.Visitor) (string, error) {
	sql, _, err := toSQLParams(v, func(v nodes.Visitor) (string, error) {
		return m.Statement.Accept(v), nil
	})
	return sql, err
}

// CreateViewManager provides a fluent API for building CREATE VIEW
// statements.
type CreateViewManager struct {
	Statement *nodes.CreateViewStatement
}

// NewCreateViewManager creates a CreateViewManager defining the named view
// over a query (a SelectManager core or set operation).
func NewCreateViewManager(name string, query nodes.Node) *CreateViewManager {
	if sm, ok := query.(*SelectManager); ok {
		query = sm.Core
	}
	return &CreateViewManager{
		Statement: &nodes.CreateViewStatement{Name: name, Query: query},
	}
}

// OrReplace adds OR REPLACE.
func (m *CreateViewManager) OrReplace() *CreateViewManager {
	m.Statement.OrReplace = true
	return m
}

// ToSQL generates the CREATE VIEW statement. A view definition lives in
// the catalog and cannot carry bind parameters, so pass a visitor built
// with WithoutParams() when the view body contains literals.
func (m *CreateViewManager) ToSQL(v nodes.Visitor) (string, error) {
	sql, _, err := toSQLParams(v, func(v nodes.Visitor) (string, error) {
		return m.Statement.Accept(v), nil
	})
	return sql, err
}

// DropViewManager provides a fluent API for building DROP VIEW statements.
type DropViewManager struct {
	Statement *nodes.DropViewStatement
}

// NewDropViewManager creates a DropViewManager for the named view.
func NewDropViewManager(name string) *DropViewManager {
	return &DropViewManager{
		Statement: &nodes.DropViewStatement{Name: name},
	}
}

// IfExists adds IF EXISTS.
func (m *DropViewManager) IfExists() *DropViewManager {
	m.Statement.IfExists = true
	return m
}

// ToSQL generates the DROP VIEW statement.
func (m *DropViewManager) ToSQL(v nodes.Visitor) (string, error) {
	sql, _, err := toSQLParams(v, func(v nodes.Visitor) (string, error) {
		return m.Statement.Accept(v), nil
	})
	return sql, err
}
