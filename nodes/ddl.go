package nodes

// ColumnType is a database-independent column type. Dialects map each
// value to a native type name through their type map.
type ColumnType int

const (
	TypeBool ColumnType = iota
	TypeInt
	TypeBigInt
	TypeFloat
	TypeDecimal
	TypeString // variable-length string; Size gives the limit, 0 means dialect default
	TypeText
	TypeBytes
	TypeTime
	TypeDate
	TypeUUID
	TypeJSON
)

// String returns a readable name for the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeBigInt:
		return "bigint"
	case TypeFloat:
		return "float"
	case TypeDecimal:
		return "decimal"
	case TypeString:
		return "string"
	case TypeText:
		return "text"
	case TypeBytes:
		return "bytes"
	case TypeTime:
		return "time"
	case TypeDate:
		return "date"
	case TypeUUID:
		return "uuid"
	case TypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ColumnDef describes one column in a CREATE TABLE statement.
type ColumnDef struct {
	Name       string
	Type       ColumnType
	Size       int  // for TypeString: VARCHAR(Size)
	NotNull    bool //
	PrimaryKey bool
	Unique     bool
	Default    Node // optional default expression
}

func (n *ColumnDef) Accept(v Visitor) string { return v.VisitColumnDef(n) }

// CreateTableStatement represents CREATE [TEMPORARY] TABLE [IF NOT EXISTS].
type CreateTableStatement struct {
	Table       *Table
	Columns     []*ColumnDef
	IfNotExists bool
	Temporary   bool
}

func (n *CreateTableStatement) Accept(v Visitor) string { return v.VisitCreateTable(n) }

// DropTableStatement represents DROP TABLE [IF EXISTS].
type DropTableStatement struct {
	Table    *Table
	IfExists bool
}

func (n *DropTableStatement) Accept(v Visitor) string { return v.VisitDropTable(n) }

// CreateViewStatement represents CREATE [OR REPLACE] VIEW name AS select.
type CreateViewStatement struct {
	Name      string
	Query     Node // *SelectCore or *SetOperationNode
	OrReplace bool
}

func (n *CreateViewStatement) Accept(v Visitor) string { return v.VisitCreateView(n) }

// DropViewStatement represents DROP VIEW [IF EXISTS].
type DropViewStatement struct {
	Name     string
	IfExists bool
}

func (n *DropViewStatement) Accept(v Visitor) string { return v.VisitDropView(n) }
