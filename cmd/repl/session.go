package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	"github.com/arbordev/arbor/dialects"
	"github.com/arbordev/arbor/managers"
	"github.com/arbordev/arbor/nodes"
	"github.com/arbordev/arbor/plugins"
	"github.com/arbordev/arbor/plugins/softdelete"
)

// Session holds the REPL state: the active engine/visitor, the query being
// built, registered plugins, and an optional live database connection.
type Session struct {
	engine       string
	parameterize bool
	visitor      nodes.Visitor

	mode   string // "select", "insert", "update", "delete"
	query  *managers.SelectManager
	insert *managers.InsertManager
	update *managers.UpdateManager
	delete *managers.DeleteManager

	tables  map[string]*nodes.Table
	plugins []plugins.Transformer

	conn *dbConn
	rl   *readline.Instance
}

// NewSession creates a session for the given engine with parameterisation on.
func NewSession(engine string, rl *readline.Instance) *Session {
	s := &Session{
		engine:       engine,
		parameterize: true,
		tables:       make(map[string]*nodes.Table),
		rl:           rl,
	}
	s.setEngine(engine)
	return s
}

func (s *Session) setEngine(engine string) {
	s.engine = engine
	var opts []dialects.Option
	if !s.parameterize {
		opts = append(opts, dialects.WithoutParams())
	}
	switch engine {
	case "mysql":
		s.visitor = dialects.NewMySQLVisitor(opts...)
	case "sqlite":
		s.visitor = dialects.NewSQLiteVisitor(opts...)
	case "mssql":
		s.visitor = dialects.NewMSSQLVisitor(opts...)
	default:
		s.visitor = dialects.NewPostgresVisitor(opts...)
	}
}

func (s *Session) table(name string) *nodes.Table {
	if t, ok := s.tables[name]; ok {
		return t
	}
	t := nodes.NewTable(name)
	s.tables[name] = t
	return t
}

// col resolves "table.column" or a bare column against the current FROM
// table.
func (s *Session) col(ref string) (*nodes.Attribute, error) {
	if dot := strings.Index(ref, "."); dot > 0 {
		return s.table(ref[:dot]).Col(ref[dot+1:]), nil
	}
	t := s.currentTable()
	if t == nil {
		return nil, fmt.Errorf("no active query: start with 'from <table>'")
	}
	return t.Col(ref), nil
}

func (s *Session) currentTable() *nodes.Table {
	switch s.mode {
	case "select":
		if t, ok := s.query.Core.From.(*nodes.Table); ok {
			return t
		}
	case "insert":
		if t, ok := s.insert.Statement.Into.(*nodes.Table); ok {
			return t
		}
	case "update":
		if t, ok := s.update.Statement.Table.(*nodes.Table); ok {
			return t
		}
	case "delete":
		if t, ok := s.delete.Statement.From.(*nodes.Table); ok {
			return t
		}
	}
	return nil
}

// Execute parses and runs a single REPL command line.
func (s *Session) Execute(line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "from":
		return s.cmdFrom(rest)
	case "select", "project":
		return s.cmdSelect(rest)
	case "where":
		return s.cmdWhere(rest)
	case "order":
		return s.cmdOrder(rest)
	case "group":
		return s.cmdGroup(rest)
	case "limit":
		return s.cmdLimit(rest)
	case "offset":
		return s.cmdOffset(rest)
	case "distinct":
		return s.cmdDistinct()
	case "join", "leftjoin":
		return s.cmdJoin(cmd, rest)
	case "insert":
		return s.cmdInsert(rest)
	case "columns":
		return s.cmdColumns(rest)
	case "values":
		return s.cmdValues(rest)
	case "update":
		return s.cmdUpdate(rest)
	case "set":
		return s.cmdSet(rest)
	case "delete":
		return s.cmdDelete(rest)
	case "sql":
		return s.cmdSQL()
	case "exec":
		return s.cmdExec()
	case "reset":
		s.resetQuery()
		fmt.Println("  Query reset")
		return nil
	case "params":
		return s.cmdParams(rest)
	case "engine":
		return s.cmdEngine(rest)
	case "plugin":
		return s.cmdPlugin(rest)
	case "connect":
		return s.cmdConnect(rest)
	case "disconnect":
		return s.cmdDisconnect()
	case "tables":
		return s.cmdTables()
	case "describe":
		return s.cmdDescribe(rest)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (s *Session) resetQuery() {
	s.mode = ""
	s.query = nil
	s.insert = nil
	s.update = nil
	s.delete = nil
}

func (s *Session) cmdFrom(rest string) error {
	if rest == "" {
		return fmt.Errorf("usage: from <table>")
	}
	s.resetQuery()
	s.mode = "select"
	s.query = managers.NewSelectManager(s.table(rest))
	fmt.Printf("  SELECT query on %s\n", rest)
	return nil
}

func (s *Session) cmdSelect(rest string) error {
	if s.mode != "select" || s.query == nil {
		return fmt.Errorf("no SELECT query: start with 'from <table>'")
	}
	if rest == "" || rest == "*" {
		s.query.Select(nodes.Star())
		return nil
	}
	var projections []nodes.Node
	for _, ref := range splitList(rest) {
		c, err := s.col(ref)
		if err != nil {
			return err
		}
		projections = append(projections, c)
	}
	s.query.Select(projections...)
	return nil
}

func (s *Session) cmdWhere(rest string) error {
	cond, err := s.parseCondition(rest)
	if err != nil {
		return err
	}
	switch s.mode {
	case "select":
		s.query.Where(cond)
	case "update":
		s.update.Where(cond)
	case "delete":
		s.delete.Where(cond)
	default:
		return fmt.Errorf("no query accepts WHERE: start with 'from', 'update', or 'delete'")
	}
	return nil
}

// parseCondition handles "<col> <op> <value>" plus the null/in forms.
func (s *Session) parseCondition(rest string) (nodes.Node, error) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return nil, fmt.Errorf("usage: where <column> <op> <value>")
	}
	c, err := s.col(fields[0])
	if err != nil {
		return nil, err
	}
	op := strings.ToLower(fields[1])
	valStr := strings.TrimSpace(strings.Join(fields[2:], " "))

	switch op {
	case "null":
		return c.IsNull(), nil
	case "notnull":
		return c.IsNotNull(), nil
	case "in", "notin":
		var vals []any
		for _, part := range splitList(valStr) {
			vals = append(vals, parseValue(part))
		}
		if op == "in" {
			return c.In(vals...), nil
		}
		return c.NotIn(vals...), nil
	}

	if valStr == "" {
		return nil, fmt.Errorf("usage: where <column> <op> <value>")
	}
	val := parseValue(valStr)
	switch op {
	case "=", "eq":
		return c.Eq(val), nil
	case "!=", "<>", "neq":
		return c.NotEq(val), nil
	case ">", "gt":
		return c.Gt(val), nil
	case ">=", "gte":
		return c.GtEq(val), nil
	case "<", "lt":
		return c.Lt(val), nil
	case "<=", "lte":
		return c.LtEq(val), nil
	case "like":
		return c.Like(val), nil
	case "ilike":
		return c.ILike(val), nil
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
}

func (s *Session) cmdOrder(rest string) error {
	if s.mode != "select" || s.query == nil {
		return fmt.Errorf("no SELECT query: start with 'from <table>'")
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return fmt.Errorf("usage: order <column> [asc|desc]")
	}
	c, err := s.col(fields[0])
	if err != nil {
		return err
	}
	if len(fields) > 1 && strings.EqualFold(fields[1], "desc") {
		s.query.Order(c.Desc())
	} else {
		s.query.Order(c.Asc())
	}
	return nil
}

func (s *Session) cmdGroup(rest string) error {
	if s.mode != "select" || s.query == nil {
		return fmt.Errorf("no SELECT query: start with 'from <table>'")
	}
	for _, ref := range splitList(rest) {
		c, err := s.col(ref)
		if err != nil {
			return err
		}
		s.query.Group(c)
	}
	return nil
}

func (s *Session) cmdLimit(rest string) error {
	if s.mode != "select" || s.query == nil {
		return fmt.Errorf("no SELECT query: start with 'from <table>'")
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return fmt.Errorf("usage: limit <n>")
	}
	s.query.Limit(n)
	return nil
}

func (s *Session) cmdOffset(rest string) error {
	if s.mode != "select" || s.query == nil {
		return fmt.Errorf("no SELECT query: start with 'from <table>'")
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return fmt.Errorf("usage: offset <n>")
	}
	s.query.Offset(n)
	return nil
}

func (s *Session) cmdDistinct() error {
	if s.mode != "select" || s.query == nil {
		return fmt.Errorf("no SELECT query: start with 'from <table>'")
	}
	s.query.Distinct()
	return nil
}

// cmdJoin parses "join <table> on <left> = <right>".
func (s *Session) cmdJoin(cmd, rest string) error {
	if s.mode != "select" || s.query == nil {
		return fmt.Errorf("no SELECT query: start with 'from <table>'")
	}
	fields := strings.Fields(rest)
	if len(fields) != 5 || !strings.EqualFold(fields[1], "on") || fields[3] != "=" {
		return fmt.Errorf("usage: %s <table> on <left.col> = <right.col>", cmd)
	}
	left, err := s.col(fields[2])
	if err != nil {
		return err
	}
	right, err := s.col(fields[4])
	if err != nil {
		return err
	}
	jt := nodes.InnerJoin
	if cmd == "leftjoin" {
		jt = nodes.LeftOuterJoin
	}
	s.query.Join(s.table(fields[0]), jt).On(left.Eq(right))
	return nil
}

func (s *Session) cmdInsert(rest string) error {
	if rest == "" {
		return fmt.Errorf("usage: insert <table>")
	}
	s.resetQuery()
	s.mode = "insert"
	s.insert = managers.NewInsertManager(s.table(rest))
	fmt.Printf("  INSERT query on %s\n", rest)
	return nil
}

func (s *Session) cmdColumns(rest string) error {
	if s.mode != "insert" || s.insert == nil {
		return fmt.Errorf("no INSERT query: start with 'insert <table>'")
	}
	var cols []nodes.Node
	for _, ref := range splitList(rest) {
		c, err := s.col(ref)
		if err != nil {
			return err
		}
		cols = append(cols, c)
	}
	s.insert.Columns(cols...)
	return nil
}

func (s *Session) cmdValues(rest string) error {
	if s.mode != "insert" || s.insert == nil {
		return fmt.Errorf("no INSERT query: start with 'insert <table>'")
	}
	var vals []any
	for _, part := range splitList(rest) {
		vals = append(vals, parseValue(part))
	}
	s.insert.Values(vals...)
	return nil
}

func (s *Session) cmdUpdate(rest string) error {
	if rest == "" {
		return fmt.Errorf("usage: update <table>")
	}
	s.resetQuery()
	s.mode = "update"
	s.update = managers.NewUpdateManager(s.table(rest))
	fmt.Printf("  UPDATE query on %s\n", rest)
	return nil
}

// cmdSet parses "set <col> = <value>".
func (s *Session) cmdSet(rest string) error {
	if s.mode != "update" || s.update == nil {
		return fmt.Errorf("no UPDATE query: start with 'update <table>'")
	}
	colStr, valStr, found := strings.Cut(rest, "=")
	if !found {
		return fmt.Errorf("usage: set <column> = <value>")
	}
	c, err := s.col(strings.TrimSpace(colStr))
	if err != nil {
		return err
	}
	s.update.Set(c, parseValue(strings.TrimSpace(valStr)))
	return nil
}

func (s *Session) cmdDelete(rest string) error {
	if rest == "" {
		return fmt.Errorf("usage: delete <table>")
	}
	s.resetQuery()
	s.mode = "delete"
	s.delete = managers.NewDeleteManager(s.table(rest))
	fmt.Printf("  DELETE query on %s\n", rest)
	return nil
}

// generate compiles the current query with the session visitor and plugins.
// Plugins registered after the query was started are attached lazily, and
// only once each.
func (s *Session) generate() (string, []any, error) {
	switch s.mode {
	case "select":
		for _, p := range s.plugins[len(s.query.Transformers()):] {
			s.query.Use(p)
		}
		return s.query.ToSQL(s.visitor)
	case "insert":
		for _, p := range s.plugins[len(s.insert.Transformers()):] {
			s.insert.Use(p)
		}
		return s.insert.ToSQL(s.visitor)
	case "update":
		for _, p := range s.plugins[len(s.update.Transformers()):] {
			s.update.Use(p)
		}
		return s.update.ToSQL(s.visitor)
	case "delete":
		for _, p := range s.plugins[len(s.delete.Transformers()):] {
			s.delete.Use(p)
		}
		return s.delete.ToSQL(s.visitor)
	default:
		return "", nil, fmt.Errorf("no query: start with 'from', 'insert', 'update', or 'delete'")
	}
}

func (s *Session) cmdSQL() error {
	sql, params, err := s.generate()
	if err != nil {
		return err
	}
	fmt.Printf("  %s\n", sql)
	if len(params) > 0 {
		fmt.Printf("  params: %v\n", params)
	}
	return nil
}

func (s *Session) cmdExec() error {
	if s.conn == nil {
		return fmt.Errorf("not connected: use 'connect <dsn>'")
	}
	sql, params, err := s.generate()
	if err != nil {
		return err
	}
	out, err := s.conn.execQuery(sql, params)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func (s *Session) cmdParams(rest string) error {
	switch strings.ToLower(rest) {
	case "on":
		s.parameterize = true
	case "off":
		s.parameterize = false
	default:
		return fmt.Errorf("usage: params on|off")
	}
	s.setEngine(s.engine)
	fmt.Printf("  Parameterisation: %s\n", rest)
	return nil
}

func (s *Session) cmdEngine(rest string) error {
	if rest == "" {
		fmt.Printf("  Engine: %s\n", s.engine)
		return nil
	}
	engine := strings.ToLower(rest)
	if !isValidEngine(engine) {
		return fmt.Errorf("unknown engine %q (postgres, mysql, sqlite, mssql)", engine)
	}
	if s.conn != nil && s.conn.engine != engine {
		fmt.Println("  Note: engine changed while connected to a different database")
	}
	s.setEngine(engine)
	fmt.Printf("  Engine: %s\n", engine)
	return nil
}

func (s *Session) cmdPlugin(rest string) error {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return fmt.Errorf("usage: plugin softdelete [column]")
	}
	switch strings.ToLower(fields[0]) {
	case "softdelete":
		var opts []softdelete.Option
		if len(fields) > 1 {
			opts = append(opts, softdelete.WithColumn(fields[1]))
		}
		s.plugins = append(s.plugins, softdelete.New(opts...))
		fmt.Println("  Plugin registered: softdelete")
		return nil
	default:
		return fmt.Errorf("unknown plugin %q", fields[0])
	}
}

func (s *Session) cmdConnect(rest string) error {
	if rest == "" {
		return fmt.Errorf("usage: connect <dsn>")
	}
	if s.conn != nil {
		_ = s.conn.close()
		s.conn = nil
	}
	conn, err := connect(s.engine, rest)
	if err != nil {
		return err
	}
	s.conn = conn
	fmt.Printf("  Connected (%s)\n", sanitizeDSN(rest))
	return nil
}

func (s *Session) cmdDisconnect() error {
	if s.conn == nil {
		return fmt.Errorf("not connected")
	}
	err := s.conn.close()
	s.conn = nil
	fmt.Println("  Disconnected")
	return err
}

func (s *Session) cmdTables() error {
	if s.conn == nil {
		return fmt.Errorf("not connected: use 'connect <dsn>'")
	}
	if len(s.conn.tables) == 0 {
		fmt.Println("  (no tables)")
		return nil
	}
	for _, t := range s.conn.tables {
		fmt.Printf("  %s\n", t)
	}
	return nil
}

func (s *Session) cmdDescribe(rest string) error {
	if s.conn == nil {
		return fmt.Errorf("not connected: use 'connect <dsn>'")
	}
	if rest == "" {
		return fmt.Errorf("usage: describe <table>")
	}
	cols := s.conn.schemaColumns(rest)
	if len(cols) == 0 {
		return fmt.Errorf("no columns found for %q", rest)
	}
	for _, c := range cols {
		fmt.Printf("  %s\n", c)
	}
	return nil
}

func (s *Session) printHelp() {
	fmt.Print(`  Query building:
    from <table>                       start a SELECT query
    select <col,...> | select *        set projections
    where <col> <op> <value>           add condition (= != > >= < <= like ilike in notin null notnull)
    join <table> on <l.col> = <r.col>  inner join (leftjoin for LEFT OUTER)
    order <col> [asc|desc]             add ordering
    group <col,...>                    add GROUP BY
    limit <n> / offset <n>             paging
    distinct                           SELECT DISTINCT
    insert <table>                     start an INSERT (then: columns, values)
    update <table>                     start an UPDATE (then: set <col> = <val>, where)
    delete <table>                     start a DELETE (then: where)
    reset                              discard the current query

  Output:
    sql                                print generated SQL and params
    exec                               run against the connected database

  Session:
    engine [postgres|mysql|sqlite|mssql]  show or switch dialect
    params on|off                      toggle parameterisation
    plugin softdelete [column]         filter soft-deleted rows
    connect <dsn> / disconnect         manage the database connection
    tables / describe <table>          inspect the connected schema
    help / exit
`)
}

// splitList splits a comma-separated argument list, trimming whitespace.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseValue interprets a REPL token as a Go value: integers, floats,
// booleans, null, quoted strings, or bare strings.
func parseValue(s string) any {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	switch strings.ToLower(s) {
	case "null", "nil":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
