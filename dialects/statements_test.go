package dialects

import (
	"errors"
	"testing"

	"github.com/arbordev/arbor/internal/testutil"
	"github.com/arbordev/arbor/nodes"
)

// --- INSERT ---

func TestInsertSingleRow(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("name"), users.Col("age")},
		Values:  [][]nodes.Node{{nodes.Literal("Ada"), nodes.Literal(36)}},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`INSERT INTO "users" ("name", "age") VALUES ('Ada', 36)`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), stmt,
		"INSERT INTO `users` (`name`, `age`) VALUES ('Ada', 36)")
}

func TestInsertMultiRow(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("name")},
		Values: [][]nodes.Node{
			{nodes.Literal("Ada")},
			{nodes.Literal("Grace")},
		},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`INSERT INTO "users" ("name") VALUES ('Ada'), ('Grace')`)
}

func TestInsertMultiRowParamOrder(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("name"), users.Col("age")},
		Values: [][]nodes.Node{
			{nodes.Literal("Ada"), nodes.Literal(36)},
			{nodes.Literal("Grace"), nodes.Literal(45)},
		},
	}
	v := NewPostgresVisitor()
	testutil.AssertSQL(t, v, stmt,
		`INSERT INTO "users" ("name", "age") VALUES ($1, $2), ($3, $4)`)
	testutil.AssertDeepEqual(t, v.Params(), []any{"Ada", 36, "Grace", 45})
}

func TestInsertDefaultValues(t *testing.T) {
	t.Parallel()
	stmt := &nodes.InsertStatement{Into: nodes.NewTable("events")}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`INSERT INTO "events" DEFAULT VALUES`)
}

func TestInsertDefaultValuesMySQL(t *testing.T) {
	t.Parallel()
	// MySQL has no DEFAULT VALUES clause.
	stmt := &nodes.InsertStatement{Into: nodes.NewTable("events")}
	v := NewMySQLVisitor(WithoutParams())
	testutil.AssertSQL(t, v, stmt, "INSERT INTO `events` () VALUES ()")
	testutil.AssertNoError(t, v.Err())
}

func TestInsertFromSelect(t *testing.T) {
	t.Parallel()
	archive := nodes.NewTable("archive")
	users := nodes.NewTable("users")
	sel := &nodes.SelectCore{
		From:        users,
		Projections: []nodes.Node{users.Col("name")},
		Wheres:      []nodes.Node{users.Col("active").Eq(false)},
	}
	stmt := &nodes.InsertStatement{
		Into:    archive,
		Columns: []nodes.Node{archive.Col("name")},
		Select:  sel,
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`INSERT INTO "archive" ("name") SELECT "users"."name" FROM "users" WHERE "users"."active" = FALSE`)
}

func TestInsertReturning(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:      users,
		Columns:   []nodes.Node{users.Col("name")},
		Values:    [][]nodes.Node{{nodes.Literal("Ada")}},
		Returning: []nodes.Node{users.Col("id")},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`INSERT INTO "users" ("name") VALUES ('Ada') RETURNING "users"."id"`)
	testutil.AssertSQL(t, NewSQLiteVisitor(WithoutParams()), stmt,
		`INSERT INTO "users" ("name") VALUES ('Ada') RETURNING "users"."id"`)
}

func TestInsertReturningUnsupported(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:      users,
		Columns:   []nodes.Node{users.Col("name")},
		Values:    [][]nodes.Node{{nodes.Literal("Ada")}},
		Returning: []nodes.Node{users.Col("id")},
	}
	v := NewMySQLVisitor(WithoutParams())
	stmt.Accept(v)

	var ufe *UnsupportedFeatureError
	if !errors.As(v.Err(), &ufe) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", v.Err())
	}
	testutil.AssertEqual(t, ufe.Feature, FeatureReturning)
	testutil.AssertEqual(t, ufe.Error(), "arbor: mysql does not support RETURNING clause")
}

// --- Upserts ---

func TestOnConflictDoNothing(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("email")},
		Values:  [][]nodes.Node{{nodes.Literal("a@b.c")}},
		OnConflict: &nodes.OnConflictNode{
			Columns: []nodes.Node{users.Col("email")},
			Action:  nodes.DoNothing,
		},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`INSERT INTO "users" ("email") VALUES ('a@b.c') ON CONFLICT ("email") DO NOTHING`)
}

func TestOnConflictDoUpdate(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("email"), users.Col("name")},
		Values:  [][]nodes.Node{{nodes.Literal("a@b.c"), nodes.Literal("Ada")}},
		OnConflict: &nodes.OnConflictNode{
			Columns:     []nodes.Node{users.Col("email")},
			Action:      nodes.DoUpdate,
			Assignments: []*nodes.AssignmentNode{nodes.Assign(users.Col("name"), "Ada")},
			Wheres:      []nodes.Node{users.Col("locked").Eq(false)},
		},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`INSERT INTO "users" ("email", "name") VALUES ('a@b.c', 'Ada')`+
			` ON CONFLICT ("email") DO UPDATE SET "name" = 'Ada' WHERE "users"."locked" = FALSE`)
}

func TestMySQLUpsertSpelling(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("email"), users.Col("name")},
		Values:  [][]nodes.Node{{nodes.Literal("a@b.c"), nodes.Literal("Ada")}},
		OnConflict: &nodes.OnConflictNode{
			Columns:     []nodes.Node{users.Col("email")},
			Action:      nodes.DoUpdate,
			Assignments: []*nodes.AssignmentNode{nodes.Assign(users.Col("name"), "Ada")},
		},
	}
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), stmt,
		"INSERT INTO `users` (`email`, `name`) VALUES ('a@b.c', 'Ada')"+
			" ON DUPLICATE KEY UPDATE `name` = 'Ada'")
}

func TestMySQLUpsertRejectsDoNothing(t *testing.T) {
	t.Parallel()
	conflict := &nodes.OnConflictNode{Action: nodes.DoNothing}
	v := NewMySQLVisitor(WithoutParams())
	conflict.Accept(v)
	testutil.AssertError(t, v.Err())
}

func TestMySQLUpsertRejectsWhere(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	conflict := &nodes.OnConflictNode{
		Action:      nodes.DoUpdate,
		Assignments: []*nodes.AssignmentNode{nodes.Assign(users.Col("name"), "x")},
		Wheres:      []nodes.Node{users.Col("locked").Eq(false)},
	}
	v := NewMySQLVisitor(WithoutParams())
	conflict.Accept(v)
	testutil.AssertError(t, v.Err())
}

func TestOnConflictUnsupported(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:       users,
		Columns:    []nodes.Node{users.Col("email")},
		Values:     [][]nodes.Node{{nodes.Literal("a@b.c")}},
		OnConflict: &nodes.OnConflictNode{Action: nodes.DoNothing},
	}
	v := NewMSSQLVisitor(WithoutParams())
	stmt.Accept(v)

	var ufe *UnsupportedFeatureError
	if !errors.As(v.Err(), &ufe) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", v.Err())
	}
	testutil.AssertEqual(t, ufe.Feature, FeatureOnConflict)
}

// --- UPDATE ---

func TestUpdateBasic(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.UpdateStatement{
		Table: users,
		Assignments: []*nodes.AssignmentNode{
			nodes.Assign(users.Col("name"), "Grace"),
			nodes.Assign(users.Col("age"), 45),
		},
		Wheres: []nodes.Node{users.Col("id").Eq(7)},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`UPDATE "users" SET "name" = 'Grace', "age" = 45 WHERE "users"."id" = 7`)
}

func TestUpdateAssignmentUsesBareColumn(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()),
		nodes.Assign(users.Col("name"), "x"), `"name" = 'x'`)
}

func TestUpdateFrom(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stats := nodes.NewTable("stats")
	stmt := &nodes.UpdateStatement{
		Table: users,
		Assignments: []*nodes.AssignmentNode{
			nodes.Assign(users.Col("score"), stats.Col("score")),
		},
		From:   []nodes.Node{stats},
		Wheres: []nodes.Node{users.Col("id").Eq(stats.Col("user_id"))},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`UPDATE "users" SET "score" = "stats"."score" FROM "stats" WHERE "users"."id" = "stats"."user_id"`)
}

func TestUpdateFromUnsupported(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stats := nodes.NewTable("stats")
	stmt := &nodes.UpdateStatement{
		Table:       users,
		Assignments: []*nodes.AssignmentNode{nodes.Assign(users.Col("score"), 0)},
		From:        []nodes.Node{stats},
	}
	v := NewMySQLVisitor(WithoutParams())
	stmt.Accept(v)

	var ufe *UnsupportedFeatureError
	if !errors.As(v.Err(), &ufe) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", v.Err())
	}
	testutil.AssertEqual(t, ufe.Feature, FeatureUpdateFrom)
}

func TestUpdateReturning(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.UpdateStatement{
		Table:       users,
		Assignments: []*nodes.AssignmentNode{nodes.Assign(users.Col("age"), 30)},
		Wheres:      []nodes.Node{users.Col("id").Eq(1)},
		Returning:   []nodes.Node{users.Col("age")},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`UPDATE "users" SET "age" = 30 WHERE "users"."id" = 1 RETURNING "users"."age"`)
}

// --- DELETE ---

func TestDeleteBasic(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.DeleteStatement{
		From:   users,
		Wheres: []nodes.Node{users.Col("active").Eq(false)},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`DELETE FROM "users" WHERE "users"."active" = FALSE`)
}

func TestDeleteUsing(t *testing.T) {
	t.Parallel()
	posts := nodes.NewTable("posts")
	users := nodes.NewTable("users")
	stmt := &nodes.DeleteStatement{
		From:  posts,
		Using: []nodes.Node{users},
		Wheres: []nodes.Node{
			posts.Col("user_id").Eq(users.Col("id")),
			users.Col("banned").Eq(true),
		},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`DELETE FROM "posts" USING "users" WHERE "posts"."user_id" = "users"."id" AND "users"."banned" = TRUE`)
}

func TestDeleteUsingUnsupported(t *testing.T) {
	t.Parallel()
	posts := nodes.NewTable("posts")
	stmt := &nodes.DeleteStatement{
		From:  posts,
		Using: []nodes.Node{nodes.NewTable("users")},
	}
	v := NewSQLiteVisitor(WithoutParams())
	stmt.Accept(v)

	var ufe *UnsupportedFeatureError
	if !errors.As(v.Err(), &ufe) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", v.Err())
	}
	testutil.AssertEqual(t, ufe.Feature, FeatureDeleteUsing)
}

// --- MERGE ---

func newMergeStatement() *nodes.MergeStatement {
	target := nodes.NewTable("inventory")
	source := nodes.NewTable("shipments")
	return &nodes.MergeStatement{
		Target: target,
		Source: source,
		On:     target.Col("sku").Eq(source.Col("sku")),
		Actions: []*nodes.MergeAction{
			{
				When:   nodes.WhenMatched,
				Action: nodes.MergeUpdate,
				Assignments: []*nodes.AssignmentNode{
					nodes.Assign(target.Col("qty"), source.Col("qty")),
				},
			},
			{
				When:    nodes.WhenNotMatched,
				Action:  nodes.MergeInsert,
				Columns: []nodes.Node{target.Col("sku"), target.Col("qty")},
				Values:  []nodes.Node{source.Col("sku"), source.Col("qty")},
			},
		},
	}
}

func TestMergeStatement(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), newMergeStatement(),
		`MERGE INTO "inventory" USING "shipments" ON "inventory"."sku" = "shipments"."sku"`+
			` WHEN MATCHED THEN UPDATE SET "qty" = "shipments"."qty"`+
			` WHEN NOT MATCHED THEN INSERT ("sku", "qty") VALUES ("shipments"."sku", "shipments"."qty")`)
}

func TestMergeStatementMSSQLTerminator(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewMSSQLVisitor(WithoutParams()), newMergeStatement(),
		`MERGE INTO [inventory] USING [shipments] ON [inventory].[sku] = [shipments].[sku]`+
			` WHEN MATCHED THEN UPDATE SET [qty] = [shipments].[qty]`+
			` WHEN NOT MATCHED THEN INSERT ([sku], [qty]) VALUES ([shipments].[sku], [shipments].[qty]);`)
}

func TestMergeConditionalDelete(t *testing.T) {
	t.Parallel()
	target := nodes.NewTable("inventory")
	source := nodes.NewTable("shipments")
	stmt := &nodes.MergeStatement{
		Target: target,
		Source: source,
		On:     target.Col("sku").Eq(source.Col("sku")),
		Actions: []*nodes.MergeAction{
			{
				When:      nodes.WhenMatched,
				Condition: source.Col("qty").Eq(0),
				Action:    nodes.MergeDelete,
			},
		},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`MERGE INTO "inventory" USING "shipments" ON "inventory"."sku" = "shipments"."sku"`+
			` WHEN MATCHED AND "shipments"."qty" = 0 THEN DELETE`)
}

func TestMergeDoNothingBranch(t *testing.T) {
	t.Parallel()
	target := nodes.NewTable("inventory")
	source := nodes.NewTable("shipments")
	stmt := &nodes.MergeStatement{
		Target: target,
		Source: source,
		On:     target.Col("sku").Eq(source.Col("sku")),
		Actions: []*nodes.MergeAction{
			{When: nodes.WhenNotMatched, Action: nodes.MergeDoNothing},
		},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`MERGE INTO "inventory" USING "shipments" ON "inventory"."sku" = "shipments"."sku"`+
			` WHEN NOT MATCHED THEN DO NOTHING`)
}

func TestMergeDoNothingRejectedMSSQL(t *testing.T) {
	t.Parallel()
	target := nodes.NewTable("inventory")
	source := nodes.NewTable("shipments")
	stmt := &nodes.MergeStatement{
		Target: target,
		Source: source,
		On:     target.Col("sku").Eq(source.Col("sku")),
		Actions: []*nodes.MergeAction{
			{When: nodes.WhenMatched, Action: nodes.MergeDoNothing},
		},
	}
	v := NewMSSQLVisitor(WithoutParams())
	stmt.Accept(v)

	testutil.AssertError(t, v.Err())
	testutil.AssertEqual(t, v.Err().Error(),
		"arbor: mssql cannot express a MERGE DO NOTHING branch")
}

func TestMergeUnsupported(t *testing.T) {
	t.Parallel()
	v := NewSQLiteVisitor(WithoutParams())
	newMergeStatement().Accept(v)

	var ufe *UnsupportedFeatureError
	if !errors.As(v.Err(), &ufe) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", v.Err())
	}
	testutil.AssertEqual(t, ufe.Feature, FeatureMerge)
	testutil.AssertEqual(t, ufe.Error(), "arbor: sqlite does not support MERGE statement")
}

// --- DDL ---

func TestCreateTablePerDialect(t *testing.T) {
	t.Parallel()
	stmt := &nodes.CreateTableStatement{
		Table: nodes.NewTable("users"),
		Columns: []*nodes.ColumnDef{
			{Name: "id", Type: nodes.TypeBigInt, PrimaryKey: true},
			{Name: "name", Type: nodes.TypeString, Size: 255, NotNull: true},
			{Name: "active", Type: nodes.TypeBool, Default: nodes.Literal(true)},
		},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`CREATE TABLE "users" ("id" BIGINT PRIMARY KEY, "name" VARCHAR(255) NOT NULL, "active" BOOLEAN DEFAULT TRUE)`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), stmt,
		"CREATE TABLE `users` (`id` BIGINT PRIMARY KEY, `name` VARCHAR(255) NOT NULL, `active` TINYINT(1) DEFAULT TRUE)")
	testutil.AssertSQL(t, NewSQLiteVisitor(WithoutParams()), stmt,
		`CREATE TABLE "users" ("id" INTEGER PRIMARY KEY, "name" TEXT(255) NOT NULL, "active" INTEGER DEFAULT TRUE)`)
	testutil.AssertSQL(t, NewMSSQLVisitor(WithoutParams()), stmt,
		`CREATE TABLE [users] ([id] BIGINT PRIMARY KEY, [name] NVARCHAR(255) NOT NULL, [active] BIT DEFAULT 1)`)
}

func TestCreateTableModifiers(t *testing.T) {
	t.Parallel()
	stmt := &nodes.CreateTableStatement{
		Table:       nodes.NewTable("scratch"),
		Columns:     []*nodes.ColumnDef{{Name: "v", Type: nodes.TypeText}},
		Temporary:   true,
		IfNotExists: true,
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), stmt,
		`CREATE TEMPORARY TABLE IF NOT EXISTS "scratch" ("v" TEXT)`)
}

func TestCreateTableUniqueSuppressedByPrimaryKey(t *testing.T) {
	t.Parallel()
	col := &nodes.ColumnDef{Name: "id", Type: nodes.TypeInt, PrimaryKey: true, NotNull: true, Unique: true}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), col,
		`"id" INTEGER PRIMARY KEY`)
}

func TestCreateTableWithoutColumnsFails(t *testing.T) {
	t.Parallel()
	stmt := &nodes.CreateTableStatement{Table: nodes.NewTable("empty")}
	v := NewPostgresVisitor(WithoutParams())
	stmt.Accept(v)
	testutil.AssertError(t, v.Err())
}

func TestDropTable(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor(WithoutParams())
	testutil.AssertSQL(t, v, &nodes.DropTableStatement{Table: nodes.NewTable("users")},
		`DROP TABLE "users"`)
	testutil.AssertSQL(t, v, &nodes.DropTableStatement{Table: nodes.NewTable("users"), IfExists: true},
		`DROP TABLE IF EXISTS "users"`)
}

func TestCreateAndDropView(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	sel := &nodes.SelectCore{
		From:   users,
		Wheres: []nodes.Node{users.Col("active").Eq(true)},
	}
	v := NewPostgresVisitor(WithoutParams())
	testutil.AssertSQL(t, v, &nodes.CreateViewStatement{Name: "active_users", Query: sel},
		`CREATE VIEW "active_users" AS SELECT * FROM "users" WHERE "users"."active" = TRUE`)
	testutil.AssertSQL(t, v, &nodes.CreateViewStatement{Name: "active_users", Query: sel, OrReplace: true},
		`CREATE OR REPLACE VIEW "active_users" AS SELECT * FROM "users" WHERE "users"."active" = TRUE`)
	testutil.AssertSQL(t, v, &nodes.DropViewStatement{Name: "active_users", IfExists: true},
		`DROP VIEW IF EXISTS "active_users"`)
}
