// Package sqlast is the AST contract the executor consumes. The parser
// that produces these values is an external collaborator, deliberately
// out of scope alongside the REPL and command-line surface; this
// package only fixes the shape of what it hands to the executor.
//
// Grounded in query_parser/parser/ast.go's idiom: a flat marker
// interface (Statement) and one struct per statement kind, plain
// fields, no builder methods.
package sqlast

// Statement is any parsed SQL statement the executor knows how to run.
type Statement interface {
	statement()
}

// ColumnDef names one column of a CREATE TABLE, with Type as the raw
// token the parser saw (INT/TEXT/DOUBLE among others) — types.ParseDataType
// interprets it, so DOUBLE reaches the executor and is rejected there
// rather than being filtered out earlier.
type ColumnDef struct {
	Name string
	Type string
}

// CreateTable is `CREATE TABLE name (cols...)`.
type CreateTable struct {
	Table   string
	Columns []ColumnDef
}

func (*CreateTable) statement() {}

// DropTable is `DROP TABLE name`.
type DropTable struct {
	Table string
}

func (*DropTable) statement() {}

// CreateIndex is `CREATE INDEX name ON table (cols...) [USING kind]`.
type CreateIndex struct {
	Index   string
	Table   string
	Columns []string
	Kind    string // "BTREE" or "HASH"; empty defaults to BTREE.
}

func (*CreateIndex) statement() {}

// DropIndex is `DROP INDEX table.index`.
type DropIndex struct {
	Table string
	Index string
}

func (*DropIndex) statement() {}

// ShowTables is `SHOW TABLES`.
type ShowTables struct{}

func (*ShowTables) statement() {}

// ShowColumns is `SHOW COLUMNS FROM table`.
type ShowColumns struct {
	Table string
}

func (*ShowColumns) statement() {}

// ShowIndex is `SHOW INDEX FROM table`.
type ShowIndex struct {
	Table string
}

func (*ShowIndex) statement() {}

// Literal is an integer or string literal appearing in an INSERT values
// list or a WHERE clause.
type Literal struct {
	IsString bool
	Int      int32
	Str      string
}

// Insert is `INSERT INTO table VALUES (...)`, values positional in
// schema-column order.
type Insert struct {
	Table  string
	Values []Literal
}

func (*Insert) statement() {}

// SelectList is either `SELECT *` (Star true) or a named projection.
type SelectList struct {
	Star    bool
	Columns []string
}

// Delete is `DELETE FROM table [WHERE where]`. Where is nil for an
// unconditional delete.
type Delete struct {
	Table string
	Where Expr
}

func (*Delete) statement() {}

// Select is `SELECT list FROM table [WHERE where]`.
type Select struct {
	List  SelectList
	Table string
	Where Expr
}

func (*Select) statement() {}
