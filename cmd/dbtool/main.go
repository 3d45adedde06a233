// dbtool is a small wiring-demonstration program, grounded in the
// cmd/seed / cmd/inspect_idx / cmd/dump_sample convention: a
// subcommand per operation rather than a REPL or SQL command-line
// surface, both left out of scope.
package main

import (
	"fmt"
	"os"

	"relstore/catalog"
	"relstore/dblog"
	"relstore/executor"
	"relstore/sqlast"
	"relstore/storage/heaptable"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "smoketest":
		runSmoketest()
	case "demo":
		runDemo()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dbtool <smoketest|demo>")
}

// smoketest exercises the raw storage stack directly (bypassing the
// catalog and executor), the way cmd/seed exercised the heap file
// manager directly.
func runSmoketest() {
	log := dblog.New("smoketest")
	dir, err := os.MkdirTemp("", "relstore-smoketest-*")
	if err != nil {
		log.Printf("mkdir temp: %v", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	lines, err := heaptable.RunSmokeTest(dir + "/widgets.tbl")
	if err != nil {
		log.Printf("smoke test: %v", err)
		os.Exit(1)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

// demo wires the catalog and executor together: create a table, add an
// index, insert rows, then run a filtered SELECT.
func runDemo() {
	log := dblog.New("demo")
	dir, err := os.MkdirTemp("", "relstore-demo-*")
	if err != nil {
		log.Printf("mkdir temp: %v", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	cat, err := catalog.Open(dir)
	if err != nil {
		log.Printf("open catalog: %v", err)
		os.Exit(1)
	}
	defer cat.Close()

	exec := executor.New(cat)

	statements := []sqlast.Statement{
		&sqlast.CreateTable{
			Table: "widgets",
			Columns: []sqlast.ColumnDef{
				{Name: "id", Type: "INT"},
				{Name: "label", Type: "TEXT"},
			},
		},
		&sqlast.CreateIndex{
			Index:   "widgets_id_idx",
			Table:   "widgets",
			Columns: []string{"id"},
			Kind:    "BTREE",
		},
		&sqlast.Insert{Table: "widgets", Values: []sqlast.Literal{{Int: 1}, {IsString: true, Str: "sprocket"}}},
		&sqlast.Insert{Table: "widgets", Values: []sqlast.Literal{{Int: 2}, {IsString: true, Str: "gizmo"}}},
		&sqlast.Select{
			List:  sqlast.SelectList{Columns: []string{"label"}},
			Table: "widgets",
			Where: &sqlast.BinaryOp{Column: "id", Op: "=", Value: sqlast.Literal{Int: 2}},
		},
	}

	for _, stmt := range statements {
		res, err := exec.Execute(stmt)
		if err != nil {
			log.Printf("execute %T: %v", stmt, err)
			os.Exit(1)
		}
		if res.Message != "" {
			fmt.Println(res.Message)
		}
		for _, row := range res.Rows {
			fmt.Printf("  %v\n", row)
		}
	}
}
