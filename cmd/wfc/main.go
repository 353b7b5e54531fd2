// Command wfc generates tile grids with wave function collapse.
//
//	wfc generate -theme circuit -width 20 -height 10 -seed 7
//	wfc generate -tiles roads.yaml -n 100 -db grids.db
//	wfc show -db grids.db -id 3
//	wfc tiles -theme demo
//	wfc serve -addr :8080 -interval 2s
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&showCmd{}, "")
	subcommands.Register(&tilesCmd{}, "")
	subcommands.Register(&serveCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
