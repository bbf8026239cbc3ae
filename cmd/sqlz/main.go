// Package main is the entry point for the sqlz CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ido50/sqlz/v2/cmd/sqlz/commands"
)

// Version information (set by build)
var Version = "dev"

func main() {
	root := commands.NewRootCommand()
	root.Version = Version

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
		os.Exit(1)
	}
}
