// Package commands implements the sqlz CLI commands.
package commands

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ido50/sqlz/v2"
)

var errNoConnection = errors.New("no database configured, provide --driver and --dsn")

// env holds the state shared by all commands of a single invocation
type env struct {
	v   *viper.Viper
	cfg *Config
}

// NewRootCommand creates the sqlz command tree
func NewRootCommand() *cobra.Command {
	e := &env{v: viper.New()}

	root := &cobra.Command{
		Use:           "sqlz",
		Short:         "Build and run simple SQL statements",
		Long:          "sqlz builds parameterized SELECT and DELETE statements and runs them against a database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			e.cfg, err = loadConfig(e.v)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "configuration file (default ./.sqlz.yaml)")
	flags.String("driver", "", "database driver (postgres, mysql, sqlite)")
	flags.String("dsn", "", "data source name")
	flags.String("quote", "auto", "identifier quoting: none, lower, backtick, double, bracket or auto")
	flags.BoolP("verbose", "v", false, "log executed statements to stderr")
	for _, name := range []string{"config", "driver", "dsn", "quote", "verbose"} {
		_ = e.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(newSelectCommand(e), newDeleteCommand(e))

	return root
}

// open connects to the configured database
func (e *env) open(cmd *cobra.Command) (*sqlz.DB, error) {
	if e.cfg.Driver == "" || e.cfg.DSN == "" {
		return nil, errNoConnection
	}

	db, err := sql.Open(e.cfg.Driver, e.cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed opening database: %w", err)
	}

	var opts []sqlz.DBOption
	if e.cfg.Verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, sqlz.WithLogger(logger))
	}

	return sqlz.New(db, e.cfg.Driver, opts...), nil
}

// parseWhere turns key=value arguments into an ordered predicate map.
// The value "null" (in any case) matches NULL.
func parseWhere(conditions []string) (sqlz.Map, error) {
	var m sqlz.Map
	for _, cond := range conditions {
		key, value, ok := strings.Cut(cond, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid condition %q, expected key=value", cond)
		}
		if strings.EqualFold(value, "null") {
			m = m.Set(key, nil)
		} else {
			m = m.Set(key, value)
		}
	}
	return m, nil
}

// parseOrder turns column names into ordering entries, a leading "-"
// meaning descending order
func parseOrder(cols []string) []sqlz.OrderColumn {
	order := make([]sqlz.OrderColumn, 0, len(cols))
	for _, col := range cols {
		if name, ok := strings.CutPrefix(col, "-"); ok {
			order = append(order, sqlz.Desc(name))
		} else {
			order = append(order, sqlz.Asc(col))
		}
	}
	return order
}

// printStmt writes the statement's SQL and, on a second line, its
// parameters as a JSON array
func printStmt(w io.Writer, stmt sqlz.Stmt) error {
	args := stmt.Args
	if args == nil {
		args = []interface{}{}
	}
	fmt.Fprintln(w, stmt.SQL)
	return json.NewEncoder(w).Encode(args)
}

// printRows writes every row as a JSON object on its own line
func printRows(w io.Writer, rows []sqlz.Row) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
