package commands

import (
	"github.com/spf13/cobra"

	"github.com/ido50/sqlz/v2"
)

func newSelectCommand(e *env) *cobra.Command {
	var (
		cols   []string
		where  []string
		order  []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "select TABLE",
		Short: "Select rows from a table",
		Long: `Select rows from a table, printing every row as a JSON object.

Conditions are given as key=value and combined with AND, key=null matches
NULL. Prefix an ordering column with "-" to sort it in descending order.`,
		Example: `  sqlz select users --cols id,name --where active=1 --order -created_at
  sqlz --driver sqlite --dsn app.db select users --where email=null`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := e.cfg.Quoter()
			if err != nil {
				return err
			}

			conditions, err := parseWhere(where)
			if err != nil {
				return err
			}

			b := sqlz.NewBuilder(sqlz.Quote(q))
			stmt := b.Select(sqlz.Cols(cols...), sqlz.Ident(args[0]),
				sqlz.Where(conditions),
				sqlz.OrderBy(parseOrder(order)...),
			)

			if dryRun {
				return printStmt(cmd.OutOrStdout(), stmt)
			}

			db, err := e.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.Query(cmd.Context(), stmt)
			if err != nil {
				return err
			}

			return printRows(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringSliceVar(&cols, "cols", nil, "columns to select (default all)")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition as key=value, may be repeated")
	cmd.Flags().StringSliceVar(&order, "order", nil, "columns to order by, -col for descending")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the statement instead of running it")

	return cmd
}
