package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ido50/sqlz/v2"
)

var errNoConditions = errors.New("refusing to delete without conditions, use --all to delete every row")

func newDeleteCommand(e *env) *cobra.Command {
	var (
		where  []string
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "delete TABLE",
		Short: "Delete rows from a table",
		Long: `Delete the rows of a table matching the conditions, printing the number
of deleted rows. Conditions are given as key=value and combined with AND,
key=null matches NULL.`,
		Example: `  sqlz delete sessions --where user_id=42
  sqlz delete sessions --all --dry-run`,
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
			if len(conditions) == 0 && !all {
				return errNoConditions
			}

			table, pred := sqlz.Ident(args[0]), sqlz.Where(conditions)

			if dryRun {
				return printStmt(cmd.OutOrStdout(), sqlz.NewBuilder(sqlz.Quote(q)).Delete(table, pred))
			}

			db, err := e.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := db.DeleteRows(cmd.Context(), table, pred, sqlz.Quote(q))
			if err != nil {
				return err
			}

			var deleted int64
			for _, n := range counts {
				deleted += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows deleted\n", deleted)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition as key=value, may be repeated")
	cmd.Flags().BoolVar(&all, "all", false, "allow deleting without conditions")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the statement instead of running it")

	return cmd
}
