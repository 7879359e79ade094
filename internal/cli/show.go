package cli

import (
	"fmt"

	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/spf13/cobra"
)

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show COURSE",
		Short: "Print one course and its prerequisites",
		Long: `Print one course and its prerequisites. The course number is matched
case-insensitively; the command exits with status 1 when it is not found.`,
		Example: "  courseplanner show --file courses.csv csci300",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, closeRec := openRecorder(cmd.Context(), a.cfg.Database)
			defer closeRec()

			cat, _, err := a.loadCatalog(cmd, rec)
			if err != nil {
				return err
			}

			c, ok := cat.Lookup(args[0])
			if !ok {
				if err := catalog.WriteNotFound(cmd.OutOrStdout(), args[0]); err != nil {
					return err
				}
				return fmt.Errorf("%s: %w", catalog.Normalize(args[0]), catalog.ErrNotFound)
			}
			return catalog.WriteCourse(cmd.OutOrStdout(), c)
		},
	}
}
