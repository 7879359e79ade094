package cli

import (
	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every course sorted by course number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, closeRec := openRecorder(cmd.Context(), a.cfg.Database)
			defer closeRec()

			cat, _, err := a.loadCatalog(cmd, rec)
			if err != nil {
				return err
			}
			return catalog.WriteList(cmd.OutOrStdout(), cat)
		},
	}
}
