package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/reindex"
)

func addReindex(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the date index from the stored entries.",
		Example: `
diary reindex
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			defer s.Close()

			r := reindex.Reindex{Store: s, Out: cmd.OutOrStdout()}
			return oo.HandleError(cmd, r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
