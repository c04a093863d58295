package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the days that have entries, newest first.",
		Example: `
diary list
diary list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			defer s.Close()

			l := list.List{Store: s, Out: cmd.OutOrStdout(), JSON: oo.JSON}
			return oo.HandleError(cmd, l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
