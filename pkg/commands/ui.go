package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
diary ui
diary ui --on 2024-03-05
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(now())
			if err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			i := ui.UI{Store: s, Date: date, Now: now}
			return i.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on)
	topLevel.AddCommand(cmd)
}
