package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/cal"
)

func addCal(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	mo := &options.MonthOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Show a month calendar marking the days with entries.",
		Long: options.Wrap80("Show a six-week month calendar starting on Sunday. " +
			"The selected day, today and the days with entries are highlighted."),
		Example: `
diary cal
diary cal --month 2024-02 --next 3
diary cal --on 2024-03-05 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(now())
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			year, month, ok, err := mo.GetMonth()
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			s, err := openStore()
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			defer s.Close()

			c := cal.Cal{
				Months:   mo.Next,
				Selected: date,
				Now:      now,
				Store:    s,
				Out:      cmd.OutOrStdout(),
				JSON:     oo.JSON,
			}
			if ok {
				c.Year, c.Month = year, month
			}
			return oo.HandleError(cmd, c.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddMonthArgs(cmd, mo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
