package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/runner/entry"
	"tableflip.dev/diary/pkg/snake"
)

// confirm asks before deleting; replaced in tests.
var confirm = func(date datekey.Key) bool {
	ok, err := snake.Confirm("Delete entry for "+string(date), nil, nil)
	return err == nil && ok
}

func addWrite(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "Replace the entry for a day.",
		Long: options.Wrap80("Replace the entry for a day with the given text. " +
			"Pass - to read the text from stdin. Text is required; pass \"\" to blank a day, "+
			"which keeps it in the index."),
		Example: `
diary write went to the lake
diary write --on 2024-03-05 "late entry"
echo "from a pipe" | diary write -
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(now())
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			text := strings.Join(args, " ")
			if text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return oo.HandleError(cmd, err)
				}
				text = strings.TrimRight(string(b), "\n")
			}
			s, err := openStore()
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			defer s.Close()

			w := entry.Write{Date: date, Text: text, Store: s, Out: cmd.OutOrStdout(), JSON: oo.JSON}
			return oo.HandleError(cmd, w.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addRead(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the entry for a day.",
		Example: `
diary read
diary read --on yesterday
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(now())
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			s, err := openStore()
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			defer s.Close()

			r := entry.Read{Date: date, Store: s, Out: cmd.OutOrStdout(), JSON: oo.JSON}
			return oo.HandleError(cmd, r.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}
	yes := &options.YesOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete the entry for a day.",
		Example: `
diary delete --on 2024-03-05
diary delete --on today --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(now())
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			s, err := openStore()
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			defer s.Close()

			r := entry.Remove{Date: date, Store: s, Out: cmd.OutOrStdout(), JSON: oo.JSON}
			if !yes.Yes {
				r.Confirm = confirm
			}
			return oo.HandleError(cmd, r.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddYesArgs(cmd, yes)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
