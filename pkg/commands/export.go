package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	var (
		title, from, to, out string
		newest               bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as an HTML page.",
		Long:  options.Wrap80("Render every entry, or the entries between --from and --to, as Markdown into one HTML page."),
		Example: `
diary export > diary.html
diary export --from 2024-03-01 --to 2024-03-31 --out march.html
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := export.Export{Title: title, Newest: newest, Out: cmd.OutOrStdout()}
			var err error
			if from != "" {
				if e.From, err = datekey.Parse(from); err != nil {
					return err
				}
			}
			if to != "" {
				if e.To, err = datekey.Parse(to); err != nil {
					return err
				}
			}
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer f.Close()
				e.Out = f
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			e.Store = s
			return e.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&title, "title", "Diary", "Page title.")
	cmd.Flags().StringVar(&from, "from", "", "First date to include, YYYY-MM-DD.")
	cmd.Flags().StringVar(&to, "to", "", "Last date to include, YYYY-MM-DD.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout.")
	cmd.Flags().BoolVar(&newest, "newest-first", false, "Order entries newest first.")
	topLevel.AddCommand(cmd)
}
