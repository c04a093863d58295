package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// Print writes v as JSON to the command's output.
func (o *OutputOptions) Print(cmd *cobra.Command, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

// ReportedError wraps an error that has already been written to the user.
// Callers should exit non-zero without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var re *ReportedError
	return errors.As(err, &re)
}

// HandleError renders err as {"error": "..."} in JSON mode and returns it
// wrapped in a ReportedError so the exit status still fails.
func (o *OutputOptions) HandleError(cmd *cobra.Command, err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		if perr := o.Print(cmd, out); perr != nil {
			return perr
		}
		return &ReportedError{Err: err}
	}
	return err
}
