// Package snake asks yes/no questions on the terminal.
package snake

import (
	"errors"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Confirm asks label as a y/N question on in/out. Nil streams use the
// terminal. Declining, or interrupting the prompt, returns false.
func Confirm(label string, in io.ReadCloser, out io.WriteCloser) (bool, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} [y/N] : ",
		Valid:   "{{ . | green }} [y/N] : ",
		Invalid: "{{ . | red }} [y/N] : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
		Stdin:  in,
		Stdout: out,
	}

	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if result == "" {
		return false, nil
	}
	return ParseBool(result)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "NO", "No", "no":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
