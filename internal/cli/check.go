package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"intake/internal/submission"
	"intake/internal/submission/service"
)

// ErrInvalidDocument is returned when the checked document fails validation.
var ErrInvalidDocument = errors.New(service.MessageInvalidFormData)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|->",
		Short: "Validate a form payload and print the normalized record",
		Long: `Validate a JSON form payload with the same rules the server applies
and print the record that would be stored. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			data, err := checkPayload(raw)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), rootOpts.Format, data, func(w io.Writer) error {
				return printf(w, "valid: name=%q email=%q age=%d gender=%s\n",
					data.Name, data.Email, data.Age, data.Gender)
			})
		},
	}
}

func readInput(stdin io.Reader, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return raw, nil
}

// checkPayload decodes raw the way the HTTP handler does and runs it through
// Validate and Normalize.
func checkPayload(raw []byte) (submission.PersonalData, error) {
	var input any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil {
		return submission.PersonalData{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	data, err := submission.Validate(input)
	if err != nil {
		return submission.PersonalData{}, ErrInvalidDocument
	}
	return submission.Normalize(data), nil
}
