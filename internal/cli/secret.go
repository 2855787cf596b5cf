package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/aura/internal/security"
)

const defaultSecretKeyLength = 48

// NewSecretCommand prints a fresh random value for SECRET_KEY.
func NewSecretCommand(rootOpts *RootOptions) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a random SECRET_KEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			secret, err := security.NewSecretKey(length)
			if err != nil {
				return err
			}
			return formatter.Success(map[string]string{"secret_key": secret}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, secret)
				return err
			})
		},
	}

	cmd.Flags().IntVar(&length, "length", defaultSecretKeyLength, fmt.Sprintf("number of characters (at least %d)", security.MinSecretKeyLength))
	return cmd
}
