package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaspa-auth/siwk/internal/conf"
	"github.com/kaspa-auth/siwk/internal/utilities/siwk"
)

func newNonceCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:  "nonce",
		Long: "Print a random nonce suitable for a sign-in message",
		Run: func(cmd *cobra.Command, args []string) {
			execWithConfig(cmd, func(config *conf.GlobalConfiguration) error {
				if !cmd.Flags().Changed("length") {
					length = config.Message.NonceLength
				}

				nonce, err := siwk.GenerateNonce(length)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), nonce)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", siwk.MinNonceLength, "nonce length")

	return cmd
}
