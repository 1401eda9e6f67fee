package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kaspa-auth/siwk/internal/conf"
	"github.com/kaspa-auth/siwk/internal/utilities/siwk"
)

var parseCmd = cobra.Command{
	Use:  "parse [file]",
	Long: "Parse a Sign-In With Kaspa message from a file or stdin and print its fields as JSON",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, func(config *conf.GlobalConfiguration) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "opening message file")
				}
				defer f.Close()
				in = f
			}
			return runParse(in, cmd.OutOrStdout())
		})
	},
}

type parseOutput struct {
	Network string `json:"network"`
	siwk.MessageFields
}

func runParse(in io.Reader, out io.Writer) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "reading message")
	}

	msg, err := siwk.ParseMessage(strings.TrimSuffix(string(raw), "\n"))
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"component": "parse",
		"domain":    msg.Domain,
		"address":   msg.Address.String(),
	}).Debug("Parsed sign-in message")

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(parseOutput{
		Network:       msg.Address.Network().String(),
		MessageFields: msg.Fields(),
	})
}
