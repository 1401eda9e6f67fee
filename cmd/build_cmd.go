package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kaspa-auth/siwk/internal/conf"
	"github.com/kaspa-auth/siwk/internal/utilities/kaspa"
	"github.com/kaspa-auth/siwk/internal/utilities/siwk"
)

type buildOptions struct {
	fieldsFile        string
	address           string
	networkID         string
	domain            string
	scheme            string
	uri               string
	version           string
	statement         string
	nonce             string
	requestID         string
	issuedAt          string
	expirationTime    string
	notBefore         string
	resources         []string
	generateRequestID bool
}

func newBuildCommand(opts *buildOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:  "build",
		Long: "Build a Sign-In With Kaspa message and print it",
		Run: func(cmd *cobra.Command, args []string) {
			execWithConfig(cmd, func(config *conf.GlobalConfiguration) error {
				return runBuild(config, opts, cmd, clockwork.NewRealClock(), cmd.OutOrStdout())
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.fieldsFile, "fields", "f", "", "JSON file holding the message fields")
	flags.StringVarP(&opts.address, "address", "a", "", "Kaspa address signing in")
	flags.StringVar(&opts.networkID, "network-id", "", "network identifier")
	flags.StringVar(&opts.domain, "domain", "", "domain requesting the sign-in")
	flags.StringVar(&opts.scheme, "scheme", "", "URI scheme of the requesting origin")
	flags.StringVar(&opts.uri, "uri", "", "URI the sign-in is for")
	flags.StringVar(&opts.version, "version", "", "message version")
	flags.StringVar(&opts.statement, "statement", "", "human readable statement")
	flags.StringVar(&opts.nonce, "nonce", "", "nonce, generated when empty and generation is enabled")
	flags.StringVar(&opts.requestID, "request-id", "", "request identifier")
	flags.StringVar(&opts.issuedAt, "issued-at", "", "RFC 3339 issue time, defaults to now")
	flags.StringVar(&opts.expirationTime, "expiration-time", "", "RFC 3339 expiration time")
	flags.StringVar(&opts.notBefore, "not-before", "", "RFC 3339 time before which the message is not valid")
	flags.StringSliceVar(&opts.resources, "resource", nil, "resource URI, may be repeated")
	flags.BoolVar(&opts.generateRequestID, "generate-request-id", false, "generate a UUID request identifier")

	return cmd
}

func parseTimeFlag(name, value string) (*time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return &ts, nil
}

// resolveFields layers configured defaults, the fields file and changed
// flags, in that order.
func resolveFields(config *conf.GlobalConfiguration, opts *buildOptions, cmd *cobra.Command, clock clockwork.Clock) (siwk.MessageFields, error) {
	defaults := config.Message

	fields := siwk.MessageFields{
		Domain:    defaults.Domain,
		Scheme:    defaults.Scheme,
		URI:       defaults.URI,
		NetworkID: defaults.NetworkID,
		Statement: defaults.Statement,
		Version:   defaults.Version,
	}
	if len(defaults.Resources) > 0 {
		fields.Resources = siwk.StringResources(defaults.Resources...)
	}

	if opts.fieldsFile != "" {
		raw, err := os.ReadFile(opts.fieldsFile)
		if err != nil {
			return fields, errors.Wrap(err, "reading fields file")
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fields, errors.Wrapf(err, "decoding fields file %s", opts.fieldsFile)
		}
	}

	changed := cmd.Flags().Changed
	stringFlags := []struct {
		name   string
		value  string
		target *string
	}{
		{"address", opts.address, &fields.Address},
		{"network-id", opts.networkID, &fields.NetworkID},
		{"domain", opts.domain, &fields.Domain},
		{"scheme", opts.scheme, &fields.Scheme},
		{"uri", opts.uri, &fields.URI},
		{"version", opts.version, &fields.Version},
		{"statement", opts.statement, &fields.Statement},
		{"nonce", opts.nonce, &fields.Nonce},
		{"request-id", opts.requestID, &fields.RequestID},
	}
	for _, f := range stringFlags {
		if changed(f.name) {
			*f.target = f.value
		}
	}

	timeFlags := []struct {
		name   string
		value  string
		target **time.Time
	}{
		{"issued-at", opts.issuedAt, &fields.IssuedAt},
		{"expiration-time", opts.expirationTime, &fields.ExpirationTime},
		{"not-before", opts.notBefore, &fields.NotBefore},
	}
	for _, f := range timeFlags {
		if !changed(f.name) {
			continue
		}
		ts, err := parseTimeFlag(f.name, f.value)
		if err != nil {
			return fields, err
		}
		*f.target = ts
	}

	if changed("resource") {
		fields.Resources = siwk.StringResources(opts.resources...)
	}

	if fields.Nonce == "" && defaults.GenerateNonce {
		nonce, err := siwk.GenerateNonce(defaults.NonceLength)
		if err != nil {
			return fields, errors.Wrap(err, "generating nonce")
		}
		fields.Nonce = nonce
	}

	if fields.RequestID == "" && opts.generateRequestID {
		requestID, err := siwk.GenerateRequestID()
		if err != nil {
			return fields, errors.Wrap(err, "generating request id")
		}
		fields.RequestID = requestID
	}

	if fields.ExpirationTime == nil && defaults.ExpiresIn > 0 {
		if fields.IssuedAt == nil {
			now := clock.Now()
			fields.IssuedAt = &now
		}
		expiresAt := fields.IssuedAt.Add(defaults.ExpiresIn)
		fields.ExpirationTime = &expiresAt
	}

	return fields, nil
}

func runBuild(config *conf.GlobalConfiguration, opts *buildOptions, cmd *cobra.Command, clock clockwork.Clock, out io.Writer) error {
	fields, err := resolveFields(config, opts, cmd, clock)
	if err != nil {
		return err
	}

	message, address, err := siwk.NewBuilder(clock).BuildWithAddress(fields)
	if err != nil {
		return err
	}

	if config.Message.Network != "" {
		expected, err := kaspa.ParseNetwork(config.Message.Network)
		if err != nil {
			return errors.Wrap(err, "configured message network")
		}
		if address.Network() != expected {
			return errors.Errorf("address %q is on %s, configured network is %s", address, address.Network(), expected)
		}
	}

	logrus.WithFields(logrus.Fields{
		"component": "build",
		"domain":    fields.Domain,
		"network":   address.Network().String(),
	}).Debug("Built sign-in message")

	_, err = fmt.Fprintln(out, message)
	return err
}
