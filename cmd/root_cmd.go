package cmd

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kaspa-auth/siwk/internal/conf"
	"github.com/kaspa-auth/siwk/internal/observability"
)

var configFile = ""

var rootCmd = cobra.Command{
	Use:   "siwk",
	Short: "Build and parse Sign-In With Kaspa messages",
}

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd.AddCommand(newBuildCommand(&buildOptions{}), &parseCmd, newNonceCommand(), &versionCmd)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "the config file to use")

	return &rootCmd
}

func loadConfig() (*conf.GlobalConfiguration, error) {
	config, err := conf.LoadGlobal(configFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading configuration")
	}

	if err := observability.ConfigureLogging(&config.Logging); err != nil {
		return nil, errors.Wrap(err, "configuring logging")
	}

	return config, nil
}

func execWithConfig(cmd *cobra.Command, fn func(config *conf.GlobalConfiguration) error) {
	config, err := loadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %+v", err)
	}

	if err := fn(config); err != nil {
		logrus.WithError(err).WithField("command", cmd.Name()).Fatal("command failed")
	}
}
