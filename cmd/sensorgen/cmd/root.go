package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/armadaproject/sensorgen/internal/common"
	commonconfig "github.com/armadaproject/sensorgen/internal/common/config"
	"github.com/armadaproject/sensorgen/internal/sensorgen/configuration"
)

const (
	CustomConfigLocation string = "config"
	DefaultConfigPath    string = "./config/sensorgen"
)

// RootCmd runs the generation loop when invoked without a sub-command.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sensorgen",
		SilenceUsage: true,
		Short:        "Writes a batch of synthetic sensor readings to a database every minute",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return common.BindCommandlineArguments(cmd.Flags())
		},
		RunE: runSensorgen,
	}

	cmd.PersistentFlags().StringSlice(
		CustomConfigLocation,
		[]string{},
		"Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)")

	cmd.AddCommand(
		runCmd(),
		generateCmd(),
	)

	return cmd
}

func loadConfig() (configuration.Configuration, error) {
	var config configuration.Configuration
	userSpecifiedConfigs := viper.GetStringSlice(CustomConfigLocation)

	common.LoadConfig(&config, DefaultConfigPath, userSpecifiedConfigs)

	err := config.Validate()
	if err != nil {
		commonconfig.LogValidationErrors(err)
	}
	return config, err
}
