package cmd

import (
	"github.com/spf13/cobra"

	"github.com/armadaproject/sensorgen/internal/sensorgen"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Runs the generation job immediately and then on every schedule interval",
		RunE:  runSensorgen,
	}
	return cmd
}

func runSensorgen(_ *cobra.Command, _ []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	return sensorgen.Run(config)
}
