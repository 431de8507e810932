package cmd

import (
	"github.com/spf13/cobra"

	"github.com/armadaproject/sensorgen/internal/sensorgen"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates and inserts a single batch of sensor records, then exits",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			return sensorgen.RunOnce(config)
		},
	}
	return cmd
}
