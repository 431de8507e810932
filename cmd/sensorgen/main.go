package main

import (
	"os"

	"github.com/armadaproject/sensorgen/cmd/sensorgen/cmd"
	"github.com/armadaproject/sensorgen/internal/common"
)

func main() {
	common.ConfigureLogging()
	common.LoadDotEnv()
	err := cmd.RootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
