package main

import (
	"fmt"
	"os"
	"strings"

	"lldbank/lld-validator/cmd/bankcode"
	"lldbank/lld-validator/cmd/batch"
	"lldbank/lld-validator/cmd/keyword"
	"lldbank/lld-validator/cmd/root"
	"lldbank/lld-validator/cmd/seed"
	"lldbank/lld-validator/cmd/statuskw"
	"lldbank/lld-validator/cmd/validate"
	"lldbank/lld-validator/internal/config"
	"lldbank/lld-validator/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// Environment first so the level below can come from .env
	config.LoadEnv()

	logging.SetAllLogLevels(configureLogLevelDirectly())

	root.Init()

	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(keyword.Cmd)
	root.Cmd.AddCommand(bankcode.Cmd)
	root.Cmd.AddCommand(statuskw.Cmd)
	root.Cmd.AddCommand(seed.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from LLD_LOG_LEVEL
// and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := config.GetEnv("LLD_LOG_LEVEL", "info")

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
