package main

import (
	"github.com/icinga/icinga-queryfilter/internal"
	"github.com/icinga/icinga-queryfilter/internal/cli"
	"github.com/icinga/icinga-queryfilter/internal/config"
	"github.com/icinga/icingadb/pkg/logging"
	"github.com/icinga/icingadb/pkg/utils"
	"github.com/jessevdk/go-flags"
	"os"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

func main() {
	f, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		if flags.WroteHelp(err) {
			os.Exit(ExitSuccess)
		}

		// The flags parser has already printed the error.
		os.Exit(ExitFailure)
	}

	if f.Version {
		internal.Version.Print("Icinga Query Filter")
		os.Exit(ExitSuccess)
	}

	conf, err := config.FromFile(f.Config)
	if err != nil {
		utils.PrintErrorThenExit(err, ExitFailure)
	}

	logs, err := logging.NewLogging(
		"icinga-queryfilter",
		conf.Logging.Level,
		conf.Logging.Output,
		conf.Logging.Options,
		conf.Logging.Interval,
	)
	if err != nil {
		utils.PrintErrorThenExit(err, ExitFailure)
	}

	logger := logs.GetChildLogger("cli")
	if err := cli.Run(conf, f, os.Stdout, logger.SugaredLogger); err != nil {
		// PrintErrorThenExit doesn't return, so flush the buffered log entries first.
		_ = logger.Sync()
		utils.PrintErrorThenExit(err, ExitFailure)
	}

	_ = logger.Sync()
}
