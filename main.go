package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"credit-calc/logger"
)

var (
	typeFlag      = cli.StringFlag{Name: "type", Usage: "repayment strategy: annuity or diff"}
	principalFlag = cli.IntFlag{Name: "principal", Usage: "credit principal, 0 when unknown"}
	paymentFlag   = cli.IntFlag{Name: "payment", Usage: "monthly payment, 0 when unknown"}
	periodsFlag   = cli.IntFlag{Name: "periods", Usage: "number of monthly periods, 0 when unknown"}
	interestFlag  = cli.Float64Flag{Name: "interest", Usage: "annual interest rate in percent"}
	logLevelFlag  = cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level written to stderr"}
	configFlag    = cli.StringFlag{Name: "config", Usage: "path to a YAML configuration file", EnvVar: "CREDIT_CALC_CONFIG"}
)

func newApp(stdout io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "credit-calc"
	app.Usage = "derive the missing quantity of a credit and its repayment schedule"
	app.Writer = stdout
	app.Flags = []cli.Flag{
		typeFlag,
		principalFlag,
		paymentFlag,
		periodsFlag,
		interestFlag,
		logLevelFlag,
	}
	app.Before = func(c *cli.Context) error {
		return logger.Init(c.String(logLevelFlag.Name))
	}
	app.Action = func(c *cli.Context) error {
		return runCalculation(c, stdout)
	}
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "serve the calculator over HTTP",
			Flags:  []cli.Flag{configFlag},
			Action: runServer,
		},
	}
	return app
}

func main() {
	app := newApp(os.Stdout)
	err := app.Run(os.Args)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
