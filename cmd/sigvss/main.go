package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("sigvss failed")
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "sigvss",
		Usage: "signature-chained verifiable secret sharing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "zerolog level: trace, debug, info, warn, error",
				Value: "info",
			},
		},
		Before: func(cc *cli.Context) error {
			level, err := zerolog.ParseLevel(cc.String(logLevelFlag))
			if err != nil {
				return err
			}

			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			return nil
		},
	}

	registerRunCommand(app)

	return app
}
