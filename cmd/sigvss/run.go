package main

import (
	"encoding/hex"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.dedis.ch/sigvss/peer"
	"go.dedis.ch/sigvss/peer/impl"
	"go.dedis.ch/sigvss/peer/impl/signature"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

const (
	logLevelFlag  = "log-level"
	thresholdFlag = "t"
	secretFlag    = "secret"
	schemeFlag    = "scheme"
	seedFlag      = "seed"
	configFlag    = "config"
	cacheFlag     = "verify-cache"
	costFlag      = "cost"
)

// settings are the values of a run, read from the config file and
// overridden by the flags that are set.
type settings struct {
	T               int
	Secret          int64
	Scheme          string
	Seed            string
	VerifyCacheSize int
}

func registerRunCommand(app *cli.App) {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "run",
		Usage: "share a secret and recover it",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  thresholdFlag,
				Usage: "corruption threshold, n = 3t+1 receivers",
				Value: 1,
			},
			&cli.Int64Flag{
				Name:  secretFlag,
				Usage: "secret to share",
				Value: 42,
			},
			&cli.StringFlag{
				Name:  schemeFlag,
				Usage: "signature scheme: schnorr or bls",
				Value: signature.SchnorrName,
			},
			&cli.StringFlag{
				Name:  seedFlag,
				Usage: "hex seed of the dealer randomness",
			},
			&cli.StringFlag{
				Name:  configFlag,
				Usage: "yaml, json or toml file with the run settings",
			},
			&cli.IntFlag{
				Name:  cacheFlag,
				Usage: "number of remembered signature verifications",
				Value: signature.DefaultCacheSize,
			},
			&cli.BoolFlag{
				Name:  costFlag,
				Usage: "print the cost projected on the 5t+4 parties",
			},
		},
		Action: func(cc *cli.Context) error {
			s, err := loadSettings(cc)
			if err != nil {
				return err
			}

			conf, err := s.configuration()
			if err != nil {
				return err
			}

			report, err := impl.NewVSS(conf).Execute(cc.Context, impl.Suite.Scalar().SetInt64(s.Secret))
			if err != nil {
				return err
			}

			printReport(report)

			if cc.Bool(costFlag) {
				printCost(impl.EstimateComposedCost(report))
			}

			return nil
		},
	})
}

func loadSettings(cc *cli.Context) (settings, error) {
	v := viper.New()

	v.SetDefault(thresholdFlag, cc.Int(thresholdFlag))
	v.SetDefault(secretFlag, cc.Int64(secretFlag))
	v.SetDefault(schemeFlag, cc.String(schemeFlag))
	v.SetDefault(seedFlag, cc.String(seedFlag))
	v.SetDefault(cacheFlag, cc.Int(cacheFlag))

	file := cc.String(configFlag)
	if file != "" {
		v.SetConfigFile(file)

		err := v.ReadInConfig()
		if err != nil {
			return settings{}, xerrors.Errorf("failed to read config %s: %w", file, err)
		}
	}

	// explicit flags win over the file
	for _, name := range []string{thresholdFlag, secretFlag, schemeFlag, seedFlag, cacheFlag} {
		if cc.IsSet(name) {
			v.Set(name, cc.Value(name))
		}
	}

	return settings{
		T:               v.GetInt(thresholdFlag),
		Secret:          v.GetInt64(secretFlag),
		Scheme:          v.GetString(schemeFlag),
		Seed:            v.GetString(seedFlag),
		VerifyCacheSize: v.GetInt(cacheFlag),
	}, nil
}

func (s settings) configuration() (peer.Configuration, error) {
	scheme, err := signature.FromName(s.Scheme)
	if err != nil {
		return peer.Configuration{}, err
	}

	var seed []byte
	if s.Seed != "" {
		seed, err = hex.DecodeString(s.Seed)
		if err != nil {
			return peer.Configuration{}, xerrors.Errorf("invalid seed: %w", err)
		}
	}

	return peer.Configuration{
		Params:          types.NewPublicParameters(s.T),
		Scheme:          scheme,
		Seed:            seed,
		VerifyCacheSize: s.VerifyCacheSize,
	}, nil
}

func printReport(report types.Report) {
	event := log.Info().
		Str("run", report.RunID).
		Str("params", report.Params.String()).
		Bool("recoverable", report.Recoverable).
		Int("faults", len(report.Faults)).
		Str("transcript", hex.EncodeToString(report.TranscriptDigest))

	if report.Secret != nil {
		event = event.Str("secret", report.Secret.String())
	}
	event.Msg("run finished")

	for _, f := range report.Faults {
		log.Warn().Msg(f.String())
	}

	for _, role := range []types.Role{types.RoleDealer, types.RoleReceiver, types.RoleReconstructor, types.RoleClient} {
		timing := report.Timings[role]

		log.Info().
			Str("role", string(role)).
			Int64("count", timing.Count).
			Dur("total", timing.Total).
			Dur("first", timing.First).
			Dur("last", timing.Last).
			Int64("bytes", report.Communication[role]).
			Msg("cost")
	}
}

func printCost(cost types.ComposedCost) {
	for party := range cost.PartyTimings {
		log.Debug().
			Int("party", party+1).
			Dur("time", cost.PartyTimings[party]).
			Int64("bytes", cost.PartyCommunication[party]).
			Msg("composed party cost")
	}

	log.Info().
		Int("parties", cost.NTotal).
		Dur("client", cost.ClientTime).
		Dur("overall_time", cost.OverallTime).
		Int64("overall_bytes", cost.OverallCommunication).
		Msg("composed cost")
}
