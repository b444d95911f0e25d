package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/RMahshie/rt60/internal/acoustics"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("rt60 failed")
	}
}

func newApp() *cli.App {
	var (
		fileName string
		output   string
		asJSON   bool
		verbose  bool
		bands    = acoustics.DefaultBands()
		target   = acoustics.DefaultTargetRT60
	)

	fileFlag := &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "Recording to analyze (wav, aiff, mp3, ogg)",
		Destination: &fileName,
		Required:    true,
	}
	analysisFlags := []cli.Flag{
		fileFlag,
		&cli.Float64Flag{
			Name:        "low",
			Usage:       "Low band frequency in Hz",
			Value:       bands.Low,
			Destination: &bands.Low,
		},
		&cli.Float64Flag{
			Name:        "mid",
			Usage:       "Mid band frequency in Hz",
			Value:       bands.Mid,
			Destination: &bands.Mid,
		},
		&cli.Float64Flag{
			Name:        "high",
			Usage:       "High band frequency in Hz",
			Value:       bands.High,
			Destination: &bands.High,
		},
		&cli.Float64Flag{
			Name:        "target",
			Aliases:     []string{"t"},
			Usage:       "Target RT60 in seconds",
			Value:       target,
			Destination: &target,
		},
	}

	return &cli.App{
		Name:                 "rt60",
		Usage:                "Measure the reverberation time of a room recording",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Log per-band diagnostics",
				Destination: &verbose,
			},
		},
		Before: func(cCtx *cli.Context) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "analyze",
				Aliases: []string{"a"},
				Usage:   "Print RT60 per band, resonant frequency and RT60 difference",
				Flags: append(analysisFlags, &cli.BoolFlag{
					Name:        "json",
					Usage:       "Print results as JSON",
					Destination: &asJSON,
				}),
				Action: func(cCtx *cli.Context) error {
					sig, res, err := analyzeFile(fileName, bands, target)
					if err != nil {
						return err
					}
					results := newResults(sig, res, target)
					if asJSON {
						return writeJSON(cCtx.App.Writer, results)
					}
					return writeTable(cCtx.App.Writer, fileName, results)
				},
			},
			{
				Name:    "plot",
				Aliases: []string{"p"},
				Usage:   "Render waveform, spectrogram and decay curves to an HTML page",
				Flags: append(analysisFlags, &cli.StringFlag{
					Name:        "output",
					Aliases:     []string{"o"},
					Usage:       "HTML file to write, defaults to the recording name with .html",
					Destination: &output,
				}),
				Action: func(cCtx *cli.Context) error {
					sig, res, err := analyzeFile(fileName, bands, target)
					if err != nil {
						return err
					}
					if output == "" {
						output = htmlPath(fileName)
					}
					if err := renderFile(output, fileName, sig, res); err != nil {
						return err
					}
					log.Info().Str("file", output).Msg("Charts written")
					return nil
				},
			},
		},
	}
}
