package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/curbz/intrudergen/internal/config"
	"github.com/curbz/intrudergen/internal/logging"
	"github.com/curbz/intrudergen/internal/paramfile"
	"github.com/curbz/intrudergen/internal/sequence"
	"github.com/curbz/intrudergen/pkg/rand"
)

const usageError = "Error: Please provide the input params file to write intruder maneuvers there."

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intrudergen <params-file>",
		Short: "Generate a random intruder maneuver timeline",
		Long: `intrudergen writes a randomized intruder block (initial state and a
timeline of cruise, turn, climb, descent and acceleration maneuvers) into a
simulator parameter file. The result is written next to the input using the
configured suffix and its path is printed on stdout.

Settings are read from the YAML file named by ` + config.EnvConfigPath + `,
with ` + config.EnvSeed + ` and ` + config.EnvSuffix + ` as overrides.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New(usageError)
			}
			return nil
		},
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// past argument validation, failures are not usage problems
			cmd.SilenceUsage = true

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			logger, closer, err := logging.New(cfg.Log, stderr)
			if err != nil {
				return fmt.Errorf("setting up logging: %w", err)
			}
			defer closer.Close()

			res, err := run(cfg, args[0], logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, res.Path)
			return nil
		},
	}
	// stdout only ever carries the output path
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	return cmd
}

// run generates one scenario and splices it into inputPath.
func run(cfg *config.Config, inputPath string, logger *slog.Logger) (paramfile.Result, error) {
	var src *rand.Rand
	if cfg.Seed != 0 {
		src = rand.New(cfg.Seed)
	} else {
		src = rand.NewFromTime()
	}
	builder := sequence.NewBuilder(cfg, src, logger)

	res, err := paramfile.Rewrite(inputPath, cfg.Output.Suffix, cfg.Reference.DefaultAltitude,
		func(reference int) (string, error) {
			sc, err := builder.Generate(reference)
			if err != nil {
				return "", err
			}
			return paramfile.Render(sc.Initial, sc.Maneuvers), nil
		})
	if err != nil {
		return paramfile.Result{}, err
	}

	logger.Info("intruder block written",
		"input", inputPath,
		"output", res.Path,
		"reference_altitude", res.Reference,
		"replaced", res.Replaced)
	return res, nil
}
