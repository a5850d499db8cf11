// Package sequence drives the maneuver generator: cruise and a randomly
// chosen maneuver strictly alternate until the configured stop policy is met.
package sequence

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/curbz/intrudergen/internal/config"
	"github.com/curbz/intrudergen/internal/maneuver"
	"github.com/curbz/intrudergen/internal/model"
	"github.com/curbz/intrudergen/pkg/rand"
)

// Scenario is everything one run produces for the parameter file.
type Scenario struct {
	// Reference is the altitude the intruder's vertical offsets are measured from.
	Reference int
	Initial   model.InitialState
	Maneuvers model.Sequence
}

type Builder struct {
	cfg *config.Config
	gen *maneuver.Generator
	src rand.Source
	log *slog.Logger
}

func NewBuilder(cfg *config.Config, src rand.Source, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		cfg: cfg,
		gen: maneuver.NewGenerator(cfg.Generator, src, log),
		src: src,
		log: log,
	}
}

// InitialState places the intruder at a random horizontal offset on either
// side of the reference point, at a random height above reference.
func (b *Builder) InitialState(reference int) model.InitialState {
	c := b.cfg.Initial
	x := rand.Sign(b.src) * b.src.IntRange(c.OffsetMin, c.OffsetMax)
	y := rand.Sign(b.src) * b.src.IntRange(c.OffsetMin, c.OffsetMax)
	offset := b.src.IntRange(c.AltitudeOffsetMin, c.AltitudeOffsetMax)
	heading := b.src.IntRange(c.HeadingMin, c.HeadingMax)

	// NED: z grows downward from the reference altitude
	altitude := reference + offset
	return model.InitialState{
		Position:        model.Position{X: x, Y: y, Z: reference - altitude},
		AltitudeOffset:  offset,
		HorizontalSpeed: c.HorizontalSpeed,
		HeadingDeg:      heading,
	}
}

// Build runs the generation loop from fs. The result always starts with a
// cruise entry and is ordered by start time.
func (b *Builder) Build(fs *model.FlightState) (model.Sequence, error) {
	var out model.Sequence

	pair := func() error {
		out = append(out, b.gen.Cruise(fs))
		kind, err := b.nextKind()
		if err != nil {
			return err
		}
		ms, err := b.gen.Generate(fs, kind)
		if err != nil {
			return err
		}
		out = append(out, ms...)
		return nil
	}

	s := b.cfg.Sequence
	switch s.Stop {
	case config.StopFixedCount:
		if s.NumManeuvers < 1 {
			return nil, fmt.Errorf("num_maneuvers must be at least 1, got %d", s.NumManeuvers)
		}
		for i := 0; i < s.NumManeuvers; i++ {
			if err := pair(); err != nil {
				return nil, err
			}
		}

	case config.StopTimeBudget:
		threshold := b.src.IntRange(s.LandingTime.Min, s.LandingTime.Max)
		b.log.Debug("time budget", "landing_at", threshold)
		// at least one pair, so the sequence never starts with the landing
		for {
			if err := pair(); err != nil {
				return nil, err
			}
			if fs.Time >= threshold {
				break
			}
		}
		out = append(out, b.gen.Land(fs)...)

	default:
		return nil, fmt.Errorf("unknown stop policy %q", s.Stop)
	}

	return out, nil
}

// Generate draws the initial state and the maneuver sequence that follows it.
func (b *Builder) Generate(reference int) (Scenario, error) {
	initial := b.InitialState(reference)
	fs := &model.FlightState{
		Time:     b.cfg.Sequence.StartTime,
		Altitude: initial.AltitudeOffset,
		Speed:    initial.HorizontalSpeed,
	}

	seq, err := b.Build(fs)
	if err != nil {
		return Scenario{}, fmt.Errorf("building maneuver sequence: %w", err)
	}

	b.log.Info("generated intruder timeline",
		"maneuvers", len(seq),
		"duration_s", seq.EndTime()-b.cfg.Sequence.StartTime,
		"stop", b.cfg.Sequence.Stop,
		"selection", b.cfg.Sequence.Selection)

	return Scenario{Reference: reference, Initial: initial, Maneuvers: seq}, nil
}

func (b *Builder) nextKind() (model.Kind, error) {
	s := b.cfg.Sequence
	switch s.Selection {
	case config.SelectUniform:
		return rand.Uniform(b.src, model.Turn, model.AltitudeChange, model.Acceleration), nil
	case config.SelectWeighted:
		kind, ok := rand.Choose(b.src, []rand.Option[model.Kind]{
			{Value: model.Turn, Weight: s.Weights.Turn},
			{Value: model.AltitudeChange, Weight: s.Weights.AltitudeChange},
			{Value: model.Acceleration, Weight: s.Weights.Acceleration},
		})
		if !ok {
			return 0, errors.New("no maneuver has a positive weight")
		}
		return kind, nil
	}
	return 0, fmt.Errorf("unknown selection policy %q", s.Selection)
}
