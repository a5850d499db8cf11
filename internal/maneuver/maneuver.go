// Package maneuver produces single timeline entries for the intruder. Every
// operation starts its entry at the current elapsed time and advances the
// flight state past it.
package maneuver

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/curbz/intrudergen/internal/config"
	"github.com/curbz/intrudergen/internal/model"
	"github.com/curbz/intrudergen/pkg/rand"
)

// MinDuration is the shortest maneuver the generator emits, in seconds.
const MinDuration = 1

type Generator struct {
	cfg config.Generator
	src rand.Source
	log *slog.Logger
}

func NewGenerator(cfg config.Generator, src rand.Source, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{cfg: cfg, src: src, log: log}
}

// Generate dispatches to the operation for kind.
func (g *Generator) Generate(fs *model.FlightState, kind model.Kind) ([]model.Maneuver, error) {
	switch kind {
	case model.Cruise:
		return []model.Maneuver{g.Cruise(fs)}, nil
	case model.Turn:
		return []model.Maneuver{g.Turn(fs)}, nil
	case model.AltitudeChange:
		return []model.Maneuver{g.ChangeAltitude(fs)}, nil
	case model.Acceleration:
		return []model.Maneuver{g.Accelerate(fs)}, nil
	case model.Landing:
		return g.Land(fs), nil
	}
	return nil, fmt.Errorf("unknown maneuver kind %d", kind)
}

// Cruise is basic flight: a new speed, level, wings level.
func (g *Generator) Cruise(fs *model.FlightState) model.Maneuver {
	c := g.cfg.Cruise
	speed := float64(g.src.StepRange(c.Speed.Min, c.Speed.Max, c.SpeedStep))
	duration := g.src.IntRange(c.Duration.Min, c.Duration.Max)

	fs.Speed = speed
	return g.emit(fs, model.Cruise, duration, model.ManeuverState{
		HorizontalSpeed: model.Value(speed),
		ClimbRate:       model.Value(0),
		TurnRateDPS:     model.Value(0),
	})
}

// Turn holds a constant turn rate long enough to cover the drawn angle.
func (g *Generator) Turn(fs *model.FlightState) model.Maneuver {
	t := g.cfg.Turn
	angle := g.src.IntRange(t.Angle.Min, t.Angle.Max)
	rate := g.src.IntRange(t.Rate.Min, t.Rate.Max)
	duration := int(math.RoundToEven(float64(angle) / float64(rate)))
	dir := rand.Sign(g.src)

	return g.emit(fs, model.Turn, duration, model.ManeuverState{
		TurnRateDPS: model.Value(float64(dir * rate)),
	})
}

// ChangeAltitude climbs or descends by a quantized delta, clamped so the
// resulting altitude stays inside the configured bounds. Climbing bleeds
// speed and descending gains it, within the cruise speed band.
func (g *Generator) ChangeAltitude(fs *model.FlightState) model.Maneuver {
	a := g.cfg.Altitude
	speeds := g.cfg.Cruise.Speed

	dir := rand.Sign(g.src)
	delta := dir * g.src.StepRange(a.Delta.Min, a.Delta.Max, a.DeltaStep)
	if target := fs.Altitude + delta; target < a.Min {
		delta = a.Min - fs.Altitude
	} else if target > a.Max {
		delta = a.Max - fs.Altitude
	}

	var rate int
	if dir > 0 {
		rate = g.src.IntRange(a.ClimbRate.Min, a.ClimbRate.Max)
		fs.Speed = math.Max(float64(speeds.Min), fs.Speed-float64(a.ClimbSpeedDelta))
	} else {
		rate = g.src.IntRange(a.DescentRate.Min, a.DescentRate.Max)
		fs.Speed = math.Min(float64(speeds.Max), fs.Speed+float64(a.DescentSpeedDelta))
	}

	// A delta clamped to zero holds altitude for the minimum duration.
	climb := 0
	switch {
	case delta > 0:
		climb = rate
	case delta < 0:
		climb = -rate
	}
	duration := abs(delta) / rate
	fs.Altitude += delta

	return g.emit(fs, model.AltitudeChange, duration, model.ManeuverState{
		HorizontalSpeed: model.Value(fs.Speed),
		ClimbRate:       model.Value(float64(climb)),
	})
}

// Accelerate switches to the high speed band.
func (g *Generator) Accelerate(fs *model.FlightState) model.Maneuver {
	a := g.cfg.Acceleration
	speed := float64(g.src.StepRange(a.Speed.Min, a.Speed.Max, a.SpeedStep))
	duration := g.src.IntRange(a.Duration.Min, a.Duration.Max)

	fs.Speed = speed
	return g.emit(fs, model.Acceleration, duration, model.ManeuverState{
		HorizontalSpeed: model.Value(speed),
	})
}

// Land descends to the ground at a fixed rate, if airborne, and then stops.
// The stop entry always lasts exactly MinDuration.
func (g *Generator) Land(fs *model.FlightState) []model.Maneuver {
	l := g.cfg.Landing
	var out []model.Maneuver

	if fs.Altitude > 0 {
		duration := fs.Altitude / l.DescentRate
		fs.Speed = l.Speed
		out = append(out, g.emit(fs, model.Landing, duration, model.ManeuverState{
			HorizontalSpeed: model.Value(l.Speed),
			ClimbRate:       model.Value(float64(-l.DescentRate)),
			TurnRateDPS:     model.Value(0),
		}))
		fs.Altitude = 0
	}

	fs.Speed = 0
	out = append(out, g.emit(fs, model.Landing, MinDuration, model.ManeuverState{
		HorizontalSpeed: model.Value(0),
		ClimbRate:       model.Value(0),
	}))
	return out
}

func (g *Generator) emit(fs *model.FlightState, kind model.Kind, duration int, st model.ManeuverState) model.Maneuver {
	if duration < MinDuration {
		duration = MinDuration
	}
	m := model.Maneuver{
		Kind:      kind,
		StartTime: fs.Time,
		Duration:  duration,
		State:     st,
	}
	fs.Time += duration

	g.log.Debug("maneuver",
		"kind", kind.String(),
		"t", m.StartTime,
		"duration", duration,
		"altitude", fs.Altitude,
		"speed", fs.Speed)
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
