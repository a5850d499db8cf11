package maneuver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curbz/intrudergen/internal/config"
	"github.com/curbz/intrudergen/internal/model"
	"github.com/curbz/intrudergen/pkg/rand"
	"github.com/curbz/intrudergen/pkg/rand/randtest"
)

func f(v float64) *float64 { return model.Value(v) }

func TestMinBoundDraws(t *testing.T) {
	cfg := config.Default().Generator
	g := NewGenerator(cfg, randtest.Min{}, nil)

	tests := []struct {
		name     string
		start    model.FlightState
		run      func(fs *model.FlightState) model.Maneuver
		want     model.Maneuver
		wantNext model.FlightState
	}{
		{
			name:  "cruise",
			start: model.FlightState{Time: 5, Altitude: 800, Speed: 60},
			run:   g.Cruise,
			want: model.Maneuver{Kind: model.Cruise, StartTime: 5, Duration: 10, State: model.ManeuverState{
				HorizontalSpeed: f(40), ClimbRate: f(0), TurnRateDPS: f(0),
			}},
			wantNext: model.FlightState{Time: 15, Altitude: 800, Speed: 40},
		},
		{
			name:  "zero angle turn still lasts one second",
			start: model.FlightState{Time: 15, Altitude: 800, Speed: 40},
			run:   g.Turn,
			want: model.Maneuver{Kind: model.Turn, StartTime: 15, Duration: 1, State: model.ManeuverState{
				TurnRateDPS: f(-1),
			}},
			wantNext: model.FlightState{Time: 16, Altitude: 800, Speed: 40},
		},
		{
			name:  "descent clamped to zero at the floor",
			start: model.FlightState{Time: 20, Altitude: 500, Speed: 50},
			run:   g.ChangeAltitude,
			want: model.Maneuver{Kind: model.AltitudeChange, StartTime: 20, Duration: 1, State: model.ManeuverState{
				HorizontalSpeed: f(55), ClimbRate: f(0),
			}},
			wantNext: model.FlightState{Time: 21, Altitude: 500, Speed: 55},
		},
		{
			name:  "descent from altitude",
			start: model.FlightState{Time: 20, Altitude: 1000, Speed: 65},
			run:   g.ChangeAltitude,
			want: model.Maneuver{Kind: model.AltitudeChange, StartTime: 20, Duration: 20, State: model.ManeuverState{
				HorizontalSpeed: f(65), ClimbRate: f(-5),
			}},
			wantNext: model.FlightState{Time: 40, Altitude: 900, Speed: 65},
		},
		{
			name:  "acceleration",
			start: model.FlightState{Time: 40, Altitude: 900, Speed: 45},
			run:   g.Accelerate,
			want: model.Maneuver{Kind: model.Acceleration, StartTime: 40, Duration: 5, State: model.ManeuverState{
				HorizontalSpeed: f(70),
			}},
			wantNext: model.FlightState{Time: 45, Altitude: 900, Speed: 70},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := tc.start
			got := tc.run(&fs)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantNext, fs)
		})
	}
}

func TestClimbClampedAtCeiling(t *testing.T) {
	cfg := config.Default().Generator
	g := NewGenerator(cfg, randtest.Max{}, nil)

	fs := model.FlightState{Time: 100, Altitude: 2500, Speed: 42}
	m := g.ChangeAltitude(&fs)

	// +1000 would overshoot 3000, so only 500 is climbed at the max rate of 10
	assert.Equal(t, 3000, fs.Altitude)
	assert.Equal(t, 50, m.Duration)
	assert.Equal(t, f(10), m.State.ClimbRate)
	// climbing bleeds 5 but never below the cruise minimum
	assert.Equal(t, f(40), m.State.HorizontalSpeed)
	assert.Equal(t, 150, fs.Time)

	// already at the ceiling: delta clamps to zero
	m = g.ChangeAltitude(&fs)
	assert.Equal(t, 3000, fs.Altitude)
	assert.Equal(t, MinDuration, m.Duration)
	assert.Equal(t, f(0), m.State.ClimbRate)
}

func TestLand(t *testing.T) {
	cfg := config.Default().Generator
	g := NewGenerator(cfg, randtest.Min{}, nil)

	t.Run("airborne", func(t *testing.T) {
		fs := model.FlightState{Time: 600, Altitude: 503, Speed: 80}
		got := g.Land(&fs)
		require.Len(t, got, 2)

		descent := got[0]
		assert.Equal(t, 600, descent.StartTime)
		assert.Equal(t, 100, descent.Duration)
		assert.Equal(t, f(40), descent.State.HorizontalSpeed)
		assert.Equal(t, f(-5), descent.State.ClimbRate)

		stop := got[1]
		assert.Equal(t, 700, stop.StartTime)
		assert.Equal(t, model.ManeuverState{HorizontalSpeed: f(0), ClimbRate: f(0)}, stop.State)
		assert.Equal(t, 1, stop.Duration)
		assert.Equal(t, model.FlightState{Time: 701, Altitude: 0, Speed: 0}, fs)
	})

	t.Run("on the ground", func(t *testing.T) {
		fs := model.FlightState{Time: 10, Altitude: 0, Speed: 40}
		got := g.Land(&fs)
		require.Len(t, got, 1)
		assert.Equal(t, model.ManeuverState{HorizontalSpeed: f(0), ClimbRate: f(0)}, got[0].State)
		assert.Equal(t, 11, fs.Time)
	})

	t.Run("low altitude still lasts one second", func(t *testing.T) {
		fs := model.FlightState{Time: 10, Altitude: 3, Speed: 40}
		got := g.Land(&fs)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Duration)
	})
}

func TestGenerateUnknownKind(t *testing.T) {
	g := NewGenerator(config.Default().Generator, randtest.Min{}, nil)
	_, err := g.Generate(&model.FlightState{}, model.Kind(42))
	assert.Error(t, err)
}

func TestRandomizedInvariants(t *testing.T) {
	cfg := config.Default().Generator
	kinds := []model.Kind{model.Cruise, model.Turn, model.AltitudeChange, model.Acceleration}

	for seed := int64(1); seed <= 50; seed++ {
		src := rand.New(seed)
		g := NewGenerator(cfg, src, nil)
		fs := model.FlightState{Time: 5, Altitude: 1000, Speed: 60}

		for i := 0; i < 200; i++ {
			kind := rand.Uniform(src, kinds...)
			before := fs.Time
			got, err := g.Generate(&fs, kind)
			require.NoError(t, err)
			require.Len(t, got, 1)
			m := got[0]

			require.Equal(t, before, m.StartTime)
			require.GreaterOrEqual(t, m.Duration, MinDuration)
			require.Equal(t, before+m.Duration, fs.Time)

			switch kind {
			case model.Turn:
				require.NotNil(t, m.State.TurnRateDPS)
				rate := *m.State.TurnRateDPS
				mag := rate
				if mag < 0 {
					mag = -mag
				}
				require.GreaterOrEqual(t, mag, float64(cfg.Turn.Rate.Min))
				require.LessOrEqual(t, mag, float64(cfg.Turn.Rate.Max))
				require.Nil(t, m.State.HorizontalSpeed)
			case model.AltitudeChange:
				require.GreaterOrEqual(t, fs.Altitude, cfg.Altitude.Min, "seed %d", seed)
				require.LessOrEqual(t, fs.Altitude, cfg.Altitude.Max, "seed %d", seed)
				// climbs never drop below cruise minimum, descents never push
				// past the fastest band
				require.GreaterOrEqual(t, fs.Speed, float64(cfg.Cruise.Speed.Min))
				require.LessOrEqual(t, fs.Speed, float64(cfg.Acceleration.Speed.Max))
			case model.Cruise:
				require.GreaterOrEqual(t, fs.Speed, float64(cfg.Cruise.Speed.Min))
				require.LessOrEqual(t, fs.Speed, float64(cfg.Cruise.Speed.Max))
				require.Equal(t, 0, int(fs.Speed)%cfg.Cruise.SpeedStep)
			case model.Acceleration:
				require.GreaterOrEqual(t, fs.Speed, float64(cfg.Acceleration.Speed.Min))
				require.LessOrEqual(t, fs.Speed, float64(cfg.Acceleration.Speed.Max))
			}
		}
	}
}
