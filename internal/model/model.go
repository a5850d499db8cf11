package model

// Position is an offset in metres from the scenario reference point, in the
// north-east-down frame the simulator expects.
type Position struct {
	X int
	Y int
	Z int
}

// InitialState is where the intruder starts.
type InitialState struct {
	Position Position
	// AltitudeOffset is the starting height above the reference altitude.
	// Position.Z is its negation.
	AltitudeOffset  int
	HorizontalSpeed float64
	HeadingDeg      int
}

// FlightState is the mutable state carried across generation steps.
// Altitude is measured above the reference altitude so the ground is 0.
type FlightState struct {
	Time     int
	Altitude int
	Speed    float64
}

// ManeuverState holds the fields a maneuver sets. A nil field is left
// unchanged by the consumer.
type ManeuverState struct {
	HorizontalSpeed *float64
	ClimbRate       *float64
	TurnRateDPS     *float64
}

type Kind int

const (
	Cruise         Kind = iota // Constant heading, speed and altitude.
	Turn                       // Constant rate turn.
	AltitudeChange             // Climb or descent to a new altitude.
	Acceleration               // Change to a high speed band.
	Landing                    // Descent to the ground and full stop.
)

func (k Kind) String() string {
	if k < Cruise || k > Landing {
		return "Unknown"
	}
	return [...]string{
		"Cruise",
		"Turn",
		"Altitude change",
		"Acceleration",
		"Landing",
	}[k]
}

// Maneuver is one timed entry of the intruder timeline.
type Maneuver struct {
	Kind      Kind
	StartTime int
	Duration  int
	State     ManeuverState
}

// Sequence is the ordered maneuver list of one run.
type Sequence []Maneuver

// EndTime is the elapsed time once the last maneuver has finished.
func (s Sequence) EndTime() int {
	if len(s) == 0 {
		return 0
	}
	last := s[len(s)-1]
	return last.StartTime + last.Duration
}

// Value returns a pointer suitable for a ManeuverState field.
func Value(v float64) *float64 {
	return &v
}
