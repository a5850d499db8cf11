package paramfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/curbz/intrudergen/internal/model"
)

// Marker opens the intruder block in a parameter file.
const Marker = "intruder {"

// Render serializes the intruder's initial state and timeline. The block
// starts at Marker and ends with its closing brace.
func Render(initial model.InitialState, seq model.Sequence) string {
	var sb strings.Builder

	sb.WriteString(Marker + "\n")
	sb.WriteString("  initial_state {\n")
	sb.WriteString("    position_ned {\n")
	fmt.Fprintf(&sb, "      x: %d\n", initial.Position.X)
	fmt.Fprintf(&sb, "      y: %d\n", initial.Position.Y)
	fmt.Fprintf(&sb, "      z: %d\n", initial.Position.Z)
	sb.WriteString("    }\n")
	fmt.Fprintf(&sb, "    horizontal_speed: %s\n", formatNumber(initial.HorizontalSpeed))
	fmt.Fprintf(&sb, "    heading_deg: %d\n", initial.HeadingDeg)
	sb.WriteString("  }\n")

	for _, m := range seq {
		writeManeuver(&sb, m)
	}

	sb.WriteString("}")
	return sb.String()
}

func writeManeuver(sb *strings.Builder, m model.Maneuver) {
	sb.WriteString("\n  maneuvers {\n")
	fmt.Fprintf(sb, "    t: %d\n", m.StartTime)
	sb.WriteString("    state {\n")
	for _, f := range stateFields(m.State) {
		fmt.Fprintf(sb, "      %s: %s\n", f.name, formatNumber(f.value))
	}
	sb.WriteString("    }\n")
	sb.WriteString("  }\n")
}

type field struct {
	name  string
	value float64
}

// stateFields lists only the fields that are set, in the order the
// simulator documents them.
func stateFields(st model.ManeuverState) []field {
	var out []field
	if st.HorizontalSpeed != nil {
		out = append(out, field{"horizontal_speed", *st.HorizontalSpeed})
	}
	if st.ClimbRate != nil {
		out = append(out, field{"climb_rate", *st.ClimbRate})
	}
	if st.TurnRateDPS != nil {
		out = append(out, field{"turn_rate_dps", *st.TurnRateDPS})
	}
	return out
}

// formatNumber prints integral values without a fractional part.
func formatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FindBlockSpan locates the first marker in doc and returns the byte span
// [start, end) of the block it opens. Braces are counted from the marker
// until the depth returns to zero; this is a lexical scan, so braces inside
// strings or comments within the block will confuse it. ok is false if the
// marker is absent or the block never closes.
func FindBlockSpan(doc, marker string) (start, end int, ok bool) {
	start = strings.Index(doc, marker)
	if start < 0 {
		return 0, 0, false
	}

	depth := 0
	for i := start; i < len(doc); i++ {
		switch doc[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, i + 1, true
			}
		}
	}
	return 0, 0, false
}

// Splice replaces the existing intruder block with block. If there is no
// complete block, block is appended after a newline instead. replaced
// reports which of the two happened.
func Splice(doc, block string) (out string, replaced bool) {
	start, end, ok := FindBlockSpan(doc, Marker)
	if !ok {
		return doc + "\n" + block, false
	}
	return doc[:start] + block + doc[end:], true
}
