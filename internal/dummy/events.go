// SPDX-License-Identifier: AGPL-3.0-or-later
package dummy

import (
	"strconv"
	"strings"
)

// Event is one row of an events table. Onset and Duration are in seconds.
type Event struct {
	Onset     float64
	Duration  float64
	TrialType string
}

var eventColumns = []string{"onset", "duration", "trial_type"}

// EncodeEvents renders rows as a tab-separated table with a header line.
// Row order is preserved.
func EncodeEvents(rows []Event) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(eventColumns, "\t"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(formatSeconds(r.Onset))
		b.WriteString("\t")
		b.WriteString(formatSeconds(r.Duration))
		b.WriteString("\t")
		b.WriteString(r.TrialType)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
