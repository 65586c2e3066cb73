// Package report renders the final per-state climate summary as plain text.
//
// The layout is a stable contract with downstream consumers (analysts diff
// reports between runs): one-decimal percentages with a trailing %,
// one-decimal Fahrenheit with a trailing F, integer counts, and ANSIC
// calendar dates for the extremum timestamps. Dates are rendered in UTC so
// the same input produces the same report on every machine.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/climate-tdv-report/internal/domain"
)

// Render produces the full report for the given summaries, which must already
// be in discovery order. The rendered string is written to stdout by the
// caller; this package performs no I/O.
func Render(summaries []domain.StateSummary) string {
	var b strings.Builder

	b.WriteString("States found:")
	for i := range summaries {
		b.WriteByte(' ')
		b.WriteString(summaries[i].Code)
	}
	b.WriteByte('\n')

	for i := range summaries {
		writeState(&b, &summaries[i])
	}

	return b.String()
}

func writeState(b *strings.Builder, s *domain.StateSummary) {
	fmt.Fprintf(b, "-- State: %s --\n", s.Code)
	fmt.Fprintf(b, "Number of Records: %d\n", s.Count)
	fmt.Fprintf(b, "Average Humidity: %.1f%%\n", s.AvgHumidity())
	fmt.Fprintf(b, "Average Temperature: %.1fF\n", s.AvgTemperature())
	fmt.Fprintf(b, "Max Temperature: %.1fF\n", s.MaxTemp)
	fmt.Fprintf(b, "Max Temperature on: %s\n", formatDate(s.MaxTempAt))
	fmt.Fprintf(b, "Min Temperature: %.1fF\n", s.MinTemp)
	fmt.Fprintf(b, "Min Temperature on: %s\n", formatDate(s.MinTempAt))
	fmt.Fprintf(b, "Lightning Strikes: %d\n", s.Lightning)
	fmt.Fprintf(b, "Records with Snow Cover: %d\n", s.SnowRecords)
	fmt.Fprintf(b, "Average Cloud Cover: %.1f%%\n", s.AvgCloudCover())
}

func formatDate(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format(time.ANSIC)
}
