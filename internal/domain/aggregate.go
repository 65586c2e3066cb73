package domain

import "time"

// StateSummary is the running aggregate for one state code. Averages are
// always derived from the sums so they cannot drift from the accumulated
// data. JSON tags cover the optional summary publisher.
type StateSummary struct {
	Code        string  `json:"state"`
	Count       int64   `json:"record_count"`
	HumiditySum float64 `json:"humidity_sum"`
	TempSum     float64 `json:"temperature_sum_f"`
	CloudSum    float64 `json:"cloud_cover_sum"`
	PressureSum float64 `json:"pressure_sum_pa"`
	Lightning   int64   `json:"lightning_strikes"`
	SnowRecords int64   `json:"snow_cover_records"`

	MaxTemp   float64 `json:"max_temperature_f"`
	MaxTempAt int64   `json:"max_temperature_at"` // unix seconds
	MinTemp   float64 `json:"min_temperature_f"`
	MinTempAt int64   `json:"min_temperature_at"` // unix seconds

	ProcessedAt time.Time `json:"processed_at,omitempty"`
}

// AvgHumidity returns the mean humidity percentage.
func (s *StateSummary) AvgHumidity() float64 { return s.HumiditySum / float64(s.Count) }

// AvgTemperature returns the mean temperature in Fahrenheit.
func (s *StateSummary) AvgTemperature() float64 { return s.TempSum / float64(s.Count) }

// AvgCloudCover returns the mean cloud cover percentage.
func (s *StateSummary) AvgCloudCover() float64 { return s.CloudSum / float64(s.Count) }

// Aggregator folds ClimateRecords into per-state summaries. Summaries are
// created lazily on the first sighting of a state code and kept for the
// lifetime of the run; discovery order is preserved for reporting. There is
// no bound on the number of distinct codes. Not safe for concurrent use;
// the pipeline feeds it from a single goroutine.
type Aggregator struct {
	states map[string]*StateSummary
	codes  []string // discovery order
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{states: make(map[string]*StateSummary)}
}

// Consume folds one record into the summary for its state code.
//
// Extremum ties resolve last-wins: a record whose temperature equals the
// current max (or min) replaces both the value and its timestamp.
func (a *Aggregator) Consume(rec ClimateRecord) {
	s, ok := a.states[rec.StateCode]
	if !ok {
		a.states[rec.StateCode] = &StateSummary{
			Code:        rec.StateCode,
			Count:       1,
			HumiditySum: rec.Humidity,
			TempSum:     rec.TempF,
			CloudSum:    rec.CloudCover,
			PressureSum: rec.Pressure,
			Lightning:   rec.Lightning,
			SnowRecords: rec.Snow,
			MaxTemp:     rec.TempF,
			MaxTempAt:   rec.ObservedAt,
			MinTemp:     rec.TempF,
			MinTempAt:   rec.ObservedAt,
		}
		a.codes = append(a.codes, rec.StateCode)
		return
	}

	s.Count++
	s.HumiditySum += rec.Humidity
	s.TempSum += rec.TempF
	s.CloudSum += rec.CloudCover
	s.PressureSum += rec.Pressure
	s.Lightning += rec.Lightning
	s.SnowRecords += rec.Snow

	if rec.TempF >= s.MaxTemp {
		s.MaxTemp = rec.TempF
		s.MaxTempAt = rec.ObservedAt
	}
	if rec.TempF <= s.MinTemp {
		s.MinTemp = rec.TempF
		s.MinTempAt = rec.ObservedAt
	}
}

// Len returns the number of distinct state codes seen so far.
func (a *Aggregator) Len() int { return len(a.codes) }

// Codes returns the state codes in discovery order.
func (a *Aggregator) Codes() []string {
	out := make([]string, len(a.codes))
	copy(out, a.codes)
	return out
}

// Snapshot returns copies of all summaries in discovery order, each stamped
// with the current clock time. The aggregator itself is left untouched, so
// the fold can be treated as read-only once input is exhausted.
func (a *Aggregator) Snapshot() []StateSummary {
	now := clock.Now()
	out := make([]StateSummary, 0, len(a.codes))
	for _, code := range a.codes {
		s := *a.states[code]
		s.ProcessedAt = now
		out = append(out, s)
	}
	return out
}
