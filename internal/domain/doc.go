// Package domain models NOAA climate observations and their per-state
// aggregation.
//
// # Data Source
//
// Observations arrive as tab-delimited value (TDV) files, one record per
// line, nine fields per record:
//
//	<state_code>\t<timestamp_ms>\t<geohash>\t<humidity>\t<snow_flag>\t<cloud_cover>\t<lightning_flag>\t<pressure_pa>\t<temperature_kelvin>\n
//
// # Field Conventions
//
// State code:
//
//	Two-character US state code (CA, TX, ...). Only the first two characters
//	of the field are used; case is preserved as given.
//
// Timestamp:
//
//	Milliseconds since the Unix epoch. Stored as whole seconds (truncated),
//	which is the resolution the report needs.
//
// Geohash:
//
//	Compact geographic coordinate encoding. Present in the format but not
//	consumed by the aggregation.
//
// Humidity / cloud cover:
//
//	Percentages, nominally 0-100. Out-of-range values are accepted as-is;
//	the source data is trusted on range.
//
// Snow / lightning flags:
//
//	Numeric 0 or 1, encoded as floats in the source data ("0.0", "1.0") and
//	truncated to integers when counted.
//
// Temperature:
//
//	Surface temperature in Kelvin, converted once on decode:
//	F = K*9/5 - 459.67. The converted value feeds the average, max, and min
//	tracking for the state.
//
// # Aggregation
//
// [Aggregator.Consume] folds each record into a per-state [StateSummary]:
// running sums for the averaged quantities, counters for the flags, and
// max/min temperature with the observation timestamp of each extremum.
// When a record's temperature exactly ties the current extremum, the later
// record wins and its timestamp replaces the stored one.
//
// Summaries are created lazily on first sight of a code and the discovery
// order is preserved; the final report lists states in the order their first
// record appeared across the input files.
package domain
