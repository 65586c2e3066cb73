package domain

// FieldCount is the number of tab-delimited fields in a TDV observation line.
const FieldCount = 9

// Positions of the TDV fields within a tokenized line.
const (
	fieldStateCode = iota
	fieldTimestamp
	fieldGeohash
	fieldHumidity
	fieldSnow
	fieldCloudCover
	fieldLightning
	fieldPressure
	fieldTemperature
)

// fieldNames maps field positions to the names used in diagnostics.
var fieldNames = [FieldCount]string{
	"state_code",
	"timestamp_ms",
	"geohash",
	"humidity",
	"snow_flag",
	"cloud_cover",
	"lightning_flag",
	"pressure_pa",
	"temperature_kelvin",
}

// ClimateRecord is one decoded TDV observation. It is created per line,
// folded into the aggregator, and discarded.
type ClimateRecord struct {
	StateCode  string // two-character US state code, case as given
	ObservedAt int64  // unix seconds, truncated from the millisecond source
	Humidity   float64
	Snow       int64 // 1 = snow present, 0 = no snow
	CloudCover float64
	Lightning  int64 // 1 = lightning strike, 0 = none
	Pressure   float64
	TempF      float64 // surface temperature, converted from Kelvin
}

// KelvinToFahrenheit converts a Kelvin reading to Fahrenheit.
func KelvinToFahrenheit(k float64) float64 {
	return k*9/5 - 459.67
}
