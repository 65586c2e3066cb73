package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedLineError reports a line with fewer than FieldCount fields.
type MalformedLineError struct {
	Fields int
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line: got %d fields, want %d", e.Fields, FieldCount)
}

// FieldParseError reports a field that could not be decoded, naming the
// offending field index.
type FieldParseError struct {
	Index int
	Name  string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("field %d (%s): cannot parse %q: %v", e.Index, e.Name, e.Value, e.Err)
}

func (e *FieldParseError) Unwrap() error { return e.Err }

// SplitLine tokenizes one raw TDV line into its fields. The trailing line
// terminator is stripped before splitting. Lines with extra fields keep the
// first FieldCount tokens; lines with fewer fail with *MalformedLineError.
func SplitLine(line string) ([]string, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	fields := strings.Split(line, "\t")
	if len(fields) < FieldCount {
		return nil, &MalformedLineError{Fields: len(fields)}
	}
	return fields[:FieldCount], nil
}

// ParseRecord decodes a tokenized TDV line into a ClimateRecord.
//
// The timestamp field is milliseconds since epoch and is truncated to whole
// seconds. The temperature field is Kelvin and is converted to Fahrenheit;
// the single converted value feeds the average, max, and min tracking. The
// geohash field is carried in the format but not decoded. Snow and lightning
// flags are numeric in the source data and are truncated to integers.
func ParseRecord(fields []string) (ClimateRecord, error) {
	if len(fields) != FieldCount {
		return ClimateRecord{}, &MalformedLineError{Fields: len(fields)}
	}

	code := fields[fieldStateCode]
	if len(code) < 2 {
		return ClimateRecord{}, &FieldParseError{
			Index: fieldStateCode,
			Name:  fieldNames[fieldStateCode],
			Value: code,
			Err:   fmt.Errorf("state code shorter than 2 characters"),
		}
	}

	timestampMS, err := parseNumeric(fieldTimestamp, fields)
	if err != nil {
		return ClimateRecord{}, err
	}
	humidity, err := parseNumeric(fieldHumidity, fields)
	if err != nil {
		return ClimateRecord{}, err
	}
	snow, err := parseNumeric(fieldSnow, fields)
	if err != nil {
		return ClimateRecord{}, err
	}
	cloudCover, err := parseNumeric(fieldCloudCover, fields)
	if err != nil {
		return ClimateRecord{}, err
	}
	lightning, err := parseNumeric(fieldLightning, fields)
	if err != nil {
		return ClimateRecord{}, err
	}
	pressure, err := parseNumeric(fieldPressure, fields)
	if err != nil {
		return ClimateRecord{}, err
	}
	kelvin, err := parseNumeric(fieldTemperature, fields)
	if err != nil {
		return ClimateRecord{}, err
	}

	return ClimateRecord{
		StateCode:  code[:2],
		ObservedAt: int64(timestampMS / 1000),
		Humidity:   humidity,
		Snow:       int64(snow),
		CloudCover: cloudCover,
		Lightning:  int64(lightning),
		Pressure:   pressure,
		TempF:      KelvinToFahrenheit(kelvin),
	}, nil
}

func parseNumeric(index int, fields []string) (float64, error) {
	raw := strings.TrimSpace(fields[index])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &FieldParseError{
			Index: index,
			Name:  fieldNames[index],
			Value: fields[index],
			Err:   err,
		}
	}
	return v, nil
}
