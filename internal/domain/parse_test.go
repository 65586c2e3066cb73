package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLine = "CA\t1428300000000\t9prcjqk3yc80\t93.0\t0.0\t100.0\t0.0\t95644.0\t277.58716\n"

func TestSplitLine(t *testing.T) {
	fields, err := SplitLine(validLine)
	require.NoError(t, err)
	require.Len(t, fields, FieldCount)
	assert.Equal(t, "CA", fields[0])
	assert.Equal(t, "277.58716", fields[8], "trailing newline must be stripped")
}

func TestSplitLine_CRLF(t *testing.T) {
	fields, err := SplitLine(strings.TrimSuffix(validLine, "\n") + "\r\n")
	require.NoError(t, err)
	assert.Equal(t, "277.58716", fields[8])
}

func TestSplitLine_TooFewFields(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		fields int
	}{
		{"empty", "", 1},
		{"blank", "\n", 1},
		{"truncated", "CA\t1428300000000\t9prcjqk3yc80\t93.0\n", 4},
		{"one short", "CA\t1428300000000\t9prcjqk3yc80\t93.0\t0.0\t100.0\t0.0\t95644.0\n", 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SplitLine(tc.line)
			var malformed *MalformedLineError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.fields, malformed.Fields)
		})
	}
}

func TestSplitLine_ExtraFieldsIgnored(t *testing.T) {
	fields, err := SplitLine(strings.TrimSuffix(validLine, "\n") + "\textra\n")
	require.NoError(t, err)
	require.Len(t, fields, FieldCount)
	assert.Equal(t, "277.58716", fields[8])
}

func TestParseRecord(t *testing.T) {
	fields, err := SplitLine(validLine)
	require.NoError(t, err)

	rec, err := ParseRecord(fields)
	require.NoError(t, err)

	assert.Equal(t, "CA", rec.StateCode)
	assert.Equal(t, int64(1428300000), rec.ObservedAt, "milliseconds truncate to seconds")
	assert.Equal(t, 93.0, rec.Humidity)
	assert.Equal(t, int64(0), rec.Snow)
	assert.Equal(t, 100.0, rec.CloudCover)
	assert.Equal(t, int64(0), rec.Lightning)
	assert.Equal(t, 95644.0, rec.Pressure)
	assert.InDelta(t, 39.987, rec.TempF, 0.001)
}

func TestParseRecord_KelvinConversion(t *testing.T) {
	// 300 K = 80.33 F exactly: 300*9/5 - 459.67.
	fields, err := SplitLine("CA\t1000000\tgh1\t50\t0\t10\t0\t101325\t300.0\n")
	require.NoError(t, err)
	rec, err := ParseRecord(fields)
	require.NoError(t, err)
	assert.InDelta(t, 80.33, rec.TempF, 1e-9)
}

func TestParseRecord_StateCodeTruncatedToTwoChars(t *testing.T) {
	fields, err := SplitLine("CAX\t1000000\tgh1\t50\t0\t10\t0\t101325\t300.0\n")
	require.NoError(t, err)
	rec, err := ParseRecord(fields)
	require.NoError(t, err)
	assert.Equal(t, "CA", rec.StateCode)
}

func TestParseRecord_ShortStateCode(t *testing.T) {
	fields, err := SplitLine("C\t1000000\tgh1\t50\t0\t10\t0\t101325\t300.0\n")
	require.NoError(t, err)
	_, err = ParseRecord(fields)
	var fieldErr *FieldParseError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, 0, fieldErr.Index)
}

func TestParseRecord_BadNumericFields(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		index int
	}{
		{"timestamp", "CA\tnope\tgh1\t50\t0\t10\t0\t101325\t300.0\n", 1},
		{"humidity", "CA\t1000000\tgh1\twet\t0\t10\t0\t101325\t300.0\n", 3},
		{"snow", "CA\t1000000\tgh1\t50\tyes\t10\t0\t101325\t300.0\n", 4},
		{"cloud cover", "CA\t1000000\tgh1\t50\t0\tcloudy\t0\t101325\t300.0\n", 5},
		{"lightning", "CA\t1000000\tgh1\t50\t0\t10\tzap\t101325\t300.0\n", 6},
		{"pressure", "CA\t1000000\tgh1\t50\t0\t10\t0\theavy\t300.0\n", 7},
		{"temperature", "CA\t1000000\tgh1\t50\t0\t10\t0\t101325\twarm\n", 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields, err := SplitLine(tc.line)
			require.NoError(t, err)

			_, err = ParseRecord(fields)
			var fieldErr *FieldParseError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.index, fieldErr.Index)
			assert.NotEmpty(t, fieldErr.Name)
			assert.Error(t, errors.Unwrap(fieldErr))
		})
	}
}

func TestParseRecord_GeohashNotDecoded(t *testing.T) {
	// Any garbage in field 2 is fine; it is carried but never parsed.
	fields, err := SplitLine("CA\t1000000\t!!not-a-geohash!!\t50\t0\t10\t0\t101325\t300.0\n")
	require.NoError(t, err)
	_, err = ParseRecord(fields)
	assert.NoError(t, err)
}

func TestParseRecord_FlagsTruncate(t *testing.T) {
	fields, err := SplitLine("CA\t1000000\tgh1\t50\t1.0\t10\t1.0\t101325\t300.0\n")
	require.NoError(t, err)
	rec, err := ParseRecord(fields)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Snow)
	assert.Equal(t, int64(1), rec.Lightning)
}
