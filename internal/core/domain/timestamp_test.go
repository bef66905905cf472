package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_Empty(t *testing.T) {
	assert.Nil(t, ParseTimestamp(""))
}

func TestParseTimestamp_ZuluAndOffsetAreSameInstant(t *testing.T) {
	zulu := ParseTimestamp("2023-01-01T00:00:00Z")
	offset := ParseTimestamp("2023-01-01T00:00:00+00:00")

	require.True(t, zulu.Parsed())
	require.True(t, offset.Parsed())
	assert.True(t, zulu.Time.Equal(offset.Time))
}

func TestParseTimestamp_NoOffset(t *testing.T) {
	ts := ParseTimestamp("2023-06-15T10:30:00")
	require.True(t, ts.Parsed())
	assert.Equal(t, time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC), ts.Time)
}

func TestParseTimestamp_UnparseableKeepsRaw(t *testing.T) {
	ts := ParseTimestamp("yesterday")
	require.NotNil(t, ts)
	assert.False(t, ts.Parsed())
	assert.Equal(t, "yesterday", ts.Raw)
	assert.Equal(t, "yesterday", ts.Value())
}

func TestTimestamp_Value(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{name: "parsed", input: "2023-01-01T12:00:00Z", expected: "2023-01-01T12:00:00Z"},
		{name: "raw fallback", input: "not-a-date", expected: "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTimestamp(tt.input).Value())
		})
	}

	var absent *Timestamp
	assert.Nil(t, absent.Value())
}
