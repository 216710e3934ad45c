package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-10-15T10:00:00Z", time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)},
		{"2026-10-15T10:00:00+02:00", time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)},
		{"2026-10-15T10:00:00.123456", time.Date(2026, 10, 15, 10, 0, 0, 123456000, time.UTC)},
		{"2026-10-15T10:00:00", time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)},
		{"2026-10-15 10:00:00.5", time.Date(2026, 10, 15, 10, 0, 0, 500000000, time.UTC)},
		{"2026-10-15 10:00:00+00:00", time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)},
		{"2026-10-15T10:00", time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)},
		{"2026-10-15", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClientTime(tc.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s", got)
		})
	}

	for _, bad := range []string{"", "yesterday", "15/10/2026", "2026-13-01T00:00:00"} {
		_, err := ParseClientTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestErrorLogInputTimestamp(t *testing.T) {
	var in ErrorLogInput
	require.NoError(t, json.Unmarshal([]byte(`{"timestamp":"2026-10-15T10:00:00.123456"}`), &in))
	require.NotNil(t, in.Timestamp)
	assert.Equal(t, time.UTC, in.Timestamp.Location())

	in = ErrorLogInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"timestamp":null}`), &in))
	assert.Nil(t, in.Timestamp)

	assert.Error(t, json.Unmarshal([]byte(`{"timestamp":1700000000}`), &in))
}
