package timestamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"colon separated 24h", "2024-01-02:09:30:00", "2024-01-02 09:30:00"},
		{"colon separated afternoon", "2024-01-02:23:15:07", "2024-01-02 23:15:07"},
		{"space separated", "2024-01-02 09:30:00", "2024-01-02 09:30:00"},
		{"iso local", "2024-01-02T09:30:00", "2024-01-02 09:30:00"},
		{"iso local with fraction", "2024-01-02T09:30:00.250", "2024-01-02 09:30:00"},
		{"iso local without seconds", "2024-01-02T09:30", "2024-01-02 09:30:00"},
		{"iso local single digit hour", "2024-01-02T9:30:00", "2024-01-02T9:30:00"},
		{"iso local single digit hour with fraction", "2024-01-02T9:30:00.250", "2024-01-02T9:30:00.250"},
		{"colon separated with fraction", "2024-01-02:09:30:00.5", "2024-01-02:09:30:00.5"},
		{"space separated with fraction", "2024-01-02 09:30:00.123", "2024-01-02 09:30:00.123"},
		{"colon separated single digit hour", "2024-01-02:9:30:00", "2024-01-02:9:30:00"},
		{"space separated single digit hour", "2024-01-02 9:30:00", "2024-01-02 9:30:00"},
		{"iso without seconds with fraction", "2024-01-02T09:30.5", "2024-01-02T09:30.5"},
		{"surrounding whitespace left as is", "  2024-01-02:09:30:00 ", "  2024-01-02:09:30:00 "},
		{"unrecognised left as is", "yesterday", "yesterday"},
		{"invalid month left as is", "2024-13-02 09:30:00", "2024-13-02 09:30:00"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.raw))
		})
	}
}

func TestNormalizeIsFixedPoint(t *testing.T) {
	once := Normalize("2024-06-30:18:05:59")
	assert.Equal(t, once, Normalize(once))
}

func TestParse(t *testing.T) {
	ts, ok := Parse("2024-01-02:09:30:00")
	require.True(t, ok)
	assert.Equal(t, 9, ts.Hour())
	assert.Equal(t, 30, ts.Minute())

	_, ok = Parse("not a time")
	assert.False(t, ok)

	_, ok = Parse(" 2024-01-02:09:30:00")
	assert.False(t, ok)

	ts, ok = Parse("2024-01-02T09:30:00.250")
	require.True(t, ok)
	assert.Equal(t, 250_000_000, ts.Nanosecond())
}

func TestLayoutsOrder(t *testing.T) {
	got := Layouts()
	require.Len(t, got, 5)
	assert.Equal(t, "2006-01-02:15:04:05", got[0])
	assert.Equal(t, "2006-01-02:03:04:05", got[1])
	assert.Equal(t, "2006-01-02 15:04:05", got[2])

	got[0] = "mutated"
	assert.Equal(t, "2006-01-02:15:04:05", Layouts()[0])
}
