package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToISODate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{name: "empty", in: "", want: nil},
		{name: "blank", in: "   ", want: nil},
		{name: "iso date", in: "2024-03-01", want: ptrTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
		{name: "rfc3339 with offset", in: "2024-03-01T10:00:00-05:00",
			want: ptrTime(time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC))},
		{name: "us date", in: "01/15/2024", want: ptrTime(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))},
		{name: "us date single digits", in: "1/5/2024", want: ptrTime(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))},
		{name: "impossible date", in: "02/30/2024", want: nil},
		{name: "garbage", in: "not a date", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToISODate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestUSDate(t *testing.T) {
	assert.Equal(t, "03/09/2024", usDate(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)))
}

func ptrTime(t time.Time) *time.Time { return &t }
