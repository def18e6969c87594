package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBirthdateTime(t *testing.T) {
	cases := []struct {
		name      string
		birthdate string
		want      time.Time
		ok        bool
	}{
		{"ISO date", "1990-04-02", time.Date(1990, time.April, 2, 0, 0, 0, 0, time.UTC), true},
		{"RFC3339", "1990-04-02T00:00:00Z", time.Date(1990, time.April, 2, 0, 0, 0, 0, time.UTC), true},
		{"european", "02/04/1990", time.Date(1990, time.April, 2, 0, 0, 0, 0, time.UTC), true},
		{"missing", "", time.Time{}, false},
		{"garbage", "april 2nd", time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Client{Birthdate: tc.birthdate}.BirthdateTime()
			require.Equal(t, tc.ok, ok)
			if ok {
				require.True(t, got.Equal(tc.want))
			}
		})
	}
}
