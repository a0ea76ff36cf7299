package timeutil_test

import (
	"testing"
	"time"

	"chillguy-miniapp/internal/infra/timeutil"
)

func TestParseLocation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		value      string
		wantOffset int // секунды от UTC; для IANA-зон не проверяется
		wantIANA   bool
		wantErr    bool
	}{
		{name: "ianaName", value: "Europe/Moscow", wantIANA: true},
		{name: "utcKeyword", value: "UTC", wantOffset: 0},
		{name: "positiveOffset", value: "+03:00", wantOffset: 3 * 3600},
		{name: "compactNegativeOffset", value: "-0700", wantOffset: -7 * 3600},
		{name: "utcPrefixed", value: "UTC+3", wantOffset: 3 * 3600},
		{name: "gmtWithMinutes", value: "GMT-04:30", wantOffset: -(4*3600 + 30*60)},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "Mars/Olympus", wantErr: true},
		{name: "offsetTooLarge", value: "+15:00", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			loc, err := timeutil.ParseLocation(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseLocation(%q) expected error, got %v", tc.value, loc)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocation(%q) error: %v", tc.value, err)
			}
			if tc.wantIANA {
				return
			}
			_, offset := time.Now().In(loc).Zone()
			if offset != tc.wantOffset {
				t.Fatalf("ParseLocation(%q) offset = %d, want %d", tc.value, offset, tc.wantOffset)
			}
		})
	}
}
