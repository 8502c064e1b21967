package format

import (
	"fmt"
	"math"
	"time"
)

// serial 2958466 is the first day of year 10000
const maxSerial = 2958466

var (
	epoch1900 = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	epochLeap = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
)

// SerialTime converts a 1900 based spreadsheet date serial into a UTC
// time. Serials below 1.0 carry a time of day only and map onto the
// zero date. Serials of 60 and above are shifted by one day to absorb
// the bogus 1900-02-29 the original calendar counts.
func SerialTime(serial float64) (time.Time, error) {
	if serial < 0 || serial >= maxSerial {
		return time.Time{}, fmt.Errorf("date serial %g out of range", serial)
	}
	epoch := epoch1900
	if serial >= 60 {
		epoch = epochLeap
	}
	var (
		days = int(serial)
		frac = serial - float64(days)
		ms   = int(math.Round(frac * 86400000))
	)
	when := epoch.AddDate(0, 0, days)
	return when.Add(time.Duration(ms) * time.Millisecond), nil
}
