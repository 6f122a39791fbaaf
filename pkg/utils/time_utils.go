package utils

import (
	"os"
	"time"
)

// Service time location for calendar-day logic (notification dedupe,
// expiry display). Defaults to KST, falls back to UTC.
var appLoc = func() *time.Location {
	name := os.Getenv("APP_TZ")
	if name == "" {
		name = "Asia/Seoul"
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}()

func AppLocation() *time.Location { return appLoc }

func NowUnixSeconds() int64 { return time.Now().Unix() }

// Epoch seconds to local time. Zero time for t<=0 so callers decide
// how to render unset values.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(appLoc)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	local := t.In(appLoc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, appLoc)
}

// DaysRemaining is ceil((expiresAt - now) / 1 day); zero or negative
// means already expired.
func DaysRemaining(expiresAt, now time.Time) int {
	diff := expiresAt.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(appLoc).Format(time.RFC3339)
}
