package agent

import (
	"strings"
	"time"
)

// Ordered so that a message naming several days resolves deterministically.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// ResolveWindow maps a free-text time preference onto a concrete business-day
// window. Recognized keywords: "today", "tomorrow", "next week" and weekday
// names; anything else (including "none") defaults to tomorrow.
func ResolveWindow(pref string, now time.Time, openHour, closeHour int) (time.Time, time.Time) {
	lower := strings.ToLower(pref)

	target := now.AddDate(0, 0, 1)
	switch {
	case strings.Contains(lower, "today"):
		target = now
	case strings.Contains(lower, "tomorrow"):
		target = now.AddDate(0, 0, 1)
	case strings.Contains(lower, "next week"):
		target = now.AddDate(0, 0, 7)
	default:
		for _, wd := range weekdayNames {
			if strings.Contains(lower, wd.name) {
				daysAhead := int(wd.day-now.Weekday()+7) % 7
				if daysAhead == 0 {
					daysAhead = 7
				}
				target = now.AddDate(0, 0, daysAhead)
				break
			}
		}
	}

	start := time.Date(target.Year(), target.Month(), target.Day(), openHour, 0, 0, 0, target.Location())
	end := time.Date(target.Year(), target.Month(), target.Day(), closeHour, 0, 0, 0, target.Location())
	return start, end
}
