package ui

import (
	"math/rand/v2"
	"time"
)

const defaultTagline = "Digital agency console"

var taglines = []string{
	"Digital agency console",
	"Design, build, launch",
	"Brands that ship",
	"From brief to launch",
	"Pixels with a purpose",
	"Serving the site, one palette at a time",
}

// Seasonal taglines keyed by month and day.
var holidayTaglines = []taglineRule{
	{month: 12, day: 25, tagline: "🎄 Shipping holiday cheer"},
	{month: 10, day: 31, tagline: "🎃 Spooky fast pages"},
	{month: 1, day: 1, tagline: "🎉 New year, new launches"},
}

type taglineRule struct {
	month   time.Month
	day     int
	tagline string
}

// PickTagline returns a random tagline, or the seasonal one for today.
func PickTagline() string {
	return pickTagline(time.Now())
}

func pickTagline(now time.Time) string {
	for _, rule := range holidayTaglines {
		if rule.month == now.Month() && rule.day == now.Day() {
			return rule.tagline
		}
	}
	if len(taglines) == 0 {
		return defaultTagline
	}
	return taglines[rand.IntN(len(taglines))]
}

// FormatTagline styles a tagline; seasonal emoji lines are left as is.
func FormatTagline(tagline string) string {
	if !IsRich() {
		return tagline
	}
	for _, rule := range holidayTaglines {
		if tagline == rule.tagline {
			return tagline
		}
	}
	return AccentDim("%s", tagline)
}
