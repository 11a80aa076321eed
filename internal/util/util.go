// Package util holds display formatters shared by the CLI and the HTTP layer.
package util

import (
	"fmt"
	"math"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// KilometersPerMile converts between the mile radius of the events route and kilometers.
const KilometersPerMile = 1.609344

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatRating rounds a rating for display. Nil renders as "Unrated".
func FormatRating(rating *int) string {
	if rating == nil {
		return "Unrated"
	}

	return fmt.Sprintf("%d", *rating)
}

// FormatNumber groups thousands, e.g. 1234567 becomes "1,234,567".
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatGamesPlayed renders a games count, e.g. "No games", "1 game", "1,500 games".
func FormatGamesPlayed(count *int) string {
	switch {
	case count == nil || *count == 0:
		return "No games"
	case *count == 1:
		return "1 game"
	default:
		return FormatNumber(*count) + " games"
	}
}

// FormatDate renders t as "Nov 30, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders t as "Nov 30, 2025 at 10:00 AM".
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006") + " at " + t.Format("3:04 PM")
}

// FormatDistance renders miles with one decimal, e.g. "12.3 mi".
func FormatDistance(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}

// MilesToKilometers converts a distance in miles to kilometers.
func MilesToKilometers(miles float64) float64 {
	return miles * KilometersPerMile
}

// KilometersToMiles converts a distance in kilometers to miles.
func KilometersToMiles(km float64) float64 {
	return km / KilometersPerMile
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))

	return math.Round(v*scale) / scale
}

// Truncate cuts text to maxLength runes and appends "..." when it was longer.
func Truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	return string([]rune(text)[:maxLength]) + "..."
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return ""
	}

	return string(unicode.ToUpper(r)) + text[size:]
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
// Durations under a second keep millisecond precision, e.g. "350ms".
func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%dms", duration.Milliseconds())
	}

	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
