package models

import (
	"math"
	"strconv"
	"strings"
)

// ParseMoney parses a salary cell into millions of dollars.
// Accepted forms: "4.5", "$4.5M", "$750K", "$4,500,000".
// Bare numbers of 1000 or more are treated as whole dollars.
func ParseMoney(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		return 0, false
	}

	divisor := 1.0
	explicit := true
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "M"):
		s = s[:len(s)-1]
	case strings.HasSuffix(upper, "K"):
		s = s[:len(s)-1]
		divisor = 1e3
	default:
		explicit = false
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}

	if !explicit && amount >= 1000 {
		divisor = 1e6
	}
	return amount / divisor, true
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// FormatMillions renders an amount in millions the way embeds show it, e.g. "$4.9M".
func FormatMillions(v float64) string {
	return "$" + strconv.FormatFloat(RoundTo(v, 1), 'f', 1, 64) + "M"
}
