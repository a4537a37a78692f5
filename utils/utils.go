package utils

import (
	"math"
	rndm "math/rand"
	"net/http"
	"strconv"
	"strings"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digitRunes = []rune("0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateRandomDigitString creates a random numeric string of length n.
func GenerateRandomDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rndm.Intn(len(digitRunes))]
	}
	return string(b)
}

// GenerateID creates a random entity identifier of length n.
func GenerateID(n int) string {
	return GenerateRandomString(n)
}

// --- Price Helpers ---

// RoundPrice rounds to two decimals. Totals accumulate at full precision;
// rounding happens only at presentation time.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPrice renders a price with two decimals for display.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(RoundPrice(v), 'f', 2, 64)
}

// --- String Helpers ---

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}

// --- Query Helpers ---

// ParseFloatParam reads a float query parameter, defaulting on absence or
// garbage rather than failing.
func ParseFloatParam(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
