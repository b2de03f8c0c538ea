package models

import "math"

// AmountToCents rounds a 2-decimal money value to integer cents.
func AmountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CentsToAmount converts integer cents back to a money value.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}
