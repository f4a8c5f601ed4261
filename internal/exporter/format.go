package exporter

import (
	"fmt"
)

// FormatScore formats a normalized score with exactly one decimal place
func FormatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// scoreNumFmt is the xlsx display format matching FormatScore
const scoreNumFmt = "0.0"
