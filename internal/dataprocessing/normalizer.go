package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
)

// Normalizer rescales raw (obtained, total) score pairs onto a fixed scale
type Normalizer struct {
	Scale        float64
	DefaultTotal float64
}

// NewNormalizer creates a normalizer from parser configuration.
// Non-positive values fall back to the defaults.
func NewNormalizer(cfg config.ParserConfig) Normalizer {
	n := Normalizer{Scale: cfg.Scale, DefaultTotal: cfg.DefaultTotal}
	if n.Scale <= 0 {
		n.Scale = config.DefaultScale
	}
	if n.DefaultTotal <= 0 {
		n.DefaultTotal = config.DefaultTotal
	}
	return n
}

// Normalize converts obtained/total to the configured scale.
//
//   - obtained that does not parse counts as 0
//   - total that does not parse counts as DefaultTotal
//   - a total of exactly 0 yields 0
//   - a NaN or infinite result yields 0
//
// It never fails and always returns a finite value.
func (n Normalizer) Normalize(obtained, total string) float64 {
	obt, ok := parseScore(obtained)
	if !ok {
		obt = 0
	}
	tot, ok := parseScore(total)
	if !ok {
		tot = n.DefaultTotal
	}
	if tot == 0 {
		return 0
	}

	v := obt / tot * n.Scale
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Normalize uses the default scale and default total of 80
func Normalize(obtained, total string) float64 {
	return defaultNormalizer.Normalize(obtained, total)
}

var defaultNormalizer = Normalizer{Scale: config.DefaultScale, DefaultTotal: config.DefaultTotal}

// parseScore accepts what strconv.ParseFloat accepts, including "Inf" and
// "NaN". Out-of-range literals such as "1e400" do not parse.
func parseScore(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
