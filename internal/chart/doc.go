// Package chart draws the per-student grouped bar chart: subjects along the
// x axis and one colored bar series per exam, on a fixed 0 to YMax scale.
//
// The PNG renderer is used by document formats that embed images. Formats
// with native charts (xlsx) reuse BuildSeries so every output shows the
// same series order and colors.
package chart
