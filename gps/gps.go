// Package gps converts the Exif GPS coordinates stored in XMP into decimal
// degrees.
//
// exif:GPSLatitude and exif:GPSLongitude hold degrees and decimal minutes
// followed by a hemisphere letter, for example "47,30.5N".
package gps

import (
	"strconv"
	"strings"
)

// LatitudeToDecimal converts an exif:GPSLatitude value to decimal degrees.
// Southern latitudes are negative. It returns false when s does not parse.
func LatitudeToDecimal(s string) (float64, bool) {
	return toDecimal(s, 'N', 'S')
}

// LongitudeToDecimal converts an exif:GPSLongitude value to decimal degrees.
// Western longitudes are negative. It returns false when s does not parse.
func LongitudeToDecimal(s string) (float64, bool) {
	return toDecimal(s, 'E', 'W')
}

func toDecimal(s string, positive, negative byte) (float64, bool) {
	if s == "" {
		return 0, false
	}
	var sign float64
	switch s[len(s)-1] {
	case positive:
		sign = 1
	case negative:
		sign = -1
	default:
		return 0, false
	}

	deg, min, ok := strings.Cut(s[:len(s)-1], ",")
	if !ok {
		return 0, false
	}
	d, err := strconv.ParseFloat(deg, 64)
	if err != nil {
		return 0, false
	}
	m, err := strconv.ParseFloat(min, 64)
	if err != nil {
		return 0, false
	}
	return (d + m/60) * sign, true
}
