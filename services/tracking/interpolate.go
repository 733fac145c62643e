package tracking

import "vijayfix/models"

// Interpolate returns the point at progress along the straight line from
// from to to. Progress is clamped to [0, 1].
func Interpolate(from, to models.Coordinate, progress float64) models.Coordinate {
	switch {
	case progress <= 0:
		return from
	case progress >= 1:
		return to
	}
	return models.Coordinate{
		Lat: from.Lat + (to.Lat-from.Lat)*progress,
		Lng: from.Lng + (to.Lng-from.Lng)*progress,
	}
}
