// This file is part of trailgpx (https://github.com/spezifisch/trailgpx).
// Copyright (C) 2022-2025 spezifisch <spezifisch-7e6@below.fr> (https://github.com/spezifisch).
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, version 3 of the License.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Affero General Public License for more
// details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package geo

import "math"

// EarthRadius is the mean earth radius in meters used for all distances.
const EarthRadius = 6371000.0

// Point is a coordinate in degrees
type Point struct {
	Lat float64
	Lon float64
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the great-circle distance in meters between two
// coordinates given in degrees. Inputs are not validated.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * math.Asin(math.Sqrt(a)) * EarthRadius
}

// PointDistance is Distance for two Points.
func PointDistance(a, b Point) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// PathLength sums the leg distances from track[0] up to and including
// track[end], in meters. end is clamped to the track.
func PathLength(track []Point, end int) (meters float64) {
	if end >= len(track) {
		end = len(track) - 1
	}
	for i := 1; i <= end; i++ {
		meters += PointDistance(track[i-1], track[i])
	}
	return
}
