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

// Match is the result of matching a coordinate against a track
type Match struct {
	// Index of the closest track point, -1 if nothing was searched
	Index int
	// DistanceKm is the along-track distance from the first point to Index
	DistanceKm float64
	// ErrorM is the distance between target and matched point in meters
	ErrorM float64
}

// Nearest finds the track point closest to target and returns its
// along-track distance and the residual error.
//
// With finish set only the second half of the track (index >= len/2) is
// searched. A finish line usually sits next to the start on loop and
// out-and-back courses, so a full search would match it at kilometer 0.
// This assumes the finish really is in the second half of the track, which
// holds for every course shape we have seen but is not guaranteed.
func Nearest(track []Point, target Point, finish bool) Match {
	m := Match{Index: -1, ErrorM: math.Inf(1)}

	start := 0
	if finish {
		start = len(track) / 2
	}

	for i := start; i < len(track); i++ {
		d := PointDistance(track[i], target)
		if d < m.ErrorM {
			m.ErrorM = d
			m.Index = i
		}
	}

	if m.Index >= 0 {
		m.DistanceKm = PathLength(track, m.Index) / 1000
	}
	return m
}
