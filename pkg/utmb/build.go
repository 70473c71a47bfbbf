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

package utmb

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tkrajina/gpxgo/gpx"
	"github.com/twpayne/go-polyline"

	"github.com/spezifisch/trailgpx/pkg/geo"
)

// DefaultRaceName is used when no race name is given
const DefaultRaceName = "UTMB Race"

// Decoder turns an encoded polyline into coordinates
type Decoder interface {
	Decode(encoded string) ([]geo.Point, error)
}

// PolylineDecoder decodes Google encoded polylines with 1e5 precision
type PolylineDecoder struct{}

// Decode implements Decoder
func (PolylineDecoder) Decode(encoded string) ([]geo.Point, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: polyline: %v", ErrParse, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: polyline: %d trailing bytes", ErrParse, len(rest))
	}

	points := make([]geo.Point, len(coords))
	for i, c := range coords {
		points[i] = geo.Point{Lat: c[0], Lon: c[1]}
	}
	return points, nil
}

// BuildGPX creates a GPX document with a single track from the race polyline
func BuildGPX(td *TrackData, dec Decoder, raceName string) (*gpx.GPX, error) {
	if raceName == "" {
		raceName = DefaultRaceName
	}
	if td.Polyline == "" {
		return nil, fmt.Errorf("%w: race has no polyline", ErrParse)
	}

	points, err := dec.Decode(td.Polyline)
	if err != nil {
		return nil, err
	}

	segment := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, len(points))}
	for _, p := range points {
		segment.Points = append(segment.Points, gpx.GPXPoint{
			Point: gpx.Point{Latitude: p.Lat, Longitude: p.Lon},
		})
	}

	g := &gpx.GPX{
		Creator:     "trailgpx",
		Name:        raceName,
		Description: fmt.Sprintf("Distance: %.1fkm", td.DistanceKm()),
		Tracks: []gpx.GPXTrack{{
			Name:     raceName,
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}

	log.WithField("points", len(points)).Info("created track from polyline")
	return g, nil
}

// trackPoints returns the points of the first segment of the first track
func trackPoints(g *gpx.GPX) ([]geo.Point, error) {
	if len(g.Tracks) == 0 || len(g.Tracks[0].Segments) == 0 {
		return nil, ErrNoTrackData
	}
	src := g.Tracks[0].Segments[0].Points
	if len(src) == 0 {
		return nil, ErrNoTrackData
	}

	points := make([]geo.Point, len(src))
	for i, p := range src {
		points[i] = geo.Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	return points, nil
}
