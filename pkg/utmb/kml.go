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
	"io"
	"os"

	"github.com/tkrajina/gpxgo/gpx"
	"github.com/twpayne/go-kml/v2"
)

// WriteKML writes the tracks and waypoints of g as a KML document, one
// LineString placemark per segment and one Point placemark per waypoint.
func WriteKML(w io.Writer, g *gpx.GPX) error {
	children := []kml.Element{kml.Name(g.Name)}
	if g.Description != "" {
		children = append(children, kml.Description(g.Description))
	}

	for _, track := range g.Tracks {
		for _, segment := range track.Segments {
			coords := make([]kml.Coordinate, 0, len(segment.Points))
			for _, p := range segment.Points {
				coords = append(coords, kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude, Alt: p.Elevation.Value()})
			}
			children = append(children, kml.Placemark(
				kml.Name(track.Name),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(coords...),
				),
			))
		}
	}

	for _, wpt := range g.Waypoints {
		children = append(children, kml.Placemark(
			kml.Name(wpt.Name),
			kml.Description(wpt.Description),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: wpt.Longitude, Lat: wpt.Latitude}),
			),
		))
	}

	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

// SaveKML writes g as KML to path
func SaveKML(path string, g *gpx.GPX) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	err = WriteKML(f, g)
	return
}
