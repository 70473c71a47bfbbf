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

	"github.com/spezifisch/trailgpx/pkg/geo"
)

// HasCheckpoints reports whether g already carries waypoints
func HasCheckpoints(g *gpx.GPX) bool {
	return len(g.Waypoints) > 0
}

// WaypointName is "uid: name", or just the name without uid
func WaypointName(cp Checkpoint) string {
	if cp.UID != "" {
		return fmt.Sprintf("%s: %s", cp.UID, cp.Name)
	}
	return cp.Name
}

// WaypointDescription formats the along-track distance and match error
func WaypointDescription(distanceKm, errorM float64) string {
	return fmt.Sprintf("CP - %.1fkm (误差: %.0fm)", distanceKm, errorM)
}

// AddCheckpoints appends one waypoint per checkpoint, in order, measured
// against the first segment of the first track. The last checkpoint is the
// finish and is only matched against the second half of the track.
func AddCheckpoints(g *gpx.GPX, cps []Checkpoint) (added []gpx.GPXPoint, err error) {
	track, err := trackPoints(g)
	if err != nil {
		return
	}

	added = make([]gpx.GPXPoint, 0, len(cps))
	for i, cp := range cps {
		m := geo.Nearest(track, cp.Point(), i == len(cps)-1)

		wpt := gpx.GPXPoint{
			Point:       gpx.Point{Latitude: cp.Lat, Longitude: cp.Lon},
			Name:        WaypointName(cp),
			Description: WaypointDescription(m.DistanceKm, m.ErrorM),
		}
		added = append(added, wpt)

		log.WithFields(log.Fields{
			"index": m.Index,
			"km":    fmt.Sprintf("%.1f", m.DistanceKm),
			"error": fmt.Sprintf("%.0fm", m.ErrorM),
		}).Infof("+ %s", wpt.Name)
	}

	g.Waypoints = append(g.Waypoints, added...)
	return
}

// Annotate adds the checkpoints unless g already has waypoints, and returns
// the number of waypoints added.
func Annotate(g *gpx.GPX, cps []Checkpoint) (int, error) {
	if HasCheckpoints(g) {
		log.WithField("waypoints", len(g.Waypoints)).Info("gpx already has checkpoints")
		return 0, nil
	}

	added, err := AddCheckpoints(g, cps)
	return len(added), err
}
