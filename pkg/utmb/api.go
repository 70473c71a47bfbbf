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
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/spezifisch/trailgpx/pkg/geo"
)

// NextData is the JSON blob a UTMB race page embeds for its Next.js frontend
type NextData struct {
	Props struct {
		PageProps struct {
			Track *TrackData `json:"track"`
		} `json:"pageProps"`
	} `json:"props"`
}

// TrackData has the route of a race
type TrackData struct {
	// Distance in meters
	Distance float64      `json:"distance"`
	Polyline string       `json:"polyline"`
	Points   []Checkpoint `json:"points"`
}

// DistanceKm returns the advertised race distance in kilometers
func (td *TrackData) DistanceKm() float64 {
	return td.Distance / 1000
}

// Checkpoint is a control point along the course
type Checkpoint struct {
	UID  CheckpointID `json:"uid"`
	Name string       `json:"name"`
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
}

// Point returns the checkpoint location
func (cp Checkpoint) Point() geo.Point {
	return geo.Point{Lat: cp.Lat, Lon: cp.Lon}
}

// CheckpointID is the optional short label of a checkpoint. The site sends it
// either as string or as number.
type CheckpointID string

// UnmarshalJSON accepts strings, numbers and null. The number 0 means no
// id, like null.
func (id *CheckpointID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CheckpointID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*id = ""
		return nil
	}
	if i, err := n.Int64(); err == nil {
		*id = CheckpointID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = CheckpointID(n.String())
	return nil
}
