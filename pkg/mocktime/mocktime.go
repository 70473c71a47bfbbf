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

package mocktime

import (
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/spezifisch/trailgpx/pkg/geo"
)

var (
	// ErrInvalidSpeed is returned for speeds that are not a positive number
	ErrInvalidSpeed = errors.New("speed must be a positive number of meters per second")
	// ErrInvalidStart is returned for unparsable start times
	ErrInvalidStart = errors.New("invalid start time")
)

// ApplyBasic stamps every point in traversal order with consecutive ticks of
// c. The document time is set to the clock's start. It returns the number of
// points stamped. Timestamps are stored in UTC since GPX times are always
// written as UTC.
func ApplyBasic(g *gpx.GPX, c *Clock, reverse bool) (count int) {
	start := c.Start().UTC()
	g.Time = &start

	for ti := range g.Tracks {
		track := &g.Tracks[ti]
		for si := range track.Segments {
			segment := &track.Segments[si]
			for pi := range segment.Points {
				segment.Points[pi].Timestamp = c.Tick(reverse).UTC()
				count++
			}
		}
	}

	log.WithFields(log.Fields{
		"points":  count,
		"reverse": reverse,
		"last":    c.Current(),
	}).Debug("basic mockup done")
	return
}

// ApplySpeed walks the track at a constant speed in m/s starting at start.
// The first point gets start, every following point the previous time plus
// the haversine leg divided by speed. The accumulator carries over track and
// segment boundaries. A non-empty name replaces document and track names.
//
// The accumulator keeps microseconds, but GPX files are written with whole
// seconds, so legs shorter than a second show up as repeated timestamps in
// the file. The total elapsed time stays exact.
func ApplySpeed(g *gpx.GPX, start time.Time, speed float64, name string) (count int, err error) {
	if err = CheckSpeed(speed); err != nil {
		return
	}

	if name != "" {
		g.Name = name
	}

	cur := start.UTC()
	var last *gpx.GPXPoint
	for ti := range g.Tracks {
		track := &g.Tracks[ti]
		if name != "" {
			track.Name = name
		}
		for si := range track.Segments {
			segment := &track.Segments[si]
			for pi := range segment.Points {
				point := &segment.Points[pi]
				if last != nil {
					cur = cur.Add(legDuration(last, point, speed))
				}
				point.Timestamp = cur
				last = point
				count++
			}
		}
	}

	log.WithFields(log.Fields{
		"points":   count,
		"start":    start,
		"end":      cur,
		"duration": cur.Sub(start),
	}).Debug("speed mockup done")
	return
}

func legDuration(from, to *gpx.GPXPoint, speed float64) time.Duration {
	meters := geo.Distance(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	micros := math.Round(meters / speed * 1e6)
	return time.Duration(micros) * time.Microsecond
}

// CheckSpeed rejects zero, negative and non-finite speeds
func CheckSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, speed)
	}
	return nil
}

// ParseSpeed parses a speed argument in meters per second
func ParseSpeed(s string) (speed float64, err error) {
	speed, err = cast.ToFloat64E(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpeed, s)
	}
	err = CheckSpeed(speed)
	return
}

// ParseStart parses the start instant, e.g. "2025-01-01 08:08:01 +08:00".
// Times without a zone are taken as UTC.
func ParseStart(s string) (t time.Time, err error) {
	t, err = cast.ToTimeE(s)
	if err != nil {
		err = fmt.Errorf("%w %q: %v", ErrInvalidStart, s, err)
	}
	return
}
