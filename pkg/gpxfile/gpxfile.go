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

// Package gpxfile reads and writes GPX documents on disk.
package gpxfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tkrajina/gpxgo/gpx"
)

// Version is the GPX schema version written by Save
const Version = "1.1"

func checkFile(file string) (err error) {
	var fi os.FileInfo
	fi, err = os.Stat(file)
	if err != nil {
		return
	}

	if !fi.Mode().IsRegular() {
		text := fmt.Sprintf("'%s' is not a file", file)
		return errors.New(text)
	}
	return
}

// Load parses the GPX file at path
func Load(path string) (g *gpx.GPX, err error) {
	err = checkFile(path)
	if err != nil {
		return
	}

	g, err = gpx.ParseFile(path)
	if err != nil {
		err = fmt.Errorf("parse %s: %w", path, err)
		return
	}

	log.WithFields(log.Fields{
		"file":   path,
		"tracks": len(g.Tracks),
		"points": CountPoints(g),
	}).Info("loaded gpx")
	return
}

// Marshal serializes g as indented GPX 1.1 XML. All times in g are moved to
// UTC first because gpxgo prints them with a literal Z.
func Marshal(g *gpx.GPX) ([]byte, error) {
	toUTC(g)
	return g.ToXml(gpx.ToXmlParams{Version: Version, Indent: true})
}

// toUTC converts every timestamp of g to UTC, keeping the instant
func toUTC(g *gpx.GPX) {
	if g.Time != nil {
		t := g.Time.UTC()
		g.Time = &t
	}
	for i := range g.Waypoints {
		g.Waypoints[i].Timestamp = g.Waypoints[i].Timestamp.UTC()
	}
	for ri := range g.Routes {
		points := g.Routes[ri].Points
		for pi := range points {
			points[pi].Timestamp = points[pi].Timestamp.UTC()
		}
	}
	for ti := range g.Tracks {
		track := &g.Tracks[ti]
		for si := range track.Segments {
			points := track.Segments[si].Points
			for pi := range points {
				points[pi].Timestamp = points[pi].Timestamp.UTC()
			}
		}
	}
}

// Save writes g to path and returns the number of bytes written.
func Save(path string, g *gpx.GPX) (n int, err error) {
	data, err := Marshal(g)
	if err != nil {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriterSize(f, 65536)
	n, err = bw.Write(data)
	if err != nil {
		return
	}
	err = bw.Flush()
	return
}

// CountPoints returns the number of track points over all tracks and segments
func CountPoints(g *gpx.GPX) (count int) {
	for _, track := range g.Tracks {
		for _, segment := range track.Segments {
			count += len(segment.Points)
		}
	}
	return
}
