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
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/spezifisch/trailgpx/pkg/gpxfile"
)

// Options for Process
type Options struct {
	URL      string
	Output   string
	RaceName string
	// KMLOutput is optional
	KMLOutput string

	// Fetcher and Decoder default to an HTTPFetcher with default settings
	// and PolylineDecoder.
	Fetcher Fetcher
	Decoder Decoder
}

// Result describes what Process did
type Result struct {
	GPX          *gpx.GPX
	Track        *TrackData
	Added        int
	BytesWritten int
	// AnnotateErr is set when checkpoints could not be added. The file is
	// written anyway.
	AnnotateErr error
}

// Process fetches a race page, converts its route to GPX, adds the
// checkpoints if there are none yet and writes the result.
func Process(ctx context.Context, opts Options) (res Result, err error) {
	if opts.Fetcher == nil {
		opts.Fetcher = NewHTTPFetcher(DefaultTimeout, DefaultUserAgent)
	}
	if opts.Decoder == nil {
		opts.Decoder = PolylineDecoder{}
	}

	log.WithField("url", opts.URL).Info("fetching race data")
	page, err := opts.Fetcher.Fetch(ctx, opts.URL)
	if err != nil {
		return
	}

	res.Track, err = ExtractTrack(page)
	if err != nil {
		return
	}
	log.WithFields(log.Fields{
		"km":          fmt.Sprintf("%.1f", res.Track.DistanceKm()),
		"checkpoints": len(res.Track.Points),
	}).Info("race info")

	res.GPX, err = BuildGPX(res.Track, opts.Decoder, opts.RaceName)
	if err != nil {
		return
	}

	res.Added, res.AnnotateErr = Annotate(res.GPX, res.Track.Points)
	if res.AnnotateErr != nil {
		log.WithError(res.AnnotateErr).Warn("could not add checkpoints")
	} else if res.Added > 0 {
		log.Infof("added %d checkpoints", res.Added)
	}

	res.BytesWritten, err = gpxfile.Save(opts.Output, res.GPX)
	if err != nil {
		return
	}
	log.WithFields(log.Fields{
		"file":  opts.Output,
		"bytes": res.BytesWritten,
	}).Info("saved gpx")

	if opts.KMLOutput != "" {
		if err = SaveKML(opts.KMLOutput, res.GPX); err != nil {
			return
		}
		log.WithField("file", opts.KMLOutput).Info("saved kml")
	}
	return
}
