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

import "errors"

var (
	// ErrFetch wraps failures to download the race page
	ErrFetch = errors.New("fetch failed")
	// ErrParse wraps missing page data and undecodable polylines
	ErrParse = errors.New("parse failed")
	// ErrNoTrackData is returned when there is no track to measure checkpoints against
	ErrNoTrackData = errors.New("gpx has no track data")
)
