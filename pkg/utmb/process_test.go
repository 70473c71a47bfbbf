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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spezifisch/trailgpx/pkg/geo"
	"github.com/spezifisch/trailgpx/pkg/gpxfile"
)

type pageFetcher struct {
	page []byte
	err  error
	urls []string
}

func (f *pageFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.page, f.err
}

func TestHTTPFetcher(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/races/tl120" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "trailgpx-test")

	body, err := f.Fetch(context.Background(), srv.URL+"/races/tl120")
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, "trailgpx-test", gotUA)

	_, err = f.Fetch(context.Background(), srv.URL+"/races/nope")
	assert.True(t, errors.Is(err, ErrFetch), "404: %v", err)

	_, err = f.Fetch(context.Background(), "://bad-url")
	assert.True(t, errors.Is(err, ErrFetch), "bad url: %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, srv.URL+"/races/tl120")
	assert.True(t, errors.Is(err, ErrFetch), "canceled: %v", err)
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "TL120.gpx")
	kmlOut := filepath.Join(dir, "TL120.kml")
	f := &pageFetcher{page: readFixture(t, "utmb_race.html")}

	res, err := Process(context.Background(), Options{
		URL:       "https://translantau.utmb.world/races/tl120",
		Output:    out,
		RaceName:  "Trans Lantau 120",
		KMLOutput: kmlOut,
		Fetcher:   f,
	})
	require.NoError(t, err)
	require.NoError(t, res.AnnotateErr)
	assert.Equal(t, []string{"https://translantau.utmb.world/races/tl120"}, f.urls)
	assert.Equal(t, 3, res.Added)

	g, err := gpxfile.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "Trans Lantau 120", g.Name)
	assert.Equal(t, "Distance: 750.0km", g.Description)
	assert.Equal(t, 3, gpxfile.CountPoints(g))
	require.Len(t, g.Waypoints, 3)
	assert.Equal(t, "CP1: Start", g.Waypoints[0].Name)
	assert.Equal(t, "2: Mid", g.Waypoints[1].Name)

	kmlData, err := os.ReadFile(kmlOut)
	require.NoError(t, err)
	assert.Contains(t, string(kmlData), "<LineString>")
	assert.Contains(t, string(kmlData), "CP1: Start")
}

func TestProcessDefaultFetcher(t *testing.T) {
	page := readFixture(t, "utmb_race.html")
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write(page)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "out.gpx")
	res, err := Process(context.Background(), Options{URL: srv.URL + "/races/tl120", Output: out})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Added)
	assert.Equal(t, DefaultUserAgent, gotUA)

	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name    string
		fetcher Fetcher
		decoder Decoder
		wantErr error
	}{
		{
			name:    "fetch fails",
			fetcher: &pageFetcher{err: ErrFetch},
			wantErr: ErrFetch,
		},
		{
			name:    "page without data",
			fetcher: &pageFetcher{page: []byte("<html></html>")},
			wantErr: ErrParse,
		},
		{
			name:    "broken polyline",
			fetcher: &pageFetcher{page: bytes.Replace(readFixture(t, "utmb_race.html"), []byte(testPolyline), []byte("_p~iF~ps|U_"), 1)},
			wantErr: ErrParse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.gpx")
			_, err := Process(context.Background(), Options{URL: "http://x", Output: out, Fetcher: tt.fetcher, Decoder: tt.decoder})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Process() error = %v, want %v", err, tt.wantErr)
			}
			if _, serr := os.Stat(out); serr == nil {
				t.Errorf("Process() wrote %s despite error", out)
			}
		})
	}
}

func TestProcessEmptyTrackStillWrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gpx")
	res, err := Process(context.Background(), Options{
		URL:     "http://x",
		Output:  out,
		Fetcher: &pageFetcher{page: readFixture(t, "utmb_race.html")},
		Decoder: staticDecoder([]geo.Point{}),
	})
	require.NoError(t, err)
	assert.True(t, errors.Is(res.AnnotateErr, ErrNoTrackData))
	assert.Equal(t, 0, res.Added)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), DefaultRaceName))
}

func TestWriteKML(t *testing.T) {
	g, _ := straightDoc(4)
	g.Waypoints = nil
	_, err := AddCheckpoints(g, []Checkpoint{{UID: "FIN", Name: "Finish", Lat: 22.003, Lon: 114.0}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, g))

	s := buf.String()
	assert.Contains(t, s, "<kml")
	assert.Contains(t, s, "<name>Straight</name>")
	assert.Contains(t, s, "FIN: Finish")
	assert.Contains(t, s, "<Point>")
	assert.Equal(t, 2, strings.Count(s, "<Placemark>"))
}
