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
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// NextDataScriptID is the id of the script tag holding the page data
const NextDataScriptID = "__NEXT_DATA__"

// findScript returns the text content of the first <script id="..."> element
func findScript(n *html.Node, id string) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "script" {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				var sb strings.Builder
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.TextNode {
						sb.WriteString(c.Data)
					}
				}
				return sb.String(), true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text, ok := findScript(c, id); ok {
			return text, true
		}
	}
	return "", false
}

// ExtractTrack pulls props.pageProps.track out of a race page
func ExtractTrack(page []byte) (*TrackData, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: html: %v", ErrParse, err)
	}

	text, ok := findScript(doc, NextDataScriptID)
	if !ok {
		return nil, fmt.Errorf("%w: no %s script in page", ErrParse, NextDataScriptID)
	}

	var nd NextData
	if err := json.Unmarshal([]byte(text), &nd); err != nil {
		return nil, fmt.Errorf("%w: page data: %v", ErrParse, err)
	}
	if nd.Props.PageProps.Track == nil {
		return nil, fmt.Errorf("%w: page data has no props.pageProps.track", ErrParse)
	}
	return nd.Props.PageProps.Track, nil
}
