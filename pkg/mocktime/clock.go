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

// Package mocktime writes synthesized timestamps onto untimed GPX tracks.
package mocktime

import "time"

// DefaultBasicStart is the sentinel start instant of basic mode. It is far
// enough in the future that nobody mistakes it for a recorded activity.
var DefaultBasicStart = time.Date(9999, time.December, 15, 0, 0, 1, 0, time.FixedZone("+08:00", 8*60*60))

// Clock hands out timestamps one second apart. The zero value starts at
// DefaultBasicStart.
type Clock struct {
	start  time.Time
	cur    time.Time
	primed bool
}

// NewClock returns a Clock whose first Next() is start + 1s
func NewClock(start time.Time) *Clock {
	c := &Clock{}
	c.Reset(start)
	return c
}

func (c *Clock) prime() {
	if !c.primed {
		c.Reset(DefaultBasicStart)
	}
}

// Reset moves the cursor to t.
func (c *Clock) Reset(t time.Time) {
	c.start = t
	c.cur = t
	c.primed = true
}

// Start returns the instant the clock was last reset to
func (c *Clock) Start() time.Time {
	c.prime()
	return c.start
}

// Current returns the last handed out timestamp without moving the cursor
func (c *Clock) Current() time.Time {
	c.prime()
	return c.cur
}

// Next advances the cursor by one second
func (c *Clock) Next() time.Time {
	return c.Tick(false)
}

// Prev moves the cursor back by one second
func (c *Clock) Prev() time.Time {
	return c.Tick(true)
}

// Tick moves the cursor one second forward, or backward if reverse is set,
// and returns the new value.
func (c *Clock) Tick(reverse bool) time.Time {
	c.prime()
	if reverse {
		c.cur = c.cur.Add(-time.Second)
	} else {
		c.cur = c.cur.Add(time.Second)
	}
	return c.cur
}
