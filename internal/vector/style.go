/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Styles and paint definitions.

import "fmt"

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Hex parses "#rrggbb" or "#rrggbbaa". Invalid input yields Black and an error.
func Hex(s string) (Color, error) {
	var c Color
	c.A = 255
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return Black, fmt.Errorf("parse color %q: %w", s, err)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return Black, fmt.Errorf("parse color %q: %w", s, err)
		}
	default:
		return Black, fmt.Errorf("parse color %q: unsupported length", s)
	}
	return c, nil
}

// MustHex is Hex for package-level color tables.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the color as #rrggbb, ignoring alpha.
func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

type Fill struct {
	Color   Color
	Rule    FillRule
	Enabled bool
}

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

type Stroke struct {
	Color    Color
	Width    float32
	Cap      LineCap
	Join     LineJoin
	MiterLim float32
	Enabled  bool
	// Dash holds alternating dash and gap lengths; empty means solid.
	Dash       []float32
	DashOffset float32
}
