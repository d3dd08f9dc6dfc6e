/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"testing"

	"shapekit/internal/vector"
)

func TestResolveStyle_Tables(t *testing.T) {
	cases := []struct {
		name   string
		style  Style
		dark   bool
		stroke string
		fill   string
		width  float32
	}{
		{"default light", DefaultStyle, false, "#1d1d1d", "", 2},
		{"white light", Style{Color: ColorWhite, Size: SizeMedium, IsFilled: true}, false, "#1d1d1d", "#fefefe", 3.5},
		{"black dark", Style{Color: ColorBlack, Size: SizeLarge}, true, "#cecece", "", 5},
		{"white dark", Style{Color: ColorWhite}, true, "#cecece", "", 2},
		{"black filled light", Style{Color: ColorBlack, IsFilled: true}, false, "#1d1d1d", "#d2d2d2", 2},
		{"blue light", Style{Color: ColorBlue}, false, "#1c7ed6", "", 2},
	}
	for _, tc := range cases {
		got := ResolveStyle(tc.style, tc.dark)
		if got.Stroke.String() != tc.stroke {
			t.Fatalf("%s: stroke %s, want %s", tc.name, got.Stroke, tc.stroke)
		}
		if tc.fill == "" {
			if got.Fill != vector.Transparent {
				t.Fatalf("%s: expected transparent fill, got %+v", tc.name, got.Fill)
			}
		} else if got.Fill.String() != tc.fill {
			t.Fatalf("%s: fill %s, want %s", tc.name, got.Fill, tc.fill)
		}
		if got.StrokeWidth != tc.width {
			t.Fatalf("%s: width %v, want %v", tc.name, got.StrokeWidth, tc.width)
		}
	}
}

func TestResolveStyle_ZeroValueUsesDefaults(t *testing.T) {
	if ResolveStyle(Style{}, false) != ResolveStyle(DefaultStyle, false) {
		t.Fatalf("zero style should resolve like the default style")
	}
	if ResolveStyle(Style{Color: "magenta", Size: "huge"}, false) != ResolveStyle(DefaultStyle, false) {
		t.Fatalf("unknown values should fall back to defaults")
	}
}

func TestResolveStyle_DarkStrokeIsBlendedTowardCanvas(t *testing.T) {
	light := ResolveStyle(Style{Color: ColorRed}, false).Stroke
	dark := ResolveStyle(Style{Color: ColorRed}, true).Stroke
	if light == dark {
		t.Fatalf("dark stroke should differ from light stroke")
	}
	// 0xff toward 0x34 by 10%
	if dark.R != 235 {
		t.Fatalf("unexpected dark red channel: %d", dark.R)
	}
}

func TestResolveFont(t *testing.T) {
	f := ResolveFont(Style{Size: SizeMedium, Scale: 2, Font: FontMono})
	if f.Family != "Source Code Pro" || f.SizePt != 96 {
		t.Fatalf("unexpected font: %+v", f)
	}
	f = ResolveFont(DefaultStyle)
	if f.Family != "Caveat Brush" || f.SizePt != 28 {
		t.Fatalf("unexpected default font: %+v", f)
	}
}
