/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"strings"
	"testing"

	"shapekit/internal/vector"
)

var solidStyle = Style{Color: ColorBlack, Size: SizeSmall, Dash: DashSolid}

func TestIndicator_PlainRectInsetByStrokeWidth(t *testing.T) {
	ind := IndicatorPath("r", solidStyle, vector.Size{W: 10, H: 10})
	if ind.Kind != IndicatorRect {
		t.Fatalf("expected rect indicator, got %v", ind.Kind)
	}
	if ind.Rect != vector.R(2, 2, 6, 6) || ind.Radius != 1 {
		t.Fatalf("unexpected indicator rect: %+v r=%v", ind.Rect, ind.Radius)
	}
	want := `<rect x="2" y="2" rx="1" ry="1" width="6" height="6"/>`
	if got := ind.SVG(); got != want {
		t.Fatalf("unexpected svg:\n got %s\nwant %s", got, want)
	}
}

func TestIndicator_FlooredAtOne(t *testing.T) {
	st := solidStyle
	st.Size = SizeLarge
	ind := IndicatorPath("r", st, vector.Size{W: 3, H: 12})
	if ind.Rect.W != 1 || ind.Rect.H != 2 {
		t.Fatalf("unexpected indicator size: %+v", ind.Rect)
	}
}

func TestIndicator_SeedStableAcrossSizes(t *testing.T) {
	a := IndicatorPath("shape-1", DefaultStyle, vector.Size{W: 10, H: 10})
	b := IndicatorPath("shape-1", DefaultStyle, vector.Size{W: 640, H: 25})
	if a.Kind != IndicatorOutline || b.Kind != IndicatorOutline {
		t.Fatalf("hand-drawn style should produce a path")
	}
	if a.Seed != b.Seed || a.Seed != WobbleSeed("shape-1") {
		t.Fatalf("seed depends on size: %d vs %d", a.Seed, b.Seed)
	}
	if IndicatorPath("shape-2", DefaultStyle, vector.Size{W: 10, H: 10}).Seed == a.Seed {
		t.Fatalf("different ids should have different seeds")
	}
	if a.Path.Empty() || a.Path.Cmds[len(a.Path.Cmds)-1].Op != vector.Close {
		t.Fatalf("expected a closed path")
	}
	if !strings.HasPrefix(a.SVG(), `<path d="M`) {
		t.Fatalf("unexpected svg: %s", a.SVG())
	}
}

func TestWobble_Deterministic(t *testing.T) {
	w1, w2 := NewWobble("abc"), NewWobble("abc")
	if w1 != w2 {
		t.Fatalf("wobble not reproducible")
	}
	if w1.StartSide < 0 || w1.StartSide > 4 {
		t.Fatalf("start side out of range: %d", w1.StartSide)
	}
	for _, o := range w1.Offsets {
		if o.X < -0.375 || o.X >= 0.375 || o.Y < -0.375 || o.Y >= 0.375 {
			t.Fatalf("offset out of range: %+v", o)
		}
	}
	rng := NewWobbleRNG(42)
	for i := 0; i < 100; i++ {
		if v := rng.Next(); v < -0.5 || v >= 0.5 {
			t.Fatalf("rng value out of range: %v", v)
		}
	}
}

func TestDrawPoints_DeformsWithSize(t *testing.T) {
	small, s1 := DrawPoints("w", DefaultStyle, vector.Size{W: 100, H: 50})
	again, _ := DrawPoints("w", DefaultStyle, vector.Size{W: 100, H: 50})
	big, s2 := DrawPoints("w", DefaultStyle, vector.Size{W: 128, H: 100})
	if s1 != s2 {
		t.Fatalf("seed changed with size")
	}
	// 8 points per side, 4 sides plus the wrapped first side, trimmed.
	if len(small) != 34 || len(again) != 34 {
		t.Fatalf("unexpected point count: %d", len(small))
	}
	for i := range small {
		if small[i] != again[i] {
			t.Fatalf("draw points not reproducible at %d", i)
		}
	}
	if len(big) != len(small) {
		t.Fatalf("sides up to 143 units keep 8 points: %d vs %d", len(big), len(small))
	}
	for _, p := range big {
		if p.X < -2 || p.X > 130 || p.Y < -2 || p.Y > 102 {
			t.Fatalf("point outside the box: %+v", p)
		}
	}
}
