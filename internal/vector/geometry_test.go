/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
	back := m.Invert().Apply(p)
	if math.Abs(float64(back.X-1)) > 1e-5 || math.Abs(float64(back.Y-1)) > 1e-5 {
		t.Fatalf("inverse did not round-trip: %+v", back)
	}
}

func TestBoundsFromCorners_Normalizes(t *testing.T) {
	b := BoundsFromCorners(Pt{10, 40}, Pt{-2, 5})
	if b.MinX != -2 || b.MinY != 5 || b.MaxX != 10 || b.MaxY != 40 {
		t.Fatalf("unexpected corners: %+v", b)
	}
	if b.Width != 12 || b.Height != 35 {
		t.Fatalf("unexpected extent: %+v", b)
	}
	if r := b.Rect(); r != R(-2, 5, 12, 35) {
		t.Fatalf("unexpected rect: %+v", r)
	}
}

func TestBounds_TranslateExpandCenter(t *testing.T) {
	b := BoundsFromRect(R(0, 0, 10, 20)).Translate(Pt{5, 5})
	if b.MinX != 5 || b.MaxY != 25 || b.Width != 10 {
		t.Fatalf("unexpected translate: %+v", b)
	}
	if c := b.Center(); c != (Pt{10, 15}) {
		t.Fatalf("unexpected center: %+v", c)
	}
	e := b.Expand(BoundsFromRect(R(-5, 0, 1, 1)))
	if e.MinX != -5 || e.MinY != 0 || e.MaxX != 15 || e.MaxY != 25 {
		t.Fatalf("unexpected expand: %+v", e)
	}
}

func TestBounds_Finite(t *testing.T) {
	if !BoundsFromRect(R(0, 0, 1, 1)).Finite() {
		t.Fatalf("expected finite bounds")
	}
	nan := float32(math.NaN())
	if (Bounds{MinX: nan}).Finite() {
		t.Fatalf("NaN must not be finite")
	}
	inf := float32(math.Inf(1))
	if (Bounds{Width: inf}).Finite() {
		t.Fatalf("Inf must not be finite")
	}
}

func TestApplyBounds_Rotation(t *testing.T) {
	m := RotateAround(float32(math.Pi/2), Pt{5, 5})
	b := m.ApplyBounds(BoundsFromRect(R(0, 0, 10, 10)))
	if math.Abs(float64(b.Width-10)) > 1e-4 || math.Abs(float64(b.Height-10)) > 1e-4 {
		t.Fatalf("square rotated about its center should keep its box: %+v", b)
	}
}

func TestPointsBetween_Endpoints(t *testing.T) {
	pts := PointsBetween(Pt{0, 0}, Pt{10, 0}, 8)
	if len(pts) != 8 {
		t.Fatalf("expected 8 points, got %d", len(pts))
	}
	if pts[0] != (Pt{0, 0}) || math.Abs(float64(pts[7].X-10)) > 1e-5 {
		t.Fatalf("endpoints not preserved: %+v .. %+v", pts[0], pts[7])
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].X < pts[i-1].X {
			t.Fatalf("points must be monotonic: %+v", pts)
		}
	}
}

func TestGeometry_Union_MinMax_Rotate_FloatRound(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(5, -5, 5, 10)
	u := a.Union(b)
	if u.X != 0 || u.Y != -5 || u.W != 10 || u.H != 15 {
		t.Fatalf("unexpected union: %+v", u)
	}
	if m := a.Max(); m.X != 10 || m.Y != 10 {
		t.Fatalf("max wrong: %+v", m)
	}

	// Rotate unit vector (1,0) by 180 degrees should go to (-1,0)
	m := Rotate(float32(math.Pi))
	p := m.Apply(Pt{1, 0})
	if math.Abs(float64(p.X-(-1))) > 1e-5 || math.Abs(float64(p.Y-0)) > 1e-5 {
		t.Fatalf("unexpected rotate result: %+v", p)
	}

	if FloatRound(1.23456, 2) != 1.23 {
		t.Fatalf("float round fail")
	}
}

func TestHexColor(t *testing.T) {
	c, err := Hex("#1d1d1d")
	if err != nil {
		t.Fatalf("hex: %v", err)
	}
	if c != (Color{0x1d, 0x1d, 0x1d, 255}) {
		t.Fatalf("unexpected color: %+v", c)
	}
	if c.String() != "#1d1d1d" {
		t.Fatalf("unexpected string: %s", c.String())
	}
	if _, err := Hex("red"); err == nil {
		t.Fatalf("expected error for non-hex input")
	}
}
