/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

// Hand-drawn outline. All randomness comes from a PCG generator seeded by the
// shape id, so the same id always yields the same corner offsets and start
// side. Resizing moves the corners but keeps that pattern.

import (
	"hash/fnv"
	"math"
	"math/rand/v2"

	"shapekit/internal/vector"
)

// WobbleSeed is the seed of the hand-drawn outline of the shape with this id.
func WobbleSeed(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

// WobbleRNG yields values in [-0.5, 0.5) from a seeded PCG stream.
type WobbleRNG struct {
	r *rand.Rand
}

func NewWobbleRNG(seed uint64) *WobbleRNG {
	return &WobbleRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns the next value in [-0.5, 0.5).
func (g *WobbleRNG) Next() float32 { return float32(g.r.Float64() - 0.5) }

// Wobble is the id-dependent part of a hand-drawn outline.
type Wobble struct {
	Seed      uint64
	Offsets   [4]vector.Pt // corner offsets in units of the stroke width
	StartSide int          // 0..4; 4 starts on the same side as 0
}

// NewWobble draws the corner offsets and start side for id.
func NewWobble(id string) Wobble {
	w := Wobble{Seed: WobbleSeed(id)}
	rng := NewWobbleRNG(w.Seed)
	for i := range w.Offsets {
		w.Offsets[i] = vector.Pt{X: rng.Next() * 0.75, Y: rng.Next() * 0.75}
	}
	w.StartSide = int(math.Round(math.Abs(float64(rng.Next() * 8))))
	return w
}

// DrawPoints returns the points of the hand-drawn outline of a rectangle
// with the given id, style and size, plus the seed they were drawn from.
// Each side is inset by the corner radii and sampled with eased spacing; the
// sequence starts on the seeded side and wraps past the first corner so the
// line does not end on a sharp angle.
func DrawPoints(id string, style Style, size vector.Size) ([]vector.Pt, uint64) {
	wb := NewWobble(id)
	sw := ResolveStyle(style, false).StrokeWidth
	w := max(0, size.W)
	h := max(0, size.H)

	off := func(i int) vector.Pt { return wb.Offsets[i].Mul(sw) }
	tl := vector.Pt{X: sw / 2, Y: sw / 2}.Add(off(0))
	tr := vector.Pt{X: w - sw/2, Y: sw / 2}.Add(off(1))
	br := vector.Pt{X: w - sw/2, Y: h - sw/2}.Add(off(2))
	bl := vector.Pt{X: sw / 2, Y: h - sw/2}.Add(off(3))

	rx := min(w/4, sw*2)
	ry := min(h/4, sw*2)
	px := max(8, int(math.Floor(float64(w/16))))
	py := max(8, int(math.Floor(float64(h/16))))

	sides := [4][]vector.Pt{
		vector.PointsBetween(tl.Add(vector.Pt{X: rx}), tr.Sub(vector.Pt{X: rx}), px),
		vector.PointsBetween(tr.Add(vector.Pt{Y: ry}), br.Sub(vector.Pt{Y: ry}), py),
		vector.PointsBetween(br.Sub(vector.Pt{X: rx}), bl.Add(vector.Pt{X: rx}), px),
		vector.PointsBetween(bl.Sub(vector.Pt{Y: ry}), tl.Add(vector.Pt{Y: ry}), py),
	}
	var all []vector.Pt
	for i := range sides {
		all = append(all, sides[(i+wb.StartSide)%4]...)
	}
	all = append(all, sides[wb.StartSide%4]...)

	n := px
	if wb.StartSide%2 != 0 {
		n = py
	}
	end := len(all) + int(math.Floor(float64(n)/-2)) + 3
	if end > len(all) {
		end = len(all)
	}
	if end < 5 {
		return nil, wb.Seed
	}
	return all[5:end], wb.Seed
}

// outlinePath is the closed smoothed path through the draw points.
func outlinePath(id string, style Style, size vector.Size) (vector.Path, uint64) {
	pts, seed := DrawPoints(id, style, size)
	return vector.SmoothPath(pts, true), seed
}
