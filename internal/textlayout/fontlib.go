/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Label fonts loaded from the user's configuration. Lookups never fail:
// an unknown family falls through to the provider's Fallback.

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

type libFont struct {
	weight int
	italic bool
	font   *opentype.Font
}

type faceKey struct {
	font *opentype.Font
	size float32
	dpi  float64
}

// FontLibrary holds parsed OpenType fonts grouped by family, plus the faces
// built from them so far.
type FontLibrary struct {
	mu       sync.Mutex
	families map[string][]libFont
	faces    map[faceKey]font.Face
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{families: map[string][]libFont{}, faces: map[faceKey]font.Face{}}
}

// LoadTTF reads a font file and registers it under family.
func (fl *FontLibrary) LoadTTF(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	if err := fl.LoadBytes(family, weight, italic, data); err != nil {
		return fmt.Errorf("font %s: %w", path, err)
	}
	return nil
}

// LoadBytes registers a font already in memory. A second font with the same
// family, weight and style replaces the first.
func (fl *FontLibrary) LoadBytes(family string, weight int, italic bool, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.families == nil {
		fl.families = map[string][]libFont{}
	}
	list := fl.families[family]
	for i, lf := range list {
		if lf.weight == weight && lf.italic == italic {
			list[i].font = f
			return nil
		}
	}
	fl.families[family] = append(list, libFont{weight: weight, italic: italic, font: f})
	return nil
}

// Len reports the number of loaded fonts.
func (fl *FontLibrary) Len() int {
	if fl == nil {
		return 0
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	n := 0
	for _, list := range fl.families {
		n += len(list)
	}
	return n
}

// closest picks the font of spec's family with the same style and the
// nearest weight; a style mismatch costs more than any weight difference.
// Ties go to the font loaded first.
func closest(list []libFont, spec FontSpec) *opentype.Font {
	var best *opentype.Font
	bestCost := 0
	for _, lf := range list {
		cost := abs(lf.weight - spec.Weight)
		if lf.italic != spec.Italic {
			cost += 1000
		}
		if best == nil || cost < bestCost {
			best, bestCost = lf.font, cost
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (fl *FontLibrary) face(spec FontSpec, dpi float64) (font.Face, bool) {
	if fl == nil {
		return nil, false
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	f := closest(fl.families[spec.Family], spec)
	if f == nil {
		return nil, false
	}
	k := faceKey{font: f, size: spec.SizePt, dpi: dpi}
	if face, ok := fl.faces[k]; ok {
		return face, true
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(spec.SizePt), DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, false
	}
	if fl.faces == nil {
		fl.faces = map[faceKey]font.Face{}
	}
	fl.faces[k] = face
	return face, true
}

// OTProvider resolves label fonts from Lib and hands anything it does not
// hold to Fallback (BasicProvider when nil).
type OTProvider struct {
	Lib      *FontLibrary
	DPI      float64 // 72 when zero
	Fallback Provider
}

func (p OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	if spec.SizePt <= 0 {
		spec.SizePt = 12
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}
	if face, ok := p.Lib.face(spec, dpi); ok {
		m := face.Metrics()
		asc, desc := m.Ascent.Round(), m.Descent.Round()
		return face, Metrics{
			Ascent:  float32(asc),
			Descent: float32(desc),
			LineGap: float32(m.Height.Round() - asc - desc),
			Scale:   1,
		}
	}
	if p.Fallback == nil {
		return BasicProvider{}.Resolve(spec)
	}
	return p.Fallback.Resolve(spec)
}
