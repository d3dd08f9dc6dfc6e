/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"errors"

	"shapekit/internal/vector"
)

// ErrDegenerateBounds reports a target box with NaN or infinite values.
var ErrDegenerateBounds = errors.New("degenerate bounds")

// CheckBounds returns ErrDegenerateBounds when b has non-finite values.
// Transforms clamp such input anyway; callers use this to report it.
func CheckBounds(b vector.Bounds) error {
	if !b.Finite() {
		return ErrDegenerateBounds
	}
	return nil
}

type boundsEntry struct {
	gen      uint64
	point    vector.Pt
	size     vector.Size
	rotation float32
	local    vector.Bounds // (0,0)..(W,H)
	bounds   vector.Bounds
}

// BoundsCache memoizes shape bounds by id. An entry is reused only while the
// shape's generation is unchanged and its point, size and rotation match.
// BoundsCache is not safe for concurrent use.
type BoundsCache struct {
	entries map[string]boundsEntry
	gens    map[string]uint64

	Hits, Misses int
}

func NewBoundsCache() *BoundsCache {
	return &BoundsCache{entries: map[string]boundsEntry{}, gens: map[string]uint64{}}
}

// Invalidate bumps the generation of one shape so its next lookup recomputes.
func (c *BoundsCache) Invalidate(id string) {
	if c == nil {
		return
	}
	c.init()
	c.gens[id]++
}

// Generation returns the current generation of id.
func (c *BoundsCache) Generation(id string) uint64 {
	if c == nil {
		return 0
	}
	return c.gens[id]
}

// Delete drops the entry and generation of id.
func (c *BoundsCache) Delete(id string) {
	if c == nil {
		return
	}
	delete(c.entries, id)
	delete(c.gens, id)
}

// Len is the number of cached entries.
func (c *BoundsCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *BoundsCache) init() {
	if c.entries == nil {
		c.entries = map[string]boundsEntry{}
	}
	if c.gens == nil {
		c.gens = map[string]uint64{}
	}
}

// GetBounds returns the axis-aligned box of s.Point..s.Point+s.Size. Rotation
// is not applied. A nil cache computes without memoizing.
func GetBounds(s Shape, cache *BoundsCache) vector.Bounds {
	if cache == nil {
		return localBounds(s.Size).Translate(s.Point)
	}
	cache.init()
	gen := cache.gens[s.ID]
	if e, ok := cache.entries[s.ID]; ok && e.gen == gen && e.point == s.Point && e.size == s.Size && e.rotation == s.Rotation {
		cache.Hits++
		return e.bounds
	}
	cache.Misses++
	e := boundsEntry{gen: gen, point: s.Point, size: s.Size, rotation: s.Rotation}
	if old, ok := cache.entries[s.ID]; ok && old.size == s.Size {
		e.local = old.local
	} else {
		e.local = localBounds(s.Size)
	}
	e.bounds = e.local.Translate(s.Point)
	cache.entries[s.ID] = e
	return e.bounds
}

func localBounds(sz vector.Size) vector.Bounds {
	return vector.BoundsFromRect(vector.R(0, 0, sz.W, sz.H))
}
