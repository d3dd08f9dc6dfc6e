/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package undo keeps the committed edits of a page so they can be undone
// and redone.
package undo

import (
	"sync"
	"time"

	"shapekit/internal/shape"
)

// Edit is one committed change: the affected shapes before and after it.
// Before and After hold the same ids in the same order.
// TS is when the edit was committed.
type Edit struct {
	Label  string
	Before []shape.Shape
	After  []shape.Shape
	TS     time.Time
	// Merge lets the edit fold into the previous one (see Config.MinInterval).
	Merge bool
}

// IDs returns the ids of the shapes the edit touched.
func (e Edit) IDs() []string {
	ids := make([]string, len(e.After))
	for i, s := range e.After {
		ids[i] = s.ID
	}
	return ids
}

// Config controls depth caps and coalescing behavior.
type Config struct {
	// MaxDepth limits the number of undoable edits kept (0 means 100).
	MaxDepth int
	// MinInterval coalesces a Merge edit into the previous edit when both
	// have the same label and shapes and were committed within the
	// interval: the earlier Before is kept, the later After wins.
	MinInterval time.Duration
}

// History provides an in-memory undo/redo stack of edits.
// It is safe for concurrent use.
type History struct {
	cfg  Config
	mu   sync.Mutex
	undo []Edit
	redo []Edit
}

func NewHistory(cfg Config) *History {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 100
	}
	return &History{cfg: cfg}
}

// Push records an edit and clears the redo stack. Edits whose Before and
// After are identical are dropped.
func (h *History) Push(e Edit) {
	if unchanged(e) {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redo = nil
	if n := len(h.undo); n > 0 && e.Merge && h.cfg.MinInterval > 0 {
		last := h.undo[n-1]
		if last.Label == e.Label && sameIDs(last, e) && e.TS.Sub(last.TS) < h.cfg.MinInterval {
			// Coalesce: keep the original starting point
			e.Before = last.Before
			if unchanged(e) {
				h.undo = h.undo[:n-1]
				return
			}
			h.undo[n-1] = e
			return
		}
	}
	h.undo = append(h.undo, e)
	if len(h.undo) > h.cfg.MaxDepth {
		// drop the oldest extras
		h.undo = append([]Edit{}, h.undo[len(h.undo)-h.cfg.MaxDepth:]...)
	}
}

// Undo pops the latest edit and moves it to the redo stack.
func (h *History) Undo() (Edit, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undo) == 0 {
		return Edit{}, false
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)
	return e, true
}

// Redo pops from redo and pushes back to undo.
func (h *History) Redo() (Edit, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redo) == 0 {
		return Edit{}, false
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)
	return e, true
}

// Forget drops every edit touching id, e.g. after the shape was removed.
func (h *History) Forget(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = without(h.undo, id)
	h.redo = without(h.redo, id)
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
}

// Len returns the depth of both stacks.
func (h *History) Len() (undo, redo int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo), len(h.redo)
}

func unchanged(e Edit) bool {
	if len(e.Before) != len(e.After) {
		return false
	}
	for i := range e.Before {
		if e.Before[i] != e.After[i] {
			return false
		}
	}
	return true
}

func sameIDs(a, b Edit) bool {
	if len(a.After) != len(b.After) {
		return false
	}
	for i := range a.After {
		if a.After[i].ID != b.After[i].ID {
			return false
		}
	}
	return true
}

func without(stack []Edit, id string) []Edit {
	out := stack[:0]
	for _, e := range stack {
		keep := true
		for _, s := range e.After {
			if s.ID == id {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}
