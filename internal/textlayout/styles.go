/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// TextStyle is a label font preset. SizePt of the preset is the size for the
// "small" size class; callers scale it for larger classes.

type TextStyle struct {
	Name    string
	Font    FontSpec
	Leading float32 // extra px added to line height
}

var builtinStyles = map[string]TextStyle{
	"script": {Name: "script", Font: FontSpec{Family: "Caveat Brush", SizePt: 28, Weight: 400}},
	"sans":   {Name: "sans", Font: FontSpec{Family: "Source Sans Pro", SizePt: 28, Weight: 400}},
	"serif":  {Name: "serif", Font: FontSpec{Family: "Crimson Pro", SizePt: 28, Weight: 400}},
	"mono":   {Name: "mono", Font: FontSpec{Family: "Source Code Pro", SizePt: 28, Weight: 400}},
}

// GetStyle returns a builtin style preset by name. The second return value is false if
// the style is not found.
func GetStyle(name string) (TextStyle, bool) { s, ok := builtinStyles[name]; return s, ok }

// ListStyles lists the names of the builtin styles in stable order.
func ListStyles() []string {
	return []string{"script", "sans", "serif", "mono"}
}
