/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls exporting one scene into several formats.
//
// Path semantics:
//   - If OutDir is empty, the preset name is used as the output directory.
//   - Each format goes into its own subfolder: <OutDir>/<format>/<BaseName>.<format>.
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset        PresetName
	Formats       []string // allowed: svg, png, pdf; empty means preset defaults
	BaseName      string   // file name without extension; empty means "scene"
	ScaleOverride float32  // when > 0 overrides the preset's raster scale
	IncludeGuides *bool    // when set, overrides preset's default for guides
	OutDir        string
	Options       Options // fonts and guide color; Scale and Guides come from the preset
}

// BatchExport writes sc in every format of the preset and returns the files
// written, in format order.
func BatchExport(sc Scene, opt BatchOptions) ([]string, error) {
	names := opt.Formats
	if len(names) == 0 {
		names = presetDefaultFormats(opt.Preset)
	}
	formats := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}

	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	base := opt.BaseName
	if base == "" {
		base = "scene"
	}

	eo := opt.Options
	eo.Scale = presetScale(opt.Preset)
	if opt.ScaleOverride > 0 {
		eo.Scale = opt.ScaleOverride
	}
	eo.Guides = presetIncludeGuides(opt.Preset)
	if opt.IncludeGuides != nil {
		eo.Guides = *opt.IncludeGuides
	}

	var written []string
	for _, f := range formats {
		out := filepath.Join(baseOut, string(f), base+"."+string(f))
		if err := WriteFile(out, f, sc, eo); err != nil {
			return written, fmt.Errorf("%s: %w", f, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg"}
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"svg"}
	}
}

// presetScale is pixels per scene unit for raster output; print assumes one
// unit per point at 300 dpi.
func presetScale(p PresetName) float32 {
	switch p {
	case PresetWeb:
		return 2
	case PresetPrint:
		return 300.0 / 72.0
	default:
		return 1
	}
}

func presetIncludeGuides(p PresetName) bool {
	switch p {
	case PresetWeb:
		return false
	case PresetPrint:
		return true
	default:
		return false
	}
}
