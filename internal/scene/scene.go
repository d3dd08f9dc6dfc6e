/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene reads and writes the JSON scene documents the CLI works on.
// Documents are validated against an embedded JSON schema before decoding.
package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"shapekit/internal/shape"
	"shapekit/internal/vector"
)

// Version is the document version this package reads and writes.
const Version = 1

//go:embed scene.schema.json
var schemaJSON []byte

var schema *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("scene: compile schema: %v", err))
	}
	schema = s
}

// ErrInvalid is wrapped by Validate when a document breaks the schema.
var ErrInvalid = errors.New("invalid scene")

// Document is the on-disk form of a scene.
type Document struct {
	Version int         `json:"version"`
	Name    string      `json:"name,omitempty"`
	Shapes  []ShapeJSON `json:"shapes"`
}

type StyleJSON struct {
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Dash      string  `json:"dash,omitempty"`
	IsFilled  bool    `json:"isFilled,omitempty"`
	Scale     float32 `json:"scale,omitempty"`
	Font      string  `json:"font,omitempty"`
	TextAlign string  `json:"textAlign,omitempty"`
}

type ShapeJSON struct {
	ID                  string      `json:"id,omitempty"`
	Type                string      `json:"type"`
	Name                string      `json:"name,omitempty"`
	ParentID            string      `json:"parentId,omitempty"`
	ChildIndex          float32     `json:"childIndex,omitempty"`
	Point               *[2]float32 `json:"point,omitempty"`
	Size                *[2]float32 `json:"size,omitempty"`
	Rotation            float32     `json:"rotation,omitempty"`
	Style               *StyleJSON  `json:"style,omitempty"`
	Text                string      `json:"text,omitempty"`
	IsAspectRatioLocked bool        `json:"isAspectRatioLocked,omitempty"`
}

// Validate checks raw JSON against the scene schema.
func Validate(data []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	return nil
}

// Decode validates and parses a scene document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := Validate(data); err != nil {
		return doc, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return doc, fmt.Errorf("parse scene: %w", err)
	}
	return doc, nil
}

// Encode renders doc as indented JSON with a trailing newline.
func Encode(doc Document) ([]byte, error) {
	if doc.Version == 0 {
		doc.Version = Version
	}
	if doc.Shapes == nil {
		doc.Shapes = []ShapeJSON{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return append(data, '\n'), nil
}

// ToShape converts a document entry into a shape. Missing fields are left
// at their zero value so the registry fills them from the type's defaults.
func (sj ShapeJSON) ToShape() shape.Shape {
	s := shape.Shape{
		ID:                  sj.ID,
		Type:                shape.Type(sj.Type),
		Name:                sj.Name,
		ParentID:            sj.ParentID,
		ChildIndex:          sj.ChildIndex,
		Rotation:            sj.Rotation,
		Text:                sj.Text,
		IsAspectRatioLocked: sj.IsAspectRatioLocked,
	}
	if sj.Point != nil {
		s.Point = vector.Pt{X: sj.Point[0], Y: sj.Point[1]}
	}
	if sj.Size != nil {
		s.Size = vector.Size{W: sj.Size[0], H: sj.Size[1]}
	}
	if st := sj.Style; st != nil {
		s.Style = shape.Style{
			Color:     shape.ColorStyle(st.Color),
			Size:      shape.SizeStyle(st.Size),
			Dash:      shape.DashStyle(st.Dash),
			IsFilled:  st.IsFilled,
			Scale:     st.Scale,
			Font:      shape.FontStyle(st.Font),
			TextAlign: shape.AlignStyle(st.TextAlign),
		}
	}
	return s
}

// FromShape converts a shape into its document entry.
func FromShape(s shape.Shape) ShapeJSON {
	return ShapeJSON{
		ID:         s.ID,
		Type:       string(s.Type),
		Name:       s.Name,
		ParentID:   s.ParentID,
		ChildIndex: s.ChildIndex,
		Point:      &[2]float32{s.Point.X, s.Point.Y},
		Size:       &[2]float32{s.Size.W, s.Size.H},
		Rotation:   s.Rotation,
		Style: &StyleJSON{
			Color:     string(s.Style.Color),
			Size:      string(s.Style.Size),
			Dash:      string(s.Style.Dash),
			IsFilled:  s.Style.IsFilled,
			Scale:     s.Style.Scale,
			Font:      string(s.Style.Font),
			TextAlign: string(s.Style.TextAlign),
		},
		Text:                s.Text,
		IsAspectRatioLocked: s.IsAspectRatioLocked,
	}
}

// ToShapes converts all entries.
func (d Document) ToShapes() []shape.Shape {
	out := make([]shape.Shape, len(d.Shapes))
	for i, sj := range d.Shapes {
		out[i] = sj.ToShape()
	}
	return out
}

// FromShapes builds a document from shapes, in the given order.
func FromShapes(name string, shapes []shape.Shape) Document {
	doc := Document{Version: Version, Name: name, Shapes: make([]ShapeJSON, len(shapes))}
	for i, s := range shapes {
		doc.Shapes[i] = FromShape(s)
	}
	return doc
}
