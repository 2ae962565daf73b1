// Package document converts raw recognizer output into the normalized JSON
// result document that is the tool's sole externally visible artifact.
package document

import (
	"encoding/json"
	"io"
	"math"

	"github.com/matthijsbreemans/ocr/internal/recognizer"
)

// BlockTypeText is the block type for recognized text regions. The engine
// does not classify block types, so every block carries this constant.
const BlockTypeText = "text"

// BoundingBox is the axis-aligned rectangle enclosing a detected region's
// polygon. Values are rounded to 2 decimal places; width and height are
// never negative.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextBlock is one normalized text region.
type TextBlock struct {
	Text       string      `json:"text"`
	BBox       BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
	BlockType  string      `json:"blockType"`
}

// ResultDocument is the single JSON object printed on stdout. It is
// constructed once per invocation and serialized immediately.
type ResultDocument struct {
	Success   bool        `json:"success"`
	Blocks    []TextBlock `json:"blocks"`
	Text      string      `json:"text"`
	PageCount int         `json:"pageCount"`
	Error     string      `json:"error,omitempty"`
}

// FromRaw normalizes a raw recognition result. A nil or empty result yields a
// success document with no blocks and pageCount 1. Block order follows the
// recognizer's output order; text is the newline-joined block text.
func FromRaw(raw *recognizer.RawResult) *ResultDocument {
	doc := &ResultDocument{
		Success:   true,
		Blocks:    []TextBlock{},
		PageCount: 1,
	}
	if raw == nil || len(raw.Lines) == 0 {
		return doc
	}

	text := make([]byte, 0, 64)
	for i, line := range raw.Lines {
		doc.Blocks = append(doc.Blocks, TextBlock{
			Text:       line.Text,
			BBox:       boundingBox(line.Points),
			Confidence: round(clamp01(line.Confidence), 4),
			BlockType:  BlockTypeText,
		})
		if i > 0 {
			text = append(text, '\n')
		}
		text = append(text, line.Text...)
	}
	doc.Text = string(text)
	return doc
}

// Failure converts any error raised during recognition (image unreadable,
// engine init, model load, OCR execution) into a terminal failure document.
func Failure(err error) *ResultDocument {
	msg := "recognition failed"
	if err != nil {
		msg = err.Error()
	}
	return &ResultDocument{
		Success:   false,
		Blocks:    []TextBlock{},
		Text:      "",
		PageCount: 0,
		Error:     msg,
	}
}

// Encode writes the document as pretty-printed JSON with 2-space indentation.
// HTML escaping is disabled so multi-byte characters are emitted literally.
func (d *ResultDocument) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// boundingBox computes the axis-aligned hull of a quadrilateral. Vertex order
// is arbitrary, so min/max over all four points is used.
func boundingBox(pts [4]recognizer.Point) BoundingBox {
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return BoundingBox{
		X:      round(minX, 2),
		Y:      round(minY, 2),
		Width:  round(maxX-minX, 2),
		Height: round(maxY-minY, 2),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
