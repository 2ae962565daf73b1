package recognizer

import (
	"context"
	"runtime"
)

// Point is a single polygon vertex in image pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// RawLine is one detected text region as emitted by the engine: a
// quadrilateral of four points (vertex order is not guaranteed) paired with
// the recognized text and a confidence in [0, 1].
type RawLine struct {
	Points     [4]Point
	Text       string
	Confidence float64
}

// RawResult is the per-image recognition output, one RawLine per detected
// text line in the engine's reading order.
type RawResult struct {
	Lines []RawLine
}

// Recognizer is the opaque OCR capability. Implementations own model loading,
// language selection and engine-specific tuning; callers only see the raw
// line records.
type Recognizer interface {
	// Recognize runs OCR on the image at the given path. The language must be
	// the engine's own identifier (see the lang package for aliasing).
	Recognize(ctx context.Context, imagePath, language string) (*RawResult, error)
	Close() error
}

// Config holds configuration for the default Tesseract-backed engine.
type Config struct {
	DataDir      string // tessdata directory override; empty uses the engine default
	NumThreads   int    // OpenMP thread cap; 0 means all cores
	DPI          int    // resolution hint for layout heuristics; 0 means unknown
	MaxDimension int    // downscale inputs whose longest side exceeds this; 0 disables
	Quiet        bool   // suppress engine debug output
}

// DefaultConfig returns the default engine configuration: all CPU cores,
// debug output suppressed.
func DefaultConfig() Config {
	return Config{
		NumThreads: runtime.NumCPU(),
		Quiet:      true,
	}
}
