package recognizer

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matthijsbreemans/ocr/internal/utils"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/text/unicode/norm"
)

// TesseractEngine implements Recognizer using the gosseract client. Tesseract
// runs CPU-only; model data (traineddata files) is resolved by the engine
// itself from the configured tessdata directory.
type TesseractEngine struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed recognizer. The OpenMP
// thread cap must be in the environment before libtesseract starts its pool,
// so it is applied here rather than per call.
func NewTesseractEngine(cfg Config) *TesseractEngine {
	if cfg.NumThreads > 0 {
		_ = os.Setenv("OMP_NUM_THREADS", strconv.Itoa(cfg.NumThreads))
	}
	return &TesseractEngine{cfg: cfg, clientFactory: gosseract.NewClient}
}

// Close releases engine resources. The gosseract client is per-call, so there
// is nothing to release here.
func (e *TesseractEngine) Close() error { return nil }

// Recognize runs OCR on the image at the given path and returns one RawLine
// per detected text line in the engine's reading order.
func (e *TesseractEngine) Recognize(ctx context.Context, imagePath, language string) (*RawResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img, meta, err := utils.LoadImage(imagePath)
	if err != nil {
		return nil, err
	}

	// Oversized inputs are scaled down before recognition; detected boxes are
	// projected back to original image coordinates below.
	scaled, factor := utils.ScaleToFit(img, e.cfg.MaxDimension)
	data, err := utils.EncodePNG(scaled)
	if err != nil {
		return nil, fmt.Errorf("encode %s for recognition: %w", meta.Path, err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := e.configureClient(c, language); err != nil {
		return nil, err
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", meta.Path, err)
	}

	res := &RawResult{Lines: make([]RawLine, 0, len(boxes))}
	for _, b := range boxes {
		text := strings.TrimSpace(norm.NFC.String(b.Word))
		if text == "" {
			continue
		}
		res.Lines = append(res.Lines, lineFromBox(
			float64(b.Box.Min.X)/factor,
			float64(b.Box.Min.Y)/factor,
			float64(b.Box.Max.X)/factor,
			float64(b.Box.Max.Y)/factor,
			text,
			b.Confidence/100.0,
		))
	}
	return res, nil
}

func (e *TesseractEngine) configureClient(c *gosseract.Client, language string) error {
	if e.cfg.DataDir != "" {
		if err := c.SetTessdataPrefix(e.cfg.DataDir); err != nil {
			return fmt.Errorf("set tessdata dir: %w", err)
		}
	}
	if e.cfg.Quiet {
		if err := c.SetVariable(gosseract.DEBUG_FILE, os.DevNull); err != nil {
			return fmt.Errorf("suppress engine output: %w", err)
		}
	}
	if language != "" {
		if err := c.SetLanguage(language); err != nil {
			return fmt.Errorf("set language %q: %w", language, err)
		}
	}
	// Automatic segmentation with orientation and script detection, the
	// engine-side equivalent of angle classification.
	if err := c.SetPageSegMode(gosseract.PSM_AUTO_OSD); err != nil {
		return fmt.Errorf("set page segmentation mode: %w", err)
	}
	if e.cfg.DPI > 0 {
		if err := c.SetVariable(gosseract.USER_DEFINED_DPI, strconv.Itoa(e.cfg.DPI)); err != nil {
			return fmt.Errorf("set dpi: %w", err)
		}
	}
	return nil
}

// lineFromBox builds a RawLine from an axis-aligned rectangle, using its
// corners as the quadrilateral. Confidence is clamped to [0, 1].
func lineFromBox(x0, y0, x1, y1 float64, text string, confidence float64) RawLine {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return RawLine{
		Points: [4]Point{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
		},
		Text:       text,
		Confidence: confidence,
	}
}
