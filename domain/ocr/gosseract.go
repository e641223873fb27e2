package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

// Item names and panel markers render in caps, so line mode constrains the
// character set to avoid l/1 and O/0 drift.
const lineWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 -'"

// Tesseract recognizes text through libtesseract. A fresh client is created
// per call so Recognize is safe from concurrent scan loops.
type Tesseract struct {
	tessdataPrefix string
	logger         *slog.Logger
}

// NewTesseract probes the installed tesseract library and returns an engine
// bound to it. An empty tessdataPrefix uses the system default.
func NewTesseract(tessdataPrefix string, logger *slog.Logger) (*Tesseract, error) {
	client := gosseract.NewClient()
	defer client.Close()
	version := client.Version()
	if version == "" {
		return nil, fmt.Errorf("tesseract library not available")
	}
	if logger != nil {
		logger.Debug("tesseract initialized", slog.String("version", version))
	}
	return &Tesseract{tessdataPrefix: tessdataPrefix, logger: logger}, nil
}

// Recognize runs OCR over the prepared image and reports the cleaned text
// with the mean word confidence.
func (t *Tesseract) Recognize(img image.Image, mode Mode) (Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			return Result{}, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}

	switch mode {
	case ModeLine:
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
			return Result{}, fmt.Errorf("set page seg mode: %w", err)
		}
		if err := client.SetVariable("tessedit_char_whitelist", lineWhitelist); err != nil {
			return Result{}, fmt.Errorf("set whitelist: %w", err)
		}
	case ModeBlock:
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
			return Result{}, fmt.Errorf("set page seg mode: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("encode capture: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}

	raw, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize: %w", err)
	}

	res := Result{
		Text:       CleanText(raw),
		Confidence: t.meanConfidence(client),
		Raw:        raw,
	}
	if res.Text == "" {
		return res, ErrNoText
	}
	if t.logger != nil {
		t.logger.Debug("recognized text",
			slog.String("text", res.Text),
			slog.Float64("confidence", res.Confidence),
		)
	}
	return res, nil
}

// meanConfidence averages word-level confidences into [0,1]. Zero when the
// recognizer reports no words.
func (t *Tesseract) meanConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
	}
	return sum / float64(len(boxes)) / 100.0
}
