package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/zombor/workout-csv/internal/scanning"
)

// pageSegSingleColumn treats the screenshot as one column of text of
// variable sizes, which keeps exercise lines in reading order.
const pageSegSingleColumn = gosseract.PSM_SINGLE_COLUMN

// Engine implements scanning.Recognizer with a local Tesseract install
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract-backed recognizer. Languages default to English.
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Engine{languages: languages, clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs OCR on a grayscale, upscaled copy of the screenshot
func (e *Engine) Recognize(ctx context.Context, imageData []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", scanning.Fail(e.Name(), err)
	}

	pngData, err := scanning.PrepareImage(imageData, contentType)
	if err != nil {
		return "", scanning.Fail(e.Name(), err)
	}
	pngData, err = scanning.PreprocessForOCR(pngData)
	if err != nil {
		return "", scanning.Fail(e.Name(), err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(e.languages...); err != nil {
		return "", scanning.Fail(e.Name(), fmt.Errorf("set languages: %w", err))
	}
	if err := c.SetPageSegMode(pageSegSingleColumn); err != nil {
		return "", scanning.Fail(e.Name(), fmt.Errorf("set page segmentation: %w", err))
	}
	if err := c.SetImageFromBytes(pngData); err != nil {
		return "", scanning.Fail(e.Name(), fmt.Errorf("set image: %w", err))
	}

	text, err := c.Text()
	if err != nil {
		return "", scanning.Fail(e.Name(), fmt.Errorf("recognize text: %w", err))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", scanning.Fail(e.Name(), fmt.Errorf("no text recognized"))
	}
	return text, nil
}

// Close is a no-op; a client is created per call
func (e *Engine) Close() error {
	return nil
}
