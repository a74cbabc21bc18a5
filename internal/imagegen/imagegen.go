// Package imagegen turns moodboard prompts into images on disk.
package imagegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/apierr"
	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
)

// Generator renders one prompt to encoded image bytes.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// httpDoer abstracts the HTTP client for testing.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxImageSize bounds a downloaded or returned image (50MB).
const maxImageSize = 50 << 20

var (
	nonWord   = regexp.MustCompile(`[^\w\s-]`)
	separator = regexp.MustCompile(`[\s_-]+`)
)

// FileName returns the cache file name for a prompt label, e.g.
// "aqua_voyager_deep_currents.png".
func FileName(djName, label string) string {
	l := strings.ToLower(label)
	l = nonWord.ReplaceAllString(l, "")
	l = separator.ReplaceAllString(l, "_")
	return brand.Slug(djName) + "_" + l + ".png"
}

// shouldRetry retries transient API failures and transport errors. A
// classified client error or a cancellation is final.
func shouldRetry(err error) bool {
	if apierr.IsRetryable(err) {
		return true
	}
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, apierr.ErrAuthFailed),
		errors.Is(err, apierr.ErrQuotaExceeded),
		errors.Is(err, apierr.ErrBadRequest),
		errors.Is(err, ErrTooLarge):
		return false
	}
	return true
}

// retryConfig returns apierr.ImageRetry with retries logged at warn level.
func retryConfig(log *zap.Logger, service string) apierr.RetryConfig {
	cfg := apierr.ImageRetry
	cfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		log.Warn("image request failed, retrying",
			zap.String("service", service),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	}
	return cfg
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// toPNG re-encodes non-PNG image data as PNG.
func toPNG(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, pngSignature) {
		return data, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v: %w", err, apierr.ErrBadResponse)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Failure records a prompt whose image could not be generated.
type Failure struct {
	Label string
	Err   error
}

// Result summarizes a Run.
type Result struct {
	Generated int
	Cached    int
	Failed    []Failure
}

// Run generates an image for every prompt, one at a time, into dir. A prompt
// whose file already exists is not regenerated. ImagePath is set on every
// prompt that has an image afterwards. Failures do not stop the run; when any
// occurred the returned error wraps ErrIncomplete and names the labels.
func Run(ctx context.Context, gen Generator, prompts *brand.ImagePrompts, djName, dir string, log *zap.Logger) (Result, error) {
	var res Result
	total := len(prompts.Prompts)

	for i := range prompts.Prompts {
		p := &prompts.Prompts[i]
		path := filepath.Join(dir, FileName(djName, p.Label))
		log := log.With(zap.String("label", p.Label), zap.String("progress", fmt.Sprintf("%d/%d", i+1, total)))

		if _, err := os.Stat(path); err == nil {
			log.Info("image already exists", zap.String("path", path))
			p.ImagePath = path
			res.Cached++
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		log.Info("generating image")
		data, err := gen.Generate(ctx, p.Prompt)
		if err == nil {
			data, err = toPNG(data)
		}
		if err == nil {
			// #nosec G306 -- user-owned output image
			err = os.WriteFile(path, data, 0644)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return res, err
			}
			log.Error("image generation failed", zap.Error(err))
			res.Failed = append(res.Failed, Failure{Label: p.Label, Err: err})
			continue
		}

		log.Info("image saved", zap.String("path", path))
		p.ImagePath = path
		res.Generated++
	}

	if len(res.Failed) > 0 {
		labels := make([]string, len(res.Failed))
		for i, f := range res.Failed {
			labels[i] = f.Label
		}
		return res, fmt.Errorf("%d of %d images failed (%s): %w",
			len(res.Failed), total, strings.Join(labels, ", "), ErrIncomplete)
	}
	return res, nil
}
