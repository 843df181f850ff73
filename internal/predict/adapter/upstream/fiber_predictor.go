// Package upstream talks to the prediction service over HTTP using fiber's client agent.
package upstream

import (
	"context"
	"fmt"
	"io"
	"time"

	"chess-fen/internal/predict/config"
	"chess-fen/internal/predict/domain/client"

	"github.com/gofiber/fiber/v2"
)

const (
	healthTimeout = 5 * time.Second
	// field name the prediction service expects
	upstreamField = "file"
)

// FiberPredictor implements client.Predictor. Each call is a single attempt.
type FiberPredictor struct {
	http      *fiber.Client
	url       string
	healthURL string
	timeout   time.Duration
}

func NewFiberPredictor(cfg *config.Config) *FiberPredictor {
	return &FiberPredictor{
		http:      &fiber.Client{UserAgent: "chess-fen-relay"},
		url:       cfg.UpstreamURL,
		healthURL: cfg.HealthURL(),
		timeout:   cfg.Timeout,
	}
}

func (p *FiberPredictor) Predict(ctx context.Context, filename string, content io.Reader) (*client.Result, error) {
	timeout, err := p.budget(ctx, p.timeout)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	agent := p.http.Post(p.url).
		Timeout(timeout).
		FileData(&fiber.FormFile{Fieldname: upstreamField, Name: filename, Content: data}).
		MultipartForm(nil)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", client.ErrUpstreamUnreachable, errs[0])
	}

	return &client.Result{StatusCode: code, Body: body}, nil
}

func (p *FiberPredictor) Health(ctx context.Context) error {
	timeout, err := p.budget(ctx, healthTimeout)
	if err != nil {
		return err
	}

	code, _, errs := p.http.Get(p.healthURL).Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", client.ErrUpstreamUnreachable, errs[0])
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("%w: health returned %d", client.ErrUpstreamUnreachable, code)
	}
	return nil
}

// budget shrinks limit to the context deadline; the agent itself is not context aware.
func (p *FiberPredictor) budget(ctx context.Context, limit time.Duration) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", client.ErrUpstreamUnreachable, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < limit {
			if left <= 0 {
				return 0, fmt.Errorf("%w: %v", client.ErrUpstreamUnreachable, context.DeadlineExceeded)
			}
			return left, nil
		}
	}
	return limit, nil
}
