// Package client defines the port to the external prediction service.
package client

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNoFileProvided          = errors.New("no file uploaded")
	ErrUpstreamUnreachable     = errors.New("prediction service unreachable")
	ErrUpstreamInvalidResponse = errors.New("invalid response from prediction service")
)

// Result is the upstream reply as received. A 2xx relay does not imply the prediction
// succeeded; callers inspect the body's "error" and "ok" fields.
type Result struct {
	StatusCode int
	Body       []byte
}

// Predictor forwards one image to the prediction service.
type Predictor interface {
	// Predict sends content as a multipart "file" field named filename. Transport failures
	// wrap ErrUpstreamUnreachable.
	Predict(ctx context.Context, filename string, content io.Reader) (*Result, error)
	// Health probes the service's health endpoint.
	Health(ctx context.Context) error
}
