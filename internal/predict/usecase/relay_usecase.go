package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"chess-fen/internal/predict/adapter/tempstore"
	"chess-fen/internal/predict/domain/client"
	"chess-fen/internal/shared/logger"
)

// Upload is one received file. Open may be called once.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// RelayUsecaseInterface relays an upload to the prediction service.
type RelayUsecaseInterface interface {
	Predict(ctx context.Context, upload *Upload) (*client.Result, error)
	Health(ctx context.Context) error
}

// RelayUsecase stages each upload in a temp file for the length of one upstream call.
type RelayUsecase struct {
	store     *tempstore.Store
	predictor client.Predictor
	log       logger.Logger
}

func NewRelayUsecase(store *tempstore.Store, predictor client.Predictor, log logger.Logger) *RelayUsecase {
	return &RelayUsecase{
		store:     store,
		predictor: predictor,
		log:       log.WithComponent("predict_relay"),
	}
}

// Predict forwards upload and returns the upstream reply unchanged when its body is JSON.
// The staged file is removed on every return path, panics included.
func (uc *RelayUsecase) Predict(ctx context.Context, upload *Upload) (*client.Result, error) {
	if upload == nil || upload.Open == nil {
		return nil, client.ErrNoFileProvided
	}

	src, err := upload.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	staged, err := uc.store.Save(src, upload.Filename)
	_ = src.Close()
	if err != nil {
		return nil, err
	}
	defer uc.cleanup(ctx, staged)

	content, err := staged.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to reopen upload: %w", err)
	}
	defer content.Close()

	res, err := uc.predictor.Predict(ctx, staged.OriginalName(), content)
	if err != nil {
		if errors.Is(err, client.ErrUpstreamUnreachable) {
			uc.log.WithContext(ctx).WithError(err).Warn("prediction service unreachable")
		}
		return nil, err
	}

	if !json.Valid(res.Body) {
		uc.log.WithContext(ctx).WithFields(map[string]interface{}{
			"upstream_status": res.StatusCode,
			"body_bytes":      len(res.Body),
		}).Warn("prediction service returned non-JSON body")
		return nil, client.ErrUpstreamInvalidResponse
	}

	return res, nil
}

// cleanup failures are logged and never replace the relay's own result.
func (uc *RelayUsecase) cleanup(ctx context.Context, f *tempstore.File) {
	if err := f.Remove(); err != nil {
		uc.log.WithContext(ctx).WithError(err).WithFields(map[string]interface{}{"path": f.Path()}).
			Error("failed to remove staged upload")
	}
}

func (uc *RelayUsecase) Health(ctx context.Context) error {
	return uc.predictor.Health(ctx)
}
