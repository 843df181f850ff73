package upstream

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chess-fen/internal/predict/config"
	"chess-fen/internal/predict/domain/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPredictor(url string, timeout time.Duration) *FiberPredictor {
	return NewFiberPredictor(&config.Config{UpstreamURL: url, Timeout: timeout})
}

func TestPredict_SendsMultipartFileWithOriginalName(t *testing.T) {
	var gotName, gotBody, gotField string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName, gotBody, gotField = header.Filename, string(data), "file"

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"fen":"8/8/8/8/8/8/8/8 w - - 0 1","ok":true}`))
	}))
	defer srv.Close()

	res, err := newPredictor(srv.URL+"/predict", time.Second).
		Predict(context.Background(), "board.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"fen":"8/8/8/8/8/8/8/8 w - - 0 1","ok":true}`, string(res.Body))
	assert.Equal(t, "file", gotField)
	assert.Equal(t, "board.png", gotName)
	assert.Equal(t, "image-bytes", gotBody)
}

func TestPredict_PassesUpstreamStatusThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"no board found","ok":false}`))
	}))
	defer srv.Close()

	res, err := newPredictor(srv.URL+"/predict", time.Second).
		Predict(context.Background(), "x.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

func TestPredict_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = newPredictor("http://"+addr+"/predict", time.Second).
		Predict(context.Background(), "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, client.ErrUpstreamUnreachable)
}

func TestPredict_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := newPredictor(srv.URL+"/predict", 100*time.Millisecond).
		Predict(context.Background(), "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, client.ErrUpstreamUnreachable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPredict_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPredictor("http://127.0.0.1:1/predict", time.Second).Predict(ctx, "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, client.ErrUpstreamUnreachable)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			_, _ = w.Write([]byte(`{"ok":true}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, newPredictor(srv.URL+"/predict", time.Second).Health(context.Background()))
	assert.ErrorIs(t, newPredictor(srv.URL+"/api/predict", time.Second).Health(context.Background()), client.ErrUpstreamUnreachable)
}
