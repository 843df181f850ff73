// Package client is a Go session controller for the chess-fen relay: it tracks whether the
// caller is signed in and exposes typed calls for positions and predictions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"
)

// State is the controller's view of the session.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// User is the identity behind the current session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Game is a saved position.
type Game struct {
	ID        string    `json:"id"`
	FEN       string    `json:"fen"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Prediction is the prediction service's answer, relayed verbatim.
type Prediction struct {
	StatusCode int
	Body       json.RawMessage
}

// Controller owns a cookie-carrying HTTP client and the session state derived from it.
type Controller struct {
	baseURL    *url.URL
	httpClient *http.Client
	cookieName string
	onChange   func(State)

	mu    sync.RWMutex
	state State
	user  *User
	token string
}

type Option func(*Controller)

// WithHTTPClient replaces the default client. A client without a jar gets one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Controller) { c.httpClient = hc }
}

// WithCookieName sets the session cookie name the server uses.
func WithCookieName(name string) Option {
	return func(c *Controller) { c.cookieName = name }
}

// WithToken restores a session token saved from an earlier run.
func WithToken(token string) Option {
	return func(c *Controller) { c.token = token }
}

// OnStateChange registers a callback invoked after every state transition.
func OnStateChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func New(baseURL string, opts ...Option) (*Controller, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	c := &Controller{
		baseURL:    u,
		cookieName: "token",
		state:      StateLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// User returns the signed-in identity, or nil.
func (c *Controller) User() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Token is the current session token, for callers that persist sessions between runs.
func (c *Controller) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Init resolves the initial state by asking the server who the session belongs to.
func (c *Controller) Init(ctx context.Context) error {
	c.setState(StateLoading, nil)
	return c.refresh(ctx)
}

// Register creates the account and signs in with the same credentials.
func (c *Controller) Register(ctx context.Context, email, password string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/register", credentials(email, password), &out); err != nil {
		return "", err
	}
	if err := c.Login(ctx, email, password); err != nil {
		return out.ID, err
	}
	return out.ID, nil
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	resp, body, err := c.send(ctx, http.MethodPost, "/login", credentials(email, password))
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return c.fail(newAPIError(resp.StatusCode, body))
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == c.cookieName {
			c.mu.Lock()
			c.token = ck.Value
			c.mu.Unlock()
		}
	}
	return c.refresh(ctx)
}

// Logout ends the session locally even if the server call fails.
func (c *Controller) Logout(ctx context.Context) error {
	_, _, err := c.send(ctx, http.MethodPost, "/logout", nil)

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.setState(StateUnauthenticated, nil)
	return err
}

func (c *Controller) Games(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.doJSON(ctx, http.MethodGet, "/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Controller) SaveGame(ctx context.Context, fen, title string) (*Game, error) {
	var game Game
	req := map[string]string{"fen": fen, "title": title}
	if err := c.doJSON(ctx, http.MethodPost, "/games", req, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *Controller) DeleteGame(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/games/"+url.PathEscape(id), nil, nil)
}

// Predict uploads an image to the relay. Upstream error statuses come back as *APIError.
func (c *Controller) Predict(ctx context.Context, filename string, image io.Reader) (*Prediction, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, body, err := c.sendRaw(ctx, http.MethodPost, "/predict", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.fail(newAPIError(resp.StatusCode, body))
	}
	return &Prediction{StatusCode: resp.StatusCode, Body: json.RawMessage(body)}, nil
}

func (c *Controller) refresh(ctx context.Context) error {
	var u User
	err := c.doJSON(ctx, http.MethodGet, "/me", nil, &u)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsAuthFailure() {
			return nil
		}
		c.setState(StateUnauthenticated, nil)
		return err
	}
	c.setState(StateAuthenticated, &u)
	return nil
}

func (c *Controller) doJSON(ctx context.Context, method, path string, in, out any) error {
	resp, body, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return c.fail(newAPIError(resp.StatusCode, body))
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Controller) send(ctx context.Context, method, path string, in any) (*http.Response, []byte, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.sendRaw(ctx, method, path, body, contentType)
}

func (c *Controller) sendRaw(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	// The jar drops Secure cookies on plain http, so the token also rides as a bearer header.
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	return resp, raw, nil
}

// fail drops the session on 401/403 and passes the error through.
func (c *Controller) fail(err *APIError) error {
	if err.IsAuthFailure() {
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		c.setState(StateUnauthenticated, nil)
	}
	return err
}

func (c *Controller) setState(s State, u *User) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	c.user = u
	fn := c.onChange
	c.mu.Unlock()

	if changed && fn != nil {
		fn(s)
	}
}

func credentials(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}
