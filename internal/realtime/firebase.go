package realtime

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"shopyz-be/internal/logger"

	"go.uber.org/zap"
)

const (
	maxEventSize = 64 << 20

	defaultRetryMin = time.Second
	defaultRetryMax = 30 * time.Second
)

// Firebase talks to a Firebase Realtime Database over its REST protocol. Reads and
// writes are plain JSON requests; subscriptions use the server-sent event stream.
type Firebase struct {
	baseURL    string
	auth       string
	httpClient *http.Client
	streamer   *http.Client

	retryMin time.Duration
	retryMax time.Duration
}

// FirebaseOption customises a Firebase client.
type FirebaseOption func(*Firebase)

// WithHTTPClient replaces the client used for one-shot requests. Streams reuse its
// transport without the timeout.
func WithHTTPClient(c *http.Client) FirebaseOption {
	return func(f *Firebase) {
		f.httpClient = c
		f.streamer = &http.Client{Transport: c.Transport}
	}
}

// WithAuth sets the credential sent as the auth query parameter (an ID token or a
// legacy database secret).
func WithAuth(token string) FirebaseOption {
	return func(f *Firebase) {
		f.auth = token
	}
}

// WithStreamBackoff bounds the delay between reconnects of a dropped subscription
// stream. The delay doubles from initial up to limit and resets once a stream
// delivers.
func WithStreamBackoff(initial, limit time.Duration) FirebaseOption {
	return func(f *Firebase) {
		f.retryMin = initial
		f.retryMax = limit
	}
}

func NewFirebase(baseURL string, timeout time.Duration, opts ...FirebaseOption) *Firebase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	f := &Firebase{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		streamer:   &http.Client{},
		retryMin:   defaultRetryMin,
		retryMax:   defaultRetryMax,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.baseURL == "" {
		logger.L().Warn("firebase database url is empty")
	}
	return f
}

func (f *Firebase) endpoint(parts []string) string {
	u := f.baseURL + "/" + strings.Join(escapeAll(parts), "/") + ".json"
	if f.auth != "" {
		u += "?auth=" + url.QueryEscape(f.auth)
	}
	return u
}

func escapeAll(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = url.PathEscape(p)
	}
	return out
}

func (f *Firebase) Get(ctx context.Context, path string) (Snapshot, error) {
	parts, err := Split(path)
	if err != nil {
		return Snapshot{}, err
	}

	var value any
	if err := f.do(ctx, http.MethodGet, parts, nil, &value); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Key: lastKey(parts), Value: prune(value)}, nil
}

func (f *Firebase) Set(ctx context.Context, path string, value any) error {
	parts, err := Split(path)
	if err != nil {
		return err
	}
	return f.do(ctx, http.MethodPut, parts, value, nil)
}

func (f *Firebase) Update(ctx context.Context, path string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	parts, err := Split(path)
	if err != nil {
		return err
	}
	for rel := range values {
		if _, err := Split(rel); err != nil {
			return err
		}
	}
	return f.do(ctx, http.MethodPatch, parts, values, nil)
}

func (f *Firebase) Remove(ctx context.Context, path string) error {
	parts, err := Split(path)
	if err != nil {
		return err
	}
	return f.do(ctx, http.MethodDelete, parts, nil, nil)
}

func (f *Firebase) Push(ctx context.Context, path string, value any) (string, error) {
	parts, err := Split(path)
	if err != nil {
		return "", err
	}

	var res struct {
		Name string `json:"name"`
	}
	if err := f.do(ctx, http.MethodPost, parts, value, &res); err != nil {
		return "", err
	}
	return res.Name, nil
}

func (f *Firebase) do(ctx context.Context, method string, parts []string, body any, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "realtime"),
		zap.String("method", method),
		zap.String("path", strings.Join(parts, "/")),
	)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.endpoint(parts), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Warn("firebase request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read firebase response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ferr := statusError(resp.StatusCode, data)
		log.Warn("firebase returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.Error(ferr),
			zap.Duration("duration", time.Since(start)),
		)
		return ferr
	}

	log.Debug("firebase request done", zap.Duration("duration", time.Since(start)))

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode firebase response: %w", err)
	}
	return nil
}

func statusError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Error
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return permissionDenied(msg)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &Error{Code: "UNAVAILABLE", Message: msg, Err: ErrUnavailable}
	default:
		return &Error{Code: fmt.Sprintf("HTTP_%d", status), Message: msg}
	}
}

// streamEvent is the payload of put and patch events.
type streamEvent struct {
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

// Subscribe streams the value at path. Dropped streams are reopened with backoff, the
// way the hosted SDK reconnects; each reopened stream starts with a full put. onError
// fires for rules rejections, which end the subscription, and once for a transport
// failure that happens before any value arrived.
func (f *Firebase) Subscribe(ctx context.Context, path string, onValue func(Snapshot), onError func(error)) Unsubscribe {
	parts, err := Split(path)
	if err != nil {
		onError(err)
		return func() {}
	}

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	var once sync.Once
	stop := func() { once.Do(cancel) }

	go func() {
		defer stop()
		f.follow(streamCtx, parts, onValue, onError)
	}()

	return stop
}

func (f *Firebase) follow(ctx context.Context, parts []string, onValue func(Snapshot), onError func(error)) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "realtime"),
		zap.String("method", "Subscribe"),
		zap.String("path", strings.Join(parts, "/")),
	)

	wait := f.retryMin
	delivered, reported := false, false
	for {
		got, err := f.stream(ctx, parts, onValue)
		if ctx.Err() != nil {
			return
		}
		if got {
			delivered = true
			wait = f.retryMin
		}
		if isTerminal(err) {
			log.Error("subscription ended", zap.Error(err))
			onError(err)
			return
		}
		if !delivered && !reported {
			reported = true
			onError(err)
		}

		log.Warn("subscription stream dropped, reconnecting",
			zap.Error(err),
			zap.Duration("backoff", wait),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		wait = min(wait*2, f.retryMax)
	}
}

// isTerminal reports failures a reconnect cannot fix: rules rejections and other
// client errors except rate limiting.
func isTerminal(err error) bool {
	if IsPermissionDenied(err) || errors.Is(err, ErrInvalidPath) {
		return true
	}
	var e *Error
	if errors.As(err, &e) && strings.HasPrefix(e.Code, "HTTP_4") {
		return e.Code != fmt.Sprintf("HTTP_%d", http.StatusTooManyRequests)
	}
	return false
}

// stream follows one event stream until it ends. got reports whether any value was
// delivered from it.
func (f *Firebase) stream(ctx context.Context, parts []string, onValue func(Snapshot)) (got bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint(parts), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := f.streamer.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return false, statusError(resp.StatusCode, data)
	}

	logger.FromCtx(ctx).Debug("subscription stream opened", zap.String("path", strings.Join(parts, "/")))

	var cache any
	key := lastKey(parts)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var event string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			continue
		case !strings.HasPrefix(line, "data:"):
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		switch event {
		case "put", "patch":
			var ev streamEvent
			if err := json.Unmarshal([]byte(data), &ev); err != nil {
				return got, fmt.Errorf("malformed %s event: %w", event, err)
			}
			next, err := applyEvent(cache, event, ev)
			if err != nil {
				return got, err
			}
			cache = next
			got = true
			onValue(Snapshot{Key: key, Value: deepCopy(cache)})
		case "keep-alive":
		case "cancel":
			return got, permissionDenied(strings.Trim(data, `"`))
		case "auth_revoked":
			return got, permissionDenied("auth revoked")
		}
	}

	if err := scanner.Err(); err != nil {
		return got, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return got, fmt.Errorf("%w: stream closed by server", ErrUnavailable)
}

func applyEvent(cache any, event string, ev streamEvent) (any, error) {
	rel, err := Split(ev.Path)
	if err != nil {
		return cache, err
	}

	var data any
	if len(ev.Data) > 0 {
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return cache, fmt.Errorf("malformed event data: %w", err)
		}
	}

	if event == "put" {
		return assign(cache, rel, prune(data)), nil
	}

	fields, ok := data.(map[string]any)
	if !ok {
		return cache, nil
	}
	for k, v := range fields {
		sub, err := Split(k)
		if err != nil {
			return cache, err
		}
		cache = assign(cache, append(append([]string{}, rel...), sub...), prune(v))
	}
	return cache, nil
}
