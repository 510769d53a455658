// Package probe checks whether the Groove Basin server behind the page view
// is reachable. Results are diagnostics only and never gate page loading.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each check.
const DefaultTimeout = 3 * time.Second

// Report is the outcome of one probe.
type Report struct {
	URL          string
	HTTPStatus   int
	HTTPErr      error
	WebSocket    bool
	WebSocketErr error
}

// Reachable reports whether the page itself could be fetched.
func (r Report) Reachable() bool {
	return r.HTTPErr == nil && r.HTTPStatus >= 200 && r.HTTPStatus < 400
}

// Log writes the report at a level matching its outcome.
func (r Report) Log(log zerolog.Logger) {
	switch {
	case !r.Reachable():
		ev := log.Warn().Str("url", r.URL)
		if r.HTTPErr != nil {
			ev = ev.Err(r.HTTPErr)
		} else {
			ev = ev.Int("status", r.HTTPStatus)
		}
		ev.Msg("content server unreachable, transport actions will fail until it is up")
	case !r.WebSocket:
		log.Warn().Str("url", r.URL).Err(r.WebSocketErr).Msg("content server has no websocket endpoint")
	default:
		log.Info().Str("url", r.URL).Int("status", r.HTTPStatus).Msg("content server reachable")
	}
}

// Prober runs HTTP and websocket checks against a server.
type Prober struct {
	Client *http.Client
	Dialer *websocket.Dialer
}

// New creates a prober whose checks time out after timeout.
func New(timeout time.Duration) *Prober {
	return &Prober{
		Client: &http.Client{Timeout: timeout},
		Dialer: &websocket.Dialer{HandshakeTimeout: timeout},
	}
}

// Probe fetches serverURL and then opens (and closes) a websocket to the
// same origin, which is where the Groove Basin web client connects.
func (p *Prober) Probe(ctx context.Context, serverURL string) Report {
	report := Report{URL: serverURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL, nil)
	if err != nil {
		report.HTTPErr = fmt.Errorf("build request: %w", err)
		return report
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		report.HTTPErr = err
		return report
	}
	resp.Body.Close()
	report.HTTPStatus = resp.StatusCode

	wsURL, err := WebSocketURL(serverURL)
	if err != nil {
		report.WebSocketErr = err
		return report
	}
	conn, _, err := p.Dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		report.WebSocketErr = err
		return report
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	report.WebSocket = true
	return report
}

// WebSocketURL maps an http(s) URL to the ws(s) URL of the same origin.
func WebSocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
