// Package bridge sends fire-and-forget script calls into the embedded page.
//
// The page is expected to expose a global _debug_player object with
// play(), pause(), prev(), next() and an isPlaying flag. Nothing here waits
// for the page: results are discarded and failures only reach the log.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scripts evaluated against the loaded document.
const (
	ScriptPrevious   = "_debug_player.prev()"
	ScriptNext       = "_debug_player.next()"
	ScriptTogglePlay = "_debug_player.isPlaying ? _debug_player.pause() : _debug_player.play()"
)

// Result is the outcome of one script evaluation.
type Result struct {
	Value string
	Err   error
}

// Evaluator runs script in a page and calls done once it completes. done may
// run before or after EvalJS returns.
type Evaluator interface {
	EvalJS(script string, done func(Result))
}

// Bridge issues script requests and logs their completions.
type Bridge struct {
	log   zerolog.Logger
	newID func() string
}

// New creates a bridge logging to log.
func New(log zerolog.Logger) *Bridge {
	return &Bridge{
		log:   log.With().Str("component", "bridge").Logger(),
		newID: uuid.NewString,
	}
}

// Run sends script to view and returns the request id without waiting.
func (b *Bridge) Run(view Evaluator, script string) string {
	id := b.newID()
	b.log.Debug().Str("request", id).Str("script", script).Msg("script requested")

	view.EvalJS(script, func(res Result) {
		if res.Err != nil {
			b.log.Warn().Err(res.Err).Str("request", id).Str("script", script).Msg("script failed")
			return
		}
		b.log.Debug().Str("request", id).Msg("script completed")
	})
	return id
}

// NavigateScript returns a script that replaces the current document with url.
func NavigateScript(url string) string {
	quoted, _ := json.Marshal(url)
	return fmt.Sprintf("window.location.replace(%s)", quoted)
}

// CatchScript wraps script so that a page-side exception is reported on the
// page's console instead of being lost. For toolkits that cannot return
// evaluation errors this is the only trace a failed call leaves.
func CatchScript(script string) string {
	return fmt.Sprintf("try { %s } catch (e) { console.warn(\"groover: script failed:\", e) }", script)
}
