// Package osatest provides a scripted osa.Runner for tests.
package osatest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tmc/xa/osa"
)

type reply struct {
	out []byte
	err error
}

// Runner records every script it is asked to run and answers from a queue
// of canned replies. With an empty queue it answers a null result.
type Runner struct {
	mu      sync.Mutex
	scripts []osa.Script
	queue   []reply

	// Handler, when set, answers scripts the queue does not cover.
	Handler func(osa.Script) ([]byte, error)
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{}
}

// Run implements osa.Runner.
func (r *Runner) Run(ctx context.Context, s osa.Script) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.scripts = append(r.scripts, s)
	if len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return next.out, next.err
	}
	h := r.Handler
	r.mu.Unlock()
	if h != nil {
		return h(s)
	}
	return []byte(`{"ok":null}`), nil
}

// Reply queues a successful result. v is encoded with encoding/json; use
// Ref and Date for specifier and date values.
func (r *Runner) Reply(v any) *Runner {
	b, err := json.Marshal(map[string]any{"ok": v})
	if err != nil {
		panic(fmt.Sprintf("osatest: encode reply: %v", err))
	}
	return r.push(reply{out: b})
}

// ReplyRaw queues raw runner output.
func (r *Runner) ReplyRaw(out string) *Runner {
	return r.push(reply{out: []byte(out)})
}

// Fail queues an error thrown inside a JXA program.
func (r *Runner) Fail(number int, message string) *Runner {
	b, _ := json.Marshal(map[string]any{"$error": map[string]any{"number": number, "message": message}})
	return r.push(reply{out: b})
}

// Err queues a transport error.
func (r *Runner) Err(err error) *Runner {
	return r.push(reply{err: err})
}

func (r *Runner) push(rep reply) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, rep)
	return r
}

// Scripts returns every script run so far.
func (r *Runner) Scripts() []osa.Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]osa.Script(nil), r.scripts...)
}

// Last returns the most recent script source, or "" if none ran.
func (r *Runner) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.scripts) == 0 {
		return ""
	}
	return r.scripts[len(r.scripts)-1].Source
}

// Count returns the number of scripts run.
func (r *Runner) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scripts)
}

// Contains reports whether any script source contains substr.
func (r *Runner) Contains(substr string) bool {
	for _, s := range r.Scripts() {
		if strings.Contains(s.Source, substr) {
			return true
		}
	}
	return false
}

// Ref encodes an object specifier the way the program prelude does.
func Ref(expr string) map[string]any {
	return map[string]any{"$ref": expr}
}

// Date encodes a date the way the program prelude does.
func Date(t time.Time) map[string]any {
	return map[string]any{"$date": t.UTC().Format("2006-01-02T15:04:05.000Z")}
}
