// Package actions is the named-action dispatch table behind menus, header
// buttons, accelerators and remote activation.
package actions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Application action names.
const (
	PreviousSong = "previous-song"
	NextSong     = "next-song"
	TogglePlay   = "toggle-play"
	About        = "about"
	Quit         = "quit"
)

// AppScope prefixes application-wide actions in detailed names ("app.quit").
const AppScope = "app"

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrDuplicate     = errors.New("action already registered")
)

// Handler performs the side effect of an action.
type Handler func()

// Action binds a name to its handler.
type Action struct {
	Name    string
	Handler Handler
}

// Registry maps action names to handlers.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds actions. Either all of them are added or none is.
func (r *Registry) Register(actions ...Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		if a.Name == "" || strings.ContainsAny(a.Name, ". ") {
			return fmt.Errorf("invalid action name %q", a.Name)
		}
		if a.Handler == nil {
			return fmt.Errorf("action %q has no handler", a.Name)
		}
		if _, ok := r.actions[a.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, a.Name)
		}
		if _, ok := seen[a.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	for _, a := range actions {
		r.actions[a.Name] = a
	}
	return nil
}

// Lookup returns the action registered under name.
func (r *Registry) Lookup(name string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// Activate runs the handler for name. The handler runs without the
// registry lock held.
func (r *Registry) Activate(name string) error {
	a, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	a.Handler()
	return nil
}

// Names returns the registered action names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseDetailed splits a detailed action name such as "app.toggle-play"
// into its scope and name. Undetailed names have an empty scope.
func ParseDetailed(detailed string) (scope, name string) {
	if i := strings.IndexByte(detailed, '.'); i >= 0 {
		return detailed[:i], detailed[i+1:]
	}
	return "", detailed
}

// AppName resolves a detailed name that must refer to an application action.
// Bare names are accepted as application actions.
func AppName(detailed string) (string, error) {
	scope, name := ParseDetailed(detailed)
	if scope != "" && scope != AppScope {
		return "", fmt.Errorf("action %q: unsupported scope %q", detailed, scope)
	}
	if name == "" {
		return "", fmt.Errorf("action %q: empty name", detailed)
	}
	return name, nil
}
