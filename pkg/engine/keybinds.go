package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var namedKeys = map[string]glfw.Key{
	"SPACE":     glfw.KeySpace,
	"ESCAPE":    glfw.KeyEscape,
	"ESC":       glfw.KeyEscape,
	"ENTER":     glfw.KeyEnter,
	"TAB":       glfw.KeyTab,
	"BACKSPACE": glfw.KeyBackspace,
	"INSERT":    glfw.KeyInsert,
	"DELETE":    glfw.KeyDelete,
	"HOME":      glfw.KeyHome,
	"END":       glfw.KeyEnd,
	"PAGEUP":    glfw.KeyPageUp,
	"PAGEDOWN":  glfw.KeyPageDown,
	"UP":        glfw.KeyUp,
	"DOWN":      glfw.KeyDown,
	"LEFT":      glfw.KeyLeft,
	"RIGHT":     glfw.KeyRight,
}

// ParseKey converts a key name ("N", "7", "F12", "Escape") to a GLFW key.
func ParseKey(name string) (glfw.Key, error) {
	n := strings.ToUpper(strings.TrimSpace(name))

	if len(n) == 1 {
		switch c := n[0]; {
		case c >= 'A' && c <= 'Z':
			return glfw.KeyA + glfw.Key(c-'A'), nil
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0'), nil
		}
	}

	if len(n) > 1 && n[0] == 'F' {
		if fn, err := strconv.Atoi(n[1:]); err == nil && fn >= 1 && fn <= 25 {
			return glfw.KeyF1 + glfw.Key(fn-1), nil
		}
	}

	if key, ok := namedKeys[n]; ok {
		return key, nil
	}
	return glfw.KeyUnknown, fmt.Errorf("unknown key %q", name)
}

type keybind struct {
	name        string
	description string
	fn          func()
}

// Keybinds maps keys to actions. It implements desktop.Keybinder.
type Keybinds struct {
	mu    sync.Mutex
	binds map[glfw.Key]keybind
}

// NewKeybinds creates an empty binding table.
func NewKeybinds() *Keybinds {
	return &Keybinds{binds: make(map[glfw.Key]keybind)}
}

// Bind registers fn for key. A key can only be bound once.
func (k *Keybinds) Bind(key, description string, fn func()) error {
	code, err := ParseKey(key)
	if err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("nil action for key %s", key)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if existing, ok := k.binds[code]; ok {
		return fmt.Errorf("key %s is already bound to %q", key, existing.description)
	}
	k.binds[code] = keybind{name: strings.ToUpper(strings.TrimSpace(key)), description: description, fn: fn}
	return nil
}

// Dispatch runs the action bound to key when it is pressed. Repeats and
// releases are ignored. It reports whether an action ran.
func (k *Keybinds) Dispatch(key glfw.Key, action glfw.Action) bool {
	if action != glfw.Press {
		return false
	}

	k.mu.Lock()
	b, ok := k.binds[key]
	k.mu.Unlock()

	if !ok {
		return false
	}
	b.fn()
	return true
}

// Callback adapts Dispatch to a GLFW key callback.
func (k *Keybinds) Callback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k.Dispatch(key, action)
}

// Describe lists the bindings as "KEY: description", sorted by key name.
func (k *Keybinds) Describe() []string {
	k.mu.Lock()
	defer k.mu.Unlock()

	lines := make([]string, 0, len(k.binds))
	for _, b := range k.binds {
		lines = append(lines, fmt.Sprintf("%s: %s", b.name, b.description))
	}
	sort.Strings(lines)
	return lines
}
