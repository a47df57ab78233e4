package engine

import (
	"fmt"
	"sync"
	"time"

	"desktopview/internal/logger"
	"desktopview/pkg/desktop"
)

// TitleSetter is the part of a window alerts are shown on.
type TitleSetter interface {
	SetTitle(title string)
}

// Alerts logs notifications and shows the latest one in the window title
// until it expires. Alert is safe from any goroutine; Update must run on
// the window's thread.
type Alerts struct {
	log     *logger.Logger
	title   string
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	message string
	expires time.Time
	dirty   bool
}

// NewAlerts creates an alert sink around the base window title.
func NewAlerts(log *logger.Logger, title string, timeout time.Duration) *Alerts {
	if log == nil {
		log = logger.Discard()
	}
	return &Alerts{
		log:     log,
		title:   title,
		timeout: timeout,
		now:     time.Now,
	}
}

// Alert implements desktop.Alerter.
func (a *Alerts) Alert(level desktop.AlertLevel, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	switch level {
	case desktop.AlertWarning:
		a.log.Warnf("Alert: %s", msg)
	case desktop.AlertError:
		a.log.Errorf("Alert: %s", msg)
	default:
		a.log.Infof("Alert: %s", msg)
	}

	a.mu.Lock()
	a.message = msg
	a.expires = a.now().Add(a.timeout)
	a.dirty = true
	a.mu.Unlock()
}

// Current returns the visible message, or "" once it has expired.
func (a *Alerts) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.message == "" || !a.now().Before(a.expires) {
		return ""
	}
	return a.message
}

// Update refreshes w's title when an alert appears or expires.
func (a *Alerts) Update(w TitleSetter) {
	a.mu.Lock()
	if a.message != "" && !a.now().Before(a.expires) {
		a.message = ""
		a.dirty = true
	}
	if !a.dirty {
		a.mu.Unlock()
		return
	}
	a.dirty = false
	title := a.title
	if a.message != "" {
		title = a.title + " - " + a.message
	}
	a.mu.Unlock()

	w.SetTitle(title)
}
