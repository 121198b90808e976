package script

import (
	"fmt"
	"log/slog"
)

type releaseFunc struct {
	name string
	fn   func() error
}

// Cleanup collects release functions and runs them in reverse order of
// registration. Failures are logged and do not stop later functions.
type Cleanup struct {
	logger *slog.Logger
	funcs  []releaseFunc
}

// NewCleanup creates an empty Cleanup that reports to logger.
func NewCleanup(logger *slog.Logger) *Cleanup {
	return &Cleanup{logger: logger}
}

// Add registers fn under name.
func (c *Cleanup) Add(name string, fn func() error) {
	c.funcs = append(c.funcs, releaseFunc{name: name, fn: fn})
}

// Run executes every registered function, last added first, and forgets them.
func (c *Cleanup) Run() {
	c.logger.Info("Performing cleanup operations...")

	for i := len(c.funcs) - 1; i >= 0; i-- {
		f := c.funcs[i]
		if err := f.fn(); err != nil {
			c.logger.Warn(fmt.Sprintf("Cleanup step %s failed: %v", f.name, err))
			continue
		}
		c.logger.Debug("Cleanup step done", slog.String("step", f.name))
	}
	c.funcs = nil

	c.logger.Info("Cleanup completed")
}
