package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanup_RunsLIFOAndContinuesOnError(t *testing.T) {
	logger, logs := testLogger(t)
	c := NewCleanup(logger)

	var order []string
	c.Add("first", func() error { order = append(order, "first"); return nil })
	c.Add("second", func() error { order = append(order, "second"); return errors.New("boom") })
	c.Add("third", func() error { order = append(order, "third"); return nil })

	c.Run()

	assert.Equal(t, []string{"third", "second", "first"}, order)
	assert.Contains(t, logs.String(), "Performing cleanup operations...")
	assert.Contains(t, logs.String(), "Cleanup step second failed: boom")
	assert.Contains(t, logs.String(), "Cleanup completed")
}

func TestCleanup_RunForgetsFuncs(t *testing.T) {
	logger, _ := testLogger(t)
	c := NewCleanup(logger)
	calls := 0
	c.Add("once", func() error { calls++; return nil })

	c.Run()
	c.Run()

	assert.Equal(t, 1, calls)
}
