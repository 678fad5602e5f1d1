package nav

import (
	"context"
	"errors"
)

// visual is the handle of an in-flight visual transition.
type visual struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (c *Coordinator) playVisual(from, to Screen) {
	if c.animator == nil {
		return
	}

	ctx, cancel := context.WithCancel(c.base)
	v := &visual{cancel: cancel, done: make(chan struct{})}
	c.visual = v

	go func() {
		defer close(v.done)
		defer cancel()
		err := c.animator.Play(ctx, from, to)
		if err != nil && !errors.Is(err, context.Canceled) {
			c.log.Warn("visual transition failed", "from", from.String(), "to", to.String(), "error", err)
		}
	}()
}

// cancelVisual stops the in-flight visual transition and waits for it.
func (c *Coordinator) cancelVisual() {
	if c.visual == nil {
		return
	}
	c.visual.cancel()
	<-c.visual.done
	c.visual = nil
}

// Settle waits for the in-flight visual transition to finish, either on its
// own or because a later event canceled it. Events are not blocked meanwhile.
func (c *Coordinator) Settle() {
	c.mu.Lock()
	v := c.visual
	c.mu.Unlock()

	if v != nil {
		<-v.done
	}
}

// Close cancels any in-flight visual transition. Events after Close still
// work but play no visuals.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelVisual()
	c.stop()
	c.animator = nil
}
