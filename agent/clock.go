package agent

import (
	"time"
)

//go:generate mockgen -destination=clockmocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Clock
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() *RealClock { return &RealClock{} }

func (c *RealClock) Now() time.Time { return time.Now() }

// elapsed never reports a negative duration, even if the clock steps back.
func elapsed(c Clock, since time.Time) time.Duration {
	d := c.Now().Sub(since)
	if d < 0 {
		return 0
	}
	return d
}
