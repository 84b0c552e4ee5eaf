package metrics

import (
	"time"

	m "github.com/cschleiden/go-cancel/metrics"
)

type Timer struct {
	client m.Client
	start  time.Time
	name   string
	tags   m.Tags
}

func NewTimer(client m.Client, name string, tags m.Tags) *Timer {
	return &Timer{
		client: client,
		start:  time.Now(),
		name:   name,
		tags:   tags,
	}
}

// Stop the timer and emit the elapsed time as a timing metric
func (t *Timer) Stop() {
	t.client.Timing(t.name, t.tags, time.Since(t.start))
}
