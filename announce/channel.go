// Package announce narrates state changes to an accessible live region.
package announce

import (
	"time"

	"go.uber.org/zap"

	"wordslot/schedule"
)

// DefaultDelay is how long a message must stay pending before delivery.
const DefaultDelay = 200 * time.Millisecond

// Sink mirrors deliveries to the rendering layer.
type Sink interface {
	Live(message string)
	Status(message string)
}

type message struct {
	text    string
	visible bool
}

// Channel holds at most one pending message and delivers it once the
// debounce delay passes without a newer message.
type Channel struct {
	sched      *schedule.Scheduler
	delay      time.Duration
	sink       Sink
	log        *zap.Logger
	pending    message
	hasPending bool
	live       string
	status     string
	deliveries int
}

type Option func(*Channel)

func WithSink(s Sink) Option {
	return func(c *Channel) { c.sink = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Channel) {
		if l != nil {
			c.log = l
		}
	}
}

func New(sched *schedule.Scheduler, delay time.Duration, opts ...Option) *Channel {
	if delay <= 0 {
		delay = DefaultDelay
	}
	c := &Channel{sched: sched, delay: delay, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Announce queues text for the live region. When visible is set the text
// is also written to the persistent status line on delivery.
//
// A message identical to the pending one only rearms the timer; any other
// message replaces it.
func (c *Channel) Announce(text string, visible bool) {
	if text == "" {
		return
	}
	if c.hasPending && c.pending.text == text {
		visible = visible || c.pending.visible
		c.log.Debug("announcement coalesced", zap.String("message", text))
	}
	c.pending = message{text: text, visible: visible}
	c.hasPending = true
	c.sched.After(schedule.Announce, c.delay, c.deliver)
}

func (c *Channel) deliver() {
	if !c.hasPending {
		return
	}
	msg := c.pending
	c.pending = message{}
	c.hasPending = false

	c.live = msg.text
	c.deliveries++
	if c.sink != nil {
		c.sink.Live(msg.text)
	}
	if msg.visible {
		c.status = msg.text
		if c.sink != nil {
			c.sink.Status(msg.text)
		}
	}
	c.log.Debug("announced", zap.String("message", msg.text), zap.Bool("visible", msg.visible))
}

// Live is the current live-region text.
func (c *Channel) Live() string { return c.live }

// Status is the current persistent status text.
func (c *Channel) Status() string { return c.status }

// Pending returns the message waiting for delivery, if any.
func (c *Channel) Pending() (string, bool) {
	return c.pending.text, c.hasPending
}

// Deliveries counts live-region writes.
func (c *Channel) Deliveries() int { return c.deliveries }

func (c *Channel) Delay() time.Duration { return c.delay }
