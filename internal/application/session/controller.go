package session

// Controller owns a State and applies events to it one at a time. It is not
// safe for concurrent use; the host event loop serializes calls.
type Controller struct {
	state State
}

// NewController returns a controller for an empty session.
func NewController(snoozeWeeks int) *Controller {
	return new(Controller{state: NewState(snoozeWeeks)})
}

// Dispatch applies ev and returns the intents the host must run.
func (c *Controller) Dispatch(ev Event) []Intent {
	next, intents := Reduce(c.state, ev)
	c.state = next
	return intents
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns the render-ready view of the current state.
func (c *Controller) Snapshot() Snapshot {
	return c.state.Snapshot()
}
