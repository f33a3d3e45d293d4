package state

// RowActions tracks in-flight row-scoped operations (confirm/cancel on a
// booking, publish on a news item). Busy state is keyed to the row, so one
// slow request disables only that row's controls.
type RowActions struct {
	active map[string]string
}

func NewRowActions() *RowActions {
	return &RowActions{active: map[string]string{}}
}

// Start marks a row busy with the named action. It refuses while the same
// row already has one in flight, so a double-press cannot fire twice.
func (r *RowActions) Start(id, action string) bool {
	if _, busy := r.active[id]; busy {
		return false
	}
	r.active[id] = action
	return true
}

func (r *RowActions) Finish(id string) {
	delete(r.active, id)
}

func (r *RowActions) Busy(id string) bool {
	_, busy := r.active[id]
	return busy
}

func (r *RowActions) Action(id string) string {
	return r.active[id]
}

func (r *RowActions) Any() bool {
	return len(r.active) > 0
}

// Clear drops every in-flight marker at once, for when the session that
// issued the requests is gone and no completion will ever arrive.
func (r *RowActions) Clear() {
	r.active = map[string]string{}
}

// Confirm holds one pending destructive action awaiting a yes/no answer.
type Confirm struct {
	key    string
	prompt string
	busy   bool
}

func (c *Confirm) Ask(key, prompt string) {
	c.key = key
	c.prompt = prompt
	c.busy = false
}

func (c *Confirm) Pending() bool { return c.key != "" }

func (c *Confirm) Key() string { return c.key }

func (c *Confirm) Prompt() string { return c.prompt }

func (c *Confirm) Busy() bool { return c.busy }

// Accept moves to the in-flight phase; false when nothing is pending or the
// request already left.
func (c *Confirm) Accept() bool {
	if c.key == "" || c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Confirm) Done() {
	c.key = ""
	c.prompt = ""
	c.busy = false
}
