package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Status is the lifecycle state of a search session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// DefaultDebounce is how long keystroke input must pause before a search is
// dispatched.
const DefaultDebounce = 700 * time.Millisecond

// Snapshot is a read-only view of the coordinator's session state.
type Snapshot struct {
	Status     Status
	Results    []MatchRecord
	Err        string
	Generation uint64
}

// Coordinator owns one search session: the current query text and filters,
// the debounce timer, and the in-flight request. Query text changes are
// debounced; filter changes execute immediately. Responses carry the
// generation they were dispatched with and are discarded when a newer
// dispatch has superseded them, so results always reflect the latest input
// regardless of arrival order.
//
// All methods are safe for concurrent use. Nothing outside the coordinator
// mutates its session state.
type Coordinator struct {
	executor Executor
	scopeID  string
	debounce time.Duration
	logger   *slog.Logger
	observer func(Snapshot)

	mu         sync.Mutex
	timer      *time.Timer
	cancel     context.CancelFunc
	text       string
	filters    FilterSet
	generation uint64
	status     Status
	results    []MatchRecord
	errMsg     string
	closed     bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithObserver registers a callback invoked (outside the coordinator's lock)
// after every state transition.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Coordinator) { c.observer = fn }
}

// WithScope limits all searches dispatched by this coordinator to one scope.
func WithScope(scopeID string) Option {
	return func(c *Coordinator) { c.scopeID = scopeID }
}

// NewCoordinator creates a coordinator dispatching to executor.
func NewCoordinator(executor Executor, logger *slog.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		executor: executor,
		debounce: DefaultDebounce,
		logger:   logger,
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetQueryText updates the pending free-text input. When both the text and
// the active filters are empty the session resets to Idle immediately;
// otherwise the debounce timer restarts and only the last call within the
// window dispatches a search.
func (c *Coordinator) SetQueryText(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.text = text
	c.stopTimerLocked()
	if strings.TrimSpace(text) == "" && c.filters.IsZero() {
		c.resetLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return
	}
	c.timer = time.AfterFunc(c.debounce, c.debounceFired)
	c.mu.Unlock()
}

// SetFilters replaces the active filter set and executes immediately; filter
// changes are discrete UI actions, not keystrokes, so no debounce applies.
func (c *Coordinator) SetFilters(filters FilterSet) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.filters = filters
	c.stopTimerLocked()
	if strings.TrimSpace(c.text) == "" && filters.IsZero() {
		c.resetLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return
	}
	c.executeLocked(c.buildQueryLocked())
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Clear cancels any pending debounce, invalidates the in-flight request and
// resets the session to Idle with empty text, filters and results.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	c.text = ""
	c.filters = FilterSet{}
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Close tears the session down: the debounce timer is stopped and any
// in-flight response will be discarded. The coordinator ignores all calls
// afterwards.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// State returns a snapshot of the current session state.
func (c *Coordinator) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// debounceFired runs when the debounce window elapses without new input.
func (c *Coordinator) debounceFired() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.executeLocked(c.buildQueryLocked())
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// buildQueryLocked parses the current text and merges the widget filters on
// top, so typed filter tokens and filter controls compose identically.
func (c *Coordinator) buildQueryLocked() StructuredQuery {
	q := Parse(c.text)
	q.Filters = q.Filters.Merge(c.filters)
	return q
}

// executeLocked dispatches a search tagged with a fresh generation. The
// previous in-flight call is canceled best-effort; its response would be
// discarded by the generation guard regardless.
func (c *Coordinator) executeLocked(q StructuredQuery) {
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.status = StatusLoading
	c.errMsg = ""
	go c.run(ctx, gen, q)
}

func (c *Coordinator) run(ctx context.Context, gen uint64, q StructuredQuery) {
	results, err := c.executor.SearchEntries(ctx, q, c.scopeID)

	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("discarding stale search response", "generation", gen)
		return
	}
	if err != nil {
		c.status = StatusError
		c.errMsg = fmt.Sprintf("search failed: %v", err)
		c.results = nil
		c.logger.Warn("search execution failed", "generation", gen, "error", err)
	} else {
		c.status = StatusSuccess
		c.results = results
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// resetLocked invalidates any in-flight request and returns to Idle.
func (c *Coordinator) resetLocked() {
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.status = StatusIdle
	c.results = nil
	c.errMsg = ""
}

func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		Status:     c.status,
		Results:    slices.Clone(c.results),
		Err:        c.errMsg,
		Generation: c.generation,
	}
}

func (c *Coordinator) notify(snap Snapshot) {
	if c.observer != nil {
		c.observer(snap)
	}
}
