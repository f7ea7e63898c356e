// Package listing holds the paginated table state shared by every resource page.
package listing

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

var (
	// ErrStale is returned by Load when a newer Load superseded it; its result was discarded.
	ErrStale = errors.New("list response superseded by a newer request")

	ErrNotSupported = errors.New("operation not supported on this page")
)

type (
	ListFunc[T any, F any] func(ctx context.Context, q core.PageQuery[F]) (core.Page[T], error)
	DeleteFunc             func(ctx context.Context, id int) error

	// Opener is the form a page opens for create (nil record) or edit.
	Opener[T any] interface {
		Open(record *T)
	}

	// Column describes one table column.
	Column[T any] struct {
		Title string
		Value func(T) string
	}

	Options[T any, F any] struct {
		Entity   string // singular, used in notices
		Plural   string
		PageSize int
		Filter   F
		List     ListFunc[T, F]
		Delete   DeleteFunc
		Form     Opener[T]
		Notifier core.Notifier
		// Confirmer gates deletes. A nil Confirmer confirms everything.
		Confirmer core.Confirmer
	}

	State[T any] struct {
		Items    []T
		Page     int
		PageSize int
		Total    int64
		Loading  bool
	}

	Controller[T any, F any] struct {
		opts Options[T, F]

		mu     sync.Mutex
		state  State[T]
		filter F
		seq    uint64
		cancel context.CancelFunc
	}
)

func New[T any, F any](opts Options[T, F]) *Controller[T, F] {
	if opts.PageSize <= 0 {
		opts.PageSize = core.DefaultPageSize
	}
	if opts.Plural == "" {
		opts.Plural = opts.Entity + "s"
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	return &Controller[T, F]{
		opts:   opts,
		filter: opts.Filter,
		state: State[T]{
			Items:    make([]T, 0),
			Page:     1,
			PageSize: opts.PageSize,
		},
	}
}

// Load fetches page `page` with the current filter.
// Only the most recent Load may change the state: an older in-flight request is
// cancelled and its response dropped (ErrStale).
func (c *Controller[T, F]) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state.Loading = true
	q := core.PageQuery[F]{Page: page, Limit: c.state.PageSize, Filter: c.filter}
	c.mu.Unlock()

	res, err := c.opts.List(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return ErrStale
	}
	cancel()
	c.cancel = nil
	c.state.Loading = false

	if err != nil {
		c.opts.Notifier.Error(core.UserMessage(err, "failed to load "+c.opts.Plural))
		return errors.Wrapf(err, "loading %s page %d", c.opts.Plural, page)
	}
	if res.Items == nil {
		res.Items = make([]T, 0)
	}
	c.state.Items = res.Items
	c.state.Total = res.Total
	c.state.Page = page
	return nil
}

// OnPageChange loads page k.
func (c *Controller[T, F]) OnPageChange(ctx context.Context, page int) error {
	return c.Load(ctx, page)
}

// Reload fetches the current page again.
func (c *Controller[T, F]) Reload(ctx context.Context) error {
	c.mu.Lock()
	page := c.state.Page
	c.mu.Unlock()
	return c.Load(ctx, page)
}

// OnDelete removes record id after confirmation, then reloads the same page number.
// Declining the confirmation is not an error; nothing is sent.
func (c *Controller[T, F]) OnDelete(ctx context.Context, id int) error {
	if c.opts.Delete == nil {
		return ErrNotSupported
	}
	if c.opts.Confirmer != nil {
		prompt := fmt.Sprintf("Delete %s #%d?", c.opts.Entity, id)
		if !c.opts.Confirmer.Confirm(ctx, prompt) {
			return nil
		}
	}

	if err := c.opts.Delete(ctx, id); err != nil {
		c.opts.Notifier.Error(core.UserMessage(err, "failed to delete "+c.opts.Entity))
		return errors.Wrapf(err, "deleting %s %d", c.opts.Entity, id)
	}
	c.opts.Notifier.Success(c.opts.Entity + " deleted")
	return c.Reload(ctx)
}

// OnCreateOrEdit opens the form, seeded with record when editing.
func (c *Controller[T, F]) OnCreateOrEdit(record *T) error {
	if c.opts.Form == nil {
		return ErrNotSupported
	}
	c.opts.Form.Open(record)
	return nil
}

// SetPageSize changes the page size used by the next Load.
func (c *Controller[T, F]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.state.PageSize = n
	c.mu.Unlock()
}

// SetFilter replaces the filter used by the next Load.
func (c *Controller[T, F]) SetFilter(f F) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

func (c *Controller[T, F]) Filter() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// State returns a snapshot of the page state.
func (c *Controller[T, F]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = append(make([]T, 0, len(c.state.Items)), c.state.Items...)
	return s
}

// TotalPages returns ceil(total/pageSize).
func (c *Controller[T, F]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.TotalPages(c.state.Total, c.state.PageSize)
}

// Find returns the first record of the current page matching fn.
func (c *Controller[T, F]) Find(fn func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.state.Items {
		if fn(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T, F]) Entity() string {
	return c.opts.Entity
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
