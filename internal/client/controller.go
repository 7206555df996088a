package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrMutationInFlight is returned when a mutation starts while another
	// one on the same controller has not finished.
	ErrMutationInFlight = errors.New("another change is still in progress")
	// ErrDeleteNotConfirmed is returned when a delete executes without a
	// preceding RequestDelete for the same record.
	ErrDeleteNotConfirmed = errors.New("delete requires confirmation")
)

// notificationTTL is how long a transient notification stays visible.
const notificationTTL = 3 * time.Second

// ResourceOps binds a ListController to one resource's endpoints.
// MarkRead is optional; only the message inbox has it.
type ResourceOps[T any] struct {
	List     func(ctx context.Context) ([]T, error)
	Create   func(ctx context.Context, draft T) (T, error)
	Update   func(ctx context.Context, id string, draft T) (T, error)
	Delete   func(ctx context.Context, id string) error
	MarkRead func(ctx context.Context, id string) (T, error)
	// ID extracts the record identifier.
	ID func(T) string
}

// Notification is a transient success or error message.
type Notification struct {
	Text    string
	IsError bool
	expires time.Time
}

// ListController manages one resource collection the way the admin views
// do: create and update refetch the whole list so server-derived fields
// come back, delete splices locally after the server confirms, and
// mark-read flips the local flag without a refetch.
type ListController[T any] struct {
	mu            sync.Mutex
	ops           ResourceOps[T]
	items         []T
	loadErr       error
	loaded        bool
	pendingDelete string
	inFlight      bool
	note          *Notification
	now           func() time.Time
}

// NewListController creates a controller for the given resource ops.
func NewListController[T any](ops ResourceOps[T]) *ListController[T] {
	return &ListController[T]{ops: ops, now: time.Now}
}

// Items returns a copy of the current collection.
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// LoadErr reports the error from the most recent failed Load, or nil.
func (c *ListController[T]) LoadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Notification returns the current transient notification, or nil once it
// has auto-dismissed.
func (c *ListController[T]) Notification() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.note == nil || c.now().After(c.note.expires) {
		c.note = nil
		return nil
	}
	note := *c.note
	return &note
}

func (c *ListController[T]) notify(text string, isErr bool) {
	c.note = &Notification{Text: text, IsError: isErr, expires: c.now().Add(notificationTTL)}
}

// Load fetches the collection. On failure the previous collection is kept
// and the error is recorded.
func (c *ListController[T]) Load(ctx context.Context) error {
	items, err := c.ops.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.loadErr = err
		return err
	}
	c.items = items
	c.loaded = true
	c.loadErr = nil
	return nil
}

// beginMutation acquires the in-flight flag, rejecting concurrent mutations.
func (c *ListController[T]) beginMutation() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrMutationInFlight
	}
	c.inFlight = true
	return nil
}

func (c *ListController[T]) endMutation() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// Create sends the draft and, on success, reloads the collection so the
// server-assigned id and derived fields come back.
func (c *ListController[T]) Create(ctx context.Context, draft T) error {
	if err := c.beginMutation(); err != nil {
		return err
	}
	defer c.endMutation()

	if _, err := c.ops.Create(ctx, draft); err != nil {
		c.mu.Lock()
		c.notify(err.Error(), true)
		c.mu.Unlock()
		return err
	}

	if err := c.Load(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.notify("created", false)
	c.mu.Unlock()
	return nil
}

// Update sends the draft for an existing record and reloads on success.
func (c *ListController[T]) Update(ctx context.Context, id string, draft T) error {
	if err := c.beginMutation(); err != nil {
		return err
	}
	defer c.endMutation()

	if _, err := c.ops.Update(ctx, id, draft); err != nil {
		c.mu.Lock()
		c.notify(err.Error(), true)
		c.mu.Unlock()
		return err
	}

	if err := c.Load(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.notify("updated", false)
	c.mu.Unlock()
	return nil
}

// RequestDelete arms deletion of the record. Nothing is removed and no
// request is sent until ConfirmDelete.
func (c *ListController[T]) RequestDelete(id string) {
	c.mu.Lock()
	c.pendingDelete = id
	c.mu.Unlock()
}

// CancelDelete disarms a pending deletion.
func (c *ListController[T]) CancelDelete() {
	c.mu.Lock()
	c.pendingDelete = ""
	c.mu.Unlock()
}

// PendingDelete returns the armed record id, or "".
func (c *ListController[T]) PendingDelete() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingDelete
}

// ConfirmDelete executes the armed deletion and splices the record out of
// the local collection once the server confirms. A delete that was never
// armed is refused without touching the server.
func (c *ListController[T]) ConfirmDelete(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.pendingDelete != id {
		c.mu.Unlock()
		return ErrDeleteNotConfirmed
	}
	c.pendingDelete = ""
	c.mu.Unlock()

	if err := c.beginMutation(); err != nil {
		return err
	}
	defer c.endMutation()

	if err := c.ops.Delete(ctx, id); err != nil {
		c.mu.Lock()
		c.notify(err.Error(), true)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if c.ops.ID(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.notify("deleted", false)
	c.mu.Unlock()
	return nil
}

// MarkRead flips the record's read state locally after the server
// confirms, with no collection refetch.
func (c *ListController[T]) MarkRead(ctx context.Context, id string) error {
	if c.ops.MarkRead == nil {
		return errors.New("resource does not support mark-read")
	}
	if err := c.beginMutation(); err != nil {
		return err
	}
	defer c.endMutation()

	updated, err := c.ops.MarkRead(ctx, id)
	if err != nil {
		c.mu.Lock()
		c.notify(err.Error(), true)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	for i, item := range c.items {
		if c.ops.ID(item) == id {
			c.items[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return nil
}
