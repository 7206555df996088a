package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// fakeMessageBackend simulates the server side of the message inbox.
type fakeMessageBackend struct {
	mu          sync.Mutex
	messages    []model.Message
	seq         int
	listCalls   atomic.Int32
	deleteCalls atomic.Int32
}

func (b *fakeMessageBackend) add(subject string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	id := fmt.Sprintf("message-%03d", b.seq)
	b.messages = append(b.messages, model.Message{ID: id, Subject: subject})
	return id
}

func (b *fakeMessageBackend) ops() ResourceOps[model.Message] {
	return ResourceOps[model.Message]{
		List: func(context.Context) ([]model.Message, error) {
			b.listCalls.Add(1)
			b.mu.Lock()
			defer b.mu.Unlock()
			out := make([]model.Message, len(b.messages))
			copy(out, b.messages)
			return out, nil
		},
		Delete: func(_ context.Context, id string) error {
			b.deleteCalls.Add(1)
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, m := range b.messages {
				if m.ID == id {
					b.messages = append(b.messages[:i], b.messages[i+1:]...)
					return nil
				}
			}
			return errors.New("not found")
		},
		MarkRead: func(_ context.Context, id string) (model.Message, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, m := range b.messages {
				if m.ID == id {
					b.messages[i].Read = true
					return b.messages[i], nil
				}
			}
			return model.Message{}, errors.New("not found")
		},
		ID: func(m model.Message) string { return m.ID },
	}
}

func TestListController_DeleteRequiresConfirmation(t *testing.T) {
	backend := &fakeMessageBackend{}
	id := backend.add("hello")
	ctrl := NewListController(backend.ops())
	require.NoError(t, ctrl.Load(context.Background()))

	// An unarmed delete never reaches the server or the collection.
	err := ctrl.ConfirmDelete(context.Background(), id)
	assert.ErrorIs(t, err, ErrDeleteNotConfirmed)
	assert.Equal(t, int32(0), backend.deleteCalls.Load())
	assert.Len(t, ctrl.Items(), 1)

	// Arming a different record does not allow deleting this one.
	ctrl.RequestDelete("message-999")
	err = ctrl.ConfirmDelete(context.Background(), id)
	assert.ErrorIs(t, err, ErrDeleteNotConfirmed)
	assert.Len(t, ctrl.Items(), 1)
}

func TestListController_ConfirmedDeleteSplicesLocally(t *testing.T) {
	backend := &fakeMessageBackend{}
	keep := backend.add("keep")
	remove := backend.add("remove")
	ctrl := NewListController(backend.ops())
	require.NoError(t, ctrl.Load(context.Background()))
	listCallsAfterLoad := backend.listCalls.Load()

	ctrl.RequestDelete(remove)
	require.NoError(t, ctrl.ConfirmDelete(context.Background(), remove))

	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, keep, items[0].ID)
	// Delete splices locally, it never refetches.
	assert.Equal(t, listCallsAfterLoad, backend.listCalls.Load())
	assert.Equal(t, "", ctrl.PendingDelete())
}

func TestListController_CancelDeleteDisarms(t *testing.T) {
	backend := &fakeMessageBackend{}
	id := backend.add("hello")
	ctrl := NewListController(backend.ops())
	require.NoError(t, ctrl.Load(context.Background()))

	ctrl.RequestDelete(id)
	ctrl.CancelDelete()
	err := ctrl.ConfirmDelete(context.Background(), id)
	assert.ErrorIs(t, err, ErrDeleteNotConfirmed)
	assert.Len(t, ctrl.Items(), 1)
}

func TestListController_MarkReadFlipsLocallyWithoutRefetch(t *testing.T) {
	backend := &fakeMessageBackend{}
	backend.add("first")
	target := backend.add("second")
	ctrl := NewListController(backend.ops())
	require.NoError(t, ctrl.Load(context.Background()))
	listCallsAfterLoad := backend.listCalls.Load()

	unread := func() int {
		n := 0
		for _, m := range ctrl.Items() {
			if !m.Read {
				n++
			}
		}
		return n
	}
	require.Equal(t, 2, unread())

	require.NoError(t, ctrl.MarkRead(context.Background(), target))

	// Exactly one message flipped, and the list was not refetched.
	assert.Equal(t, 1, unread())
	assert.Equal(t, listCallsAfterLoad, backend.listCalls.Load())
	for _, m := range ctrl.Items() {
		if m.ID == target {
			assert.True(t, m.Read)
		}
	}
}

// fakeProjectBackend simulates the server side of the project list with
// server-assigned identifiers.
type fakeProjectBackend struct {
	mu       sync.Mutex
	projects []model.Project
	seq      int
}

func (b *fakeProjectBackend) ops() ResourceOps[model.Project] {
	return ResourceOps[model.Project]{
		List: func(context.Context) ([]model.Project, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			out := make([]model.Project, len(b.projects))
			copy(out, b.projects)
			return out, nil
		},
		Create: func(_ context.Context, draft model.Project) (model.Project, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.seq++
			draft.ID = fmt.Sprintf("project-%03d", b.seq)
			b.projects = append(b.projects, draft)
			return draft, nil
		},
		Update: func(_ context.Context, id string, draft model.Project) (model.Project, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, p := range b.projects {
				if p.ID == id {
					draft.ID = id
					b.projects[i] = draft
					return draft, nil
				}
			}
			return model.Project{}, errors.New("not found")
		},
		Delete: func(context.Context, string) error { return nil },
		ID:     func(p model.Project) string { return p.ID },
	}
}

func TestListController_CreateRoundTrip(t *testing.T) {
	backend := &fakeProjectBackend{}
	ctrl := NewListController(backend.ops())
	require.NoError(t, ctrl.Load(context.Background()))

	prior := map[string]bool{}
	for _, p := range ctrl.Items() {
		prior[p.ID] = true
	}

	require.NoError(t, ctrl.Create(context.Background(), model.Project{Title: "New Site"}))

	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "New Site", items[0].Title)
	assert.NotEmpty(t, items[0].ID)
	assert.False(t, prior[items[0].ID], "server-assigned id must be new")
}

func TestListController_CreateFailureKeepsCollection(t *testing.T) {
	failing := ResourceOps[model.Project]{
		List: func(context.Context) ([]model.Project, error) {
			return []model.Project{{ID: "project-001", Title: "Existing"}}, nil
		},
		Create: func(context.Context, model.Project) (model.Project, error) {
			return model.Project{}, errors.New("server exploded")
		},
		ID: func(p model.Project) string { return p.ID },
	}
	ctrl := NewListController(failing)
	require.NoError(t, ctrl.Load(context.Background()))

	err := ctrl.Create(context.Background(), model.Project{Title: "Doomed"})
	require.Error(t, err)
	require.Len(t, ctrl.Items(), 1)
	assert.Equal(t, "Existing", ctrl.Items()[0].Title)

	note := ctrl.Notification()
	require.NotNil(t, note)
	assert.True(t, note.IsError)
}

func TestListController_LoadFailureKeepsPreviousCollection(t *testing.T) {
	var fail atomic.Bool
	ops := ResourceOps[model.Project]{
		List: func(context.Context) ([]model.Project, error) {
			if fail.Load() {
				return nil, errors.New("network down")
			}
			return []model.Project{{ID: "project-001"}}, nil
		},
		ID: func(p model.Project) string { return p.ID },
	}
	ctrl := NewListController(ops)
	require.NoError(t, ctrl.Load(context.Background()))

	fail.Store(true)
	err := ctrl.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, ctrl.Items(), 1)
	assert.Error(t, ctrl.LoadErr())
}

func TestListController_SerializesMutations(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	ops := ResourceOps[model.Project]{
		List: func(context.Context) ([]model.Project, error) { return nil, nil },
		Create: func(context.Context, model.Project) (model.Project, error) {
			close(started)
			<-release
			return model.Project{ID: "project-001"}, nil
		},
		Delete: func(context.Context, string) error { return nil },
		ID:     func(p model.Project) string { return p.ID },
	}
	ctrl := NewListController(ops)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Create(context.Background(), model.Project{Title: "slow"})
	}()
	<-started

	// A second mutation while the first is in flight is rejected.
	err := ctrl.Create(context.Background(), model.Project{Title: "fast"})
	assert.ErrorIs(t, err, ErrMutationInFlight)

	close(release)
	require.NoError(t, <-done)

	// After the first finishes, mutations are accepted again.
	ctrl.RequestDelete("project-001")
	assert.NoError(t, ctrl.ConfirmDelete(context.Background(), "project-001"))
}

func TestListController_NotificationAutoDismisses(t *testing.T) {
	backend := &fakeProjectBackend{}
	ctrl := NewListController(backend.ops())

	current := time.Now()
	ctrl.now = func() time.Time { return current }

	require.NoError(t, ctrl.Create(context.Background(), model.Project{Title: "New"}))
	require.NotNil(t, ctrl.Notification())

	current = current.Add(notificationTTL - time.Millisecond)
	assert.NotNil(t, ctrl.Notification())

	current = current.Add(2 * time.Millisecond)
	assert.Nil(t, ctrl.Notification())
}
