package catalog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stevie1mat/flowdsl/pkg/adapters/memory"
	"github.com/stevie1mat/flowdsl/pkg/catalog"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/dsl"
	"github.com/stevie1mat/flowdsl/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicDefinition(name string) domain.Definition {
	b := dsl.New()
	b.Input("1").Label("Topic").Variable("topic").To("2")
	b.Action("2").Prompt("Write about {topic}").Model("mistral").Temperature(0.7).MaxTokens(256).To("3")
	b.Output("3").Format("markdown")
	g := b.Build()

	return domain.Definition{Name: name, Credits: 2, Nodes: g.Nodes, Edges: g.Edges}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

func TestManager_CreateAssignsIDAndValidates(t *testing.T) {
	m := catalog.NewManager(memory.NewStore())
	ctx := context.Background()

	def, res, err := m.Create(ctx, topicDefinition("  "))
	require.NoError(t, err)

	assert.NotEmpty(t, def.ID)
	assert.Equal(t, catalog.DefaultName, def.Name)
	assert.False(t, def.CreatedAt.IsZero())
	assert.Equal(t, def.CreatedAt, def.UpdatedAt)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Warnings)

	loaded, err := m.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Nodes, 3)
}

func TestManager_InvalidDraftIsStored(t *testing.T) {
	m := catalog.NewManager(memory.NewStore())
	ctx := context.Background()

	def, res, err := m.Create(ctx, domain.Definition{Name: "empty"})
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Workflow must have at least one input and one output")

	_, out, err := m.Compile(ctx, def.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidGraph)
	require.NotNil(t, out)
	assert.False(t, out.Validation.IsValid)
}

func TestManager_UpdatePreservesCreation(t *testing.T) {
	c := &clock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	m := catalog.NewManager(memory.NewStore(), catalog.WithClock(c.Now))
	ctx := context.Background()

	created, _, err := m.Create(ctx, topicDefinition("v1"))
	require.NoError(t, err)

	updated, _, err := m.Update(ctx, created.ID, topicDefinition("v2"))
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "v2", updated.Name)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestManager_NotFound(t *testing.T) {
	m := catalog.NewManager(memory.NewStore())
	ctx := context.Background()

	_, _, err := m.Update(ctx, "missing", topicDefinition("x"))
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)

	assert.ErrorIs(t, m.Delete(ctx, "missing"), domain.ErrWorkflowNotFound)

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)

	_, _, err = m.Compile(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)
}

func TestManager_ListNewestFirst(t *testing.T) {
	c := &clock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	m := catalog.NewManager(memory.NewStore(), catalog.WithClock(c.Now))
	ctx := context.Background()

	first, _, err := m.Create(ctx, topicDefinition("first"))
	require.NoError(t, err)
	second, _, err := m.Create(ctx, topicDefinition("second"))
	require.NoError(t, err)

	defs, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, second.ID, defs[0].ID)
	assert.Equal(t, first.ID, defs[1].ID)

	require.NoError(t, m.Delete(ctx, second.ID))
	defs, err = m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestManager_Compile(t *testing.T) {
	m := catalog.NewManager(memory.NewStore())
	ctx := context.Background()

	created, _, err := m.Create(ctx, topicDefinition("Blog"))
	require.NoError(t, err)

	def, out, err := m.Compile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blog", def.Name)
	assert.Equal(t, []string{"1", "2", "3"}, out.Sequence)
	assert.Equal(t, domain.ComplexitySimple, out.Plan.Complexity)
	assert.Contains(t, out.DSL, `workflow "Topic" {`)
}

// slowStore widens the read-modify-write window so missing locks would lose updates.
type slowStore struct {
	ports.WorkflowStore
}

func (s slowStore) Load(ctx context.Context, id string) (*domain.Definition, error) {
	time.Sleep(5 * time.Millisecond)
	return s.WorkflowStore.Load(ctx, id)
}

func TestManager_ConcurrentUpdatesAreSerialised(t *testing.T) {
	m := catalog.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()

	created, _, err := m.Create(ctx, topicDefinition("base"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := m.Update(ctx, created.ID, topicDefinition("concurrent"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	def, err := m.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "concurrent", def.Name)
	assert.True(t, created.CreatedAt.Equal(def.CreatedAt))
}

type countingLocker struct {
	mu     sync.Mutex
	locks  int
	unlock int
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	l.locks++
	l.mu.Unlock()
	return func(ctx context.Context) error {
		l.mu.Lock()
		l.unlock++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLockPaired(t *testing.T) {
	locker := &countingLocker{}
	m := catalog.NewManager(memory.NewStore(), catalog.WithLocker(locker))
	ctx := context.Background()

	created, _, err := m.Create(ctx, topicDefinition("locked"))
	require.NoError(t, err)
	_, _, err = m.Update(ctx, created.ID, topicDefinition("locked"))
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, created.ID))

	assert.Equal(t, 3, locker.locks)
	assert.Equal(t, locker.locks, locker.unlock)
}
