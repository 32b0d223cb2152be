package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stevie1mat/flowdsl/pkg/adapters/memory"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/persistence/middleware"
	"github.com/stevie1mat/flowdsl/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func encrypted(t *testing.T, next ports.WorkflowStore, cfg middleware.EncryptionConfig) ports.WorkflowStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(next)
}

func secretWorkflow(id string) *domain.Definition {
	return &domain.Definition{
		ID:   id,
		Name: "Secret sauce",
		Nodes: []domain.Node{
			domain.NewAction("a", domain.ActionData{Prompt: "my-secret-prompt"}),
		},
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunWorkflowStoreContract(t, encrypted(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ctx := context.Background()

	require.NoError(t, secure.Save(ctx, secretWorkflow("wf")))

	stored, err := underlying.Load(ctx, "wf")
	require.NoError(t, err)
	assert.Equal(t, middleware.EnvelopeName, stored.Name)
	assert.Empty(t, stored.Nodes)
	assert.NotContains(t, stored.Description, "my-secret-prompt")

	loaded, err := secure.Load(ctx, "wf")
	require.NoError(t, err)
	assert.Equal(t, "Secret sauce", loaded.Name)
	action, ok := loaded.Nodes[0].Action()
	require.True(t, ok)
	assert.Equal(t, "my-secret-prompt", action.Prompt)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	oldStore := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, oldStore.Save(ctx, secretWorkflow("wf")))

	newStore := encrypted(t, underlying, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	loaded, err := newStore.Load(ctx, "wf")
	require.NoError(t, err, "fallback key decrypts old data")

	loaded.Name = "Rotated"
	require.NoError(t, newStore.Save(ctx, loaded))

	_, err = oldStore.Load(ctx, "wf")
	assert.Error(t, err, "old key alone cannot read data written with the new key")
}

func TestEncryptionMiddleware_PlainDataRejected(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, secretWorkflow("plain")))

	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	_, err := secure.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)
}
