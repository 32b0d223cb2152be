package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stevie1mat/flowdsl/pkg/adapters/memory"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		def, _, err := mgr.Create(ctx, domain.Definition{Name: fmt.Sprintf("wf-%d", i)})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := mgr.Delete(ctx, def.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}

	if n := len(mgr.locks); n != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", n)
	}
}
