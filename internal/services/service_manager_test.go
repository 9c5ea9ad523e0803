package services

import (
	"context"
	"testing"
)

func newManager(t *testing.T) (ServiceManager, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewDefaultServiceManager(env.store, env.resolver, env.tokens, env.publisher, env.logger, env.validator), env
}

func TestServiceManager_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Getter_Panics_Before_Initialize", func(t *testing.T) {
		sm, _ := newManager(t)

		defer func() {
			if recover() == nil {
				t.Error("Expected panic from uninitialized getter")
			}
		}()
		sm.Identity()
	})

	t.Run("Initialize_Wires_All_Services", func(t *testing.T) {
		sm, _ := newManager(t)
		if err := sm.Initialize(ctx); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		if sm.Identity() == nil || sm.Question() == nil || sm.Quiz() == nil ||
			sm.Resource() == nil || sm.News() == nil || sm.Classroom() == nil ||
			sm.Notification() == nil || sm.Enrollment() == nil || sm.ImportExport() == nil {
			t.Error("Expected all services to be available after Initialize")
		}

		if err := sm.HealthCheck(ctx); err != nil {
			t.Errorf("HealthCheck failed: %v", err)
		}
	})

	t.Run("Initialize_Is_Idempotent", func(t *testing.T) {
		sm, _ := newManager(t)
		if err := sm.Initialize(ctx); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if err := sm.Initialize(ctx); err != nil {
			t.Fatalf("Second Initialize failed: %v", err)
		}
	})

	t.Run("Shutdown_Fails_HealthCheck", func(t *testing.T) {
		sm, _ := newManager(t)
		if err := sm.Initialize(ctx); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if err := sm.Shutdown(ctx); err != nil {
			t.Fatalf("Shutdown failed: %v", err)
		}
		if err := sm.HealthCheck(ctx); err == nil {
			t.Error("Expected health check to fail after shutdown")
		}
	})
}
