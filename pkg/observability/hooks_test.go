package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	// Scene hooks
	s := NoopSceneHooks{}
	s.OnLayoutStart("spring", 12)
	s.OnLayoutComplete("spring", time.Second, nil)
	s.OnBuildStart(12, 18)
	s.OnBuildComplete(12, 18)

	// Tick hooks
	k := NoopTickHooks{}
	k.OnTickStart(1, 3*time.Millisecond)
	k.OnTickComplete(1, time.Millisecond, nil)
	k.OnTickSkipped(2)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit("layout")
	c.OnCacheMiss("layout")
	c.OnCacheSet("layout", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Scene() should return NoopSceneHooks by default")
	}
	if _, ok := Tick().(NoopTickHooks); !ok {
		t.Error("Tick() should return NoopTickHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customScene := &testSceneHooks{}
	SetSceneHooks(customScene)
	if Scene() != customScene {
		t.Error("SetSceneHooks should set custom hooks")
	}

	customTick := &testTickHooks{}
	SetTickHooks(customTick)
	if Tick() != customTick {
		t.Error("SetTickHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Reset() should restore NoopSceneHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSceneHooks{}
	SetSceneHooks(custom)

	// Setting nil should be ignored
	SetSceneHooks(nil)

	if Scene() != custom {
		t.Error("SetSceneHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSceneHooks struct{ NoopSceneHooks }
type testTickHooks struct{ NoopTickHooks }
type testCacheHooks struct{ NoopCacheHooks }
