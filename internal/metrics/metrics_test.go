// file: internal/metrics/metrics_test.go
// version: 2.0.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f9a0b1c2d

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/users", "200"))
	ObserveRequest("GET", "/users", 200, 3*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/users", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(listCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(listCacheLookups.WithLabelValues("miss"))
	inval := testutil.ToFloat64(listCacheInvalidations)

	IncCacheHit()
	IncCacheMiss()
	IncCacheMiss()
	IncCacheInvalidation()

	if got := testutil.ToFloat64(listCacheLookups.WithLabelValues("hit")) - hits; got != 1 {
		t.Errorf("expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(listCacheLookups.WithLabelValues("miss")) - misses; got != 2 {
		t.Errorf("expected 2 misses, got %v", got)
	}
	if got := testutil.ToFloat64(listCacheInvalidations) - inval; got != 1 {
		t.Errorf("expected 1 invalidation, got %v", got)
	}
}

func TestSetUsers(t *testing.T) {
	SetUsers(42)
	if got := testutil.ToFloat64(usersGauge); got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestMutationAndValidationCounters(t *testing.T) {
	IncMutation("create")
	IncValidationFailure("email")
	IncPanicRecovered()
}
