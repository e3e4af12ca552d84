package credkit

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledIsInert(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricSignInSuccess)
	m.Observe(MetricValidateLatency, 10*time.Millisecond)

	if got := m.Value(MetricSignInSuccess); got != 0 {
		t.Fatalf("expected disabled metrics to stay zero, got %d", got)
	}

	s := m.Snapshot()
	if len(s.Counters) != 0 || len(s.Histograms) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", s)
	}
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricSignUpSuccess)
	m.Observe(MetricValidateLatency, time.Millisecond)

	if m.Value(MetricSignUpSuccess) != 0 {
		t.Fatal("expected zero from nil metrics")
	}
	if m.Enabled() {
		t.Fatal("nil metrics must report disabled")
	}
}

func TestMetricsIncAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricSignUpSuccess)
	m.Inc(MetricSignUpSuccess)
	m.Inc(MetricSignOutAll)

	if got := m.Value(MetricSignUpSuccess); got != 2 {
		t.Fatalf("Value(MetricSignUpSuccess) = %d, want 2", got)
	}

	s := m.Snapshot()
	if s.Counters[MetricSignUpSuccess] != 2 {
		t.Fatalf("snapshot signup_success = %d, want 2", s.Counters[MetricSignUpSuccess])
	}
	if s.Counters[MetricSignOutAll] != 1 {
		t.Fatalf("snapshot signout_all = %d, want 1", s.Counters[MetricSignOutAll])
	}
	if s.Counters[MetricSignInFailure] != 0 {
		t.Fatalf("snapshot signin_failure = %d, want 0", s.Counters[MetricSignInFailure])
	}
}

func TestMetricsLatencyBuckets(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	tests := []struct {
		d      time.Duration
		bucket int
	}{
		{d: 0, bucket: 0},
		{d: 5 * time.Millisecond, bucket: 0},
		{d: 6 * time.Millisecond, bucket: 1},
		{d: 25 * time.Millisecond, bucket: 2},
		{d: 40 * time.Millisecond, bucket: 3},
		{d: 99 * time.Millisecond, bucket: 4},
		{d: 200 * time.Millisecond, bucket: 5},
		{d: 450 * time.Millisecond, bucket: 6},
		{d: time.Second, bucket: 7},
	}

	for _, tc := range tests {
		m.Observe(MetricValidateLatency, tc.d)
	}

	buckets := m.Snapshot().Histograms[MetricValidateLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	want := make([]uint64, 8)
	for _, tc := range tests {
		want[tc.bucket]++
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Fatalf("bucket %d = %d, want %d", i, buckets[i], want[i])
		}
	}
}

func TestMetricsHistogramsOffByDefault(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Observe(MetricValidateLatency, 10*time.Millisecond)

	if buckets := m.Snapshot().Histograms[MetricValidateLatency]; buckets != nil {
		t.Fatalf("expected no histogram data when histograms are off, got %v", buckets)
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 16
	const perGoroutine = 1000

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				m.Inc(MetricValidateSuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricValidateSuccess); got != goroutines*perGoroutine {
		t.Fatalf("Value = %d, want %d", got, goroutines*perGoroutine)
	}
}
