package workers

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/social-memo/social-memo/internal/logger"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := &Workers{workers: []Worker{
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	}}
	ws.Run()

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run() {
	*o.order = append(*o.order, o.id)
}

// mockSessionService counts SweepExpired calls; the rest of the interface
// is unused by the sweeper.
type mockSessionService struct {
	sweeps atomic.Int64
}

func (m *mockSessionService) Issue(string) (string, error) { return "", nil }
func (m *mockSessionService) Verify(string) (string, bool) { return "", false }
func (m *mockSessionService) Revoke(string) bool { return false }
func (m *mockSessionService) RevokeAll(string) int { return 0 }

func (m *mockSessionService) SweepExpired() int {
	m.sweeps.Add(1)
	return 0
}

func TestSessionSweeper_Run_SweepsPeriodically(t *testing.T) {
	sessions := &mockSessionService{}
	sweeper := NewSessionSweeper(sessions, time.Millisecond, logger.Nop())

	sweeper.Run()

	deadline := time.Now().Add(time.Second)
	for sessions.sweeps.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected at least 3 sweeps, got %d", sessions.sweeps.Load())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionSweeper_Run_ReturnsImmediately(t *testing.T) {
	sessions := &mockSessionService{}
	sweeper := NewSessionSweeper(sessions, time.Hour, logger.Nop())

	done := make(chan struct{})
	go func() {
		sweeper.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return, expected it to spawn the loop and exit")
	}
}
