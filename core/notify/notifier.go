// Package notify defines the outbound plan publication port.
package notify

import (
	"context"
	"sync"

	"github.com/gasgrid/lcv-dispatch/core/plan"
)

// Publisher broadcasts a completed plan to downstream consumers, such as a
// dispatch board feed.
type Publisher interface {
	PublishPlan(ctx context.Context, res plan.Result) error
}

// NopPublisher discards plans.
type NopPublisher struct{}

// PublishPlan implements Publisher.
func (NopPublisher) PublishPlan(context.Context, plan.Result) error { return nil }

// MockPublisher records published plans for tests.
type MockPublisher struct {
	mu    sync.Mutex
	Plans []plan.Result
	Err   error
}

// PublishPlan records the plan or returns the configured error.
func (m *MockPublisher) PublishPlan(_ context.Context, res plan.Result) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plans = append(m.Plans, res)
	return nil
}

// Published returns a snapshot of the recorded plans.
func (m *MockPublisher) Published() []plan.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]plan.Result, len(m.Plans))
	copy(out, m.Plans)
	return out
}
