package metrics

import (
	"fmt"
	"testing"

	coremetrics "github.com/gasgrid/lcv-dispatch/core/metrics"
)

type countingSink struct {
	calls int
	err   error
}

func (s *countingSink) RecordPlan(coremetrics.PlanEvent) error {
	s.calls++
	return s.err
}

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordPlan(planEvent()); err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("calls: %d / %d", a.calls, b.calls)
	}
}

func TestMultiSinkReturnsFirstError(t *testing.T) {
	boom := fmt.Errorf("boom")
	a := &countingSink{err: boom}
	b := &countingSink{}
	if err := NewMultiSink(a, b).RecordPlan(planEvent()); err != boom {
		t.Fatalf("err = %v", err)
	}
	if b.calls != 0 {
		t.Fatalf("second sink called after error")
	}
}
