package model

import (
	"reflect"
	"testing"
	"time"
)

func TestRequestValidate(t *testing.T) {
	valid := Request{ID: "r1", CreateDate: time.Now(), DistanceKm: 1, DurationMin: 10}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	cases := []Request{
		{CreateDate: time.Now()},
		{ID: "r1"},
		{ID: "r1", CreateDate: time.Now(), DistanceKm: -1},
		{ID: "r1", CreateDate: time.Now(), DurationMin: -1},
	}
	for i, r := range cases {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestRequestDurationTruncates(t *testing.T) {
	r := Request{DurationMin: 30.9}
	if r.DurationMinutes() != 30 {
		t.Fatalf("minutes = %d", r.DurationMinutes())
	}
	if r.Duration() != 30*time.Minute {
		t.Fatalf("duration = %v", r.Duration())
	}
}

func TestNewFleet(t *testing.T) {
	fleet := NewFleet([]string{"V3", "V1", "V2", "V1", ""})
	if !reflect.DeepEqual([]string(fleet), []string{"V1", "V2", "V3"}) {
		t.Fatalf("fleet = %v", fleet)
	}
	if !fleet.Contains("V2") || fleet.Contains("V4") {
		t.Fatalf("contains broken")
	}
}
