package models

import "testing"

func TestNext_ForwardChain(t *testing.T) {
	// pending walks the whole pipeline and stops at served
	want := []OrderStatus{StatusPreparing, StatusReady, StatusServed}

	current := StatusPending
	for i, expected := range want {
		next, ok := Next(current)
		if !ok {
			t.Fatalf("step %d: expected transition from %s, got none", i, current)
		}
		if next != expected {
			t.Fatalf("step %d: Next(%s) = %s, want %s", i, current, next, expected)
		}
		current = next
	}

	if _, ok := Next(current); ok {
		t.Errorf("expected no transition from %s", current)
	}
}

func TestNext_AcceptedFeedsPreparing(t *testing.T) {
	next, ok := Next(StatusAccepted)
	if !ok || next != StatusPreparing {
		t.Errorf("Next(accepted) = %s, %v; want preparing, true", next, ok)
	}
}

func TestNext_TerminalStates(t *testing.T) {
	for _, status := range []OrderStatus{StatusServed, StatusCancelled} {
		if _, ok := Next(status); ok {
			t.Errorf("expected no transition from terminal status %s", status)
		}
		if !status.IsTerminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}
}

func TestNext_UnknownStatus(t *testing.T) {
	if _, ok := Next(OrderStatus("burnt")); ok {
		t.Error("expected no transition for unknown status")
	}
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusAccepted, true},
		{StatusPreparing, true},
		{StatusReady, true},
		{StatusServed, false},
		{StatusCancelled, false},
		{OrderStatus("unknown"), false},
	}

	for _, tt := range tests {
		if got := CanCancel(tt.status); got != tt.want {
			t.Errorf("CanCancel(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to preparing", StatusPending, StatusPreparing, true},
		{"accepted to preparing", StatusAccepted, StatusPreparing, true},
		{"preparing to ready", StatusPreparing, StatusReady, true},
		{"ready to served", StatusReady, StatusServed, true},
		{"no skipping", StatusPending, StatusReady, false},
		{"no cycling back", StatusReady, StatusPreparing, false},
		{"cancel from pending", StatusPending, StatusCancelled, true},
		{"cancel from ready", StatusReady, StatusCancelled, true},
		{"cancel from served", StatusServed, StatusCancelled, false},
		{"cancel from cancelled", StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
