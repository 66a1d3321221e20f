package player

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Unloaded, "Unloaded"},
		{Paused, "Paused"},
		{Playing, "Playing"},
		{Completed, "Completed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_IsLoaded(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{Unloaded, false},
		{Paused, true},
		{Playing, true},
		{Completed, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsLoaded(); got != tt.want {
				t.Errorf("State.IsLoaded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_CanPause(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{Unloaded, false},
		{Paused, false},
		{Playing, true},
		{Completed, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.CanPause(); got != tt.want {
				t.Errorf("State.CanPause() = %v, want %v", got, tt.want)
			}
		})
	}
}
