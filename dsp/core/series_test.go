package core

import (
	"errors"
	"testing"
)

func TestNewSeries(t *testing.T) {
	s, err := NewSeries(16, 2048)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}

	if s.Len() != 32768 {
		t.Fatalf("Len: got %d, want 32768", s.Len())
	}

	if s.Nyquist() != 1024 {
		t.Fatalf("Nyquist: got %v, want 1024", s.Nyquist())
	}
}

func TestNewSeries_Invalid(t *testing.T) {
	tests := []struct {
		name string
		sec  int
		fs   int
		want error
	}{
		{"zero duration", 0, 2048, ErrInvalidDuration},
		{"negative duration", -1, 2048, ErrInvalidDuration},
		{"zero rate", 16, 0, ErrInvalidSampleRate},
		{"negative rate", 16, -8, ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeries(tt.sec, tt.fs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSeries_Times(t *testing.T) {
	s := Series{Duration: 2, SampleRate: 4}

	got := s.Times()
	want := []float64{0, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75}

	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("t[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
