package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestIsClip(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"clinic.wav", true},
		{"clinic.WAV", true},
		{"notes.mp3", true},
		{"notes.ogg", true},
		{"notes.oga", true},
		{"report.pdf", false},
		{"clinic.wav.part", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsClip(tt.path); got != tt.want {
			t.Errorf("IsClip(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherReportsNewClips(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	clip := filepath.Join(dir, "ward-round.wav")
	if err := os.WriteFile(clip, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A non-clip file should be ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Clips():
		if got != clip {
			t.Errorf("got %q, want %q", got, clip)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for clip event")
	}

	select {
	case got := <-w.Clips():
		t.Errorf("unexpected extra event %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherCloseClosesChannel(t *testing.T) {
	w, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	select {
	case _, ok := <-w.Clips():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("clips channel not closed after Close")
	}
}
