package player

import (
	"errors"
	"math"
	"testing"
)

func TestPlayStartsSyncLoop(t *testing.T) {
	res := newFakeResource(10)
	c := newTestController(res)

	gen, ok := c.Play()
	if !ok {
		t.Fatal("Play() did not start the sync loop")
	}
	if !res.started {
		t.Error("resource was not started")
	}

	res.position = 1.25
	if !c.Tick(gen) {
		t.Fatal("Tick rejected a current generation")
	}
	if got := c.State().CurrentTime; got != 1.25 {
		t.Errorf("CurrentTime = %.3f, want 1.25", got)
	}
}

func TestPlayRefusedIsRecoverable(t *testing.T) {
	res := newFakeResource(10)
	res.startErr = errors.New("device busy")
	c := newTestController(res)

	gen, ok := c.Play()
	if ok {
		t.Fatal("Play() started the sync loop despite refusal")
	}
	if c.State().Playing {
		t.Error("Playing = true after refused start")
	}

	// No position drift: no generation is live
	res.position = 3.0
	if c.Tick(gen) {
		t.Error("Tick advanced after a refused start")
	}
	if got := c.State().CurrentTime; got != 0 {
		t.Errorf("CurrentTime = %.3f, want 0", got)
	}

	// Retry succeeds once the device frees up
	res.startErr = nil
	if _, ok := c.Play(); !ok {
		t.Error("retry after refusal did not start playback")
	}
}

func TestPauseOrphansSyncLoop(t *testing.T) {
	res := newFakeResource(10)
	c := newTestController(res)

	gen, _ := c.Play()
	c.Pause()

	if res.started {
		t.Error("resource still started after Pause")
	}
	if c.Tick(gen) {
		t.Error("stale tick survived Pause")
	}

	// Idempotent
	c.Pause()
	if c.State().Playing {
		t.Error("Playing = true after double Pause")
	}
}

func TestHandleEnded(t *testing.T) {
	res := newFakeResource(10)
	c := newTestController(res)

	gen, _ := c.Play()
	res.position = 10
	c.HandleEnded()

	st := c.State()
	if st.Playing {
		t.Error("Playing = true after end of clip")
	}
	if st.CurrentTime != 10 {
		t.Errorf("CurrentTime = %.3f, want duration", st.CurrentTime)
	}
	if c.Tick(gen) {
		t.Error("sync loop survived end of clip")
	}
}

func TestSetRateSnapsToSupported(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{1.3, 1.25},
		{0.1, 0.5},
		{5.0, 2.0},
		{0.8, 0.75},
		{1.75, 1.5},
	}

	for _, tt := range tests {
		res := newFakeResource(10)
		c := newTestController(res)
		if got := c.SetRate(tt.in); got != tt.want {
			t.Errorf("SetRate(%.2f) = %.2f, want %.2f", tt.in, got, tt.want)
		}
		if res.rate != tt.want {
			t.Errorf("resource rate = %.2f, want %.2f", res.rate, tt.want)
		}
	}
}

func TestSetVolumeClamps(t *testing.T) {
	res := newFakeResource(10)
	c := newTestController(res)

	if got := c.SetVolume(1.5); got != 1.0 {
		t.Errorf("SetVolume(1.5) = %.2f, want 1.0", got)
	}
	if got := c.SetVolume(-0.2); got != 0 {
		t.Errorf("SetVolume(-0.2) = %.2f, want 0", got)
	}
	if got := c.SetVolume(math.NaN()); got != 0 {
		t.Errorf("SetVolume(NaN) = %.2f, want 0", got)
	}
	if got := c.SetVolume(0.4); got != 0.4 {
		t.Errorf("SetVolume(0.4) = %.2f, want 0.4", got)
	}
}

func TestCloseReleasesResource(t *testing.T) {
	res := newFakeResource(10)
	c := newTestController(res)

	gen, _ := c.Play()
	c.Close()

	if !res.closed {
		t.Error("resource not closed")
	}
	if c.Tick(gen) {
		t.Error("sync loop survived Close")
	}
}
