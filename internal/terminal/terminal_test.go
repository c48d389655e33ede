//go:build !windows

package terminal

import (
	"strings"
	"testing"
	"time"
)

func TestStartAndStop(t *testing.T) {
	m := NewManager()

	s, err := m.Start("t1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.ID != "t1" {
		t.Errorf("ID = %s, want t1", s.ID)
	}
	if !s.Running() {
		t.Error("session should be running")
	}

	if _, err := m.Start("t1"); err == nil {
		t.Error("duplicate ID should fail")
	}

	if err := m.Stop("t1"); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if err := m.Stop("t1"); err == nil {
		t.Error("stopping a removed session should fail")
	}
}

func TestGeneratedID(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	s, err := m.Start("")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.ID == "" {
		t.Error("empty ID should be generated")
	}
}

func TestWriteAndOutput(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	s, err := m.Start("echoes")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	out, err := m.Output(s.ID)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}

	if err := m.Write(s.ID, []byte("echo terminal-roundtrip\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	var collected strings.Builder
	for {
		select {
		case chunk, ok := <-out:
			if !ok {
				t.Fatalf("output closed before match; got %q", collected.String())
			}
			collected.Write(chunk)
			if strings.Contains(collected.String(), "terminal-roundtrip") {
				return
			}
		case <-deadline:
			t.Fatalf("no echo within deadline; got %q", collected.String())
		}
	}
}

func TestUnknownSession(t *testing.T) {
	m := NewManager()

	if err := m.Write("missing", []byte("x")); err == nil {
		t.Error("Write to unknown session should fail")
	}
	if err := m.Resize("missing", 40, 120); err == nil {
		t.Error("Resize of unknown session should fail")
	}
	if _, err := m.Output("missing"); err == nil {
		t.Error("Output of unknown session should fail")
	}
}

func TestResize(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	s, err := m.Start("resize")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Resize(s.ID, 40, 120); err != nil {
		t.Errorf("Resize: %v", err)
	}
}
