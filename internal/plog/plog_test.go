package plog

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugfSuppressedWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "", false)
	l.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestDebugfEmittedWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "", true)
	l.Debugf("shown %d", 1)
	if !strings.Contains(buf.String(), "shown 1") {
		t.Errorf("expected output to contain %q, got %q", "shown 1", buf.String())
	}
}

func TestInfofAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "", false)
	l.Infof("always %s", "on")
	if !strings.Contains(buf.String(), "always on") {
		t.Errorf("expected output to contain %q, got %q", "always on", buf.String())
	}
}
