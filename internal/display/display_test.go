package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestSuccessAndError(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Success("%s created", "res/a.png")
	p.Error("%s does not exist", "push.png")

	want := "  ✓  res/a.png created\n  ✗  push.png does not exist\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Header("Checking Project & Icon")

	want := "\n Checking Project & Icon\n\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestColored(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Success("ok")
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escape in colored output, got %q", buf.String())
	}
}

func TestBlank(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Blank()
	if buf.String() != "\n" {
		t.Errorf("output = %q", buf.String())
	}
}
