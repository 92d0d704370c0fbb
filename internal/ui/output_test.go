package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/openhexa/openhexa-cli/internal/config"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })
	return &out, &errOut
}

func TestPrintWorkspacesList(t *testing.T) {
	out, _ := captureOutput(t)
	SetColor(false)

	PrintWorkspacesList([]config.WorkspaceView{
		{Slug: "alpha"},
		{Slug: "beta", Current: true},
	})

	want := "Workspaces:\n* alpha\n* beta (active)\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestPrintWorkspacesList_Empty(t *testing.T) {
	out, _ := captureOutput(t)

	PrintWorkspacesList(nil)

	if !strings.HasPrefix(out.String(), "Workspaces:\n") {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "openhexa workspaces add") {
		t.Errorf("empty list should hint at how to add a workspace: %q", out.String())
	}
}

func TestStyles(t *testing.T) {
	SetColor(false)
	if Bold("x") != "x" || Link("u") != "u" {
		t.Error("styles must be plain when color is disabled")
	}

	SetColor(true)
	defer SetColor(false)
	if got := Bold("x"); got == "x" || !strings.Contains(got, "x") {
		t.Errorf("Bold = %q, want escape sequences around x", got)
	}
	if got := Link("u"); got == "u" || !strings.Contains(got, "u") {
		t.Errorf("Link = %q, want escape sequences around u", got)
	}
}

func TestErrorsGoToStderr(t *testing.T) {
	out, errOut := captureOutput(t)

	Error("boom")
	Warning("careful")
	Success("done")

	if !strings.Contains(errOut.String(), "✗ boom") || !strings.Contains(errOut.String(), "⚠ careful") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if out.String() != "✓ done\n" {
		t.Errorf("stdout = %q", out.String())
	}
}
