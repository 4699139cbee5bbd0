package buildinfo

import (
	"strings"
	"testing"
)

func TestCreator(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := Creator(); got != "qrsheet v1.2.3" {
		t.Errorf("Creator() = %q", got)
	}
	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}
