package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != "dev" {
		t.Errorf("version = %q, want dev", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("go version = %q", info.GoVersion)
	}
	if !strings.Contains(info.String(), "s3inventory dev") {
		t.Errorf("String() = %q", info.String())
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortCommit() = %q", got)
	}
	if got := shortCommit("unknown"); got != "unknown" {
		t.Errorf("shortCommit() = %q", got)
	}
}
