package version

import (
	"runtime"
	"testing"
)

func TestString(t *testing.T) {
	got := String()
	want := "dev (commit: unknown, built: unknown)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.GoVersion != runtime.Version() {
		t.Errorf("unexpected info: %+v", info)
	}
}
