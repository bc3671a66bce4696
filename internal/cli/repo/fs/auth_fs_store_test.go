package fs

import (
	"runtime"
	"testing"
)

func withTempConfig(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", t.TempDir())
	} else {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	}
}

func TestAuthFSStore_TokenRoundTrip(t *testing.T) {
	withTempConfig(t)
	s := AuthFSStore{}

	if _, err := s.Load(); err == nil {
		t.Fatalf("expected error for missing token")
	}
	if err := s.Save("tok-123\n"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "tok-123" {
		t.Fatalf("trailing whitespace not trimmed: %q", got)
	}
}

func TestAuthFSStore_LoginRoundTrip(t *testing.T) {
	withTempConfig(t)
	s := AuthFSStore{}

	if err := s.SaveLogin(""); err == nil {
		t.Fatalf("expected error for empty login")
	}
	if err := s.SaveLogin("alice"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadLogin()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "alice" {
		t.Fatalf("unexpected login %q", got)
	}
}
