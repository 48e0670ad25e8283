package buildcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "pyrite.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[build]
profile = "debug"
cross-unit-optimization = true
`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Profile != ProfileDebug {
		t.Errorf("Profile = %q, want debug", b.Profile)
	}
	if !b.CrossUnit {
		t.Error("CrossUnit = false, want true")
	}
	if b.Dir == "" {
		t.Error("Dir not set at load time")
	}
}

func TestLoadDefaultsProfileToRelease(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[build]
cross-unit-optimization = false
`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Profile != ProfileRelease {
		t.Errorf("Profile = %q, want release default", b.Profile)
	}
	if b.CrossUnit {
		t.Error("CrossUnit = true, want false")
	}
}

func TestLoadRejectsUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[build]
profile = "lto_pgo_turbo"
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	if !strings.Contains(err.Error(), "unknown profile") {
		t.Errorf("error = %v, want mention of unknown profile", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing pyrite.toml")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[build]
profile = "debug"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	b, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if b.Profile != ProfileDebug {
		t.Errorf("Profile = %q, want debug from ancestor config", b.Profile)
	}
}

func TestFindAndLoadFallsBackToDefault(t *testing.T) {
	b, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if b != Default() {
		t.Errorf("got %+v, want Default()", b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		profile Profile
		ok      bool
	}{
		{ProfileDebug, true},
		{ProfileRelease, true},
		{"", false},
		{"fastest", false},
	}
	for _, tt := range tests {
		err := Build{Profile: tt.profile}.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%q) error = %v, want ok=%v", tt.profile, err, tt.ok)
		}
	}
}
