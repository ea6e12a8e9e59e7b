package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWorldSpecEmbedded(t *testing.T) {
	spec, err := LoadWorldSpec("world.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.TransitionDuration != 1.5 {
		t.Fatalf("transition duration = %v, want 1.5", spec.TransitionDuration)
	}
	if len(spec.Ghouls) == 0 || len(spec.Walls) == 0 {
		t.Fatalf("world has %d ghouls and %d walls, want some of each", len(spec.Ghouls), len(spec.Walls))
	}
	if len(spec.Bindweeds) != 1 {
		t.Fatalf("bindweeds = %d, want 1", len(spec.Bindweeds))
	}
	bw := spec.Bindweeds[0]
	if bw.Plot == nil || bw.Seed == nil {
		t.Fatalf("bindweed %+v should have a plot and a seed", bw)
	}
	if len(spec.Encounters) != 1 {
		t.Fatalf("encounters = %d, want 1", len(spec.Encounters))
	}
	enc := spec.Encounters[0]
	if enc.Trigger == nil || enc.Limit == nil || enc.Quantity != 3 || len(enc.Points) == 0 {
		t.Fatalf("encounter %+v should have points, a trigger, a limit and a quantity", enc)
	}
}

func TestLoadWorldSpecRejectsEncounterWithoutPoints(t *testing.T) {
	writePrefab(t, "bad.yaml", "name: bad\nencounters:\n  - quantity: 2\n    trigger: {x: 0, z: 0, half_x: 1, half_z: 1}\n")

	if _, err := LoadWorldSpec("bad.yaml"); err == nil || !strings.Contains(err.Error(), "encounter 0") {
		t.Fatalf("err = %v, want the pointless encounter rejected", err)
	}
}

func writePrefab(t *testing.T, name, body string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "prefabs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefabs", name), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Chdir(dir)
}

func TestLoadWorldSpecRejectsNegativeDuration(t *testing.T) {
	writePrefab(t, "bad.yaml", "name: bad\ntransition_duration: -1\n")

	if _, err := LoadWorldSpec("bad.yaml"); err == nil {
		t.Fatalf("negative transition duration should be rejected")
	}
}

func TestDiskPrefabOverridesEmbedded(t *testing.T) {
	writePrefab(t, "world.yaml", "name: edited\ntransition_duration: 3\n")

	spec, err := LoadWorldSpec("prefabs/world.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "edited" || spec.TransitionDuration != 3 {
		t.Fatalf("spec = %+v, want the copy on disk", spec)
	}
	if _, ok := ModTime("world.yaml"); !ok {
		t.Fatalf("mod time should be known for a file on disk")
	}
	if _, ok := ModTime("ghoul.yaml"); ok {
		t.Fatalf("embedded-only prefab should have no mod time")
	}
}

func TestLoadSpecMissing(t *testing.T) {
	if _, err := LoadWorldSpec("missing.yaml"); err == nil {
		t.Fatalf("missing prefab should fail to load")
	}
}

func TestLoadEntityBuildSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("ghoul.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "ghoul" {
		t.Fatalf("name = %q, want ghoul", spec.Name)
	}
	ai, err := DecodeComponentSpec[AIComponentSpec](spec.Components["ai"])
	if err != nil {
		t.Fatalf("decode ai: %v", err)
	}
	if ai.AttackDelay <= 0 || ai.SearchTime <= 0 {
		t.Fatalf("ai = %+v, want timings set", ai)
	}
	p, err := DecodeComponentSpec[PerceptionComponentSpec](spec.Components["perception"])
	if err != nil {
		t.Fatalf("decode perception: %v", err)
	}
	if p.HalfAngle != 60 || p.Radius != 8 {
		t.Fatalf("perception = %+v", p)
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[HealthComponentSpec](nil)
	if err != nil || got.Max != 0 {
		t.Fatalf("decode nil = %+v, %v; want zero value", got, err)
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"seed_plot.tengo", "scripts/seed_plot.tengo"},
		{"scripts/seed_plot.tengo", "scripts/seed_plot.tengo"},
		{"prefabs/scripts/seed_plot.tengo", "scripts/seed_plot.tengo"},
	}
	for _, c := range cases {
		if got := cleanScriptPath(c.in); got != c.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadScriptEmbedded(t *testing.T) {
	src, err := LoadScript("seed_plot.tengo")
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	if !strings.Contains(string(src), "result") {
		t.Fatalf("script %q should assign result", src)
	}
}
