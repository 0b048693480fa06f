package query

import (
	"strings"
	"testing"
)

func TestBuildExplicitFields(t *testing.T) {
	t.Parallel()

	got := Build(&Request{Fields: []string{"id", "title"}})
	if got != "id\ntitle" {
		t.Errorf("Build = %q, want exactly the id and title fragments", got)
	}
	if strings.Contains(got, "slug") {
		t.Errorf("Build = %q, must not contain unrequested fields", got)
	}
}

func TestBuildFieldsTakePrecedenceOverPreset(t *testing.T) {
	t.Parallel()

	got := Build(&Request{Preset: PresetFull, Fields: []string{"id"}})
	if got != "id" {
		t.Errorf("Build = %q, explicit fields must replace the preset entirely", got)
	}
}

func TestBuildDefaultsToStandard(t *testing.T) {
	t.Parallel()

	standard := Build(&Request{Preset: PresetStandard})

	if got := Build(nil); got != standard {
		t.Errorf("Build(nil) = %q, want the standard preset", got)
	}
	if got := Build(&Request{}); got != standard {
		t.Errorf("Build(&Request{}) = %q, want the standard preset", got)
	}
}

func TestBuildDropsUnknownFieldsSilently(t *testing.T) {
	t.Parallel()

	got := Build(&Request{Fields: []string{"id", "definitelyNotAField", "title"}})
	if got != "id\ntitle" {
		t.Errorf("Build = %q, unknown identifiers must be filtered out", got)
	}
}

func TestBuildPreservesRequestOrder(t *testing.T) {
	t.Parallel()

	got := Build(&Request{Fields: []string{"title", "id"}})
	if got != "title\nid" {
		t.Errorf("Build = %q, fragments must follow the given order", got)
	}
}

func TestPresetsAreNested(t *testing.T) {
	t.Parallel()

	minimal := Build(&Request{Preset: PresetMinimal})
	standard := Build(&Request{Preset: PresetStandard})
	full := Build(&Request{Preset: PresetFull})

	for _, field := range presets[PresetMinimal] {
		if !strings.Contains(standard, fragments[field]) {
			t.Errorf("standard preset is missing minimal field %q", field)
		}
	}
	for _, field := range presets[PresetStandard] {
		if !strings.Contains(full, fragments[field]) {
			t.Errorf("full preset is missing standard field %q", field)
		}
	}
	if len(minimal) >= len(standard) || len(standard) >= len(full) {
		t.Errorf("presets are not strictly growing: %d, %d, %d",
			len(minimal), len(standard), len(full))
	}
}

func TestRelationFieldsExpandToSubSelections(t *testing.T) {
	t.Parallel()

	got := Build(&Request{Fields: []string{"engine"}})
	for _, sub := range []string{"engine {", "id", "name"} {
		if !strings.Contains(got, sub) {
			t.Errorf("engine fragment %q is missing %q", got, sub)
		}
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()

	if !Known("id") {
		t.Error("Known(id) = false")
	}
	if Known("definitelyNotAField") {
		t.Error("Known(definitelyNotAField) = true")
	}
}
