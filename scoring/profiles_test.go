package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultProfiles(t *testing.T) {
	profiles, err := LoadProfiles("")
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}

	for _, name := range []string{"default", "informational", "experiential", "transactional", "navigational"} {
		profile, ok := profiles[name]
		if !ok {
			t.Errorf("Missing built-in profile %q", name)
			continue
		}
		if profile.Name != name {
			t.Errorf("Profile %q has mismatched name %q", name, profile.Name)
		}
	}

	if w := profiles["informational"].Weight(CategoryAnswerability); w != 1.3 {
		t.Errorf("Expected informational answerability weight 1.3, got %.1f", w)
	}
	if w := profiles["default"].Weight("nonexistent"); w != 1.0 {
		t.Errorf("Unknown category should default to 1.0, got %.1f", w)
	}
}

func TestLoadProfilesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `profiles:
  informational:
    weights:
      answerability: 1.5
    min_word_count: 500
  custom:
    name: custom
    weights:
      technical: 2.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profiles file: %v", err)
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}

	info := profiles["informational"]
	if w := info.Weight(CategoryAnswerability); w != 1.5 {
		t.Errorf("Override should win: expected 1.5, got %.1f", w)
	}
	if w := info.Weight(CategoryAuthority); w != 1.2 {
		t.Errorf("Unmentioned categories keep built-in weights: expected 1.2, got %.1f", w)
	}
	if info.MinWordCount != 500 {
		t.Errorf("Expected min word count 500, got %d", info.MinWordCount)
	}

	custom, ok := profiles["custom"]
	if !ok {
		t.Fatal("New profile from file should be added")
	}
	if w := custom.Weight(CategoryTechnical); w != 2.0 {
		t.Errorf("Expected custom technical weight 2.0, got %.1f", w)
	}
	if w := custom.Weight(CategoryAnswerability); w != 1.0 {
		t.Errorf("Categories absent from a new profile default to 1.0, got %.1f", w)
	}
}

func TestLoadProfilesUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `profiles:
  informational:
    weights:
      bogus_category: 1.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profiles file: %v", err)
	}

	if _, err := LoadProfiles(path); err == nil {
		t.Error("Expected error for unknown category in profile weights")
	}
}

func TestLoadProfilesMissingFile(t *testing.T) {
	if _, err := LoadProfiles("/nonexistent/profiles.yaml"); err == nil {
		t.Error("Expected error for missing profiles file")
	}
}
