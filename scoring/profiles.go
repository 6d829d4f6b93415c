package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the per-category weight multipliers applied for one content
// type, plus threshold adjustments used by recommendation tiers. Profiles are
// immutable once loaded; the calculator only reads them.
type Profile struct {
	Name         string             `yaml:"name" json:"name"`
	Weights      map[string]float64 `yaml:"weights" json:"weights"`
	MinWordCount int                `yaml:"min_word_count" json:"min_word_count"`
}

// Weight returns the multiplier for a category, defaulting to 1.0 for
// categories the profile does not mention.
func (p Profile) Weight(category string) float64 {
	if w, ok := p.Weights[category]; ok {
		return w
	}
	return 1.0
}

func defaultProfiles() map[string]Profile {
	return map[string]Profile{
		"default": {
			Name: "default",
			Weights: map[string]float64{
				CategoryAnswerability:   1.0,
				CategoryStructuredData:  1.0,
				CategoryAuthority:       1.0,
				CategoryContentQuality:  1.0,
				CategoryCitationability: 1.0,
				CategoryTechnical:       1.0,
			},
			MinWordCount: 300,
		},
		"informational": {
			Name: "informational",
			Weights: map[string]float64{
				CategoryAnswerability:   1.3,
				CategoryStructuredData:  1.0,
				CategoryAuthority:       1.2,
				CategoryContentQuality:  1.2,
				CategoryCitationability: 1.2,
				CategoryTechnical:       1.0,
			},
			MinWordCount: 300,
		},
		"experiential": {
			Name: "experiential",
			Weights: map[string]float64{
				CategoryAnswerability:   0.5,
				CategoryStructuredData:  1.3,
				CategoryAuthority:       0.9,
				CategoryContentQuality:  1.1,
				CategoryCitationability: 0.6,
				CategoryTechnical:       1.0,
			},
			MinWordCount: 200,
		},
		"transactional": {
			Name: "transactional",
			Weights: map[string]float64{
				CategoryAnswerability:   0.8,
				CategoryStructuredData:  1.4,
				CategoryAuthority:       1.1,
				CategoryContentQuality:  0.9,
				CategoryCitationability: 0.7,
				CategoryTechnical:       1.2,
			},
			MinWordCount: 100,
		},
		"navigational": {
			Name: "navigational",
			Weights: map[string]float64{
				CategoryAnswerability:   0.6,
				CategoryStructuredData:  1.2,
				CategoryAuthority:       0.8,
				CategoryContentQuality:  0.7,
				CategoryCitationability: 0.5,
				CategoryTechnical:       1.3,
			},
			MinWordCount: 50,
		},
	}
}

// profilesFile is the on-disk override format: a map of profile name to
// partial profile. Omitted categories keep weight 1.0.
type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfiles returns the built-in profile set, optionally overlaid with a
// YAML file. An empty path means built-ins only.
func LoadProfiles(path string) (map[string]Profile, error) {
	profiles := defaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	for name, override := range file.Profiles {
		profile, ok := profiles[name]
		if !ok {
			profile = Profile{Name: name, Weights: map[string]float64{}}
		}
		if override.Weights != nil {
			merged := make(map[string]float64, len(profile.Weights))
			for k, v := range profile.Weights {
				merged[k] = v
			}
			for k, v := range override.Weights {
				if _, known := categoryMax[k]; !known {
					return nil, fmt.Errorf("profile %q references unknown category %q", name, k)
				}
				merged[k] = v
			}
			profile.Weights = merged
		}
		if override.MinWordCount > 0 {
			profile.MinWordCount = override.MinWordCount
		}
		profiles[name] = profile
	}

	return profiles, nil
}
