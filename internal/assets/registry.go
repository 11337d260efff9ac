package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"politikcred/internal"
	"politikcred/internal/util"
)

// Registry maps a normalized full name to the avatar/animation assets
// produced by the asset optimization step. Lookups that miss are normal;
// most officeholders have no custom artwork.
type Registry struct {
	byName map[string]internal.AssetLinks
}

type configFile struct {
	Politicians map[string]internal.AssetLinks `json:"politicians"`
}

var reSpaces = regexp.MustCompile(`\s+`)

// Load reads the JSON assets config. A missing file is not an error: the
// embedded defaults cover the handful of faces shipped with the site.
func Load(path string) (*Registry, error) {
	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultRegistry(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg configFile
	if err := json.Unmarshal(blob, &cfg); err != nil {
		return nil, fmt.Errorf("assets config: %w", err)
	}

	return NewRegistry(cfg.Politicians), nil
}

func NewRegistry(entries map[string]internal.AssetLinks) *Registry {
	byName := make(map[string]internal.AssetLinks, len(entries))
	for name, links := range entries {
		byName[normalizeName(name)] = links
	}
	return &Registry{byName: byName}
}

// DefaultRegistry carries the asset mapping shipped with the site build.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]internal.AssetLinks{
		"élisabeth borne": {
			AvatarURL: util.StringPtr("/assets/politicians/borne.png"),
		},
		"sébastien lecornu": {
			AvatarURL:    util.StringPtr("/assets/politicians/lecornu.png"),
			AnimationURL: util.StringPtr("/assets/animations/lecornu.mp4"),
		},
		"éric lombard": {
			AvatarURL: util.StringPtr("/assets/politicians/lombart.png"),
		},
		"marine le pen": {
			AvatarURL:    util.StringPtr("/assets/politicians/lepen.jpeg"),
			AnimationURL: util.StringPtr("/assets/animations/lepen.mp4"),
		},
	})
}

func (r *Registry) Lookup(normalizedName string) (internal.AssetLinks, bool) {
	links, ok := r.byName[normalizeName(normalizedName)]
	return links, ok
}

// NamedLinks is one registry entry with its lookup name, for iteration.
type NamedLinks struct {
	Name  string
	Links internal.AssetLinks
}

// Entries returns the registry contents sorted by name so update passes
// walk it deterministically.
func (r *Registry) Entries() []NamedLinks {
	out := make([]NamedLinks, 0, len(r.byName))
	for name, links := range r.byName {
		out = append(out, NamedLinks{Name: name, Links: links})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func normalizeName(name string) string {
	name = reSpaces.ReplaceAllString(strings.TrimSpace(name), " ")
	return strings.ToLower(name)
}
