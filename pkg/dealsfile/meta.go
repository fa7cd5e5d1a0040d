package dealsfile

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Meta is the optional, purely cosmetic sidecar for a deals file: a
// human-readable label per deal, used only in server log lines (field
// "deal_label"). It never affects wire behavior; its absence is not an
// error.
type Meta struct {
	Labels []string `yaml:"labels"`
}

// LoadMeta reads "<path>.meta.yaml" if it exists. A missing sidecar
// returns a zero Meta and a nil error — the sidecar is optional.
func LoadMeta(path string) (Meta, error) {
	b, err := os.ReadFile(path + ".meta.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return Meta{}, nil
		}

		return Meta{}, err
	}

	var m Meta
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Meta{}, err
	}

	return m, nil
}

// Label returns the human-readable label for deal index i, or "" if none
// was provided.
func (m Meta) Label(i int) string {
	if i < 0 || i >= len(m.Labels) {
		return ""
	}

	return m.Labels[i]
}
