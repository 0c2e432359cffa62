package steps

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Iron-Ham/archiveflow/internal/errors"
)

// OverrideFile rewrites the narrative of existing catalog entries.
// It cannot add, remove or reorder steps.
type OverrideFile struct {
	// Version is the override file format version (currently "1")
	Version string `yaml:"version"`
	// Steps lists the entries to rewrite, keyed by id
	Steps []Descriptor `yaml:"steps"`
}

// LoadFile reads an override file and applies it on top of base.
func LoadFile(base *Catalog, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewCatalogError("reading catalog file", err).WithPath(path)
	}

	var file OverrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewCatalogError("parsing catalog file",
			apperrors.Join(apperrors.ErrInvalidCatalog, err)).WithPath(path)
	}

	c, err := file.Apply(base)
	if err != nil {
		var catErr *apperrors.CatalogError
		if apperrors.As(err, &catErr) {
			catErr.WithPath(path)
		}
		return nil, err
	}
	return c, nil
}

// Validate checks the override file against base without applying it.
func (f *OverrideFile) Validate(base *Catalog) error {
	if f.Version != "" && f.Version != "1" {
		return apperrors.NewCatalogError(fmt.Sprintf("unsupported version %q", f.Version), apperrors.ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(f.Steps))
	for _, o := range f.Steps {
		if _, ok := base.Entry(o.ID); !ok {
			return apperrors.NewCatalogError("override for unknown id", apperrors.ErrUnknownStep).WithStepID(o.ID)
		}
		if seen[o.ID] {
			return apperrors.NewCatalogError("duplicate override", apperrors.ErrInvalidCatalog).WithStepID(o.ID)
		}
		seen[o.ID] = true
		if strings.TrimSpace(o.Title) == "" && strings.TrimSpace(o.Description) == "" {
			return apperrors.NewCatalogError("override sets neither title nor description", apperrors.ErrInvalidCatalog).WithStepID(o.ID)
		}
	}
	return nil
}

// Apply returns a new catalog with the overrides merged in.
// Empty fields keep the base value.
func (f *OverrideFile) Apply(base *Catalog) (*Catalog, error) {
	if err := f.Validate(base); err != nil {
		return nil, err
	}

	overrides := make(map[string]Descriptor, len(f.Steps))
	for _, o := range f.Steps {
		overrides[o.ID] = o
	}
	merge := func(in []Descriptor) []Descriptor {
		out := make([]Descriptor, len(in))
		for i, d := range in {
			if o, ok := overrides[d.ID]; ok {
				if strings.TrimSpace(o.Title) != "" {
					d.Title = o.Title
				}
				if strings.TrimSpace(o.Description) != "" {
					d.Description = o.Description
				}
			}
			out[i] = d
		}
		return out
	}

	return New(merge(base.pipeline), merge(base.manual), merge(base.notices))
}

// Export renders the catalog narrative as an override file, useful as a
// starting point for customization.
func Export(c *Catalog) ([]byte, error) {
	file := OverrideFile{Version: "1"}
	for _, d := range c.All() {
		file.Steps = append(file.Steps, Descriptor{ID: d.ID, Title: d.Title, Description: d.Description})
	}
	return yaml.Marshal(&file)
}
