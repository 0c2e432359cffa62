// Package steps holds the static narrative of the log-archive script: the
// ten pipeline steps in execution order, the manual-testing notes collected
// while the script was developed, and the notices shown outside a normal
// step (the simulated failure and the welcome text).
package steps

import (
	"fmt"
	"slices"

	"github.com/gobwas/glob"
)

// Kind classifies a catalog entry.
type Kind string

const (
	// KindPipeline is one of the ordered steps of the script.
	KindPipeline Kind = "pipeline"
	// KindManual is a manual-testing note.
	KindManual Kind = "manual"
	// KindNotice is a canned panel (error, welcome) that ShowInfo never resolves.
	KindNotice Kind = "notice"
)

// Well-known notice ids.
const (
	IDComplete      = "complete"
	IDArchiveFailed = "archive-failed"
	IDWelcome       = "welcome"
)

// Descriptor is the display metadata for one catalog entry.
type Descriptor struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Kind        Kind   `yaml:"-" json:"kind"`
	// Decision marks a branching step that pauses longer before moving on.
	Decision bool `yaml:"-" json:"decision,omitempty"`
	// Index is the 1-based position of a pipeline step, 0 for other kinds.
	Index int `yaml:"-" json:"index,omitempty"`
}

// Catalog is an immutable, ordered set of descriptors.
type Catalog struct {
	pipeline []Descriptor
	manual   []Descriptor
	notices  []Descriptor
	byID     map[string]Descriptor
}

// New builds a catalog. Pipeline descriptors are indexed in the order given.
// Ids must be unique across all kinds.
func New(pipeline, manual, notices []Descriptor) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Descriptor)}

	add := func(d Descriptor) error {
		if d.ID == "" {
			return fmt.Errorf("descriptor with empty id")
		}
		if _, dup := c.byID[d.ID]; dup {
			return fmt.Errorf("duplicate step id %q", d.ID)
		}
		c.byID[d.ID] = d
		return nil
	}

	for i, d := range pipeline {
		d.Kind = KindPipeline
		d.Index = i + 1
		if err := add(d); err != nil {
			return nil, err
		}
		c.pipeline = append(c.pipeline, d)
	}
	for _, d := range manual {
		d.Kind = KindManual
		d.Index = 0
		d.Decision = false
		if err := add(d); err != nil {
			return nil, err
		}
		c.manual = append(c.manual, d)
	}
	for _, d := range notices {
		d.Kind = KindNotice
		d.Index = 0
		d.Decision = false
		if err := add(d); err != nil {
			return nil, err
		}
		c.notices = append(c.notices, d)
	}
	return c, nil
}

// Len returns the number of pipeline steps.
func (c *Catalog) Len() int {
	return len(c.pipeline)
}

// At returns the pipeline step at a 1-based index.
func (c *Catalog) At(index int) (Descriptor, bool) {
	if index < 1 || index > len(c.pipeline) {
		return Descriptor{}, false
	}
	return c.pipeline[index-1], true
}

// IndexOf returns the 1-based index of a pipeline step id, or 0.
func (c *Catalog) IndexOf(id string) int {
	if d, ok := c.byID[id]; ok && d.Kind == KindPipeline {
		return d.Index
	}
	return 0
}

// Lookup resolves the ids that the info panel accepts: pipeline steps and
// manual-testing notes. Notices are deliberately excluded.
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	d, ok := c.byID[id]
	if !ok || d.Kind == KindNotice {
		return Descriptor{}, false
	}
	return d, true
}

// Entry resolves any id, notices included.
func (c *Catalog) Entry(id string) (Descriptor, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Pipeline returns the pipeline steps in order.
func (c *Catalog) Pipeline() []Descriptor {
	return slices.Clone(c.pipeline)
}

// Manual returns the manual-testing notes.
func (c *Catalog) Manual() []Descriptor {
	return slices.Clone(c.manual)
}

// Notices returns the canned notices.
func (c *Catalog) Notices() []Descriptor {
	return slices.Clone(c.notices)
}

// All returns every entry: pipeline, then manual, then notices.
func (c *Catalog) All() []Descriptor {
	all := make([]Descriptor, 0, len(c.byID))
	all = append(all, c.pipeline...)
	all = append(all, c.manual...)
	all = append(all, c.notices...)
	return all
}

// Match returns every entry whose id matches a glob pattern such as
// "lock*" or "{archive,verify}". An empty pattern matches everything.
func (c *Catalog) Match(pattern string) ([]Descriptor, error) {
	if pattern == "" {
		return c.All(), nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var out []Descriptor
	for _, d := range c.All() {
		if g.Match(d.ID) {
			out = append(out, d)
		}
	}
	return out, nil
}
