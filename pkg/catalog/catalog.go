package catalog

import (
	"fmt"
	"slices"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Slot names a mode-dependent message.
type Slot string

const (
	SlotAdd    Slot = "add"
	SlotChange Slot = "change"
	SlotUnsure Slot = "unsure"
	SlotRemove Slot = "remove"
)

// Entry is one position of the tour. Exactly one of Text or Slot is set.
type Entry struct {
	Target domain.Target `mapstructure:"target" json:"target"`
	Text   string        `mapstructure:"text" json:"text,omitempty"`
	Slot   Slot          `mapstructure:"slot" json:"slot,omitempty"`
}

// Catalog is the source of step lists for every mode.
type Catalog struct {
	Entries  []Entry
	Variants map[domain.Mode]map[Slot]string
}

// Build returns the ordered steps for mode.
func (c *Catalog) Build(mode domain.Mode) ([]domain.Step, error) {
	if len(c.Entries) == 0 {
		return nil, domain.ErrEmptyTour
	}

	variants, ok := c.Variants[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}

	steps := make([]domain.Step, 0, len(c.Entries))
	for i, e := range c.Entries {
		msg := e.Text
		if e.Slot != "" {
			msg, ok = variants[e.Slot]
			if !ok || msg == "" {
				return nil, fmt.Errorf("%w: mode %q slot %q (entry %d)", domain.ErrMissingVariant, mode, e.Slot, i)
			}
		}
		steps = append(steps, domain.Step{Target: e.Target, Message: msg})
	}
	return steps, nil
}

// Modes returns the modes the catalog has wording for, in a stable order:
// built-in modes first, then any others sorted by name.
func (c *Catalog) Modes() []domain.Mode {
	var out []domain.Mode
	seen := make(map[domain.Mode]bool)
	for _, m := range domain.Modes() {
		if _, ok := c.Variants[m]; ok {
			out = append(out, m)
			seen[m] = true
		}
	}
	var extra []domain.Mode
	for m := range c.Variants {
		if !seen[m] {
			extra = append(extra, m)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Validate checks that every mode can build a full step list.
func (c *Catalog) Validate() error {
	if len(c.Entries) == 0 {
		return domain.ErrEmptyTour
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: catalog defines no modes", domain.ErrUnknownMode)
	}
	for i, e := range c.Entries {
		if e.Target == "" {
			return fmt.Errorf("entry %d: target is required", i)
		}
		if (e.Text == "") == (e.Slot == "") {
			return fmt.Errorf("entry %d (%s): exactly one of text or slot must be set", i, e.Target)
		}
	}
	for m := range c.Variants {
		if _, err := c.Build(m); err != nil {
			return err
		}
	}
	return nil
}
