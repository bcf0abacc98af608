package audit

import (
	"sort"

	"github.com/BearBump/RouteBox/internal/models"
)

const masked = "***"

// DiffConfig lists the fields a Differ skips or masks.
type DiffConfig struct {
	Ignore []string
	Mask   []string
}

type Differ struct {
	ignore map[string]struct{}
	mask   map[string]struct{}
}

func NewDiffer(cfg DiffConfig) *Differ {
	d := &Differ{
		ignore: make(map[string]struct{}, len(cfg.Ignore)),
		mask:   make(map[string]struct{}, len(cfg.Mask)),
	}
	for _, f := range cfg.Ignore {
		d.ignore[f] = struct{}{}
	}
	for _, f := range cfg.Mask {
		d.mask[f] = struct{}{}
	}
	return d
}

// Diff compares two flat snapshots and returns changed fields sorted by name.
// A key missing from one side is treated as nil.
func (d *Differ) Diff(before, after map[string]*string) []models.FieldChange {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	var out []models.FieldChange
	for k := range keys {
		if _, skip := d.ignore[k]; skip {
			continue
		}
		o, n := before[k], after[k]
		if equal(o, n) {
			continue
		}
		if _, m := d.mask[k]; m {
			o, n = maskValue(o), maskValue(n)
		}
		out = append(out, models.FieldChange{Field: k, OldValue: o, NewValue: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func equal(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func maskValue(v *string) *string {
	if v == nil {
		return nil
	}
	s := masked
	return &s
}
