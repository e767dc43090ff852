package sync

import (
	"fmt"
	"strings"
	"time"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
)

// Diff compares requested attributes with what sfboot reported for one section.
// A nil section reports every attribute as missing. Names are visited in
// sorted order.
func Diff(requested domain.Attributes, reported *domain.Section) *DiffResult {
	result := &DiffResult{}
	for _, name := range requested.Names() {
		want := requested[name]
		got, ok := reported.Get(name)
		switch {
		case !ok:
			result.Missing = append(result.Missing, name)
		case domain.Equal(want, got):
			result.Matched = append(result.Matched, name)
		default:
			result.Changed = append(result.Changed, Mismatch{Name: name, Requested: want, Reported: got})
		}
	}
	return result
}

// Err returns nil for a clean result and a summary of the mismatches otherwise.
func (d *DiffResult) Err() error {
	if d.Clean() {
		return nil
	}
	parts := make([]string, 0, len(d.Changed)+len(d.Missing))
	for _, m := range d.Changed {
		parts = append(parts, fmt.Sprintf("%s: requested %q, reported %q", m.Name, m.Requested.Text(), m.Reported.Text()))
	}
	for _, name := range d.Missing {
		parts = append(parts, fmt.Sprintf("%s: not reported", name))
	}
	return fmt.Errorf("sfboot did not apply %d attribute(s): %s", len(parts), strings.Join(parts, "; "))
}

// Verify builds the ChangeSet of an apply against target. An empty target
// compares against the first reported section.
func Verify(target string, requested domain.Attributes, reported *domain.Config) *ChangeSet {
	section := reported.First()
	if target != "" {
		section = reported.Section(target)
	}
	return &ChangeSet{
		Target:    target,
		Requested: requested,
		Reported:  &Snapshot{Target: target, Timestamp: time.Now(), Config: reported},
		Diff:      Diff(requested, section),
	}
}
