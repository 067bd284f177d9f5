// Package roster holds the ordered list of players waiting to be drafted.
package roster

import (
	"strings"

	"github.com/mcoot/teamdraft/internal/model"
)

// Roster is an ordered set of unique, trimmed, non-empty names capped at MaxRosterSize.
// It is not safe for concurrent use; the session controller guards it.
type Roster struct {
	names []string
}

// New builds a roster from untrusted input, dropping anything that would break its rules
func New(names []string) *Roster {
	return &Roster{names: Sanitize(names)}
}

// Sanitize trims names and drops empties and duplicates, keeping the first MaxRosterSize
func Sanitize(names []string) []string {
	r := &Roster{names: make([]string, 0, len(names))}
	for _, n := range names {
		_ = r.Add(n)
	}
	return r.names
}

// Add appends a single player
func (r *Roster) Add(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return model.ErrEmptyName
	case r.Contains(name):
		return model.ErrDuplicateName
	case len(r.names) >= model.MaxRosterSize:
		return model.ErrRosterFull
	}
	r.names = append(r.names, name)
	return nil
}

// AddBulk adds one player per line, skipping invalid lines and stopping when full.
// It returns the names that were added.
func (r *Roster) AddBulk(text string) []string {
	added := []string{}
	for _, line := range strings.Split(text, "\n") {
		if len(r.names) >= model.MaxRosterSize {
			break
		}
		if err := r.Add(line); err == nil {
			added = append(added, strings.TrimSpace(line))
		}
	}
	return added
}

// Remove deletes a player, reporting whether they were present
func (r *Roster) Remove(name string) error {
	name = strings.TrimSpace(name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i:i], r.names[i+1:]...)
			return nil
		}
	}
	return model.ErrPlayerMissing
}

// Clear empties the roster, reporting whether anything was removed
func (r *Roster) Clear() bool {
	if len(r.names) == 0 {
		return false
	}
	r.names = []string{}
	return true
}

// Contains reports whether a name is on the roster (exact match)
func (r *Roster) Contains(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the roster in order
func (r *Roster) Names() []string {
	return append([]string{}, r.names...)
}

// Len returns the number of players
func (r *Roster) Len() int {
	return len(r.names)
}
