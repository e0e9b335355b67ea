package model

import (
	"sort"
)

// Cohort is the category label attached to every entity (e.g. party "R" or "D").
type Cohort string

// Entity is one named subject of analysis read from the candidates file.
type Entity struct {
	ID     string `json:"id"`
	Cohort Cohort `json:"cohort"`
}

// Roster is the ordered entity list. It is built once and never mutated.
type Roster struct {
	entities []Entity
	cohorts  map[string]Cohort
}

func NewRoster(entities []Entity) Roster {
	r := Roster{
		entities: make([]Entity, len(entities)),
		cohorts:  make(map[string]Cohort, len(entities)),
	}
	copy(r.entities, entities)
	for _, e := range entities {
		if _, seen := r.cohorts[e.ID]; !seen {
			r.cohorts[e.ID] = e.Cohort
		}
	}
	return r
}

func (r Roster) Len() int {
	return len(r.entities)
}

// Entities returns a copy of the entity list in input order.
func (r Roster) Entities() []Entity {
	out := make([]Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// IDs returns the entity identifiers in input order.
func (r Roster) IDs() []string {
	ids := make([]string, 0, len(r.entities))
	for _, e := range r.entities {
		ids = append(ids, e.ID)
	}
	return ids
}

// Members returns the identifiers belonging to cohort c, in input order.
func (r Roster) Members(c Cohort) []string {
	var ids []string
	for _, e := range r.entities {
		if e.Cohort == c {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (r Roster) Set(c Cohort) IDSet {
	return NewIDSet(r.Members(c)...)
}

// Cohorts lists the distinct cohort labels in order of first appearance.
func (r Roster) Cohorts() []Cohort {
	seen := make(map[Cohort]bool)
	var out []Cohort
	for _, e := range r.entities {
		if !seen[e.Cohort] {
			seen[e.Cohort] = true
			out = append(out, e.Cohort)
		}
	}
	return out
}

func (r Roster) Contains(id string) bool {
	_, ok := r.cohorts[id]
	return ok
}

func (r Roster) CohortOf(id string) (Cohort, bool) {
	c, ok := r.cohorts[id]
	return c, ok
}

// Sorted returns the entities ordered by identifier, then cohort.
func (r Roster) Sorted() []Entity {
	out := r.Entities()
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Cohort < out[j].Cohort
	})
	return out
}

// IDSet is an immutable set of identifiers.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}

func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
