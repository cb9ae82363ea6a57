package models

import (
	"sort"

	"voyage-booking/internal/status"
)

// Registry holds the active voyages ordered by ascending id.
type Registry struct {
	voyages []*Voyage
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Insert adds v at the position that keeps ids ascending.
func (r *Registry) Insert(v *Voyage) error {
	i := r.search(v.ID)
	if i < len(r.voyages) && r.voyages[i].ID == v.ID {
		return status.ErrVoyageExists
	}
	r.voyages = append(r.voyages, nil)
	copy(r.voyages[i+1:], r.voyages[i:])
	r.voyages[i] = v
	return nil
}

// Find returns the voyage with the given id.
func (r *Registry) Find(id int) (*Voyage, error) {
	i := r.search(id)
	if i < len(r.voyages) && r.voyages[i].ID == id {
		return r.voyages[i], nil
	}
	return nil, status.ErrVoyageNotFound
}

// Remove deletes the voyage with the given id.
func (r *Registry) Remove(id int) error {
	i := r.search(id)
	if i >= len(r.voyages) || r.voyages[i].ID != id {
		return status.ErrVoyageNotFound
	}
	r.voyages = append(r.voyages[:i], r.voyages[i+1:]...)
	return nil
}

// Exists reports whether a voyage with the id is active.
func (r *Registry) Exists(id int) bool {
	_, err := r.Find(id)
	return err == nil
}

// All returns the voyages in ascending id order. The slice must not be modified.
func (r *Registry) All() []*Voyage {
	return r.voyages
}

func (r *Registry) Len() int {
	return len(r.voyages)
}

func (r *Registry) search(id int) int {
	return sort.Search(len(r.voyages), func(i int) bool {
		return r.voyages[i].ID >= id
	})
}
