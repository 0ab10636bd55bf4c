// README: Rider and driver registries with login flag mutation.
package registry

import (
	"context"
	"errors"
	"sync"
)

var ErrUnknownUser = errors.New("unknown rider or driver")

type Rider struct {
	Name   string
	Phone  string
	Online bool
}

type Driver struct {
	Name        string
	VehicleKind string
	Rating      float64
	Available   bool
}

// Registry is the keyed rider/driver lookup collaborator. It also serves the
// allocation strategies as their candidate and rating source.
type Registry struct {
	mu          sync.RWMutex
	riders      map[string]*Rider
	drivers     map[string]*Driver
	driverOrder []string
}

func New() *Registry {
	return &Registry{
		riders:  map[string]*Rider{},
		drivers: map[string]*Driver{},
	}
}

func (r *Registry) AddRider(name, phone string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.riders[name] = &Rider{Name: name, Phone: phone}
}

func (r *Registry) AddDriver(name, vehicleKind string, rating float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.drivers[name]; !exists {
		r.driverOrder = append(r.driverOrder, name)
	}
	r.drivers[name] = &Driver{Name: name, VehicleKind: vehicleKind, Rating: rating}
}

func (r *Registry) Rider(name string) (Rider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.riders[name]
	if !ok {
		return Rider{}, false
	}
	return *u, true
}

func (r *Registry) Driver(name string) (Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[name]
	if !ok {
		return Driver{}, false
	}
	return *d, true
}

// Login flips the online flag for a rider, or the availability flag for a
// driver. Riders are checked first, matching the original lookup order.
func (r *Registry) Login(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.riders[name]; ok {
		u.Online = true
		return nil
	}
	if d, ok := r.drivers[name]; ok {
		d.Available = true
		return nil
	}
	return ErrUnknownUser
}

func (r *Registry) Logout(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.riders[name]; ok {
		u.Online = false
		return nil
	}
	if d, ok := r.drivers[name]; ok {
		d.Available = false
		return nil
	}
	return ErrUnknownUser
}

// AvailableDrivers returns available drivers in registration order.
func (r *Registry) AvailableDrivers(_ context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, name := range r.driverOrder {
		if r.drivers[name].Available {
			out = append(out, name)
		}
	}
	return out
}

// TopRated returns the available driver with the highest rating.
func (r *Registry) TopRated(_ context.Context) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	best := ""
	bestRating := -1.0
	for _, name := range r.driverOrder {
		d := r.drivers[name]
		if d.Available && d.Rating > bestRating {
			best = name
			bestRating = d.Rating
		}
	}
	return best, best != ""
}
