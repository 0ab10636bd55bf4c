// README: Registry lookup and login tests.
package registry

import (
	"context"
	"errors"
	"testing"
)

func seeded() *Registry {
	r := New()
	r.AddRider("vivek", "9700407379")
	r.AddDriver("srinu", "car", 4.2)
	r.AddDriver("raju", "car", 4.8)
	return r
}

func TestLoginFlipsFlags(t *testing.T) {
	r := seeded()

	if err := r.Login("vivek"); err != nil {
		t.Fatalf("rider login: %v", err)
	}
	if u, _ := r.Rider("vivek"); !u.Online {
		t.Fatal("rider not online after login")
	}

	if err := r.Login("srinu"); err != nil {
		t.Fatalf("driver login: %v", err)
	}
	if d, _ := r.Driver("srinu"); !d.Available {
		t.Fatal("driver not available after login")
	}

	if err := r.Logout("srinu"); err != nil {
		t.Fatalf("driver logout: %v", err)
	}
	if d, _ := r.Driver("srinu"); d.Available {
		t.Fatal("driver still available after logout")
	}

	if err := r.Login("nobody"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("unknown login: want ErrUnknownUser, got %v", err)
	}
}

func TestAvailableDriversKeepsRegistrationOrder(t *testing.T) {
	r := seeded()
	ctx := context.Background()

	if got := r.AvailableDrivers(ctx); len(got) != 0 {
		t.Fatalf("available before login = %v", got)
	}

	_ = r.Login("raju")
	_ = r.Login("srinu")
	got := r.AvailableDrivers(ctx)
	if len(got) != 2 || got[0] != "srinu" || got[1] != "raju" {
		t.Fatalf("available = %v, want [srinu raju]", got)
	}
}

func TestTopRatedPrefersHighestAvailable(t *testing.T) {
	r := seeded()
	ctx := context.Background()

	if _, ok := r.TopRated(ctx); ok {
		t.Fatal("top rated reported with no available drivers")
	}

	_ = r.Login("srinu")
	_ = r.Login("raju")
	name, ok := r.TopRated(ctx)
	if !ok || name != "raju" {
		t.Fatalf("top rated = %q (%v), want raju", name, ok)
	}
}
