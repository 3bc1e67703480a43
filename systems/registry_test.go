package systems

import (
	"slices"
	"testing"

	"github.com/pthm-cable/ringfield/telemetry"
)

func TestRegistryCoversPerfPhases(t *testing.T) {
	reg := NewSystemRegistry()
	if !slices.Equal(reg.IDs(), telemetry.Phases) {
		t.Errorf("IDs = %v, want %v", reg.IDs(), telemetry.Phases)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewSystemRegistry()

	if got := reg.GetName("ripple"); got != "Ripple" {
		t.Errorf("GetName(ripple) = %q, want Ripple", got)
	}
	if got := reg.GetName("unknown"); got != "unknown" {
		t.Errorf("GetName(unknown) = %q, want fallback to ID", got)
	}
	if _, ok := reg.Get("unknown"); ok {
		t.Error("Get(unknown) reported ok")
	}
	if n := len(reg.ByCategory("motion")); n != 3 {
		t.Errorf("motion systems = %d, want 3", n)
	}
}
