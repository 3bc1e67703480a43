package systems

// SystemInfo describes a field system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (matches the perf phase name)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "input", "motion", "output")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in tick order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "audio", Name: "Audio", Description: "Advances the source and reads band energy", Category: "input"})
	r.Register(SystemInfo{ID: "trigger", Name: "Trigger", Description: "Starts a sweep when the focus band crosses the threshold", Category: "input"})

	r.Register(SystemInfo{ID: "ripple", Name: "Ripple", Description: "Sweeps ring heights outward along the curve", Category: "motion"})
	r.Register(SystemInfo{ID: "spring", Name: "Spring", Description: "Oscillates ring 0 and attenuates outward", Category: "motion"})
	r.Register(SystemInfo{ID: "settle", Name: "Settle", Description: "Eases idle rings toward their target heights", Category: "motion"})

	r.Register(SystemInfo{ID: "commit", Name: "Commit", Description: "Writes the buffer to the particle backend", Category: "output"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Records samples and flushes windows", Category: "output"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
