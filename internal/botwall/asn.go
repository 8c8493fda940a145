package botwall

// ASNLookup attributes an IP address to an owning network. It exists as
// optional defense-in-depth: Meta sometimes fetches sensitive routes
// with a browser user agent from its own address space.
type ASNLookup interface {
	// IsMetaNetwork reports whether ip belongs to Meta infrastructure.
	// Implementations must not block; callers absorb errors as "no".
	IsMetaNetwork(ip string) (bool, error)
}

// noASNLookup is the default lookup. It never confirms, which keeps the
// classifier's behavior independent of any external IP database.
type noASNLookup struct{}

func (noASNLookup) IsMetaNetwork(string) (bool, error) { return false, nil }
