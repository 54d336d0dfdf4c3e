package store

// Stores bundles one engine's implementations.
type Stores struct {
	Users   UserStore
	Servers ServerStore
	Grants  GrantStore
	Health  HealthStore
}
