package models

// City is a read-only lookup row used for the city/state referential
// check at registration time. CRUD over cities and states lives in the
// back-office proper, not in this service.
type City struct {
	ID      string
	Name    string
	StateID string
}

// State is a read-only lookup row
type State struct {
	ID   string
	Name string
}
