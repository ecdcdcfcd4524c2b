package models

// FlowSession holds the state of one booking flow between HTTP requests.
// It is JSON-marshalled into redis with a TTL; each session owns its draft
// exclusively, so no locking is needed beyond the cache's own atomicity.
type FlowSession struct {
	SessionID string       `json:"sessionId"`
	Slug      string       `json:"slug"`
	Business  Business     `json:"business"` // profile snapshot taken at flow entry
	StepIndex int          `json:"stepIndex"`
	Steps     []string     `json:"steps"` // ordered step IDs for this flow shape
	Draft     BookingDraft `json:"draft"`
	Submitted bool         `json:"submitted"`

	// AvailabilityGen is the generation of the newest availability request
	// issued for this session. Results carrying an older generation are
	// stale and must be discarded (last request wins).
	AvailabilityGen uint64 `json:"availabilityGen"`
}
