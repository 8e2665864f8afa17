package domain

// Status summarizes the state of the encryption engine without exposing key material.
type Status struct {
	Unlocked           bool `json:"unlocked"`
	ScheduledRotations int  `json:"scheduledRotations"`
	PendingRotations   int  `json:"pendingRotations"`
}
