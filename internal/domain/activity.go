package domain

import "time"

// ActivityKind identifies the entity behind a feed entry.
type ActivityKind string

const (
	ActivityKindUser     ActivityKind = "user"
	ActivityKindMedicine ActivityKind = "medicine"
)

// ActivityAction distinguishes fresh records from edited ones.
type ActivityAction string

const (
	ActivityActionCreated ActivityAction = "created"
	ActivityActionUpdated ActivityAction = "updated"
)

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	Kind      ActivityKind   `json:"kind"`
	Action    ActivityAction `json:"action"`
	EntityID  string         `json:"entity_id"`
	Label     string         `json:"label"`
	Timestamp time.Time      `json:"timestamp"`
}
