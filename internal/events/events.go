// Package events provides event emission for the apiary activity feed.
//
// The simulation core emits discrete events (release, return, raid
// outcomes, recovery, shutdown) through a Sink. Sinks must be safe to
// call from multiple goroutines; a single record is never interleaved
// with another.
package events

import (
	"time"
)

// Kind is the category of a simulation event.
type Kind string

// Event kinds emitted by the simulation core.
const (
	KindRelease       Kind = "release"
	KindReturn        Kind = "return"
	KindRaidSuccess   Kind = "raid_success"
	KindRaidFailure   Kind = "raid_failure"
	KindRecoveryStart Kind = "recovery_start"
	KindRecoveryEnd   Kind = "recovery_end"
	KindShutdown      Kind = "shutdown"
)

// Well-known actor names.
const (
	ActorHive = "hive"
	ActorBear = "bear"
)

// Event is a single record in the activity stream.
type Event struct {
	Timestamp string                 `json:"ts"`
	Run       string                 `json:"run"`
	Kind      Kind                   `json:"kind"`
	Actor     string                 `json:"actor"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Sink accepts events from the simulation core. Implementations are
// best-effort: recording never fails from the caller's point of view.
type Sink interface {
	Record(kind Kind, actor string, payload map[string]interface{})
}

// stamp fills in the timestamp for a new event.
func stamp(run string, kind Kind, actor string, payload map[string]interface{}) Event {
	return Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Run:       run,
		Kind:      kind,
		Actor:     actor,
		Payload:   payload,
	}
}

// Payload helpers for common event structures.

// ReleasePayload creates a payload for release events.
func ReleasePayload(beeID int, hunt time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"bee":  beeID,
		"hunt": hunt.String(),
	}
}

// ReturnPayload creates a payload for return events.
func ReturnPayload(beeID, honey int) map[string]interface{} {
	return map[string]interface{}{
		"bee":   beeID,
		"honey": honey,
	}
}

// RaidPayload creates a payload for raid outcome events.
// present is the number of bees at home when the raid was attempted.
func RaidPayload(present, honey int) map[string]interface{} {
	return map[string]interface{}{
		"present": present,
		"honey":   honey,
	}
}

// RecoveryPayload creates a payload for recovery events.
func RecoveryPayload(d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"recovery": d.String(),
	}
}
