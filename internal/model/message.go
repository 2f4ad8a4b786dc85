// Package model defines the core domain models used throughout the application.
package model

import "time"

// RawMessage is an inbound SMS as delivered by the trigger source.
// It is ephemeral; the pipeline never stores it directly.
type RawMessage struct {
	ReceivedAt time.Time
	Sender     string
	Body       string
}

// MessageLogEntry is the append-only audit record written once per inbound
// message, whether or not it parsed as a transaction. It is never mutated
// after creation and is retained for duplicate detection.
type MessageLogEntry struct {
	ReceivedAt time.Time
	CreatedAt  time.Time
	ID         string
	UserID     string
	Sender     string
	Body       string
	Confidence float64
	Parsed     bool
}
