// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingDecidedEvent is published when an administrator approves or rejects
// a booking. It carries enough information for downstream consumers to log
// or notify without querying the primary database.
type BookingDecidedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	HallID          uint64 `json:"hall_id"`
	RequesterID     uint64 `json:"requester_id"`
	RequesterName   string `json:"requester_name"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	DecidedBy       uint64 `json:"decided_by"`
	DecidedAt       string `json:"decided_at"`
}
