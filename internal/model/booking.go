package model

import "time"

// Booking statuses. A booking starts PENDING and is moved to exactly one
// terminal status by an administrator decision.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Booking records a request to occupy a seminar hall for a time slot on a
// single calendar date. Date and times are kept in their string forms so
// that interval comparisons reduce to lexicographic comparisons.
//
// Fields:
//  ID              – primary key identifier.
//  HallID          – hall being booked.
//  RequesterID     – user who created the booking.
//  RequesterName   – requester display name, denormalized at creation.
//  Purpose         – free-text reason for the booking.
//  Date            – calendar date in "YYYY-MM-DD" form.
//  StartTime       – slot start in "HH:MM" form (inclusive).
//  EndTime         – slot end in "HH:MM" form (exclusive).
//  Attendees       – expected head count.
//  Status          – PENDING, APPROVED or REJECTED.
//  RejectionReason – set once, at the transition to REJECTED (nil otherwise).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	HallID          uint64    // bookings.hall_id
	RequesterID     uint64    // bookings.requester_id
	RequesterName   string    // bookings.requester_name
	Purpose         string    // bookings.purpose
	Date            string    // bookings.date ("YYYY-MM-DD")
	StartTime       string    // bookings.start_time ("HH:MM")
	EndTime         string    // bookings.end_time ("HH:MM")
	Attendees       uint32    // bookings.attendees
	Status          string    // bookings.status
	RejectionReason *string   // bookings.rejection_reason (nullable)
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}

// Occupies reports whether the booking blocks its slot. Rejected bookings
// never occupy a slot and are excluded from conflict checks.
func (b Booking) Occupies() bool { return b.Status != StatusRejected }
