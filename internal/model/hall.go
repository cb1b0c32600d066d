package model

import "time"

// Hall represents a bookable seminar hall. Halls are created and maintained
// by administrators; bookings reference a hall by ID only and never own it.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique hall name.
//  Location  – building / floor description.
//  Capacity  – maximum seating capacity.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
	ID        uint64    // halls.id
	Name      string    // halls.name
	Location  string    // halls.location
	Capacity  uint32    // halls.capacity
	CreatedAt time.Time // halls.created_at
	UpdatedAt time.Time // halls.updated_at
}
