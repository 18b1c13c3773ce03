package model

import "time"

// Floor groups rooms for browsing and administration.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the floor.
//  Number    – floor number within the building.
//  CreatedAt – creation timestamp.
type Floor struct {
	ID        uint64    // floors.id
	Name      string    // floors.name
	Number    uint32    // floors.number
	CreatedAt time.Time // floors.created_at
}
