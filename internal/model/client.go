package model

import "time"

// Client is a hotel guest account.  Registration, approval and profile
// management are handled by the account service; this service only reads
// clients to scope reservation listings.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – client display name.
//  Email      – unique login email.
//  ApprovedBy – staff member who approved the account (nil while pending).
//  CreatedAt  – creation timestamp.
type Client struct {
	ID         uint64    // clients.id
	Name       string    // clients.name
	Email      string    // clients.email
	ApprovedBy *uint64   // clients.approved_by (nullable)
	CreatedAt  time.Time // clients.created_at
}
