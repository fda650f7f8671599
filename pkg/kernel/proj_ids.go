package kernel

import "github.com/google/uuid"

// ListingID is an opaque store-generated identifier
type ListingID string

func NewListingID() ListingID      { return ListingID(uuid.NewString()) }
func (l ListingID) String() string { return string(l) }
func (l ListingID) IsEmpty() bool  { return string(l) == "" }

// IsWellFormed reports whether the id has the shape the stores generate
func (l ListingID) IsWellFormed() bool {
	_, err := uuid.Parse(string(l))
	return err == nil
}

type EventID string

func NewEventID() EventID        { return EventID(uuid.NewString()) }
func (e EventID) String() string { return string(e) }
