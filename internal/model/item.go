package model

import (
	"fmt"
	"time"
)

// Table identifies one of the two active tables.
type Table string

// Active tables.
const (
	TableLost  Table = "lost"
	TableFound Table = "found"
)

// ParseTable converts a wire value into a Table, rejecting anything else.
func ParseTable(s string) (Table, error) {
	switch Table(s) {
	case TableLost, TableFound:
		return Table(s), nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown table %q", s), "table")
	}
}

// Valid reports whether t names an active table.
func (t Table) Valid() bool {
	return t == TableLost || t == TableFound
}

// StatusPending is the only status an active record carries.
const StatusPending = "pending"

// Details holds the descriptive and party attributes shared by every
// representation of an item, whichever table currently holds it.
type Details struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Floor         string `json:"floor"`
	Location      string `json:"location"`
	Description   string `json:"description,omitempty"`
	ItemDate      string `json:"item_date"`
	ItemTime      string `json:"item_time"`
	PersonName    string `json:"person_name"`
	Occupation    string `json:"occupation"`
	ContactNumber string `json:"contact_number"`
	ContactEmail  string `json:"contact_email"`
	PhotoURL      string `json:"photo_url,omitempty"`
}

// Item is a pending report in the lost or found table.
type Item struct {
	ID    int64 `json:"id"`
	Table Table `json:"table"`
	Details
	Status         string    `json:"status"`
	StateChangedAt time.Time `json:"state_changed_at"`
}

// ArchiveRecord is an item removed from an active table because it aged out
// or was deemed unmatchable.
type ArchiveRecord struct {
	ID int64 `json:"id"`
	Details
	Reason      Reason    `json:"archive_reason"`
	SourceTable Table     `json:"source_table"`
	OriginalID  *int64    `json:"original_id,omitempty"`
	ArchivedAt  time.Time `json:"archived_at"`
}

// DonationRecord is an archived item that was released for donation. Terminal.
type DonationRecord struct {
	ID int64 `json:"id"`
	Details
	ArchiveID   int64     `json:"archive_id"`
	Reason      Reason    `json:"archive_reason"`
	SourceTable Table     `json:"source_table"`
	OriginalID  *int64    `json:"original_id,omitempty"`
	DonatedAt   time.Time `json:"donated_at"`
}

// SolvedRecord pairs one lost report with one found report.
type SolvedRecord struct {
	ID           int64      `json:"id"`
	LostID       int64      `json:"lost_id"`
	FoundID      int64      `json:"found_id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	PhotoURL     string     `json:"photo_url,omitempty"`
	ResolvedDate time.Time  `json:"resolved_date"`
	ClaimedBy    string     `json:"claimed_by"`
	IsClaimed    bool       `json:"is_claimed"`
	ClaimedDate  *time.Time `json:"claimed_date,omitempty"`
}

// Stats is the dashboard summary.
type Stats struct {
	Pending    int `json:"pending"`
	Resolved   int `json:"resolved"`
	TotalItems int `json:"totalItems"`
}
