package models

import "time"

// Snapshot is one complete fetch of the authorized users and purchasable
// articles. A snapshot is immutable once built; the directory cache replaces
// it wholesale on refresh and readers never observe a partial update.
type Snapshot struct {
	Users         []User    `json:"users"`
	Articles      []Article `json:"articles"` // in configured display order
	LastRefreshed time.Time `json:"last_refreshed"`
	Generation    uint64    `json:"generation"`
}

// Age returns how old the snapshot is at the given time.
// A zero LastRefreshed (never refreshed) reports an infinite age.
func (s *Snapshot) Age(now time.Time) time.Duration {
	if s.LastRefreshed.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return now.Sub(s.LastRefreshed)
}
