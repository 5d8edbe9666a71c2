package models

// TagID is the identifier read from an NFC card or tag, encoded as a
// lowercase hex string (e.g. "04a1b2c3").
type TagID string

// UserID is the stable member identifier of the billing service
// (the Vereinsflieger "memberid" attribute).
type UserID uint32

// User represents a club member authorized to purchase
type User struct {
	ID     UserID  `json:"id"`      // member id
	Name   string  `json:"name"`    // display name
	TagIDs []TagID `json:"tag_ids"` // NFC tags bound to this member
}

// HasTag reports whether the given tag is bound to this user.
func (u User) HasTag(tag TagID) bool {
	for _, t := range u.TagIDs {
		if t == tag {
			return true
		}
	}
	return false
}
