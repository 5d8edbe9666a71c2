package models

// ArticleID is the stable article identifier of the billing service
// (the Vereinsflieger "articleid" attribute).
type ArticleID string

// Article represents a purchasable item
type Article struct {
	ID    ArticleID `json:"id"`    // article id
	Name  string    `json:"name"`  // display name
	Price int64     `json:"price"` // unit price in minor currency units (cents)
}
