package api

// UserListRequest is sent to POST /user/list.
type UserListRequest struct {
	AccessToken string `json:"accesstoken"`
}

// UserListResponse is returned by POST /user/list.
type UserListResponse struct {
	Users      []UserRecord `json:"users"`
	TotalUsers int          `json:"total_users"`
}

// UserRecord is one member record of the user list. Only the small subset
// of member attributes the terminal needs is decoded; everything else the
// service sends is ignored.
type UserRecord struct {
	MemberID      uint32      `json:"memberid"`
	FirstName     string      `json:"firstname"`
	LastName      string      `json:"lastname"`
	MemberStatus  string      `json:"memberstatus"`
	KeyManagement []KeyRecord `json:"keymanagement"`
}

// KeyRecord is one key assignment of a member. NFC tags appear here with a
// well-known label prefix; other keys (lockers, doors) share the list.
type KeyRecord struct {
	Title   string `json:"title"`   // key label
	KeyName string `json:"keyname"` // key number (tag id for NFC keys)
}

// ArticleListRequest is sent to POST /articles/list.
type ArticleListRequest struct {
	AccessToken string `json:"accesstoken"`
}

// ArticleListResponse is returned by POST /articles/list.
type ArticleListResponse struct {
	Articles      []ArticleRecord `json:"articles"`
	TotalArticles int             `json:"total_articles"`
}

// ArticleRecord is one article record of the article list.
type ArticleRecord struct {
	ArticleID   string `json:"articleid"`
	Designation string `json:"designation"`
	Price       int64  `json:"price"` // unit price in cents
}
