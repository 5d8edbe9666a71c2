package api

// SaleAddRequest is sent to POST /sale/add to store a purchase on the
// member's account. The idempotency token travels in the Idempotency-Key
// request header, not in the body.
type SaleAddRequest struct {
	AccessToken string `json:"accesstoken"`
	BookingDate string `json:"bookingdate"` // "yyyy-mm-dd"
	ArticleID   string `json:"articleid"`
	Amount      int    `json:"amount"`
	MemberID    uint32 `json:"memberid"`
	TotalPrice  int64  `json:"totalprice"` // in cents
	Comment     string `json:"comment,omitempty"`
}

// SaleAddResponse is returned by POST /sale/add.
type SaleAddResponse struct {
	HTTPStatusCode int `json:"httpstatuscode"`
}
