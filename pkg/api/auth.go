// Package api defines the JSON request and response types of the billing
// service REST interface consumed by the terminal.
package api

// AccessTokenResponse is returned by GET /auth/accesstoken.
type AccessTokenResponse struct {
	AccessToken string `json:"accesstoken"`
}

// SignInRequest is sent to POST /auth/signin to bind credentials to an
// access token. The password is transferred as an MD5 hex digest, as
// dictated by the billing service.
type SignInRequest struct {
	AccessToken string `json:"accesstoken"`
	Username    string `json:"username"`
	PasswordMD5 string `json:"password_md5"`
	AppKey      string `json:"appkey"`
	CID         uint32 `json:"cid,omitempty"`
}

// SignInResponse is returned by POST /auth/signin.
type SignInResponse struct {
	HTTPStatusCode int `json:"httpstatuscode"`
}

// UserInformationRequest is sent to POST /auth/getuser to validate an
// access token and fetch information about the signed-in account.
type UserInformationRequest struct {
	AccessToken string `json:"accesstoken"`
}

// UserInformationResponse is returned by POST /auth/getuser.
type UserInformationResponse struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	MemberID  uint32 `json:"memberid"`
}

// ErrorResponse is the error envelope returned with non-2xx status codes.
type ErrorResponse struct {
	Error string `json:"error"`
}
