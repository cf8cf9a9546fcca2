package model

// UserProfile is the operator profile returned by the remote login endpoint.
// Hotels is the comma-joined list of hotel names the operator may see; it
// becomes the HotelScope for every subsequent fetch.
type UserProfile struct {
	Username string `json:"username"`
	Hotels   string `json:"hotels"`
}

// LoginResult is the remote login response.
type LoginResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}
