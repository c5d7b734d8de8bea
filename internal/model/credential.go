package model

// Credential is a login account for the monitoring interface.
// SessionToken holds the single currently valid session token for the
// account; an empty string means nobody has logged in yet.
type Credential struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	SessionToken string `json:"-"`
}
