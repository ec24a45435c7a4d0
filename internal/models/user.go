package models

// User is a registered account. Salt is set only for records written with a
// salted password scheme; its absence marks a plain SHA-256 digest.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Salt         string `json:"salt,omitempty"`
}
