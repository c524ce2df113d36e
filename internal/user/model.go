package user

import "time"

// User is the durable record of a registered account holder. The record is
// created exactly once and is read-only afterwards.
type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	DateOfBirth      time.Time
	MobileNumber     string
	WalletAddress    string
	WalletPrivateKey string
	CreatedAt        time.Time
}

// View is the caller-facing projection of a User. It carries the stored
// credential hash (the gateway strips it before the payload leaves the
// system) but never the wallet private key.
type View struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	PasswordHash  string `json:"password"`
	DateOfBirth   string `json:"dob"`
	MobileNumber  string `json:"mobno"`
	WalletAddress string `json:"wallet_address"`
	Message       string `json:"message"`
}
