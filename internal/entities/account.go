package entities

// UserAccount is a login account. Gold, cash and the access token are cached
// as independent scalar entries keyed by user id.
type UserAccount struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
	Gold         int    `json:"gold"`
	Cash         int    `json:"cash"`
	AccessToken  string `json:"access_token"`
	UnbanTime    int64  `json:"unban_time"` // unix seconds, 0 when never banned
}
