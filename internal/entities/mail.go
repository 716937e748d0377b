package entities

// Mail is an in-game letter, optionally carrying currency and items
type Mail struct {
	ID         int64           `json:"id"`
	EventID    string          `json:"event_id"`
	SenderID   string          `json:"sender_id"`
	SenderName string          `json:"sender_name"`
	ReceiverID string          `json:"receiver_id"` // user id
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Gold       int             `json:"gold"`
	Cash       int             `json:"cash"`
	Items      []CharacterItem `json:"items,omitempty"`
	IsRead     bool            `json:"is_read"`
	ReadTime   int64           `json:"read_time"`
	IsClaim    bool            `json:"is_claim"`
	ClaimTime  int64           `json:"claim_time"`
	IsDelete   bool            `json:"is_delete"`
	DeleteTime int64           `json:"delete_time"`
	SentTime   int64           `json:"sent_time"`
}
