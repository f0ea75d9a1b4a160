package dto

// LINE webhook envelope DTOs

type WebhookRequest struct {
	Destination string   `json:"destination"`
	Events      []*Event `json:"events"`
}

type Event struct {
	Type    string   `json:"type"`
	Source  *Source  `json:"source"`
	Message *Message `json:"message"`
}

type Source struct {
	Type    string `json:"type"` // "user" | "group" | "room"
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	RoomID  string `json:"roomId"`
}

type Message struct {
	Type    string   `json:"type"` // "text" | "location" | ...
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Mention *Mention `json:"mention,omitempty"`

	// Location message fields
	Title     string   `json:"title,omitempty"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Mention struct {
	Mentionees []*Mentionee `json:"mentionees"`
}

// Mentionee is one annotated mention span inside the message text. Index and
// Length are rune offsets into the text; IsSelf marks a mention of the bot.
type Mentionee struct {
	Index  int    `json:"index"`
	Length int    `json:"length"`
	UserID string `json:"userId,omitempty"`
	IsSelf bool   `json:"isSelf"`
}

const (
	EventTypeMessage = "message"

	MessageTypeText     = "text"
	MessageTypeLocation = "location"

	SourceTypeUser  = "user"
	SourceTypeGroup = "group"
	SourceTypeRoom  = "room"
)
