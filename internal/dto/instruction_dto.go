package dto

// Instruction is the normalized outcome of one dispatched webhook event,
// published to the event topic and consumed in the background.
type Instruction struct {
	EventID   string `json:"event_id"` // processing id for log correlation
	Text      string `json:"text"`
	SessionID string `json:"session_id"` // group/room id, or user id for 1:1
	ActorID   string `json:"actor_id"`   // always the sender's user id
	ReplyTo   string `json:"reply_to"`
}
