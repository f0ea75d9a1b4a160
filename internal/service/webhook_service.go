package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/y-ymmt/ikitaitoko-bot/internal/constant"
	"github.com/y-ymmt/ikitaitoko-bot/internal/dto"
	"github.com/y-ymmt/ikitaitoko-bot/internal/pkg/logger"
)

// IWebhookService normalizes inbound webhook events and hands the dispatched
// ones to the background consumer.
type IWebhookService interface {
	HandleEvent(ctx context.Context, event *dto.Event) error
}

type webhookService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewWebhookService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IWebhookService {
	return &webhookService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

// HandleEvent runs the single received → filtered_out | dispatched transition
// for one event. Dispatched instructions are published to the event topic so
// the webhook endpoint can acknowledge immediately.
func (s *webhookService) HandleEvent(ctx context.Context, event *dto.Event) error {
	instruction, ok := Normalize(event)
	if !ok {
		s.logger.Debug("webhook", "event filtered out", nil)
		return nil
	}

	payload, err := json.Marshal(instruction)
	if err != nil {
		return err
	}

	s.logger.Info("webhook", "dispatching instruction", map[string]interface{}{
		"event_id":   instruction.EventID,
		"session_id": instruction.SessionID,
	})
	return s.pubSub.Publish(s.topicName, message.NewMessage(uuid.NewString(), payload))
}

// Normalize derives a NormalizedInstruction from one webhook event. The
// boolean reports whether the bot should respond at all: location messages
// always dispatch, one-to-one text always dispatches, group/room text
// dispatches only when the bot itself is mentioned.
func Normalize(event *dto.Event) (*dto.Instruction, bool) {
	if event == nil || event.Type != dto.EventTypeMessage || event.Source == nil || event.Message == nil {
		return nil, false
	}

	var text string
	switch event.Message.Type {
	case dto.MessageTypeLocation:
		text = extractLocationText(event.Message)
	case dto.MessageTypeText:
		if !isBotMentioned(event) {
			return nil, false
		}
		text = extractMessageText(event.Message)
	default:
		return nil, false
	}

	if text == "" {
		return nil, false
	}

	sessionID, actorID := sessionInfo(event.Source)
	return &dto.Instruction{
		EventID:   uuid.NewString(),
		Text:      text,
		SessionID: sessionID,
		ActorID:   actorID,
		ReplyTo:   sessionID,
	}, true
}

func isBotMentioned(event *dto.Event) bool {
	// 1:1 chats always address the bot.
	if event.Source.Type == dto.SourceTypeUser {
		return true
	}

	if event.Message.Mention == nil {
		return false
	}
	for _, mentionee := range event.Message.Mention.Mentionees {
		if mentionee != nil && mentionee.IsSelf {
			return true
		}
	}
	return false
}

// extractMessageText strips the mention spans from the text and collapses
// whitespace. Spans are removed by descending offset so earlier removals do
// not invalidate the remaining offsets.
func extractMessageText(msg *dto.Message) string {
	text := []rune(msg.Text)

	if msg.Mention != nil {
		mentionees := append([]*dto.Mentionee(nil), msg.Mention.Mentionees...)
		sort.Slice(mentionees, func(i, j int) bool {
			return mentionees[i].Index > mentionees[j].Index
		})
		for _, m := range mentionees {
			start, end := m.Index, m.Index+m.Length
			if start < 0 || end > len(text) || start > end {
				continue
			}
			text = append(text[:start], text[end:]...)
		}
	}

	return strings.Join(strings.Fields(string(text)), " ")
}

// extractLocationText synthesizes an instruction from a shared location,
// including only the fields the message carries.
func extractLocationText(msg *dto.Message) string {
	parts := []string{constant.LocationSharedMarker}
	if msg.Title != "" {
		parts = append(parts, fmt.Sprintf("場所名: %s", msg.Title))
	}
	if msg.Address != "" {
		parts = append(parts, fmt.Sprintf("住所: %s", msg.Address))
	}
	if msg.Latitude != nil && msg.Longitude != nil {
		parts = append(parts, fmt.Sprintf("緯度: %v, 経度: %v", *msg.Latitude, *msg.Longitude))
	}
	return strings.Join(parts, "\n")
}

// sessionInfo derives the conversation session key and the acting user from
// the event source. Pure: no lookups, no I/O.
func sessionInfo(source *dto.Source) (sessionID, actorID string) {
	actorID = source.UserID
	switch source.Type {
	case dto.SourceTypeGroup:
		sessionID = source.GroupID
	case dto.SourceTypeRoom:
		sessionID = source.RoomID
	default:
		sessionID = source.UserID
	}
	return sessionID, actorID
}
