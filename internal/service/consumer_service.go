package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/y-ymmt/ikitaitoko-bot/internal/constant"
	"github.com/y-ymmt/ikitaitoko-bot/internal/dto"
	"github.com/y-ymmt/ikitaitoko-bot/internal/pkg/logger"
)

// MessagePusher delivers a text reply to a LINE user, group, or room.
type MessagePusher interface {
	PushText(ctx context.Context, to, text string) error
}

// IConsumerService drains the instruction topic and runs each instruction
// through the agent, pushing the reply back over LINE.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	agentService IAgentService
	pusher       MessagePusher
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	agentService IAgentService,
	pusher MessagePusher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		agentService: agentService,
		pusher:       pusher,
		logger:       log,
	}
}

// Consume subscribes to the instruction topic and processes messages until
// ctx is cancelled. Instructions are independent, so ordering across sessions
// is not guaranteed.
func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	s.logger.Info("consumer", "instruction consumer started", map[string]interface{}{
		"topic": s.topicName,
	})
	return nil
}

func (s *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every path acks: instructions are best-effort and never retried.
	defer msg.Ack()

	var instruction dto.Instruction
	if err := json.Unmarshal(msg.Payload, &instruction); err != nil {
		s.logger.Error("consumer", "discarding malformed instruction payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	reply := s.invoke(ctx, &instruction)

	if err := s.pusher.PushText(ctx, instruction.ReplyTo, reply); err != nil {
		s.logger.Error("consumer", "failed to push reply", map[string]interface{}{
			"event_id": instruction.EventID,
			"reply_to": instruction.ReplyTo,
			"error":    err.Error(),
		})
	}
}

// invoke guards the agent call so a panic degrades to the apology message
// instead of killing the consumer goroutine.
func (s *consumerService) invoke(ctx context.Context, instruction *dto.Instruction) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("consumer", "panic while processing instruction", map[string]interface{}{
				"event_id": instruction.EventID,
				"panic":    r,
			})
			reply = constant.ApologyMessage
		}
	}()

	return s.agentService.Invoke(ctx, instruction.Text, instruction.SessionID, instruction.ActorID)
}
