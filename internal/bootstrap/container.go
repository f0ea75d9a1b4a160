package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/y-ymmt/ikitaitoko-bot/internal/config"
	"github.com/y-ymmt/ikitaitoko-bot/internal/controller"
	"github.com/y-ymmt/ikitaitoko-bot/internal/pkg/logger"
	"github.com/y-ymmt/ikitaitoko-bot/internal/repository/memory"
	"github.com/y-ymmt/ikitaitoko-bot/internal/service"
	"github.com/y-ymmt/ikitaitoko-bot/internal/tools"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/geo"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/line"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/llm/anthropic"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/notion"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/search"
)

// instructionTopic is the in-process topic carrying normalized instructions
// from the webhook endpoint to the background consumer.
const instructionTopic = "instruction.dispatched"

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External Clients
	lineClient := line.NewClient(cfg.Line.ChannelAccessToken)
	notionClient := notion.NewClient(cfg.Notion.Token, cfg.Notion.DatabaseID)
	geocoder := geo.NewClient()
	searchClient := search.NewClient(cfg.Agent.TavilyAPIKey)

	llmProvider := anthropic.NewProvider(cfg.Agent.AnthropicAPIKey, cfg.Agent.Model, cfg.Agent.MaxTokens)
	log.Printf("[INFO] Using LLM Provider: anthropic (%s)", cfg.Agent.Model)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Agent
	toolbox := tools.NewToolbox(notionClient, geocoder, searchClient, sysLogger)
	agentService := service.NewAgentService(llmProvider, toolbox, sessionRepo, sysLogger)

	// 5. Services
	webhookService := service.NewWebhookService(pubSub, instructionTopic, sysLogger)
	consumerService := service.NewConsumerService(pubSub, instructionTopic, agentService, lineClient, sysLogger)

	// 6. Controllers
	webhookController := controller.NewWebhookController(webhookService, cfg.Line.ChannelSecret, sysLogger)

	return &Container{
		WebhookController: webhookController,
		ConsumerService:   consumerService,
	}
}
