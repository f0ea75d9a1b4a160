package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/y-ymmt/ikitaitoko-bot/internal/dto"
	"github.com/y-ymmt/ikitaitoko-bot/internal/pkg/logger"
	"github.com/y-ymmt/ikitaitoko-bot/internal/pkg/serverutils"
	"github.com/y-ymmt/ikitaitoko-bot/internal/service"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/line"
)

type IWebhookController interface {
	Callback(c *fiber.Ctx) error
	Health(c *fiber.Ctx) error
}

type webhookController struct {
	webhookService service.IWebhookService
	channelSecret  string
	logger         logger.ILogger
}

func NewWebhookController(webhookService service.IWebhookService, channelSecret string, log logger.ILogger) IWebhookController {
	return &webhookController{
		webhookService: webhookService,
		channelSecret:  channelSecret,
		logger:         log,
	}
}

// Callback receives LINE webhook deliveries. It always answers 200 so the
// platform does not retry: signature failures and malformed bodies are logged
// and dropped, valid events are dispatched for background processing.
func (ctrl *webhookController) Callback(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("X-Line-Signature")

	if !line.VerifySignature(ctrl.channelSecret, body, signature) {
		ctrl.logger.Warn("webhook", "invalid webhook signature", map[string]interface{}{
			"body_length": len(body),
		})
		return c.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("OK"))
	}

	var request dto.WebhookRequest
	if err := json.Unmarshal(body, &request); err != nil {
		ctrl.logger.Warn("webhook", "failed to parse webhook body", map[string]interface{}{
			"error": err.Error(),
		})
		return c.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("OK"))
	}

	for _, event := range request.Events {
		if err := ctrl.webhookService.HandleEvent(c.UserContext(), event); err != nil {
			ctrl.logger.Error("webhook", "failed to dispatch event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("OK"))
}

func (ctrl *webhookController) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse(fiber.Map{
		"status": "healthy",
	}))
}
