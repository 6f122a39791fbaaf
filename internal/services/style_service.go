package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"hairday/internal/models/request_models"
)

const styleFeature = "style_consult"

// StyleService is the AI hairstyle consult. Tokens are deducted
// before the model call; if the call fails they are refunded, since
// the work cannot be retried but the tokens can be returned.
type StyleService interface {
	Consult(ctx context.Context, userID uuid.UUID, request request_models.StyleConsultRequest) (string, int64, error)
}

type styleService struct {
	client *openai.Client
	meter  MeterService
	logger *zap.Logger
}

func NewStyleService(client *openai.Client, meter MeterService, logger *zap.Logger) StyleService {
	return &styleService{client: client, meter: meter, logger: logger}
}

func (s *styleService) Consult(ctx context.Context, userID uuid.UUID, request request_models.StyleConsultRequest) (string, int64, error) {
	newBalance, err := s.meter.Charge(ctx, userID, styleFeature)
	if err != nil {
		return "", 0, err
	}

	prompt := request.Prompt
	if request.FaceShape != "" || request.HairLength != "" {
		prompt = fmt.Sprintf("%s (face shape: %s, current hair length: %s)",
			request.Prompt, request.FaceShape, request.HairLength)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a professional hair stylist. Recommend concrete styles, cuts and colors for the client.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		// Compensation: the deduction is reversed, the failure is
		// surfaced to the caller as-is.
		if _, refundErr := s.meter.Refund(ctx, userID, styleFeature, "ai_call_failed"); refundErr != nil {
			s.logger.Error("refund after failed consult also failed",
				zap.String("user_id", userID.String()),
				zap.Error(refundErr))
		}
		return "", 0, err
	}

	if len(resp.Choices) == 0 {
		if _, refundErr := s.meter.Refund(ctx, userID, styleFeature, "empty_ai_response"); refundErr != nil {
			s.logger.Error("refund after empty consult also failed",
				zap.String("user_id", userID.String()),
				zap.Error(refundErr))
		}
		return "", 0, fmt.Errorf("empty completion response")
	}

	return resp.Choices[0].Message.Content, newBalance, nil
}
