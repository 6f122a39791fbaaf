package style_fx

import (
	"os"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hairday/internal/api/controllers"
	"hairday/internal/services"
)

var Module = fx.Provide(
	provideOpenAIClient,
	provideStyleService,
	provideStyleController,
)

func provideOpenAIClient() *openai.Client {
	return openai.NewClient(os.Getenv("OPENAI_API_KEY"))
}

func provideStyleService(client *openai.Client, meter services.MeterService, logger *zap.Logger) services.StyleService {
	return services.NewStyleService(client, meter, logger)
}

func provideStyleController(styleService services.StyleService) *controllers.StyleController {
	return controllers.NewStyleController(styleService)
}
