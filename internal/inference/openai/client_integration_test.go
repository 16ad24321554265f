package openai_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/inference"
	"github.com/at-ishikawa/guanwo/internal/inference/openai"
	"github.com/at-ishikawa/guanwo/internal/testutil"
)

// TestClient_Complete_SiliconFlow calls the real provider.
// Run with: SILICONFLOW_API_KEY=your-key go test -v ./internal/inference/openai -run TestClient_Complete_SiliconFlow
func TestClient_Complete_SiliconFlow(t *testing.T) {
	apiKey := os.Getenv("SILICONFLOW_API_KEY")
	if apiKey == "" {
		t.Skip("SILICONFLOW_API_KEY environment variable not set, skipping integration test")
	}

	model := os.Getenv("SILICONFLOW_MODEL")
	if model == "" {
		model = "moonshotai/Kimi-K2-Instruct"
	}

	client := openai.NewClient(config.LLMConfig{
		DefaultProvider:  "siliconflow",
		DefaultModelKey:  "default",
		Temperature:      0.3,
		TimeoutSeconds:   60,
		MaxRetryAttempts: 1,
		Providers: map[string]config.LLMProviderConfig{
			"siliconflow": {
				BaseURL: "https://api.siliconflow.cn/v1",
				APIKey:  apiKey,
				Models:  map[string]string{"default": model},
			},
		},
	}, testutil.Logger())
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	got, err := client.Complete(ctx, inference.CompletionRequest{
		System: `只输出JSON，例如 {"emotion":"positive"}。emotion 取值 positive、neutral、negative。`,
		User:   "今天和朋友去爬山，风景很美，心情很好。",
	})
	require.NoError(t, err)

	var decoded struct {
		Emotion string `json:"emotion"`
	}
	require.NoError(t, inference.DecodeJSONObject(got, &decoded))
	assert.Equal(t, "positive", decoded.Emotion)
}
