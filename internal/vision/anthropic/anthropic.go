package anthropic

import (
	"context"
	"fmt"
	"io"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/taptote/internal/vision"
)

type Captioner struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewCaptioner(apiKey, model string) *Captioner {
	return &Captioner{
		client: anthropic.NewClient(apiKey),
		model:  anthropic.Model(model),
	}
}

func (c *Captioner) Caption(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: c.model,
		// A title is a handful of tokens; 64 leaves headroom for verbose models.
		MaxTokens: 64,
		Messages: []anthropic.Message{{
			Role: anthropic.RoleUser,
			Content: []anthropic.MessageContent{
				anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
					anthropic.MessagesContentSourceTypeBase64,
					vision.NormalizeMIME(mimeType),
					imageData,
				)),
				anthropic.NewTextMessageContent(vision.TitlePrompt),
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call anthropic: %w", err)
	}

	title := strings.TrimSpace(resp.GetFirstContentText())
	if title == "" {
		return "", fmt.Errorf("anthropic returned an empty caption")
	}
	return title, nil
}
