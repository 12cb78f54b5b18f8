package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shortscope/internal/models"

	"google.golang.org/genai"
)

// Summarizer produces a short natural-language digest of what is
// trending in a result set.
type Summarizer struct {
	client *genai.Client
	model  string
}

func NewSummarizer(ctx context.Context, apiKey, model string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing Gemini API key: set GEMINI_API_KEY or ai.gemini_api_key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Summarizer{client: client, model: model}, nil
}

// maxSummarized bounds how many records go into the prompt; the top of
// the ranked list carries the signal.
const maxSummarized = 20

// Summarize asks the model for a few sentences on common themes among
// the top results. Metadata only goes into the prompt, never video
// content.
func (s *Summarizer) Summarize(ctx context.Context, videos []*models.Video, loc *time.Location) (string, error) {
	if len(videos) == 0 {
		return "", fmt.Errorf("nothing to summarize")
	}

	top := videos
	if len(top) > maxSummarized {
		top = top[:maxSummarized]
	}

	var listing strings.Builder
	for i, v := range top {
		fmt.Fprintf(&listing, "%d. %q by %s - %d views, %.0fs, uploaded %s\n",
			i+1, v.Title, v.ChannelTitle, v.ViewCount, v.DurationSeconds,
			v.PublishedAt.In(loc).Format("Mon 15:04"))
	}

	prompt := fmt.Sprintf(`You are given the top recently uploaded short videos ranked by view count.

%s
Write a 3-4 sentence digest of what is trending: recurring topics or formats, standout channels, and anything notable about upload timing. Plain text only, no markdown.`, listing.String())

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate trend summary: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return text, nil
}
