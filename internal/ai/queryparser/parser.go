package queryparser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"github.com/talentwire/scout/talent/search"
)

// QueryParser extracts structured requirements from recruiter queries
// using an OpenAI chat model in JSON mode.
type QueryParser struct {
	client *openai.Client
}

// NewQueryParser creates a new query parser
func NewQueryParser(apiKey string) *QueryParser {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &QueryParser{
		client: &client,
	}
}

const querySystemPrompt = `You are a recruitment query analyzer. Extract structured search requirements from natural language queries and return ONLY valid JSON.`

const queryUserPrompt = `Extract the requirements from this recruiter query in the following JSON structure:

{
  "skills": string[] (concrete technologies only, lowercase, e.g. "react", "python", "aws"; never role words like "frontend" or "developer"),
  "experience_level": string ("junior", "mid", "senior" or "any"),
  "work_preference": string ("remote", "hybrid", "on-site" or "any"),
  "location": string (city in lowercase, or "" if none mentioned)
}

IMPORTANT:
- Expand role words into their typical technologies (e.g. "frontend developer" -> ["javascript", "html", "css"])
- Use "any" when the query does not constrain a field
- Return ONLY the JSON, no explanatory text

Query: %s`

// ParseQuery extracts requirements from a natural language query. The
// output is unvalidated model JSON; callers decide whether to trust it.
func (p *QueryParser) ParseQuery(ctx context.Context, query string) (*search.Requirements, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(querySystemPrompt),
			openai.UserMessage(fmt.Sprintf(queryUserPrompt, query)),
		},
		Model: "gpt-4o-mini", // Cheap and fast, extraction needs no reasoning depth
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1), // Low temperature for consistency
		MaxTokens:   openai.Int(500),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	content := completion.Choices[0].Message.Content
	var reqs search.Requirements
	if err := json.Unmarshal([]byte(content), &reqs); err != nil {
		return nil, fmt.Errorf("failed to parse requirements JSON: %w", err)
	}

	return &reqs, nil
}
