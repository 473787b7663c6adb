package profileparser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// ProfileParser extracts candidate profiles from resume images using OpenAI Vision
type ProfileParser struct {
	client *openai.Client
}

// NewProfileParser creates a new profile parser
func NewProfileParser(apiKey string) *ProfileParser {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &ProfileParser{
		client: &client,
	}
}

// ParsedProfile is the structured output of a resume parse
type ParsedProfile struct {
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Location       string             `json:"location"`
	Summary        string             `json:"summary"`
	Skills         []string           `json:"skills"`
	WorkPreference string             `json:"work_preference"`
	Experience     []ParsedExperience `json:"experience"`
}

// ParsedExperience is one job entry from the resume
type ParsedExperience struct {
	Company   string `json:"company"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"` // YYYY-MM format
	EndDate   string `json:"end_date"`   // YYYY-MM or "Present"
}

const profileSystemPrompt = `You are a professional resume parser. Extract ALL information from the resume image(s) and return ONLY valid JSON.`

const profileUserPrompt = `Extract the candidate profile from this resume in the following JSON structure:

{
  "name": string,
  "email": string,
  "phone": string,
  "location": string (city or region),
  "summary": string (professional summary, max 150 words),
  "skills": string[] (technical skills, lowercase, e.g. "react", "python", "aws"),
  "work_preference": string ("remote", "hybrid", "on-site" or "" if not stated),
  "experience": [{
    "company": string,
    "title": string,
    "start_date": string (YYYY-MM format),
    "end_date": string (YYYY-MM or "Present")
  }]
}

IMPORTANT:
- Extract ALL visible text accurately
- If a field is not available, use empty string or empty array
- Maintain chronological order (newest first)
- Return ONLY the JSON, no explanatory text`

// ParseProfile parses a resume from one or more page images
func (p *ProfileParser) ParseProfile(ctx context.Context, pages [][]byte) (*ParsedProfile, error) {
	if len(pages) == 0 {
		return nil, errors.New("no pages provided")
	}

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Type: constant.Text("text"),
				Text: profileUserPrompt,
			},
		},
	}

	for i, pageData := range pages {
		base64Image := base64.StdEncoding.EncodeToString(pageData)
		dataURL := fmt.Sprintf("data:image/jpeg;base64,%s", base64Image)

		contentParts = append(contentParts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL,
					Detail: "high", // High detail for better OCR
				},
			},
		})

		if len(pages) > 1 && i < len(pages)-1 {
			contentParts = append(contentParts, openai.ChatCompletionContentPartUnionParam{
				OfText: &openai.ChatCompletionContentPartTextParam{
					Type: constant.Text("text"),
					Text: fmt.Sprintf("--- Page %d ends, Page %d begins ---", i+1, i+2),
				},
			})
		}
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(profileSystemPrompt),
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: contentParts,
				},
			},
		},
	}

	maxTokens := int64(3000)
	if len(pages) > 1 {
		maxTokens = 5000
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    "gpt-4o", // GPT-4o has best vision capabilities
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1), // Low temperature for consistency
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai vision api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	content := completion.Choices[0].Message.Content
	var profile ParsedProfile
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	return &profile, nil
}
