package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

// ErrBadModelOutput means the model returned something that is not the
// JSON shape we asked for. Callers decide the fallback; this client never
// passes a partial object downstream.
var ErrBadModelOutput = errors.New("malformed model output")

// Categorization is the validated result of one categorize call.
type Categorization struct {
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory,omitempty"`
	Confidence   float64  `json:"confidence"`
	Tags         []string `json:"tags"`
	IsRecurring  bool     `json:"isRecurring"`
	MerchantType string   `json:"merchantType"`
}

// Receipt is the validated result of one receipt scan.
type Receipt struct {
	Merchant string   `json:"merchant"`
	Amount   float64  `json:"amount"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

const categorizePrompt = `You are a personal finance assistant. Categorize the transaction below.
Respond with a single JSON object and nothing else:
{"category": string, "subcategory": string, "confidence": number between 0 and 1, "tags": [string], "isRecurring": boolean, "merchantType": string}

Description: %s
Amount: %.2f
Merchant: %s`

// Categorize asks the model for a category guess and validates the shape
// of the answer before returning it.
func (c *Client) Categorize(ctx context.Context, description string, amount float64, merchant string) (Categorization, error) {
	if description == "" {
		return Categorization{}, errors.New("description is required")
	}
	if merchant == "" {
		return Categorization{}, errors.New("merchant is required")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Categorization{}, errors.New("amount must be finite")
	}

	content, err := c.complete(ctx, []message{
		{Role: "user", Content: fmt.Sprintf(categorizePrompt, description, amount, merchant)},
	})
	if err != nil {
		return Categorization{}, err
	}

	var result Categorization
	if err := json.Unmarshal([]byte(stripFences(content)), &result); err != nil {
		return Categorization{}, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if result.Category == "" {
		return Categorization{}, fmt.Errorf("%w: missing category", ErrBadModelOutput)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return Categorization{}, fmt.Errorf("%w: confidence %v out of range", ErrBadModelOutput, result.Confidence)
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}
	return result, nil
}

const receiptPrompt = `Extract the receipt in the image. Respond with a single JSON object and nothing else:
{"merchant": string, "amount": number, "date": "YYYY-MM-DD", "category": string, "items": [string]}`

// ScanReceipt extracts structured fields from a receipt image.
func (c *Client) ScanReceipt(ctx context.Context, image []byte, mimeType string) (Receipt, error) {
	if len(image) == 0 {
		return Receipt{}, errors.New("image is required")
	}
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	content, err := c.complete(ctx, []message{
		{Role: "user", Content: []part{
			{Type: "text", Text: receiptPrompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}},
	})
	if err != nil {
		return Receipt{}, err
	}

	var result Receipt
	if err := json.Unmarshal([]byte(stripFences(content)), &result); err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if result.Merchant == "" || result.Amount <= 0 {
		return Receipt{}, fmt.Errorf("%w: missing merchant or amount", ErrBadModelOutput)
	}
	if result.Items == nil {
		result.Items = []string{}
	}
	return result, nil
}

type message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, messages []message) (string, error) {
	body, err := json.Marshal(completionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model request failed: status %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrBadModelOutput)
	}
	return completion.Choices[0].Message.Content, nil
}

// stripFences tolerates models that wrap JSON in a markdown code block.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
