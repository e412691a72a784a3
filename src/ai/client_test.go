package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "test-key", "test-model", 5*time.Second)
}

func TestCategorize_ValidResponse(t *testing.T) {
	srv := modelServer(t, `{"category":"Food & Dining","subcategory":"Coffee Shops","confidence":0.92,"tags":["coffee"],"isRecurring":false,"merchantType":"cafe"}`)
	defer srv.Close()

	result, err := newTestClient(srv.URL).Categorize(context.Background(), "STARBUCKS 123", 5.75, "Starbucks")
	require.NoError(t, err)

	assert.Equal(t, "Food & Dining", result.Category)
	assert.Equal(t, "Coffee Shops", result.Subcategory)
	assert.InDelta(t, 0.92, result.Confidence, 0.001)
	assert.Equal(t, []string{"coffee"}, result.Tags)
	assert.False(t, result.IsRecurring)
}

func TestCategorize_FencedJSON(t *testing.T) {
	srv := modelServer(t, "```json\n{\"category\":\"Transport\",\"confidence\":0.8,\"tags\":[],\"isRecurring\":true,\"merchantType\":\"transit\"}\n```")
	defer srv.Close()

	result, err := newTestClient(srv.URL).Categorize(context.Background(), "MTA FARE", 2.90, "MTA")
	require.NoError(t, err)
	assert.Equal(t, "Transport", result.Category)
	assert.True(t, result.IsRecurring)
}

func TestCategorize_MalformedOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "Sure! That looks like a coffee purchase."},
		{"missing category", `{"confidence":0.5}`},
		{"confidence out of range", `{"category":"Food","confidence":7}`},
		{"negative confidence", `{"category":"Food","confidence":-0.1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := modelServer(t, tt.content)
			defer srv.Close()

			_, err := newTestClient(srv.URL).Categorize(context.Background(), "PURCHASE", 10, "Shop")
			assert.ErrorIs(t, err, ErrBadModelOutput)
		})
	}
}

func TestCategorize_InputValidation(t *testing.T) {
	srv := modelServer(t, `{"category":"Food","confidence":0.5}`)
	defer srv.Close()
	client := newTestClient(srv.URL)

	_, err := client.Categorize(context.Background(), "", 10, "Shop")
	assert.Error(t, err)

	_, err = client.Categorize(context.Background(), "PURCHASE", 10, "")
	assert.Error(t, err)
}

func TestCategorize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Categorize(context.Background(), "PURCHASE", 10, "Shop")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadModelOutput)
}

func TestScanReceipt_ValidResponse(t *testing.T) {
	srv := modelServer(t, `{"merchant":"Whole Foods","amount":54.12,"date":"2024-03-10","category":"Groceries","items":["milk","bread"]}`)
	defer srv.Close()

	result, err := newTestClient(srv.URL).ScanReceipt(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "Whole Foods", result.Merchant)
	assert.InDelta(t, 54.12, result.Amount, 0.001)
	assert.Equal(t, []string{"milk", "bread"}, result.Items)
}

func TestScanReceipt_MalformedOutput(t *testing.T) {
	srv := modelServer(t, `{"amount":54.12}`)
	defer srv.Close()

	_, err := newTestClient(srv.URL).ScanReceipt(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	assert.ErrorIs(t, err, ErrBadModelOutput)
}
