package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/themobileprof/medichat-be/pkg/llm"
)

func TestClient_ChatCompletion(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		serverResponse string
		wantContent    string
		wantErr        error
	}{
		{
			name:           "successful completion",
			statusCode:     http.StatusOK,
			serverResponse: `{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"Rest and fluids."},"finish_reason":"stop"}]}`,
			wantContent:    "Rest and fluids.",
		},
		{
			name:           "api error",
			statusCode:     http.StatusTooManyRequests,
			serverResponse: `{"error":{"message":"rate limited","type":"rate_limit"}}`,
			wantErr:        llm.ErrTransport,
		},
		{
			name:           "no choices",
			statusCode:     http.StatusOK,
			serverResponse: `{"id":"chatcmpl-1","choices":[]}`,
			wantErr:        llm.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/chat/completions" {
					t.Errorf("path = %q", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.serverResponse))
			}))
			defer server.Close()

			client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
			resp, err := client.ChatCompletion(context.Background(), llm.ChatRequest{
				Messages: []llm.ChatMessage{{Role: llm.RoleUser, Content: "hi"}},
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Content != tt.wantContent {
				t.Errorf("content = %q, want %q", resp.Content, tt.wantContent)
			}
		})
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := client.ChatCompletion(context.Background(), llm.ChatRequest{})
	if !errors.Is(err, llm.ErrTransport) {
		t.Fatalf("error = %v, want ErrTransport", err)
	}
}
