package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type fakeHTTPClient struct {
	handler func(*http.Request) (*http.Response, error)
}

func (f fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if f.handler == nil {
		return nil, errors.New("no handler configured")
	}
	return f.handler(req)
}

func jsonResponse(t *testing.T, status int, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(buf)),
		Header:     make(http.Header),
	}
}

func setupCaptionService(t *testing.T) (*AICaptionService, func()) {
	t.Helper()
	gdb, cleanup := setupServiceTestDB(t)

	system := NewSystemSettingService(gdb)
	if _, err := system.UpdateSettings(SystemSettingsInput{
		AIProvider:   AIProviderOpenAI,
		OpenAIAPIKey: "sk-test",
	}); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	svc := NewAICaptionService(system)
	svc.SetOpenAIBaseURL("https://openai.test/v1")
	return svc, cleanup
}

func TestGenerateCaptionRequestsStructuredOutput(t *testing.T) {
	svc, cleanup := setupCaptionService(t)
	defer cleanup()

	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header %s", got)
		}

		var payload chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Model != defaultOpenAICaptionModel {
			t.Fatalf("unexpected model %q", payload.Model)
		}
		if payload.ResponseFormat == nil || payload.ResponseFormat.Type != "json_object" {
			t.Fatalf("expected json_object response format, got %#v", payload.ResponseFormat)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected system+user messages, got %d", len(payload.Messages))
		}
		if !strings.Contains(payload.Messages[0].Content, "twitter") {
			t.Fatalf("system prompt should embed the platform, got %q", payload.Messages[0].Content)
		}
		if payload.Messages[1].Content != "a post about Go" {
			t.Fatalf("unexpected user prompt %q", payload.Messages[1].Content)
		}

		return jsonResponse(t, http.StatusOK, chatCompletionResponse{
			Choices: []struct {
				Message chatMessage "json:\"message\""
			}{{Message: chatMessage{Role: "assistant", Content: `{"caption":"Hi","hashtags":["#go"]}`}}},
			Usage: struct {
				PromptTokens     int "json:\"prompt_tokens\""
				CompletionTokens int "json:\"completion_tokens\""
			}{PromptTokens: 80, CompletionTokens: 25},
		}), nil
	}})

	result, err := svc.GenerateCaption(context.Background(), CaptionInput{
		Prompt:   "a post about Go",
		Platform: "Twitter",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Raw != `{"caption":"Hi","hashtags":["#go"]}` {
		t.Fatalf("unexpected raw content: %q", result.Raw)
	}
	if result.PromptTokens != 80 || result.CompletionTokens != 25 {
		t.Fatalf("unexpected usage: %+v", result)
	}
}

func TestGenerateCaptionDefaultsPlatformToGeneral(t *testing.T) {
	svc, cleanup := setupCaptionService(t)
	defer cleanup()

	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		var payload chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if !strings.Contains(payload.Messages[0].Content, "general") {
			t.Fatalf("system prompt should fall back to general, got %q", payload.Messages[0].Content)
		}
		return jsonResponse(t, http.StatusOK, chatCompletionResponse{
			Choices: []struct {
				Message chatMessage "json:\"message\""
			}{{Message: chatMessage{Role: "assistant", Content: "ok"}}},
		}), nil
	}})

	if _, err := svc.GenerateCaption(context.Background(), CaptionInput{Prompt: "topic"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateCaptionClassifiesRateLimit(t *testing.T) {
	svc, cleanup := setupCaptionService(t)
	defer cleanup()

	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusTooManyRequests, map[string]interface{}{
			"error": map[string]string{"message": "Rate limit reached"},
		}), nil
	}})

	_, err := svc.GenerateCaption(context.Background(), CaptionInput{Prompt: "topic"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if !strings.Contains(err.Error(), "Rate limit reached") {
		t.Fatalf("error should carry provider message, got %v", err)
	}
}

func TestGenerateCaptionClassifiesProviderFailure(t *testing.T) {
	svc, cleanup := setupCaptionService(t)
	defer cleanup()

	cases := []struct {
		name    string
		handler func(*http.Request) (*http.Response, error)
	}{
		{
			name: "server error",
			handler: func(r *http.Request) (*http.Response, error) {
				return jsonResponse(t, http.StatusInternalServerError, map[string]interface{}{
					"error": map[string]string{"message": "upstream exploded"},
				}), nil
			},
		},
		{
			name: "transport error",
			handler: func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		},
		{
			name: "empty choices",
			handler: func(r *http.Request) (*http.Response, error) {
				return jsonResponse(t, http.StatusOK, chatCompletionResponse{}), nil
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc.SetHTTPClient(fakeHTTPClient{handler: tc.handler})
			_, err := svc.GenerateCaption(context.Background(), CaptionInput{Prompt: "topic"})
			if !errors.Is(err, ErrProviderFailed) {
				t.Fatalf("expected ErrProviderFailed, got %v", err)
			}
			if errors.Is(err, ErrRateLimited) {
				t.Fatalf("provider failure must not classify as rate limit: %v", err)
			}
		})
	}
}

func TestGenerateCaptionRequiresAPIKey(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	system := NewSystemSettingService(gdb)
	svc := NewAICaptionService(system)
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		t.Fatalf("no request should be made without an api key")
		return nil, nil
	}})

	_, err := svc.GenerateCaption(context.Background(), CaptionInput{Prompt: "topic"})
	if !errors.Is(err, ErrAIAPIKeyMissing) {
		t.Fatalf("expected ErrAIAPIKeyMissing, got %v", err)
	}
}

func TestGenerateCaptionClassifiesSettingsStoreFailure(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	system := NewSystemSettingService(gdb)
	svc := NewAICaptionService(system)
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		t.Fatalf("no request should be made when settings cannot be read")
		return nil, nil
	}})

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.Close()

	_, err = svc.GenerateCaption(context.Background(), CaptionInput{Prompt: "topic"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestGenerateCaptionUsesCustomPromptAndModel(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	system := NewSystemSettingService(gdb)
	if _, err := system.UpdateSettings(SystemSettingsInput{
		AIProvider:       AIProviderDeepSeek,
		DeepSeekAPIKey:   "sk-deepseek",
		DeepSeekModel:    "deepseek-reasoner",
		GenerationPrompt: "自定义生成提示词",
	}); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	svc := NewAICaptionService(system)
	svc.SetDeepSeekBaseURL("https://deepseek.test/v1")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-deepseek" {
			t.Fatalf("unexpected authorization header %s", got)
		}
		var payload chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Model != "deepseek-reasoner" {
			t.Fatalf("expected settings model override, got %q", payload.Model)
		}
		if payload.Messages[0].Content != "自定义生成提示词" {
			t.Fatalf("expected custom generation prompt, got %q", payload.Messages[0].Content)
		}
		return jsonResponse(t, http.StatusOK, chatCompletionResponse{
			Choices: []struct {
				Message chatMessage "json:\"message\""
			}{{Message: chatMessage{Role: "assistant", Content: "ok"}}},
		}), nil
	}})

	if _, err := svc.GenerateCaption(context.Background(), CaptionInput{Prompt: "topic"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
