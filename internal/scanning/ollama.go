package scanning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Ollama implements Transcriber against a local Ollama instance
// running a vision model (llava, qwen2-vl and friends).
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama creates an Ollama-backed transcriber.
func NewOllama(baseURL string, modelName string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if modelName == "" {
		modelName = "llava"
	}

	return &Ollama{
		baseURL: baseURL,
		model:   modelName,
		client: &http.Client{
			// Local vision models are slow on document-sized images.
			Timeout: 120 * time.Second,
		},
	}, nil
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Images   []string        `json:"images,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// Transcribe reads all text out of the document image.
func (o *Ollama) Transcribe(docData []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	pngData, err := toPNG(docData, contentType)
	if err != nil {
		return "", err
	}

	reqBody := ollamaChatRequest{
		Model:  o.model,
		Stream: false,
		Messages: []ollamaMessage{
			{
				Role:    "system",
				Content: "You are an expert at reading business documents. Transcribe the text in images accurately and completely.",
			},
			{
				Role:    "user",
				Content: transcribePrompt,
			},
		},
		Images: []string{base64.StdEncoding.EncodeToString(pngData)},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	text := cleanTranscript(chatResp.Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty transcription from ollama")
	}
	return text, nil
}

// Close closes the Ollama client (no-op for HTTP client).
func (o *Ollama) Close() error {
	return nil
}
