package scanning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements Transcriber using Google Gemini vision models.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini-backed transcriber.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Transcribe reads all text out of the document image.
func (g *Gemini) Transcribe(docData []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pngData, err := toPNG(docData, contentType)
	if err != nil {
		return "", err
	}

	parts := []genai.Part{
		genai.ImageData("png", pngData),
		genai.Text(transcribePrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}

	text := cleanTranscript(out.String())
	if text == "" {
		return "", fmt.Errorf("empty transcription from gemini")
	}
	return text, nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
