package scanning

import "strings"

// Transcriber turns a photographed or scanned document into the raw
// text that feeds invoice extraction. Implementations receive the
// original upload bytes; format conversion happens internally.
type Transcriber interface {
	// Transcribe returns the document's text content, reading order
	// preserved as well as the provider allows.
	Transcribe(docData []byte, contentType string) (string, error)
	// Close releases provider resources.
	Close() error
}

// transcribePrompt is shared by all vision-model providers.
const transcribePrompt = `You are transcribing a photographed business document (an invoice, bill, or receipt). Read every piece of text in the image and return it as plain text.

Rules:
- Return the text exactly as printed, top to bottom, left to right.
- Keep labels together with their values (e.g. "Invoice Number: INV-1234").
- Keep table rows on their own lines with columns separated by spaces.
- Do not summarize, translate, or interpret anything.
- Do not use markdown code blocks.
- Return only the transcribed text, nothing else.`

// cleanTranscript strips the markdown fences some models wrap around
// their output despite the prompt.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
