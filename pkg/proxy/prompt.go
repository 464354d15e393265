package proxy

import "fmt"

// promptTemplate is the fixed instructional preamble wrapped around every
// user message before it is sent to the backend. The user message is embedded
// verbatim, untrimmed.
const promptTemplate = `You are a helpful and friendly chat assistant. Answer the user's message clearly and concisely. If you don't know the answer, say so honestly instead of guessing.

User message: %s`

// BuildPrompt embeds the user message into the instructional prompt template.
func BuildPrompt(message string) string {
	return fmt.Sprintf(promptTemplate, message)
}
