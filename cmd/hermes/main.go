// Hermes is a chat relay for generative-AI backends.
//
// It exposes a single chat endpoint that validates and rate-limits incoming
// messages, forwards them to a Gemini-family text generation backend, and
// relays the generated text. A static frontend and a health endpoint round
// out the HTTP surface.
//
// Usage:
//
//	# Start with defaults (PORT and GOOGLE_API_KEY from the environment)
//	hermes run
//
//	# Start with a configuration file
//	hermes run --config /path/to/hermes.yaml
//
//	# Show version information
//	hermes version
package main

func main() {
	Execute()
}
