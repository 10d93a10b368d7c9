// Package enrich fills in missing readings and meanings of Hanja cards
// using AI providers (OpenAI or Google Gemini).
package enrich
