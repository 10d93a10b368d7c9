// Package models provides functionality for listing available OpenAI
// models. It helps users discover which chat models can be used for
// card enrichment with their API key.
package models
