// Package processor contains the core business logic for the headless
// CLI mode. It orchestrates dataset loading, caching, enrichment and
// Anki file generation. This package serves as the main coordinator
// between all other components.
package processor
