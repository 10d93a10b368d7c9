// Package cache provides durable persistence of parsed Hanja datasets.
// Datasets are stored as JSON files in a per-user cache directory,
// addressed by an index file that keeps at most 20 entries, most recent
// first, deduplicated by source path.
package cache
