package domain

import "sort"

// NormalizeTags deduplicates and lexicographically sorts a tag list.
// Deduplication is case-sensitive: "Animal" and "animal" are distinct
// tags. Every classification result passes through here before it is
// rendered or persisted, so two runs producing the same tag set in a
// different order store the identical record.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}

	sort.Strings(result)
	return result
}
