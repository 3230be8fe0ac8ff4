package utils

import "strings"

// SplitTerms splits a comma separated search string into trimmed, non-blank terms.
func SplitTerms(search string) []string {
	if strings.TrimSpace(search) == "" {
		return nil
	}
	parts := strings.Split(search, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil
	}
	return terms
}

// Dedupe returns ids with blanks and repeats removed, keeping first occurrence order.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
