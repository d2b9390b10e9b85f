package profile

import (
	"regexp"
	"strings"
)

var urlRegex = regexp.MustCompile(`(?i)(?:https?://|www\.)?(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}(?:/\S*)?`)

// Websites returns the URLs found in text with an https:// scheme added where
// missing, deduplicated case-insensitively in order of appearance. Matches that touch
// an '@' belong to e-mail addresses and are skipped.
func Websites(text string) []string {
	seen := make(map[string]bool)
	urls := []string{}
	for _, loc := range urlRegex.FindAllStringIndex(text, -1) {
		if (loc[0] > 0 && text[loc[0]-1] == '@') || (loc[1] < len(text) && text[loc[1]] == '@') {
			continue
		}

		url := strings.TrimRight(strings.TrimSpace(text[loc[0]:loc[1]]), ".,;:!?)")
		if !strings.HasPrefix(strings.ToLower(url), "http://") && !strings.HasPrefix(strings.ToLower(url), "https://") {
			url = "https://" + url
		}

		key := strings.ToLower(url)
		if seen[key] {
			continue
		}
		seen[key] = true
		urls = append(urls, url)
	}
	return urls
}
