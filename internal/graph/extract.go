package graph

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)
)

// ExtractHashtags returns the #tags in body, lowercased, first occurrence wins.
func ExtractHashtags(body string) []string {
	return extract(hashtagPattern, body, strings.ToLower)
}

// ExtractMentions returns the @names in body as typed, first occurrence wins.
func ExtractMentions(body string) []string {
	return extract(mentionPattern, body, nil)
}

func extract(re *regexp.Regexp, body string, norm func(string) string) []string {
	matches := re.FindAllStringSubmatch(body, -1)
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		tok := m[1]
		if norm != nil {
			tok = norm(tok)
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
