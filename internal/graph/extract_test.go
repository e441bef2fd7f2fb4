package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"none", "Plain text tweet.", []string{}},
		{"lowercased", "Learning #Python and #CODING today!", []string{"python", "coding"}},
		{"dedup keeps first position", "#go #rust #GO #go", []string{"go", "rust"}},
		{"underscore and digits", "#web_3 #2024", []string{"web_3", "2024"}},
		{"stops at punctuation", "#hello-world #a.b", []string{"hello", "a"}},
		{"unicode letters", "#Café #日本", []string{"café", "日本"}},
		{"bare hash ignored", "# #", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.body))
		})
	}
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"none", "nobody here", []string{}},
		{"keeps case", "Hey @Alice and @bob", []string{"Alice", "bob"}},
		{"dedup exact", "@alice hey @alice!", []string{"alice"}},
		{"dedup is case sensitive", "@ALICE @alice", []string{"ALICE", "alice"}},
		{"email-like text", "mail me at x@example.com", []string{"example"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.body))
		})
	}
}
