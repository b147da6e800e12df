package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "ai-notebook.com/ai-notebook/internal/errors"
)

type Action string

const (
	ActionPolish        Action = "polish"
	ActionGenerateTitle Action = "generate_title"
	ActionGenerateTags  Action = "generate_tags"
)

const maxTags = 5

var prompts = map[Action]string{
	ActionPolish: `You are a professional editor. Polish the text below so it reads more fluently, clearly and professionally while keeping its core meaning. Do not add any explanation; return only the polished text.

Original:
%s

Polished text:`,
	ActionGenerateTitle: `You write headlines. Produce one short, punchy title that captures the central idea of the content below. Do not add any explanation; return only the title.

Content:
%s

Title:`,
	ActionGenerateTags: `You analyse content. Extract the 3 to 5 most relevant keywords from the text below as tags. Reply with a JSON array such as ["tag A", "tag B"] and nothing else.

Text:
%s

Tags:`,
}

func (a Action) Valid() bool {
	_, ok := prompts[a]
	return ok
}

// Prompt renders the instruction sent for action over text.
func Prompt(action Action, text string) (string, error) {
	tmpl, ok := prompts[action]
	if !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidAction, action)
	}
	return fmt.Sprintf(tmpl, text), nil
}

// ParseTags reads a JSON string array, falling back to splitting on commas
// and newlines once brackets and quotes are stripped. The fallback keeps at
// most five tags.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err == nil && tags != nil {
		return tags
	}

	cleaned := strings.NewReplacer("[", "", "]", "", `"`, "", "'", "").Replace(raw)
	fields := strings.FieldsFunc(cleaned, func(r rune) bool { return r == ',' || r == '\n' })

	out := make([]string, 0, maxTags)
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, f)
		if len(out) == maxTags {
			break
		}
	}
	return out
}
