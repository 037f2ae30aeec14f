package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inventa-app/inventa/internal/domain"
)

// rawRecord is the wire shape a generator must produce.
type rawRecord struct {
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	Category   string         `json:"category"`
	Tags       []string       `json:"tags"`
	Attributes map[string]any `json:"attributes"`
}

// ParseResponse decodes generator output into a validated ItemRecord.
// Markdown code fences and surrounding prose are tolerated; anything that is
// not a single JSON object of the expected shape, or that fails the record
// invariants, is an error (the caller advances the fallback chain).
func ParseResponse(text string) (domain.ItemRecord, error) {
	body, err := extractJSONObject(text)
	if err != nil {
		return domain.ItemRecord{}, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	var raw rawRecord
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return domain.ItemRecord{}, fmt.Errorf("%w: decode response: %w", domain.ErrGenerationFailed, err)
	}

	attrs := make(map[string]domain.AttrValue, len(raw.Attributes))
	for k, v := range raw.Attributes {
		av, ok := domain.AttrFromAny(v)
		if !ok {
			return domain.ItemRecord{}, fmt.Errorf(
				"%w: attribute %q is not a primitive", domain.ErrGenerationFailed, k)
		}
		attrs[k] = av
	}

	tags := make([]string, 0, len(raw.Tags))
	for _, t := range raw.Tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	record := domain.ItemRecord{
		Title:      strings.TrimSpace(raw.Title),
		Summary:    strings.TrimSpace(raw.Summary),
		Category:   strings.ToLower(strings.TrimSpace(raw.Category)),
		Tags:       tags,
		Attributes: attrs,
	}

	if err := record.Validate(); err != nil {
		return domain.ItemRecord{}, err
	}
	return record, nil
}

// extractJSONObject returns the first balanced top-level JSON object in text.
func extractJSONObject(text string) (string, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}
