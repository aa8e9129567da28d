package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
)

var fenceMarkers = regexp.MustCompile("```(?:json)?\\s?|\\s?```")

// RepairTriage extracts a well-formed triage record from free-form AI text.
// It tries, in order: stripping Markdown fences and parsing the whole text,
// parsing the first {...} block, and a lenient parse of that block that
// tolerates single-quoted keys and Python-style literals. Returns nil when
// nothing parseable remains.
func RepairTriage(raw string) *entities.TriageResult {
	cleaned := strings.TrimSpace(fenceMarkers.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return nil
	}

	data := tryParseObject(cleaned)
	if data == nil {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start == -1 || end == -1 || end <= start {
			return nil
		}
		snippet := cleaned[start : end+1]
		data = tryParseObject(snippet)
		if data == nil {
			data = tryParseObject(normalizeLiterals(snippet))
		}
	}

	if len(data) == 0 {
		return nil
	}

	return normalizeTriage(data)
}

func tryParseObject(text string) map[string]any {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil
	}
	return data
}

const (
	defaultSpecialist = "General Physician"
	defaultUrgency    = "Moderate"
)

// normalizeTriage maps a parsed object onto the triage record. A specialist
// emitted as a list collapses to its first element. Missing specialist and
// urgency fields take defaults so the record is always fully populated; the
// provider search depends on both.
func normalizeTriage(data map[string]any) *entities.TriageResult {
	specialist := data["specialist"]
	if list, ok := specialist.([]any); ok {
		if len(list) > 0 {
			specialist = list[0]
		} else {
			specialist = nil
		}
	}

	result := &entities.TriageResult{
		Urgency:            asString(data["urgency"]),
		Summary:            asString(data["summary"]),
		PossibleConditions: asStringSlice(data["possible_conditions"]),
		Advice:             asStringSlice(data["advice"]),
		Specialist:         asString(specialist),
		Emergency:          asBool(data["emergency"]),
	}
	if result.Specialist == "" {
		result.Specialist = defaultSpecialist
	}
	if result.Urgency == "" {
		result.Urgency = defaultUrgency
	}
	return result
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asStringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// normalizeLiterals rewrites single-quoted strings to double-quoted ones and
// Python-style True/False/None literals to their JSON forms, leaving content
// inside double-quoted strings untouched. Some AI backends emit such
// pseudo-JSON when asked for JSON only.
func normalizeLiterals(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		switch s[i] {
		case '"':
			j := i + 1
			for j < len(s) {
				if s[j] == '\\' && j+1 < len(s) {
					j += 2
					continue
				}
				if s[j] == '"' {
					j++
					break
				}
				j++
			}
			out.WriteString(s[i:j])
			i = j
		case '\'':
			var val strings.Builder
			j := i + 1
			for j < len(s) && s[j] != '\'' {
				if s[j] == '\\' && j+1 < len(s) {
					val.WriteByte(s[j+1])
					j += 2
					continue
				}
				val.WriteByte(s[j])
				j++
			}
			out.WriteByte('"')
			out.WriteString(strings.ReplaceAll(val.String(), `"`, `\"`))
			out.WriteByte('"')
			i = j + 1
		default:
			if lit, jsonLit, ok := bareLiteral(s[i:]); ok {
				out.WriteString(jsonLit)
				i += len(lit)
				continue
			}
			out.WriteByte(s[i])
			i++
		}
	}

	return out.String()
}

var pythonLiterals = [][2]string{
	{"True", "true"},
	{"False", "false"},
	{"None", "null"},
}

func bareLiteral(s string) (literal, jsonLiteral string, ok bool) {
	for _, pair := range pythonLiterals {
		if strings.HasPrefix(s, pair[0]) {
			rest := s[len(pair[0]):]
			if rest == "" || !isWordByte(rest[0]) {
				return pair[0], pair[1], true
			}
		}
	}
	return "", "", false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
