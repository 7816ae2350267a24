package openai

import "strings"

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// The one seen in practice from small local models is a dropped opening quote
// on an object key, e.g. `{text": "..."}` or `, spans": [...]`.
func repairJSON(s string) string {
	runes := []rune(s)
	var fixed strings.Builder
	fixed.Grow(len(s) + 16)

	i := 0
	for i < len(runes) {
		ch := runes[i]
		fixed.WriteRune(ch)
		i++

		if ch != '{' && ch != ',' {
			continue
		}

		// Copy any whitespace following the delimiter.
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			fixed.WriteRune(runes[i])
			i++
		}

		// A bare word here may be a key missing its opening quote.
		if i >= len(runes) || runes[i] == '"' || !isLetter(runes[i]) {
			continue
		}

		keyStart := i
		for i < len(runes) && (isLetter(runes[i]) || runes[i] == '_') {
			i++
		}

		if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			// Unquoted key confirmed: insert the missing opening quote.
			fixed.WriteRune('"')
		}
		fixed.WriteString(string(runes[keyStart:i]))
	}

	return fixed.String()
}
