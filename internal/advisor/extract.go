package advisor

import "errors"

// ErrNoJSONObject is returned when a reply contains no balanced {...} span.
var ErrNoJSONObject = errors.New("no JSON object found in reply")

// ExtractJSONObject returns the earliest-starting balanced {...} span in text.
// Braces inside JSON string literals are ignored. Openers that never close
// are skipped. The text is scanned once. The result is not validated as JSON;
// callers decode it and report failures separately.
func ExtractJSONObject(text string) (string, error) {
	var open []int
	bestStart, bestEnd := -1, -1
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			// Quotes only open strings inside a candidate object.
			if len(open) > 0 {
				inString = true
			}
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			if bestStart == -1 || start < bestStart {
				bestStart, bestEnd = start, i
			}
			// Every opener before start has already closed.
			if len(open) == 0 {
				return text[bestStart : bestEnd+1], nil
			}
		}
	}

	if bestStart == -1 {
		return "", ErrNoJSONObject
	}
	return text[bestStart : bestEnd+1], nil
}
