package domain

import (
	"fmt"
	"log/slog"
	"strings"

	m "github.com/vonacht/cd2ifier/internal/model"
)

// CD1 files in the wild carry raw line breaks inside the Description
// string, which is not valid JSON. ExtractMultilines lifts the
// continuation lines out so the rest of the document can be parsed; the
// serializer re-injects them verbatim. A Name field with the same problem
// is rejected: names are single-line and the engine does not repair them.
//
// Returns the cleaned text and the logical description tail (continuation
// lines joined by newlines, closing quote stripped), empty when the input
// needed no surgery.
func ExtractMultilines(raw string) (string, string, error) {
	lines := strings.Split(raw, "\n")

	start, end := -1, -1

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, `"Name"`) && !lineTerminatesString(line) {
			return "", "", fmt.Errorf("%w: the Name field spans multiple lines", m.ErrUnsupportedMultilineName)
		}

		if start == -1 {
			if strings.HasPrefix(trimmed, `"Description"`) && !lineTerminatesString(line) {
				start = i + 1
			}

			continue
		}

		// The multiline run ends right before the next key or the
		// closing brace of the object.
		if (strings.HasPrefix(trimmed, `"`) && trimmed != `",`) || strings.HasPrefix(trimmed, "}") {
			end = i - 1
			break
		}
	}

	if start == -1 {
		return raw, "", nil
	}

	if end == -1 {
		return "", "", fmt.Errorf("%w: unterminated multiline description", m.ErrMalformedInput)
	}

	slog.Info("multiline description detected, preserving verbatim")

	cleaned := make([]string, 0, len(lines)-(end-start+1))
	cleaned = append(cleaned, lines[:start-1]...)
	cleaned = append(cleaned, lines[start-1]+`",`)
	cleaned = append(cleaned, lines[end+1:]...)

	tail := strings.Join(lines[start:end+1], "\n")
	tail = strings.TrimSuffix(strings.TrimRight(tail, " \t"), `",`)

	return strings.Join(cleaned, "\n"), tail, nil
}

// lineTerminatesString reports whether a `"Key": "value...` line closes
// its string on the same line.
func lineTerminatesString(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	return strings.HasSuffix(trimmed, `",`) || strings.HasSuffix(trimmed, `"`)
}

// RecoverMultilines splices the preserved description tail back into
// pretty-printed output, restoring the raw line breaks the source had.
func RecoverMultilines(rendered, tail string) string {
	slog.Info("recovering multiline description")

	lines := strings.Split(rendered, "\n")
	out := make([]string, 0, len(lines)+1)

	recovered := false

	for _, line := range lines {
		if !recovered && strings.HasPrefix(strings.TrimSpace(line), `"Description"`) {
			trimmed := strings.TrimRight(line, " \t")

			closer := `",`
			base := strings.TrimSuffix(trimmed, closer)

			if base == trimmed {
				closer = `"`
				base = strings.TrimSuffix(trimmed, closer)
			}

			out = append(out, base, tail+closer)
			recovered = true

			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
