package loaders

import "strings"

// kwPrefix marks string literals that stood for :keywords in the script
const kwPrefix = "__kw_"

// preprocessSource rewrites scene-script source into something zygomys
// reads:
//
//   - :keyword becomes the string literal "__kw_keyword"
//   - ; and ;; line comments become // comments
//   - kebab-case identifiers become snake_case (look-at -> look_at)
//
// String literals are copied untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			end := skipString(b, i)
			out.Write(b[i:end])
			i = end

		case c == ';':
			for i < len(b) && b[i] == ';' {
				i++
			}
			out.WriteString("//")
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKeywordChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.Write(b[i+1 : j])
			out.WriteByte('"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// skipString returns the index just past the string literal starting at b[i].
// Backslash escapes only apply inside double quotes.
func skipString(b []byte, i int) int {
	quote := b[i]
	j := i + 1
	for j < len(b) && b[j] != quote {
		if quote == '"' && b[j] == '\\' && j+1 < len(b) {
			j++
		}
		j++
	}
	if j < len(b) {
		j++
	}
	return j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeywordChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
