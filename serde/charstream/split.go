// This file contains the list splitters used to parse header values. They
// are small hand-written parsers sitting below the deserializer layer.

package charstream

import (
	"strings"

	"golang.org/x/xerrors"
)

// SplitList splits a comma-separated header value into its entries. Entries
// can be double-quoted, in which case commas inside the quotes are kept and
// backslash escapes are resolved. Whitespace around entries is dropped.
func SplitList(value string) ([]string, error) {
	cs := FromString(value)

	out := []string{}

	for {
		err := skipSpaces(cs)
		if err != nil {
			return nil, err
		}

		r, err := cs.Peek()
		if err != nil {
			return nil, err
		}

		if r == EOS {
			return out, nil
		}

		var entry string
		if r == '"' {
			entry, err = readQuoted(cs)
		} else {
			entry, err = readPlain(cs)
		}

		if err != nil {
			return nil, xerrors.Errorf("couldn't read entry %d: %w", len(out), err)
		}

		out = append(out, entry)

		err = skipSpaces(cs)
		if err != nil {
			return nil, err
		}

		err = cs.Consume(',', true)
		if err != nil {
			return nil, err
		}
	}
}

// SplitHTTPDateList splits a comma-separated list of IMF-fixdate values.
// Each date contains one comma after the day name, so the entries are
// separated by every second comma of the value.
func SplitHTTPDateList(value string) ([]string, error) {
	cs := FromString(value)

	out := []string{}
	sb := strings.Builder{}
	commas := 0

	for {
		r, err := cs.Next()
		if err != nil {
			return nil, err
		}

		if r == EOS {
			break
		}

		if r == ',' {
			commas++
			if commas%2 == 0 {
				out = append(out, strings.TrimSpace(sb.String()))
				sb.Reset()
				continue
			}
		}

		sb.WriteRune(r)
	}

	last := strings.TrimSpace(sb.String())
	if last != "" {
		out = append(out, last)
	}

	return out, nil
}

func skipSpaces(cs *CharStream) error {
	for {
		r, err := cs.Peek()
		if err != nil {
			return err
		}

		if r != ' ' && r != '\t' {
			return nil
		}

		_, err = cs.Next()
		if err != nil {
			return err
		}
	}
}

func readPlain(cs *CharStream) (string, error) {
	sb := strings.Builder{}

	for {
		r, err := cs.Peek()
		if err != nil {
			return "", err
		}

		if r == EOS || r == ',' {
			return strings.TrimRight(sb.String(), " \t"), nil
		}

		sb.WriteRune(r)

		_, err = cs.Next()
		if err != nil {
			return "", err
		}
	}
}

func readQuoted(cs *CharStream) (string, error) {
	err := cs.Consume('"', false)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}

	for {
		r, err := cs.NextOrErr("a closing quote")
		if err != nil {
			return "", err
		}

		switch r {
		case '"':
			return sb.String(), nil
		case '\\':
			escaped, err := cs.NextOrErr("an escaped character")
			if err != nil {
				return "", err
			}

			sb.WriteRune(escaped)
		default:
			sb.WriteRune(r)
		}
	}
}
