package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes an EDN rendering of v for consumers that prefer it over
// JSON. We deliberately target the subset our CLI payloads need (maps,
// vectors, strings, numbers, booleans, nil) and reuse json tags for field
// naming by round-tripping structs through JSON first.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var buf bytes.Buffer
	writeEDNValue(&buf, x, pretty, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func writeEDNValue(buf *bytes.Buffer, v any, pretty bool, level int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case float64:
		// JSON numbers arrive as float64; print integral values as ints.
		if float64(int64(t)) == t {
			buf.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			buf.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		}
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				writeEDNSep(buf, pretty, level+1)
			}
			writeEDNValue(buf, e, pretty, level+1)
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				writeEDNSep(buf, pretty, level+1)
			}
			buf.WriteString(ednKeyword(k))
			buf.WriteByte(' ')
			writeEDNValue(buf, t[k], pretty, level+1)
		}
		buf.WriteByte('}')
	default:
		// Unreachable after a JSON round trip.
		fmt.Fprintf(buf, "%q", fmt.Sprint(t))
	}
}

func writeEDNSep(buf *bytes.Buffer, pretty bool, level int) {
	if !pretty {
		buf.WriteByte(' ')
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", level*2))
}

// ednKeyword renders a map key as :keyword when it is simple enough,
// otherwise as a quoted string key.
func ednKeyword(k string) string {
	if k == "" {
		return `""`
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == '*', r == '+', r == '!', r == '?':
		default:
			return strconv.Quote(k)
		}
	}
	return ":" + k
}
