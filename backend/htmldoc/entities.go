package htmldoc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// namedEntities covers the character references seen in everyday markup.
// Full HTML entity coverage is out of scope; unknown references pass
// through verbatim.
var namedEntities = map[string]string{
	"amp": "&", "lt": "<", "gt": ">", "quot": "\"", "apos": "'",
	"nbsp": " ", "copy": "©", "reg": "®", "trade": "™",
	"hellip": "…", "mdash": "—", "ndash": "–",
	"laquo": "«", "raquo": "»",
	"ldquo": "“", "rdquo": "”", "lsquo": "‘", "rsquo": "’",
	"times": "×", "divide": "÷", "deg": "°", "plusmn": "±",
	"micro": "µ", "para": "¶", "sect": "§", "middot": "·",
	"frac12": "½", "sup2": "²", "sup3": "³",
	"szlig": "ß", "eacute": "é", "egrave": "è",
	"agrave": "à", "ccedil": "ç",
	"auml": "ä", "ouml": "ö", "uuml": "ü",
}

// decodeEntities expands named and numeric character references.
// References that don't resolve are left as-is.
func decodeEntities(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for amp >= 0 {
		sb.WriteString(s[:amp])
		s = s[amp:]
		decoded, consumed := decodeRef(s)
		if consumed == 0 {
			sb.WriteByte('&')
			s = s[1:]
		} else {
			sb.WriteString(decoded)
			s = s[consumed:]
		}
		amp = strings.IndexByte(s, '&')
	}
	sb.WriteString(s)
	return sb.String()
}

// decodeRef decodes one reference at the start of s ("&" included) and
// returns the replacement plus the number of bytes consumed. consumed == 0
// means no valid reference starts here.
func decodeRef(s string) (string, int) {
	if len(s) < 2 {
		return "", 0
	}
	if s[1] == '#' {
		return decodeNumericRef(s)
	}
	i := 1
	for i < len(s) && isEntityLetter(s[i]) {
		i++
	}
	if i == 1 {
		return "", 0
	}
	name := s[1:i]
	rep, ok := namedEntities[name]
	if !ok {
		return "", 0
	}
	if i < len(s) && s[i] == ';' {
		i++
	}
	return rep, i
}

func decodeNumericRef(s string) (string, int) {
	body := s[2:]
	base := 10
	if len(body) > 0 && (body[0] == 'x' || body[0] == 'X') {
		base = 16
		body = body[1:]
	}
	end := strings.IndexByte(body, ';')
	if end <= 0 {
		return "", 0
	}
	cp, err := strconv.ParseUint(body[:end], base, 32)
	if err != nil || !utf8.ValidRune(rune(cp)) {
		return "", 0
	}
	consumed := 2 + end + 1
	if base == 16 {
		consumed++
	}
	return string(rune(cp)), consumed
}

func isEntityLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
