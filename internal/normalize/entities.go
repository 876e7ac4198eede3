package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// entityPattern matches hex, decimal and named entities.
// Numeric forms tolerate a missing semicolon; named forms require one so "AT&T" survives.
var entityPattern = regexp.MustCompile(`&#[xX]([0-9a-fA-F]+);?|&#([0-9]+);?|&([a-zA-Z][a-zA-Z0-9]{1,31});|&#[xX]?;?`)

// residualEntityPattern catches entity-like fragments left after decoding,
// including numeric fragments exposed by double encoding ("&amp;#38")
var residualEntityPattern = regexp.MustCompile(`&#[xX]?[0-9a-fA-F]*;?|&[a-zA-Z][a-zA-Z0-9]{1,31};`)

// namedEntities is the fixed decoding table.
// Typographic quotes decode straight to ASCII so highlighted phrases compare cleanly.
var namedEntities = map[string]string{
	// markup
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
	"shy":  "",
	"zwj":  "",
	"zwnj": "",

	// quotes
	"ldquo":  `"`,
	"rdquo":  `"`,
	"bdquo":  `"`,
	"laquo":  `"`,
	"raquo":  `"`,
	"lsquo":  "'",
	"rsquo":  "'",
	"sbquo":  "'",
	"lsaquo": "'",
	"rsaquo": "'",
	"prime":  "'",
	"Prime":  `"`,

	// dashes and punctuation
	"ndash":  "–",
	"mdash":  "—",
	"minus":  "-",
	"hellip": "...",
	"bull":   "•",
	"middot": "·",
	"sect":   "§",
	"para":   "¶",
	"dagger": "†",
	"iexcl":  "¡",
	"iquest": "¿",

	// symbols
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"deg":    "°",
	"times":  "×",
	"divide": "÷",
	"plusmn": "±",
	"frac12": "½",
	"frac14": "¼",
	"frac34": "¾",
	"percnt": "%",
	"dollar": "$",

	// currency
	"cent":   "¢",
	"pound":  "£",
	"euro":   "€",
	"yen":    "¥",
	"curren": "¤",
}

// accentedLetters are registered in lower and capitalized form (eacute, Eacute)
var accentedLetters = map[string]rune{
	"agrave": 'à', "aacute": 'á', "acirc": 'â', "atilde": 'ã', "auml": 'ä', "aring": 'å', "aelig": 'æ',
	"ccedil": 'ç',
	"egrave": 'è', "eacute": 'é', "ecirc": 'ê', "euml": 'ë',
	"igrave": 'ì', "iacute": 'í', "icirc": 'î', "iuml": 'ï',
	"ntilde": 'ñ',
	"ograve": 'ò', "oacute": 'ó', "ocirc": 'ô', "otilde": 'õ', "ouml": 'ö', "oslash": 'ø',
	"ugrave": 'ù', "uacute": 'ú', "ucirc": 'û', "uuml": 'ü',
	"yacute": 'ý', "yuml": 'ÿ',
}

func init() {
	for name, r := range accentedLetters {
		namedEntities[name] = string(r)
		namedEntities[strings.ToUpper(name[:1])+name[1:]] = string(unicode.ToUpper(r))
	}
	namedEntities["szlig"] = "ß"
}

// typographicFold maps literal typographic characters onto their plain forms,
// matching what the entity table produces
var typographicFold = strings.NewReplacer(
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`, "\u201f", `"`, "\u00ab", `"`, "\u00bb", `"`,
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u201b", "'", "\u2039", "'", "\u203a", "'",
	"\u2032", "'", "\u2033", `"`,
	"\u00a0", " ", "\u2009", " ", "\u202f", " ", "\u2007", " ",
	"\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "", "\u00ad", "",
	"\u2026", "...",
)

// DecodeEntities decodes numeric, hex and named entities.
// Unknown named entities and unparseable numeric fragments are deleted.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return typographicFold.Replace(s)
	}

	decoded := entityPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := entityPattern.FindStringSubmatch(m)
		switch {
		case sub[1] != "":
			return decodeCodePoint(sub[1], 16)
		case sub[2] != "":
			return decodeCodePoint(sub[2], 10)
		case sub[3] != "":
			if v, ok := namedEntities[sub[3]]; ok {
				return v
			}
			if v, ok := namedEntities[strings.ToLower(sub[3])]; ok {
				return v
			}
			return ""
		default:
			return ""
		}
	})

	return typographicFold.Replace(decoded)
}

// decodeCodePoint returns the character for digits, or "" when the value is
// out of range or names no printable character
func decodeCodePoint(digits string, base int) string {
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n <= 0 || n > utf8.MaxRune {
		return ""
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return ""
	}
	// C0/C1 control characters other than whitespace carry no prose
	if unicode.IsControl(r) && !unicode.IsSpace(r) {
		return ""
	}
	return string(r)
}
