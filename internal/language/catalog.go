package language

import "strings"

// Language is one entry of the catalog.
type Language struct {
	Name string
	Code string
}

const (
	// DefaultSource is the source language used when nothing else is known.
	DefaultSource = "English"
	// DefaultTarget is the target language used when nothing else is known.
	DefaultTarget = "Spanish"
)

// catalog is ordered the way the languages are presented to the user.
var catalog = []Language{
	{"English", "en"},
	{"Spanish", "es"},
	{"French", "fr"},
	{"German", "de"},
	{"Italian", "it"},
	{"Portuguese", "pt"},
	{"Russian", "ru"},
	{"Japanese", "ja"},
	{"Korean", "ko"},
	{"Chinese (Simplified)", "zh-cn"},
	{"Chinese (Traditional)", "zh-tw"},
	{"Arabic", "ar"},
	{"Hindi", "hi"},
	{"Dutch", "nl"},
	{"Swedish", "sv"},
	{"Norwegian", "no"},
	{"Danish", "da"},
	{"Finnish", "fi"},
	{"Polish", "pl"},
	{"Czech", "cs"},
	{"Hungarian", "hu"},
	{"Turkish", "tr"},
	{"Greek", "el"},
	{"Hebrew", "he"},
	{"Thai", "th"},
	{"Vietnamese", "vi"},
	{"Indonesian", "id"},
	{"Malay", "ms"},
	{"Filipino", "tl"},
	{"Swahili", "sw"},
	{"Bengali", "bn"},
	{"Tamil", "ta"},
	{"Telugu", "te"},
	{"Marathi", "mr"},
	{"Gujarati", "gu"},
	{"Punjabi", "pa"},
	{"Urdu", "ur"},
	{"Persian", "fa"},
	{"Romanian", "ro"},
	{"Bulgarian", "bg"},
	{"Croatian", "hr"},
	{"Serbian", "sr"},
	{"Slovak", "sk"},
	{"Slovenian", "sl"},
	{"Lithuanian", "lt"},
	{"Latvian", "lv"},
	{"Estonian", "et"},
	{"Ukrainian", "uk"},
	{"Catalan", "ca"},
	{"Basque", "eu"},
	{"Galician", "gl"},
	{"Welsh", "cy"},
	{"Irish", "ga"},
	{"Scottish Gaelic", "gd"},
	{"Maltese", "mt"},
	{"Icelandic", "is"},
	{"Albanian", "sq"},
	{"Macedonian", "mk"},
	{"Bosnian", "bs"},
	{"Montenegrin", "me"},
	{"Afrikaans", "af"},
	{"Zulu", "zu"},
	{"Xhosa", "xh"},
	{"Yoruba", "yo"},
	{"Hausa", "ha"},
	{"Amharic", "am"},
	{"Somali", "so"},
	{"Malagasy", "mg"},
	{"Esperanto", "eo"},
	{"Latin", "la"},
}

var (
	byName = make(map[string]Language, len(catalog))
	byCode = make(map[string]Language, len(catalog))
)

func init() {
	for _, l := range catalog {
		byName[l.Name] = l
		byCode[l.Code] = l
	}
}

// All returns a copy of the catalog in presentation order.
func All() []Language {
	return append([]Language(nil), catalog...)
}

// Names returns the display names in presentation order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, l := range catalog {
		names[i] = l.Name
	}
	return names
}

// ByName looks up a language by its exact display name.
func ByName(name string) (Language, bool) {
	l, ok := byName[name]
	return l, ok
}

// ByCode looks up a language by code. The match ignores case.
func ByCode(code string) (Language, bool) {
	l, ok := byCode[strings.ToLower(code)]
	return l, ok
}

// Resolve accepts either a display name or a code, as typed on the command line.
func Resolve(nameOrCode string) (Language, bool) {
	if l, ok := ByName(nameOrCode); ok {
		return l, true
	}
	for _, l := range catalog {
		if strings.EqualFold(l.Name, nameOrCode) {
			return l, true
		}
	}
	return ByCode(nameOrCode)
}

// BaseCode strips a region suffix, "zh-cn" becomes "zh".
func (l Language) BaseCode() string {
	if i := strings.IndexByte(l.Code, '-'); i > 0 {
		return l.Code[:i]
	}
	return l.Code
}
