package layout

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured and none can be detected.
const DefaultLocale = "en-US"

// localePatterns lists the numeric short date formats known to the composer.
// The first entry is the fallback for locales the matcher cannot place.
var localePatterns = []struct {
	tag     string
	pattern string
}{
	{"en-US", "MM/dd/yyyy"},
	{"en-GB", "dd/MM/yyyy"},
	{"en-CA", "dd/MM/yyyy"},
	{"en-AU", "dd/MM/yyyy"},
	{"de", "dd.MM.yyyy"},
	{"fr", "dd/MM/yyyy"},
	{"fr-CA", "yyyy-MM-dd"},
	{"it", "dd/MM/yyyy"},
	{"es", "dd/MM/yyyy"},
	{"es-NI", "MM-dd-yyyy"},
	{"es-US", "MM/dd/yyyy"},
	{"pt", "dd/MM/yyyy"},
	{"nl", "dd-MM-yyyy"},
	{"sv", "yyyy-MM-dd"},
	{"da", "dd-MM-yyyy"},
	{"nb", "dd.MM.yyyy"},
	{"fi", "dd.MM.yyyy"},
	{"pl", "dd.MM.yyyy"},
	{"cs", "dd.MM.yyyy"},
	{"sk", "dd.MM.yyyy"},
	{"ru", "dd.MM.yyyy"},
	{"uk", "dd.MM.yyyy"},
	{"tr", "dd.MM.yyyy"},
	{"ro", "dd.MM.yyyy"},
	{"bg", "dd.MM.yyyy"},
	{"et", "dd.MM.yyyy"},
	{"el", "dd/MM/yyyy"},
	{"hu", "yyyy.MM.dd."},
	{"sr", "dd.MM.yyyy."},
	{"hr", "dd.MM.yyyy."},
	{"lt", "yyyy.MM.dd"},
	{"lv", "yyyy.dd.MM"},
	{"ga", "yyyy/MM/dd"},
	{"ja", "yyyy/MM/dd"},
	{"zh", "yyyy-MM-dd"},
	{"ko", "yyyy. MM. dd"},
}

var (
	localeTags    []language.Tag
	localeLayouts []Pattern
	localeMatcher language.Matcher
)

func init() {
	localeTags = make([]language.Tag, len(localePatterns))
	localeLayouts = make([]Pattern, len(localePatterns))
	for i, lp := range localePatterns {
		localeTags[i] = language.MustParse(lp.tag)
		localeLayouts[i] = MustParsePattern(lp.pattern)
	}
	localeMatcher = language.NewMatcher(localeTags)
}

// Match returns the pattern of the known locale closest to tag, the matched
// locale and the match confidence. Without any usable match the fallback
// locale is returned with confidence language.No.
func Match(tag language.Tag) (Pattern, language.Tag, language.Confidence) {
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(localeLayouts) {
		return clonePattern(localeLayouts[0]), localeTags[0], language.No
	}
	return clonePattern(localeLayouts[index]), localeTags[index], confidence
}

// ForLocale returns the pattern for an IETF/BCP 47 locale string such as
// "de-DE" or "sv". Unparsable locales yield the fallback pattern.
func ForLocale(locale string) Pattern {
	p, _, _ := Match(language.Make(locale))
	return p
}

// KnownLocales returns the locales that have a pattern of their own.
func KnownLocales() []string {
	out := make([]string, len(localePatterns))
	for i, lp := range localePatterns {
		out[i] = lp.tag
	}
	return out
}

// DetectLocale returns the user's locale from the environment. On failure it
// returns DefaultLocale together with the detection error.
func DetectLocale() (string, error) {
	locale, err := jj.DetectIETF()
	if err != nil || locale == "" {
		return DefaultLocale, err
	}
	return locale, nil
}

func clonePattern(p Pattern) Pattern {
	out := make(Pattern, len(p))
	copy(out, p)
	return out
}
