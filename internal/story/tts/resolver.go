package tts

import "strings"

// locales maps a lowercase language display name to the locale requested from
// the synthesizer.
var locales = map[string]string{
	"arabic":     "ar-SA",
	"chinese":    "zh-CN",
	"dutch":      "nl-NL",
	"english":    "en-US",
	"french":     "fr-FR",
	"german":     "de-DE",
	"greek":      "el-GR",
	"hindi":      "hi-IN",
	"italian":    "it-IT",
	"japanese":   "ja-JP",
	"korean":     "ko-KR",
	"polish":     "pl-PL",
	"portuguese": "pt-BR",
	"russian":    "ru-RU",
	"spanish":    "es-ES",
	"swedish":    "sv-SE",
	"turkish":    "tr-TR",
}

// DefaultPreferredVoices lists, per locale, voice names known to sound natural,
// best first.
var DefaultPreferredVoices = map[string][]string{
	"es-ES": {"Google español", "es-ES-Neural2", "es-ES-Wavenet", "Monica", "Jorge", "Microsoft Helena"},
	"fr-FR": {"Google français", "fr-FR-Neural2", "fr-FR-Wavenet", "Amelie", "Thomas", "Microsoft Hortense"},
	"de-DE": {"Google Deutsch", "de-DE-Neural2", "de-DE-Wavenet", "Anna", "Microsoft Hedda"},
	"it-IT": {"Google italiano", "it-IT-Neural2", "it-IT-Wavenet", "Alice", "Luca", "Microsoft Elsa"},
	"pt-BR": {"Google português do Brasil", "pt-BR-Neural2", "pt-BR-Wavenet", "Luciana", "Microsoft Maria"},
	"ja-JP": {"Google 日本語", "ja-JP-Neural2", "ja-JP-Wavenet", "Kyoko", "Microsoft Haruka"},
	"zh-CN": {"Google 普通话（中国大陆）", "cmn-CN-Wavenet", "Ting-Ting", "Microsoft Huihui"},
	"ko-KR": {"Google 한국의", "ko-KR-Neural2", "ko-KR-Wavenet", "Yuna", "Microsoft Heami"},
	"ru-RU": {"Google русский", "ru-RU-Wavenet", "Milena", "Microsoft Irina"},
	"en-US": {"Google US English", "en-US-Neural2", "en-US-Wavenet", "Samantha", "Microsoft Zira"},
}

// LocaleFor returns the locale for a language display name.
func LocaleFor(language string) (string, bool) {
	code, ok := locales[strings.ToLower(strings.TrimSpace(language))]
	return code, ok
}

// Languages returns the supported display names.
func Languages() []string {
	out := make([]string, 0, len(locales))
	for name := range locales {
		out = append(out, name)
	}
	return out
}

// Resolver picks one voice for a locale from whatever the platform offers.
type Resolver struct {
	preferred map[string][]string
}

// NewResolver returns a resolver using DefaultPreferredVoices overlaid with
// extra. A locale present in extra replaces the default list for it. Keys in
// extra may use any case ("es-es", "es_ES").
func NewResolver(extra map[string][]string) *Resolver {
	preferred := make(map[string][]string, len(DefaultPreferredVoices)+len(extra))
	for code, names := range DefaultPreferredVoices {
		preferred[code] = names
	}
	for code, names := range extra {
		preferred[canonicalLocale(code)] = names
	}
	return &Resolver{preferred: preferred}
}

// canonicalLocale formats a locale as language-REGION.
func canonicalLocale(code string) string {
	lang, region, found := strings.Cut(strings.ReplaceAll(code, "_", "-"), "-")
	if !found {
		return strings.ToLower(lang)
	}
	return strings.ToLower(lang) + "-" + strings.ToUpper(region)
}

// Resolve returns the voice for language. The first rule that matches wins:
// a preferred name (in preference order) contained in a voice name or ID, an
// exact locale match, a base language match, then the platform default.
func (r *Resolver) Resolve(language string, voices []Voice) (Voice, bool) {
	code, ok := LocaleFor(language)
	if !ok {
		return Voice{}, false
	}
	return r.ResolveLocale(code, voices)
}

// ResolveLocale is Resolve for an already mapped locale code.
func (r *Resolver) ResolveLocale(code string, voices []Voice) (Voice, bool) {
	for _, name := range r.preferred[code] {
		if name == "" {
			continue
		}
		for _, v := range voices {
			if strings.Contains(v.Name, name) || strings.Contains(v.ID, name) {
				return v, true
			}
		}
	}

	for _, v := range voices {
		if v.Locale == code {
			return v, true
		}
	}

	base := baseSubtag(code)
	for _, v := range voices {
		if baseSubtag(v.Locale) == base {
			return v, true
		}
	}

	for _, v := range voices {
		if v.Default {
			return v, true
		}
	}

	return Voice{}, false
}

// baseSubtag returns the lowercase language part of a locale such as "es-ES"
// or "pt_BR".
func baseSubtag(locale string) string {
	if i := strings.IndexAny(locale, "-_"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}
