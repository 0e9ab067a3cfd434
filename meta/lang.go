package meta

import (
	"context"
	"sync"
)

var (
	langMapOnce sync.Once                    //nolint:gochecknoglobals // ensures SetLanguageMap is called once
	langMap     map[string]map[string]string //nolint:gochecknoglobals // avoids threading translations everywhere
	defaultLang string                       //nolint:gochecknoglobals // avoids threading translations everywhere
)

// SetLanguageMap sets the translations (lang -> text -> translated) and the default language.
// Only the first call has effect.
func SetLanguageMap(m map[string]map[string]string, defLang string) {
	langMapOnce.Do(func() {
		langMap = m
		defaultLang = defLang
	})
}

// Tr returns the translated text for the given language.
// Falls back to the default language, then to the text itself.
func Tr(text, lang string) string {
	if lang == "" {
		lang = defaultLang
	}

	if m, ok := langMap[lang]; ok {
		if res := m[text]; res != "" {
			return res
		}
	}

	if res := langMap[defaultLang][text]; res != "" {
		return res
	}

	return text
}

// TrCtx returns the translated text using the language from the request context.
func TrCtx(ctx context.Context, text string) string {
	return Tr(text, Find(ctx, AcceptLanguage))
}
