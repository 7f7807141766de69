// Package locale holds the message catalogs of the roster UI and negotiates
// which language a request is served in.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var catalogs embed.FS

type SupportedLanguage struct {
	Code        string       `json:"code"`
	VerboseName string       `json:"name"`
	Tag         language.Tag `json:"-"`
}

var allSupportedLanguages = []SupportedLanguage{
	{Code: "en", VerboseName: "English", Tag: language.English},
	{Code: "tr", VerboseName: "Türkçe", Tag: language.Turkish},
}

// GetSupportedLanguages filters the built-in languages by code. An empty
// whitelist returns all of them.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}
	allowed := make(map[string]bool, len(whitelist))
	for _, code := range whitelist {
		allowed[strings.ToLower(strings.TrimSpace(code))] = true
	}
	out := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if allowed[lang.Code] {
			out = append(out, lang)
		}
	}
	return out
}

// Translator renders catalog messages for a language code.
type Translator struct {
	bundle    *i18n.Bundle
	supported []SupportedLanguage
	fallback  SupportedLanguage
	matcher   language.Matcher
	logger    *zap.Logger
}

// NewTranslator loads the embedded catalogs of the supported languages.
// fallback must be one of them.
func NewTranslator(fallback string, supported []string, logger ...*zap.Logger) (*Translator, error) {
	l := zap.L().Named("locale.translator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("locale.translator")
	}

	langs := GetSupportedLanguages(supported)
	if len(langs) == 0 {
		return nil, fmt.Errorf("no supported languages in %v", supported)
	}

	t := &Translator{supported: langs, logger: l}
	found := false
	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tags = append(tags, lang.Tag)
		if lang.Code == fallback {
			t.fallback = lang
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("default language %q is not supported", fallback)
	}

	// The fallback goes first so the matcher prefers it on a tie.
	ordered := append([]language.Tag{t.fallback.Tag}, tags...)
	t.matcher = language.NewMatcher(ordered)

	t.bundle = i18n.NewBundle(t.fallback.Tag)
	t.bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, lang := range langs {
		name := path.Join("locales", lang.Code+".json")
		data, err := catalogs.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
		if _, err := t.bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", name, err)
		}
	}

	return t, nil
}

func (t *Translator) Supported() []SupportedLanguage {
	return append([]SupportedLanguage(nil), t.supported...)
}

func (t *Translator) Default() string {
	return t.fallback.Code
}

// IsSupported reports whether code names a loaded language.
func (t *Translator) IsSupported(code string) bool {
	for _, lang := range t.supported {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// Match picks the best supported language for the given preferences, which
// may be codes ("tr"), tags ("en-GB") or Accept-Language headers.
func (t *Translator) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return t.fallback.Code
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback.Code
	}
	// idx 0 is the duplicated fallback entry.
	if idx == 0 {
		return t.fallback.Code
	}
	return t.supported[idx-1].Code
}

// Localize renders the message id in lang. Unknown ids come back verbatim so
// a missing entry shows up in the UI instead of an empty string.
func (t *Translator) Localize(lang, id string, params map[string]any) string {
	localizer := i18n.NewLocalizer(t.bundle, lang, t.fallback.Code)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: params,
	})
	// A message found only in the default language comes with a not-found
	// error but is still usable.
	if msg == "" {
		t.logger.Debug("message not localized",
			zap.String("lang", lang),
			zap.String("id", id),
			zap.Error(err),
		)
		return id
	}
	return msg
}
