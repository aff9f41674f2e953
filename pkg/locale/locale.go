// Package locale определяет язык ответа по параметру lang и заголовку Accept-Language.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Resolver сопоставляет запрошенные языки со списком поддерживаемых
type Resolver struct {
	matcher   language.Matcher
	supported []string
	def       string
}

// NewResolver создает Resolver. Локаль по умолчанию всегда считается поддерживаемой.
func NewResolver(def string, supported []string) *Resolver {
	def = normalize(def)
	codes := []string{def}
	tags := []language.Tag{language.Make(def)}
	for _, s := range supported {
		s = normalize(s)
		if s == "" || s == def {
			continue
		}
		codes = append(codes, s)
		tags = append(tags, language.Make(s))
	}
	return &Resolver{
		matcher:   language.NewMatcher(tags),
		supported: codes,
		def:       def,
	}
}

// Default возвращает локаль по умолчанию
func (r *Resolver) Default() string {
	return r.def
}

// Supported возвращает список поддерживаемых локалей, первой идет локаль по умолчанию
func (r *Resolver) Supported() []string {
	out := make([]string, len(r.supported))
	copy(out, r.supported)
	return out
}

// IsSupported проверяет, что код языка есть в списке поддерживаемых
func (r *Resolver) IsSupported(code string) bool {
	code = normalize(code)
	for _, s := range r.supported {
		if s == code {
			return true
		}
	}
	return false
}

// Resolve выбирает локаль: сначала явный параметр, затем Accept-Language, затем локаль по умолчанию
func (r *Resolver) Resolve(queryLang, acceptLanguage string) string {
	if queryLang != "" {
		if tag, err := language.Parse(queryLang); err == nil {
			if code, ok := r.match(tag); ok {
				return code
			}
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if code, ok := r.match(tags...); ok {
				return code
			}
		}
	}
	return r.def
}

func (r *Resolver) match(tags ...language.Tag) (string, bool) {
	_, idx, confidence := r.matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return r.supported[idx], true
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
