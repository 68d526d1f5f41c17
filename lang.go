package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lang selects which content dictionary a page is rendered from.
type Lang string

const (
	LangTR Lang = "tr"
	LangEN Lang = "en"

	DefaultLang = LangTR

	langParam  = "lang"
	langCookie = "lang"
)

// Langs lists the supported languages in switcher order.
var Langs = []Lang{LangTR, LangEN}

var (
	langTags    = []language.Tag{language.Turkish, language.English}
	langMatcher = language.NewMatcher(langTags)
)

// Tag returns the BCP 47 tag used for matching and casing.
func (l Lang) Tag() language.Tag {
	if l == LangEN {
		return language.English
	}
	return language.Turkish
}

// ParseLang accepts any tag whose base language is Turkish or English.
func ParseLang(value string) (Lang, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "tr":
		return LangTR, true
	case "en":
		return LangEN, true
	}
	return "", false
}

// ResolveLang picks the request language from the query, then the cookie,
// then Accept-Language. The bool reports whether the query set it and the
// choice should be persisted.
func ResolveLang(r *http.Request) (Lang, bool) {
	if r == nil {
		return DefaultLang, false
	}
	if lang, ok := ParseLang(r.URL.Query().Get(langParam)); ok {
		return lang, true
	}
	if cookie, err := r.Cookie(langCookie); err == nil {
		if lang, ok := ParseLang(cookie.Value); ok {
			return lang, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := langMatcher.Match(tags...)
			if conf != language.No {
				return Langs[idx], false
			}
		}
	}
	return DefaultLang, false
}

// SetLangCookie persists the selected language for a year.
func SetLangCookie(w http.ResponseWriter, lang Lang) {
	http.SetCookie(w, &http.Cookie{
		Name:     langCookie,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// LangOption is one entry of the language switcher.
type LangOption struct {
	Lang   Lang
	Label  string
	Flag   string
	Active bool
}

// LangOptions returns the switcher entries with the active language marked.
func LangOptions(active Lang) []LangOption {
	options := make([]LangOption, 0, len(Langs))
	for _, l := range Langs {
		opt := LangOption{Lang: l, Label: strings.ToUpper(string(l)), Active: l == active}
		switch l {
		case LangTR:
			opt.Flag = "🇹🇷"
		case LangEN:
			opt.Flag = "🇬🇧"
		}
		options = append(options, opt)
	}
	return options
}

// upperFor upper-cases s with the casing rules of lang (dotted İ in Turkish).
func upperFor(lang Lang, s string) string {
	return cases.Upper(lang.Tag()).String(s)
}

// langMiddleware resolves the language once per request and stores it on the
// gin context, persisting explicit ?lang= choices.
func langMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, persist := ResolveLang(c.Request)
		if persist {
			SetLangCookie(c.Writer, lang)
		}
		c.Set("lang", lang)
		c.Next()
	}
}

func langFromContext(c *gin.Context) Lang {
	if v, ok := c.Get("lang"); ok {
		if lang, ok := v.(Lang); ok {
			return lang
		}
	}
	return DefaultLang
}
