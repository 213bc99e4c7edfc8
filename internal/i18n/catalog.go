// Package i18n resolves user locales and renders the translated templates used
// by the notification feed.
package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/stanielhristov/medical-reservation-sub004/pkg/logger"
)

// Config selects the locales a Catalog serves.
type Config struct {
	// Source is the language the backend authors notification text in.
	Source string
	// Default is used when a request does not resolve to a supported locale.
	Default   string
	Supported []string
}

// Catalog holds one immutable Locale per supported language. It is safe for concurrent use.
type Catalog struct {
	source   string
	fallback string
	codes    []string
	locales  map[string]*Locale
	matcher  language.Matcher
}

// NewCatalog builds translators for every supported language and verifies that
// each plural template covers all plural forms of its language.
func NewCatalog(cfg Config) (*Catalog, error) {
	source := NormaliseCode(cfg.Source)
	if source == "" {
		source = English
	}
	fallback := NormaliseCode(cfg.Default)
	if fallback == "" {
		fallback = source
	}

	// The default goes first so the matcher falls back to it.
	codes := uniqueCodes(append([]string{fallback, source}, cfg.Supported...))

	catalog := &Catalog{
		source:   source,
		fallback: fallback,
		codes:    codes,
		locales:  make(map[string]*Locale, len(codes)),
	}

	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		loc, err := buildLocale(code, code == source)
		if err != nil {
			return nil, err
		}
		catalog.locales[code] = loc
		tags = append(tags, language.Make(code))
	}
	catalog.matcher = language.NewMatcher(tags)

	return catalog, nil
}

func buildLocale(code string, source bool) (*Locale, error) {
	b, ok := bundles[code]
	if !ok {
		return nil, fmt.Errorf("i18n: unsupported locale %q", code)
	}

	base := b.locale()
	uni := ut.New(base, base)
	trans, found := uni.GetTranslator(base.Locale())
	if !found {
		return nil, fmt.Errorf("i18n: translator for %q not registered", code)
	}

	for key, text := range b.texts {
		if err := trans.Add(key, text, false); err != nil {
			return nil, fmt.Errorf("i18n: %s: add %s: %w", code, key, err)
		}
	}
	for key, forms := range b.cardinals {
		for rule, text := range forms {
			if err := trans.AddCardinal(key, text, rule, false); err != nil {
				return nil, fmt.Errorf("i18n: %s: add cardinal %s: %w", code, key, err)
			}
		}
	}
	if err := trans.VerifyTranslations(); err != nil {
		return nil, fmt.Errorf("i18n: %s: verify translations: %w", code, err)
	}

	return &Locale{
		code:          code,
		source:        source,
		reformatDates: b.reformatDates,
		trans:         trans,
	}, nil
}

// Locale returns the locale for a language code such as "bg" or "bg-BG",
// falling back to the default locale for unsupported codes.
func (c *Catalog) Locale(code string) *Locale {
	if loc, ok := c.locales[NormaliseCode(code)]; ok {
		return loc
	}
	return c.locales[c.fallback]
}

// Lookup is like Locale but reports whether the code is supported.
func (c *Catalog) Lookup(code string) (*Locale, bool) {
	loc, ok := c.locales[NormaliseCode(code)]
	return loc, ok
}

// Supports reports whether the language code resolves to a bundled locale.
func (c *Catalog) Supports(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

// Match resolves an Accept-Language header value.
func (c *Catalog) Match(acceptLanguage string) *Locale {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return c.Default()
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.Default()
	}

	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(c.codes) {
		return c.Default()
	}
	return c.locales[c.codes[index]]
}

// Default returns the fallback locale.
func (c *Catalog) Default() *Locale {
	return c.locales[c.fallback]
}

// Source returns the locale notification text is authored in.
func (c *Catalog) Source() *Locale {
	return c.locales[c.source]
}

// Codes lists the supported language codes, default first.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Locale is a read-only snapshot of a single language.
type Locale struct {
	code          string
	source        bool
	reformatDates bool
	trans         ut.Translator
}

// Code returns the language code.
func (l *Locale) Code() string { return l.code }

// IsSource reports whether this is the language the backend writes messages in.
func (l *Locale) IsSource() bool { return l.source }

// ReformatDates reports whether backend date strings must be re-rendered for this locale.
func (l *Locale) ReformatDates() bool { return l.reformatDates }

// T renders a plain template. A missing key is logged and the key itself returned.
func (l *Locale) T(key string, params ...string) string {
	text, err := l.trans.T(key, params...)
	if err != nil {
		logger.WithModule("i18n").Warn("missing translation",
			zap.String("locale", l.code),
			zap.String("key", key),
			zap.Error(err),
		)
		return key
	}
	return text
}

// C renders a plural-aware template for the count n.
func (l *Locale) C(key string, n int) string {
	text, err := l.trans.C(key, float64(n), 0, strconv.Itoa(n))
	if err != nil {
		logger.WithModule("i18n").Warn("missing plural translation",
			zap.String("locale", l.code),
			zap.String("key", key),
			zap.Int("count", n),
			zap.Error(err),
		)
		return key
	}
	return text
}

// MonthWide returns the full month name in this language.
func (l *Locale) MonthWide(month time.Month) string {
	return l.trans.MonthWide(month)
}

// WeekdayWide returns the full weekday name in this language.
func (l *Locale) WeekdayWide(weekday time.Weekday) string {
	return l.trans.WeekdayWide(weekday)
}

// Period returns the time-of-day phrase for an hour on the 24-hour clock:
// morning before noon, afternoon until 18:00, evening after.
func (l *Locale) Period(hour int) string {
	switch {
	case hour < 12:
		return l.T(KeyPeriodMorning)
	case hour < 18:
		return l.T(KeyPeriodAfternoon)
	default:
		return l.T(KeyPeriodEvening)
	}
}

// NormaliseCode reduces a language tag to its lowercase primary subtag ("bg-BG" -> "bg").
func NormaliseCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		code = code[:idx]
	}
	return code
}

func uniqueCodes(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = NormaliseCode(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
