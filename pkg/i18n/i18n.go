// Package i18n holds the user-facing message tables for dt.
//
// Messages are addressed by Key. Every language table must define every key.
package i18n

import (
	"fmt"
	"strconv"
	"strings"
)

// Language identifies a message table.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

var tables = map[Language]map[Key]string{
	English: english,
	Chinese: chinese,
}

// Translator renders messages for one language.
type Translator struct {
	lang  Language
	table map[Key]string
}

// New returns a translator for a locale string such as "zh_CN" or "en-US".
// Locales starting with "zh" use the Chinese table; everything else is English.
func New(locale string) *Translator {
	lang := ParseLanguage(locale)
	return &Translator{lang: lang, table: tables[lang]}
}

// ParseLanguage maps a locale string onto a supported language.
func ParseLanguage(locale string) Language {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(locale)), "zh") {
		return Chinese
	}
	return English
}

// Language returns the language this translator renders.
func (t *Translator) Language() Language {
	return t.lang
}

// T returns the message for key.
func (t *Translator) T(key Key) string {
	if msg, ok := t.table[key]; ok {
		return msg
	}
	if msg, ok := english[key]; ok {
		return msg
	}
	return fmt.Sprintf("<missing message %d>", int(key))
}

// Tf returns the message for key with positional {0}, {1}, ... placeholders
// replaced by args.
func (t *Translator) Tf(key Key, args ...any) string {
	return Format(t.T(key), args...)
}

// Format substitutes positional placeholders in template.
func Format(template string, args ...any) string {
	if len(args) == 0 {
		return template
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// MonthNames returns the localized month names, January first.
func (t *Translator) MonthNames() []string {
	keys := []Key{
		MonthJan, MonthFeb, MonthMar, MonthApr, MonthMay, MonthJun,
		MonthJul, MonthAug, MonthSep, MonthOct, MonthNov, MonthDec,
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = t.T(k)
	}
	return names
}
