package sauce

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"
	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

// DBLayout is the default layout of Now and DBFormat, suitable for SQL
// DATETIME columns.
const DBLayout = "2006-01-02 15:04:05"

// DateTime adds database and locale formatting to time.Time.
type DateTime struct {
	time.Time
}

// Now returns the current local time formatted with layout, or with
// DBLayout when layout is empty.
func Now(layout string) string {
	return DateTime{time.Now()}.DBFormat(layout)
}

// DBFormat formats the time with layout, or with DBLayout when layout is
// empty.
func (d DateTime) DBFormat(layout string) string {
	if layout == "" {
		layout = DBLayout
	}
	return d.Format(layout)
}

// ParseDateTime parses s in one of the many formats dateparse recognizes.
// Ambiguous dates such as 02/03/2024 are read month first.
func ParseDateTime(s string) (DateTime, error) {
	return ParseDateTimeIn(s, time.UTC)
}

// ParseDateTimeIn parses s like ParseDateTime, interpreting times without
// a zone in loc.
func ParseDateTimeIn(s string, loc *time.Location) (DateTime, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(s), loc, dateparse.PreferMonthFirst(true))
	if err != nil {
		return DateTime{}, serrors.New("FMT-0003", map[string]any{"GoError": err.Error()})
	}
	return DateTime{t}, nil
}

// FormatLocale formats the time with layout, translating month and day
// names into locale (e.g. "de", "fr_CA", "pt-BR"). Unknown locales fall
// back to US English.
func (d DateTime) FormatLocale(layout, locale string) string {
	if layout == "" {
		layout = DBLayout
	}
	return monday.Format(d.Time, layout, mondayLocale(locale))
}

// mondayLocale maps a locale string to a monday.Locale, trying the full
// code first and then the language alone.
func mondayLocale(locale string) monday.Locale {
	locale = strings.ToLower(strings.ReplaceAll(locale, "-", "_"))

	if loc, ok := mondayLocales[locale]; ok {
		return loc
	}
	if lang, _, found := strings.Cut(locale, "_"); found {
		if loc, ok := mondayLocales[lang]; ok {
			return loc
		}
	}
	return monday.LocaleEnUS
}

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"de_de": monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_fr": monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"es_es": monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"it_it": monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_pt": monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"nl_nl": monday.LocaleNlNL,
	"nl_be": monday.LocaleNlBE,
	"ru":    monday.LocaleRuRU,
	"pl":    monday.LocalePlPL,
	"cs":    monday.LocaleCsCZ,
	"da":    monday.LocaleDaDK,
	"fi":    monday.LocaleFiFI,
	"sv":    monday.LocaleSvSE,
	"nb":    monday.LocaleNbNO,
	"nn":    monday.LocaleNnNO,
	"ja":    monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_cn": monday.LocaleZhCN,
	"zh_tw": monday.LocaleZhTW,
	"ko":    monday.LocaleKoKR,
	"tr":    monday.LocaleTrTR,
	"uk":    monday.LocaleUkUA,
	"el":    monday.LocaleElGR,
	"ro":    monday.LocaleRoRO,
	"hu":    monday.LocaleHuHU,
	"bg":    monday.LocaleBgBG,
	"id":    monday.LocaleIdID,
	"th":    monday.LocaleThTH,
}
