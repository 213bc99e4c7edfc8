package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(Config{Source: English, Default: English, Supported: []string{English, Bulgarian}})
	require.NoError(t, err)
	return catalog
}

func TestNewCatalogRejectsUnsupportedLocale(t *testing.T) {
	_, err := NewCatalog(Config{Source: English, Supported: []string{"xx"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported locale")
}

func TestNewCatalogDefaultsToEnglish(t *testing.T) {
	catalog, err := NewCatalog(Config{})
	require.NoError(t, err)
	require.Equal(t, English, catalog.Default().Code())
	require.True(t, catalog.Source().IsSource())
	require.Equal(t, []string{English}, catalog.Codes())
}

func TestCatalogLocaleResolution(t *testing.T) {
	catalog := newTestCatalog(t)

	require.Equal(t, Bulgarian, catalog.Locale("bg").Code())
	require.Equal(t, Bulgarian, catalog.Locale(" BG-bg ").Code())
	require.Equal(t, Bulgarian, catalog.Locale("bg_BG").Code())
	require.Equal(t, English, catalog.Locale("de").Code())
	require.Equal(t, English, catalog.Locale("").Code())

	require.True(t, catalog.Supports("bg-BG"))
	require.False(t, catalog.Supports("fr"))
}

func TestCatalogMatchAcceptLanguage(t *testing.T) {
	catalog := newTestCatalog(t)

	cases := map[string]string{
		"":                          English,
		"bg-BG,bg;q=0.9,en;q=0.8":   Bulgarian,
		"en-US,en;q=0.9":            English,
		"de-DE,de;q=0.9":            English,
		"fr;q=0.9, bg;q=0.5":        Bulgarian,
		"not a valid header ;;; q=": English,
	}
	for header, want := range cases {
		require.Equal(t, want, catalog.Match(header).Code(), "header %q", header)
	}
}

func TestLocaleFlags(t *testing.T) {
	catalog := newTestCatalog(t)

	en := catalog.Locale(English)
	require.True(t, en.IsSource())
	require.False(t, en.ReformatDates())

	bg := catalog.Locale(Bulgarian)
	require.False(t, bg.IsSource())
	require.True(t, bg.ReformatDates())
}

func TestLocaleTemplates(t *testing.T) {
	catalog := newTestCatalog(t)

	en := catalog.Locale(English)
	require.Equal(t, "You have a new appointment request from Jane for Monday.",
		en.T(KeyMessageNewAppointmentRequest, "Jane", "Monday"))
	require.Equal(t, "now", en.T(KeyTimeNow))

	bg := catalog.Locale(Bulgarian)
	require.Equal(t, "Вашият час е потвърден за утре.", bg.T(KeyMessageAppointmentConfirmed, "утре"))
}

func TestLocaleMissingKeyFallsBackToKey(t *testing.T) {
	catalog := newTestCatalog(t)
	require.Equal(t, "no.such.key", catalog.Locale(Bulgarian).T("no.such.key"))
	require.Equal(t, "no.such.plural", catalog.Locale(Bulgarian).C("no.such.plural", 3))
}

func TestLocalePluralForms(t *testing.T) {
	catalog := newTestCatalog(t)

	en := catalog.Locale(English)
	require.Equal(t, "1 minute ago", en.C(KeyTimeMinutesAgo, 1))
	require.Equal(t, "5 minutes ago", en.C(KeyTimeMinutesAgo, 5))
	require.Equal(t, "1 day ago", en.C(KeyTimeDaysAgo, 1))

	bg := catalog.Locale(Bulgarian)
	require.Equal(t, "преди 1 час", bg.C(KeyTimeHoursAgo, 1))
	require.Equal(t, "преди 23 часа", bg.C(KeyTimeHoursAgo, 23))
	require.Equal(t, "преди 2 дни", bg.C(KeyTimeDaysAgo, 2))
}

func TestLocaleCalendarNames(t *testing.T) {
	catalog := newTestCatalog(t)

	en := catalog.Locale(English)
	require.Equal(t, "December", en.MonthWide(time.December))
	require.Equal(t, "Sunday", en.WeekdayWide(time.Sunday))

	bg := catalog.Locale(Bulgarian)
	require.NotEqual(t, "December", bg.MonthWide(time.December))
	require.NotEmpty(t, bg.WeekdayWide(time.Sunday))
}

func TestNormaliseCode(t *testing.T) {
	require.Equal(t, "bg", NormaliseCode("bg-BG"))
	require.Equal(t, "en", NormaliseCode(" EN_us "))
	require.Equal(t, "", NormaliseCode("   "))
}

func TestLocalePeriodBuckets(t *testing.T) {
	catalog := newTestCatalog(t)
	bg := catalog.Locale(Bulgarian)

	require.Equal(t, "сутринта", bg.Period(0))
	require.Equal(t, "сутринта", bg.Period(11))
	require.Equal(t, "следобед", bg.Period(12))
	require.Equal(t, "следобед", bg.Period(17))
	require.Equal(t, "вечерта", bg.Period(18))
	require.Equal(t, "in the evening", catalog.Locale(English).Period(23))
}
