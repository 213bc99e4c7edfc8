package i18n

import (
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/bg"
	"github.com/go-playground/locales/en"
)

// Language codes with a bundled translation set.
const (
	English   = "en"
	Bulgarian = "bg"
)

// bundle holds the raw translation tables for a single language. Placeholders
// must appear in ascending order ({0} before {1}) inside each text.
type bundle struct {
	locale        func() locales.Translator
	reformatDates bool
	texts         map[string]string
	cardinals     map[string]map[locales.PluralRule]string
}

var bundles = map[string]bundle{
	English: {
		locale: en.New,
		texts: map[string]string{
			KeyTimeNow:         "now",
			KeyPeriodMorning:   "in the morning",
			KeyPeriodAfternoon: "in the afternoon",
			KeyPeriodEvening:   "in the evening",
			KeyDateTime:        "{0}, {1} {2} {3} at {4}:{5} {6}",

			KeyTitleAppointmentRequested:  "Appointment Requested",
			KeyTitleAppointmentConfirmed:  "Appointment Confirmed",
			KeyTitleNewAppointmentRequest: "New Appointment Request",
			KeyTitleAppointmentCancelled:  "Appointment Cancelled",
			KeyTitleAppointmentReminder:   "Appointment Reminder",

			KeyMessageAppointmentRequested:  "Your appointment request for {0} has been submitted and is pending confirmation.",
			KeyMessageAppointmentConfirmed:  "Your appointment has been confirmed for {0}.",
			KeyMessageNewAppointmentRequest: "You have a new appointment request from {0} for {1}.",
		},
		cardinals: map[string]map[locales.PluralRule]string{
			KeyTimeMinutesAgo: {
				locales.PluralRuleOne:   "{0} minute ago",
				locales.PluralRuleOther: "{0} minutes ago",
			},
			KeyTimeHoursAgo: {
				locales.PluralRuleOne:   "{0} hour ago",
				locales.PluralRuleOther: "{0} hours ago",
			},
			KeyTimeDaysAgo: {
				locales.PluralRuleOne:   "{0} day ago",
				locales.PluralRuleOther: "{0} days ago",
			},
		},
	},
	Bulgarian: {
		locale:        bg.New,
		reformatDates: true,
		texts: map[string]string{
			KeyTimeNow:         "сега",
			KeyPeriodMorning:   "сутринта",
			KeyPeriodAfternoon: "следобед",
			KeyPeriodEvening:   "вечерта",
			KeyDateTime:        "{0}, {1} {2} {3} г. в {4}:{5} {6}",

			KeyTitleAppointmentRequested:  "Заявен час",
			KeyTitleAppointmentConfirmed:  "Потвърден час",
			KeyTitleNewAppointmentRequest: "Нова заявка за час",
			KeyTitleAppointmentCancelled:  "Отменен час",
			KeyTitleAppointmentReminder:   "Напомняне за час",

			KeyMessageAppointmentRequested:  "Вашата заявка за час на {0} е изпратена и очаква потвърждение.",
			KeyMessageAppointmentConfirmed:  "Вашият час е потвърден за {0}.",
			KeyMessageNewAppointmentRequest: "Имате нова заявка за час от {0} за {1}.",
		},
		cardinals: map[string]map[locales.PluralRule]string{
			KeyTimeMinutesAgo: {
				locales.PluralRuleOne:   "преди {0} минута",
				locales.PluralRuleOther: "преди {0} минути",
			},
			KeyTimeHoursAgo: {
				locales.PluralRuleOne:   "преди {0} час",
				locales.PluralRuleOther: "преди {0} часа",
			},
			KeyTimeDaysAgo: {
				locales.PluralRuleOne:   "преди {0} ден",
				locales.PluralRuleOther: "преди {0} дни",
			},
		},
	},
}
