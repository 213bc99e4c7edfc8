package notifications

import (
	"regexp"
	"strings"

	"github.com/stanielhristov/medical-reservation-sub004/internal/i18n"
)

// Rule names the translation step that produced a message.
type Rule string

// Translation rules in the order they are tried.
const (
	RuleIdentity                     Rule = "identity"
	RuleAppointmentRequested         Rule = "appointment_requested"
	RuleAppointmentConfirmed         Rule = "appointment_confirmed"
	RuleNewAppointmentRequest        Rule = "new_appointment_request"
	RuleNewAppointmentFallback       Rule = "new_appointment_request_fallback"
	RuleAppointmentConfirmedFallback Rule = "appointment_confirmed_fallback"
	RuleUnmatched                    Rule = "unmatched"
)

// Translation is a rendered message and the rule that produced it.
type Translation struct {
	Text string
	Rule Rule
}

type messageRule struct {
	rule     Rule
	patterns []*regexp.Regexp

	// dateGroup and patientGroup index the submatches that must not be
	// blank; a zero patientGroup means the rule carries no patient.
	dateGroup    int
	patientGroup int
	render       func(loc *i18n.Locale, groups []string) string
}

func (r messageRule) complete(groups []string) bool {
	if cleanDateTime(groups[r.dateGroup]) == "" {
		return false
	}
	return r.patientGroup == 0 || strings.TrimSpace(groups[r.patientGroup]) != ""
}

var messageRules = []messageRule{
	{
		rule: RuleAppointmentRequested,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*your appointment request for (.+?) has been submitted and is pending confirmation[.!]?\s*$`),
		},
		dateGroup: 1,
		render: func(loc *i18n.Locale, groups []string) string {
			return renderRequested(loc, groups[1])
		},
	},
	{
		rule: RuleAppointmentConfirmed,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*your appointment has been confirmed for (.+?)[.!]?\s*$`),
		},
		dateGroup: 1,
		render: func(loc *i18n.Locale, groups []string) string {
			return renderConfirmed(loc, groups[1])
		},
	},
	{
		rule: RuleNewAppointmentRequest,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*you have a new appointment request from (.+?) for (.+?)[.!]?\s*$`),
			regexp.MustCompile(`(?i)^\s*you have received a new appointment request from (.+?) for (.+?)[.!]?\s*$`),
			regexp.MustCompile(`(?i)^\s*(?:a )?new appointment request from (.+?) for (.+?)[.!]?\s*$`),
			regexp.MustCompile(`(?i)^\s*(?:you have )?(?:an? )?appointment request from (.+?) for (.+?)[.!]?\s*$`),
		},
		patientGroup: 1,
		dateGroup:    2,
		render: func(loc *i18n.Locale, groups []string) string {
			return renderNewRequest(loc, groups[1], groups[2])
		},
	},
}

var (
	fromWord = regexp.MustCompile(`(?i)\bfrom\b`)
	forWord  = regexp.MustCompile(`(?i)\bfor\b`)
)

var titleKeys = map[string]string{
	TitleAppointmentRequested:  i18n.KeyTitleAppointmentRequested,
	TitleAppointmentConfirmed:  i18n.KeyTitleAppointmentConfirmed,
	TitleNewAppointmentRequest: i18n.KeyTitleNewAppointmentRequest,
	TitleAppointmentCancelled:  i18n.KeyTitleAppointmentCancelled,
	TitleAppointmentReminder:   i18n.KeyTitleAppointmentReminder,
}

// TranslateTitle returns the localised form of a known backend title. Unknown
// titles pass through unchanged.
func TranslateTitle(loc *i18n.Locale, title string) string {
	if loc.IsSource() {
		return title
	}
	key, ok := titleKeys[title]
	if !ok {
		return title
	}
	return loc.T(key)
}

// TranslateMessage re-renders a backend message for loc. Rules are tried in a
// fixed order and the first match wins; a message no rule recognises is
// returned unchanged.
func TranslateMessage(loc *i18n.Locale, message string) Translation {
	if loc.IsSource() {
		return Translation{Text: message, Rule: RuleIdentity}
	}

	for _, r := range messageRules {
		for _, pattern := range r.patterns {
			if groups := pattern.FindStringSubmatch(message); groups != nil && r.complete(groups) {
				return Translation{Text: r.render(loc, groups), Rule: r.rule}
			}
		}
	}

	if patient, when, ok := sliceNewRequest(message); ok {
		return Translation{Text: renderNewRequest(loc, patient, when), Rule: RuleNewAppointmentFallback}
	}
	if when, ok := sliceConfirmed(message); ok {
		return Translation{Text: renderConfirmed(loc, when), Rule: RuleAppointmentConfirmedFallback}
	}

	return Translation{Text: message, Rule: RuleUnmatched}
}

// sliceNewRequest takes the patient between the first "from" and the next
// "for", and the date from everything after that "for".
func sliceNewRequest(message string) (patient, when string, ok bool) {
	if !strings.Contains(strings.ToLower(message), "new appointment request") {
		return "", "", false
	}
	from := fromWord.FindStringIndex(message)
	if from == nil {
		return "", "", false
	}
	rest := message[from[1]:]
	forIdx := forWord.FindStringIndex(rest)
	if forIdx == nil {
		return "", "", false
	}

	patient = strings.TrimSpace(rest[:forIdx[0]])
	when = cleanDateTime(rest[forIdx[1]:])
	if patient == "" || when == "" {
		return "", "", false
	}
	return patient, when, true
}

func sliceConfirmed(message string) (string, bool) {
	lower := strings.ToLower(message)
	if !strings.Contains(lower, "appointment") || !strings.Contains(lower, "confirmed") {
		return "", false
	}
	forIdx := forWord.FindStringIndex(message)
	if forIdx == nil {
		return "", false
	}
	when := cleanDateTime(message[forIdx[1]:])
	if when == "" {
		return "", false
	}
	return when, true
}

func renderRequested(loc *i18n.Locale, when string) string {
	return loc.T(i18n.KeyMessageAppointmentRequested, ReformatDateTime(loc, cleanDateTime(when)))
}

func renderConfirmed(loc *i18n.Locale, when string) string {
	return loc.T(i18n.KeyMessageAppointmentConfirmed, ReformatDateTime(loc, cleanDateTime(when)))
}

func renderNewRequest(loc *i18n.Locale, patient, when string) string {
	return loc.T(i18n.KeyMessageNewAppointmentRequest, strings.TrimSpace(patient), ReformatDateTime(loc, cleanDateTime(when)))
}

// cleanDateTime trims whitespace and trailing sentence punctuation.
func cleanDateTime(value string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(value), ".!"))
}
