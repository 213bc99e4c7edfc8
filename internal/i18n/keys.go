package i18n

// Translation keys shared by every bundled locale.
const (
	KeyTimeNow        = "time.now"
	KeyTimeMinutesAgo = "time.minutes_ago"
	KeyTimeHoursAgo   = "time.hours_ago"
	KeyTimeDaysAgo    = "time.days_ago"

	KeyPeriodMorning   = "time.period.morning"
	KeyPeriodAfternoon = "time.period.afternoon"
	KeyPeriodEvening   = "time.period.evening"

	// KeyDateTime renders weekday, day, month, year, hour, minutes and period, in that order.
	KeyDateTime = "time.date_time"

	KeyTitleAppointmentRequested  = "title.appointment_requested"
	KeyTitleAppointmentConfirmed  = "title.appointment_confirmed"
	KeyTitleNewAppointmentRequest = "title.new_appointment_request"
	KeyTitleAppointmentCancelled  = "title.appointment_cancelled"
	KeyTitleAppointmentReminder   = "title.appointment_reminder"

	KeyMessageAppointmentRequested  = "message.appointment_requested"
	KeyMessageAppointmentConfirmed  = "message.appointment_confirmed"
	KeyMessageNewAppointmentRequest = "message.new_appointment_request"
)
