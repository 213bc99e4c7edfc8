package notifications

import (
	"fmt"
	"time"
)

// Titles written by the appointment service.
const (
	TitleAppointmentRequested  = "Appointment Requested"
	TitleAppointmentConfirmed  = "Appointment Confirmed"
	TitleNewAppointmentRequest = "New Appointment Request"
	TitleAppointmentCancelled  = "Appointment Cancelled"
	TitleAppointmentReminder   = "Appointment Reminder"
)

// FormatBackendDateTime renders t the way appointment messages embed dates.
func FormatBackendDateTime(t time.Time) string {
	return t.Format(BackendDateTimeLayout)
}

// AppointmentRequestedMessage is sent to a patient after they request a slot.
func AppointmentRequestedMessage(at time.Time) string {
	return fmt.Sprintf("Your appointment request for %s has been submitted and is pending confirmation.", FormatBackendDateTime(at))
}

// AppointmentConfirmedMessage is sent to a patient once the doctor accepts.
func AppointmentConfirmedMessage(at time.Time) string {
	return fmt.Sprintf("Your appointment has been confirmed for %s.", FormatBackendDateTime(at))
}

// NewAppointmentRequestMessage is sent to the doctor a patient booked with.
func NewAppointmentRequestMessage(patient string, at time.Time) string {
	return fmt.Sprintf("You have a new appointment request from %s for %s.", patient, FormatBackendDateTime(at))
}
