package enum

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCheckIn   AppointmentStatus = "check-in"
	AppointmentCheckOut  AppointmentStatus = "check-out"
)

// IsValid reports whether the status is one of the known states
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentUpcoming, AppointmentCancelled, AppointmentCheckIn, AppointmentCheckOut:
		return true
	}
	return false
}
