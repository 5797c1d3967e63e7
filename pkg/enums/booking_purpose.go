package enums

import "fmt"

// BookingPurpose enumerates the accepted reasons for a guest house stay.
type BookingPurpose string

const (
	BookingPurposeOfficial   BookingPurpose = "Official"
	BookingPurposeConference BookingPurpose = "Conference"
	BookingPurposeTraining   BookingPurpose = "Training"
	BookingPurposePersonal   BookingPurpose = "Personal"
	BookingPurposeMedical    BookingPurpose = "Medical"
	BookingPurposeOther      BookingPurpose = "Other"
)

var validBookingPurposes = []BookingPurpose{
	BookingPurposeOfficial,
	BookingPurposeConference,
	BookingPurposeTraining,
	BookingPurposePersonal,
	BookingPurposeMedical,
	BookingPurposeOther,
}

// String implements fmt.Stringer.
func (b BookingPurpose) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingPurpose.
func (b BookingPurpose) IsValid() bool {
	for _, candidate := range validBookingPurposes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBookingPurpose converts raw input into a BookingPurpose.
func ParseBookingPurpose(value string) (BookingPurpose, error) {
	for _, candidate := range validBookingPurposes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking purpose %q", value)
}
