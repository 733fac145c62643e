package booking

import (
	"fmt"

	"vijayfix/models"
)

// ParseJobStatus validates a technician-side status name.
func ParseJobStatus(s string) (models.JobStatus, error) {
	switch models.JobStatus(s) {
	case models.JobPending, models.JobAccepted, models.JobOnWay, models.JobInProgress,
		models.JobPaymentPending, models.JobCompleted:
		return models.JobStatus(s), nil
	default:
		return "", fmt.Errorf("unknown job status: %s", s)
	}
}

var allowedTransitions = map[models.JobStatus]map[models.JobStatus]bool{
	models.JobPending:        {models.JobAccepted: true},
	models.JobAccepted:       {models.JobOnWay: true},
	models.JobOnWay:          {models.JobInProgress: true},
	models.JobInProgress:     {models.JobPaymentPending: true},
	models.JobPaymentPending: {models.JobCompleted: true},
	models.JobCompleted:      {},
}

func CanTransition(from, to models.JobStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// CoarseStatus projects a JobStatus onto the customer-facing bucket.
func CoarseStatus(js models.JobStatus) models.BookingStatus {
	switch js {
	case models.JobCompleted:
		return models.BookingCompleted
	case models.JobPaymentPending:
		return models.BookingPaymentPending
	case models.JobPending:
		return models.BookingConfirmed
	default:
		return models.BookingInProgress
	}
}

const bookingRequestedNotice = "Booking Request Sent. Waiting for technician to accept."

var statusNotices = map[models.JobStatus]string{
	models.JobAccepted:       "Technician accepted your request.",
	models.JobOnWay:          "Technician is on the way.",
	models.JobInProgress:     "Technician has arrived and started working.",
	models.JobPaymentPending: "Job completed. Bill generated.",
	models.JobCompleted:      "Payment received. Thank you!",
}

// Notice returns the system message announcing js, if one is defined.
func Notice(js models.JobStatus) (string, bool) {
	msg, ok := statusNotices[js]
	return msg, ok
}
