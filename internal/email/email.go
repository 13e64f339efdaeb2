package email

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jaswan333/hospital-golang/internal/logger"
)

// SendEmail is a placeholder sender: it logs the message instead of
// calling a real provider, so flows can be exercised without an API key.
func SendEmail(to string, subject string, body string) error {
	logger.L().Info("email (placeholder)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// SendAppointmentConfirmation notifies a patient that a booking went through.
func SendAppointmentConfirmation(to, patientName, department, date, timeSlot string) error {
	subject := "Your appointment is booked"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with the %s department is confirmed for %s at %s.\n\nPlease arrive 15 minutes early.",
		patientName, department, date, timeSlot,
	)
	return SendEmail(to, subject, body)
}
