package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidateAppointment(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	valid := CreateAppointmentInput{
		PatientName:     "Asha Verma",
		Email:           "asha@example.com",
		Phone:           "987-654 3210",
		Age:             34,
		Department:      "Cardiology",
		AppointmentDate: tomorrow,
	}

	t.Run("Valid form passes", func(t *testing.T) {
		_, errs := validateAppointment(valid)
		assert.Empty(t, errs)
	})

	t.Run("Phone is normalized before the digit check", func(t *testing.T) {
		input := valid
		input.Phone = "98765 432-10"
		_, errs := validateAppointment(input)
		assert.Empty(t, errs)
	})

	cases := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		want   string
	}{
		{"Single character name", func(i *CreateAppointmentInput) { i.PatientName = "A" }, "patientName"},
		{"Malformed email", func(i *CreateAppointmentInput) { i.Email = "not-an-email" }, "email"},
		{"Nine digit phone", func(i *CreateAppointmentInput) { i.Phone = "123456789" }, "phone"},
		{"Letters in phone", func(i *CreateAppointmentInput) { i.Phone = "98765abcde" }, "phone"},
		{"Zero age", func(i *CreateAppointmentInput) { i.Age = 0 }, "age"},
		{"Age over 120", func(i *CreateAppointmentInput) { i.Age = 121 }, "age"},
		{"Missing department", func(i *CreateAppointmentInput) { i.Department = "" }, "department"},
		{"Past date", func(i *CreateAppointmentInput) { i.AppointmentDate = "2020-01-01" }, "appointmentDate"},
		{"Garbage date", func(i *CreateAppointmentInput) { i.AppointmentDate = "next tuesday" }, "appointmentDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			_, errs := validateAppointment(input)
			assert.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if strings.HasPrefix(e, tc.want) {
					found = true
				}
			}
			assert.True(t, found, "expected an error mentioning %q, got %v", tc.want, errs)
		})
	}
}

func TestBedChargesFor(t *testing.T) {
	assert.Equal(t, 500.0, bedChargesFor("General"))
	assert.Equal(t, 1500.0, bedChargesFor("Private"))
	assert.Equal(t, 3000.0, bedChargesFor("ICU"))
	assert.Equal(t, 2000.0, bedChargesFor("Deluxe"))
}

func TestCreateEmergencyValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handlers{}
	router := gin.New()
	router.POST("/api/emergencies", h.CreateEmergency)

	t.Run("Missing required fields are all reported", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/emergencies", gin.H{
			"patientName": "Asha Verma",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "phone is required")
		assert.Contains(t, w.Body.String(), "gender is required")
		assert.Contains(t, w.Body.String(), "symptoms is required")
		assert.Contains(t, w.Body.String(), "emergencyType is required")
	})

	t.Run("Unknown priority is rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/emergencies", gin.H{
			"patientName":   "Asha Verma",
			"phone":         "9876543210",
			"gender":        "female",
			"symptoms":      "chest pain",
			"emergencyType": "Cardiac",
			"priority":      "urgent",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "priority must be one of")
	})
}
