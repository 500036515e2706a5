package services

import (
	"context"
	"net/url"

	"github.com/otcheredev/hospital-console/internal/models"
)

// AppointmentService manages appointments
type AppointmentService struct {
	*Resource[models.Appointment, models.AppointmentInput, models.AppointmentPatch]
	patients *PatientService
	users    *UserService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(api Requester, patients *PatientService, users *UserService) *AppointmentService {
	return &AppointmentService{
		Resource: NewResource[models.Appointment, models.AppointmentInput, models.AppointmentPatch](
			api, ResourceAppointments),
		patients: patients,
		users:    users,
	}
}

// GetByPatient returns the appointments of one patient
func (s *AppointmentService) GetByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.list(ctx, "", url.Values{"patientId": {patientID}})
}

// GetAllWithNames returns every appointment joined with the patient and
// doctor display names. Names that cannot be resolved are left empty.
func (s *AppointmentService) GetAllWithNames(ctx context.Context) ([]models.AppointmentView, error) {
	appointments, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	doctors, err := s.users.GetByRole(ctx, "doctor")
	if err != nil {
		return nil, err
	}

	patientNames := make(map[string]string, len(patients))
	for _, p := range patients {
		patientNames[p.ID] = joinName(p.FirstName, p.LastName)
	}
	doctorNames := make(map[string]string, len(doctors))
	for _, d := range doctors {
		doctorNames[d.ID] = d.DisplayName()
	}

	views := make([]models.AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, models.AppointmentView{
			Appointment: a,
			PatientName: patientNames[a.PatientID],
			DoctorName:  doctorNames[a.DoctorID],
		})
	}
	return views, nil
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
