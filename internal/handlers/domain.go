package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/middleware"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/otcheredev/hospital-console/internal/services"
)

// Mount registers every domain collection on r. Each collection is only
// reachable when the request's tier enables the feature it belongs to.
func (a *API) Mount(r chi.Router) {
	r.Route("/"+services.ResourcePatients, func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.PatientManagement))
		a.patients().mount(r)
	})

	r.Route("/"+services.ResourceAppointments, func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.AppointmentSystem))
		r.Get("/with-names", a.appointmentsWithNames)
		a.appointments().mount(r)
	})

	r.Route("/"+services.ResourceBeds, func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.BedManagement))
		r.Post("/{id}/assign", a.assignBed)
		r.Post("/{id}/release", a.releaseBed)
		a.beds().mount(r)
	})

	r.Route("/"+services.ResourcePrescriptions, func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.PrescriptionSystem))
		a.prescriptions().mount(r)
	})

	r.Route("/"+services.ResourceUsers, func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.UserManagement))
		a.users().mount(r)
	})

	r.Route("/"+services.ResourceAuditLogs, func(r chi.Router) {
		r.Use(middleware.RequireFeature(features.SecurityLogs))
		a.auditLogs().mount(r)
	})

	r.Get("/"+services.ResourceSettings, a.getSettings)
	r.Put("/"+services.ResourceSettings, a.updateSettings)
}

func (a *API) patients() *resource[models.Patient, models.PatientInput, models.PatientPatch] {
	return &resource[models.Patient, models.PatientInput, models.PatientPatch]{
		api:  a,
		name: services.ResourcePatients,
		pick: func(s *services.Services) services.Service[models.Patient, models.PatientInput, models.PatientPatch] {
			return s.Patients
		},
		query: func(r *http.Request, s *services.Services, q url.Values) ([]models.Patient, bool, error) {
			if !q.Has("q") {
				return nil, false, nil
			}
			items, err := s.Patients.Search(r.Context(), q.Get("q"))
			return items, true, err
		},
	}
}

func (a *API) appointments() *resource[models.Appointment, models.AppointmentInput, models.AppointmentPatch] {
	return &resource[models.Appointment, models.AppointmentInput, models.AppointmentPatch]{
		api:  a,
		name: services.ResourceAppointments,
		pick: func(s *services.Services) services.Service[models.Appointment, models.AppointmentInput, models.AppointmentPatch] {
			return s.Appointments
		},
		query: func(r *http.Request, s *services.Services, q url.Values) ([]models.Appointment, bool, error) {
			if !q.Has("patientId") {
				return nil, false, nil
			}
			items, err := s.Appointments.GetByPatient(r.Context(), q.Get("patientId"))
			return items, true, err
		},
	}
}

func (a *API) beds() *resource[models.Bed, models.BedInput, models.BedPatch] {
	return &resource[models.Bed, models.BedInput, models.BedPatch]{
		api:  a,
		name: services.ResourceBeds,
		pick: func(s *services.Services) services.Service[models.Bed, models.BedInput, models.BedPatch] {
			return s.Beds
		},
		query: func(r *http.Request, s *services.Services, q url.Values) ([]models.Bed, bool, error) {
			if q.Get("status") != string(models.BedAvailable) {
				return nil, false, nil
			}
			items, err := s.Beds.GetAvailable(r.Context())
			return items, true, err
		},
	}
}

func (a *API) prescriptions() *resource[models.Prescription, models.PrescriptionInput, models.PrescriptionPatch] {
	return &resource[models.Prescription, models.PrescriptionInput, models.PrescriptionPatch]{
		api:  a,
		name: services.ResourcePrescriptions,
		pick: func(s *services.Services) services.Service[models.Prescription, models.PrescriptionInput, models.PrescriptionPatch] {
			return s.Prescriptions
		},
		query: func(r *http.Request, s *services.Services, q url.Values) ([]models.Prescription, bool, error) {
			if !q.Has("patientId") {
				return nil, false, nil
			}
			items, err := s.Prescriptions.GetByPatient(r.Context(), q.Get("patientId"))
			return items, true, err
		},
	}
}

func (a *API) users() *resource[models.User, models.UserInput, models.UserPatch] {
	return &resource[models.User, models.UserInput, models.UserPatch]{
		api:  a,
		name: services.ResourceUsers,
		pick: func(s *services.Services) services.Service[models.User, models.UserInput, models.UserPatch] {
			return s.Users
		},
		query: func(r *http.Request, s *services.Services, q url.Values) ([]models.User, bool, error) {
			if !q.Has("role") {
				return nil, false, nil
			}
			items, err := s.Users.GetByRole(r.Context(), q.Get("role"))
			return items, true, err
		},
	}
}

func (a *API) auditLogs() *resource[models.AuditEntry, models.AuditEntryInput, models.AuditEntryPatch] {
	return &resource[models.AuditEntry, models.AuditEntryInput, models.AuditEntryPatch]{
		api:      a,
		name:     services.ResourceAuditLogs,
		readOnly: true,
		pick: func(s *services.Services) services.Service[models.AuditEntry, models.AuditEntryInput, models.AuditEntryPatch] {
			return s.Audit
		},
		query: func(r *http.Request, s *services.Services, q url.Values) ([]models.AuditEntry, bool, error) {
			if !q.Has("page") && !q.Has("limit") {
				return nil, false, nil
			}
			page, _ := strconv.Atoi(q.Get("page"))
			limit, _ := strconv.Atoi(q.Get("limit"))
			items, err := s.Audit.GetPage(r.Context(), page, limit)
			return items, true, err
		},
	}
}

func (a *API) appointmentsWithNames(w http.ResponseWriter, r *http.Request) {
	views, err := a.services(r).Appointments.GetAllWithNames(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, nonNil(views))
}

type assignRequest struct {
	PatientID string `json:"patientId"`
}

func (a *API) assignBed(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decode(r, &req); err != nil || req.PatientID == "" {
		writeError(w, http.StatusBadRequest, "patientId is required")
		return
	}

	id := chi.URLParam(r, "id")
	start := time.Now()
	bed, m, err := a.services(r).Beds.Assign(r.Context(), id, req.PatientID)
	a.record(r, "assign", services.ResourceBeds, id, start, err)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, mutationResult[models.Bed]{Item: bed, Mutation: m})
}

func (a *API) releaseBed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	start := time.Now()
	bed, m, err := a.services(r).Beds.Release(r.Context(), id)
	a.record(r, "release", services.ResourceBeds, id, start, err)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, mutationResult[models.Bed]{Item: bed, Mutation: m})
}

func (a *API) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.services(r).Settings.Get(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, settings)
}

func (a *API) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	settings, m, err := a.services(r).Settings.Update(r.Context(), patch)
	a.record(r, "update", services.ResourceSettings, m.ID, start, err)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, mutationResult[models.Settings]{Item: settings, Mutation: m})
}
