package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/otcheredev/hospital-console/internal/apiclient"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a hospital API double backed by canned JSON per route
type fakeAPI struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string]string
}

func newFakeAPI(t *testing.T, routes map[string]string) (*fakeAPI, *apiclient.Client) {
	f := &fakeAPI{bodies: map[string]string{}}
	mux := http.NewServeMux()
	for pattern, body := range routes {
		body := body
		pattern := pattern
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			f.calls = append(f.calls, r.Method+" "+r.URL.RequestURI())
			f.bodies[pattern] = string(raw)
			f.mu.Unlock()
			if body == "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			io.WriteString(w, body)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, apiclient.New(srv.URL)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Body(pattern string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[pattern]
}

func TestGetByIDResolvesParsedEntity(t *testing.T) {
	_, api := newFakeAPI(t, map[string]string{
		"GET /patients/{id}": `{"id":"1","firstName":"Ama","lastName":"Owusu","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`,
	})
	svc := NewPatientService(api)

	p, err := svc.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Ama", p.FirstName)
	assert.NoError(t, p.Validate())
}

func TestGetByIDNotFoundRejects(t *testing.T) {
	_, api := newFakeAPI(t, map[string]string{})
	svc := NewPatientService(api)

	p, err := svc.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, apiclient.IsNotFound(err))
}

func TestCreateReturnsServerEntityAndMutation(t *testing.T) {
	f, api := newFakeAPI(t, map[string]string{
		"POST /patients": `{"id":"p-9","firstName":"Kofi","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`,
	})
	svc := NewPatientService(api)

	p, m, err := svc.Create(context.Background(), models.PatientInput{FirstName: "Kofi"})
	require.NoError(t, err)
	assert.Equal(t, "p-9", p.ID)
	assert.Equal(t, models.Mutation{
		Resource:    ResourcePatients,
		ID:          "p-9",
		Invalidates: []string{ResourcePatients, ResourceAppointments, ResourceBeds},
	}, m)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(f.Body("POST /patients")), &sent))
	assert.NotContains(t, sent, "id")
	assert.NotContains(t, sent, "createdAt")
	assert.NotContains(t, sent, "updatedAt")
}

func TestUpdateSendsOnlyPatchedFields(t *testing.T) {
	f, api := newFakeAPI(t, map[string]string{
		"PUT /patients/{id}": `{"id":"p-1","firstName":"Ama","phone":"0200000000"}`,
	})
	svc := NewPatientService(api)

	phone := "0200000000"
	p, m, err := svc.Update(context.Background(), "p-1", models.PatientPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "0200000000", p.Phone)
	assert.Equal(t, "p-1", m.ID)
	assert.JSONEq(t, `{"phone":"0200000000"}`, f.Body("PUT /patients/{id}"))
}

func TestDeleteReturnsMutation(t *testing.T) {
	f, api := newFakeAPI(t, map[string]string{
		"DELETE /prescriptions/{id}": "",
	})
	svc := NewPrescriptionService(api)

	m, err := svc.Delete(context.Background(), "rx-1")
	require.NoError(t, err)
	assert.Equal(t, ResourcePrescriptions, m.Resource)
	assert.Equal(t, "rx-1", m.ID)
	assert.Equal(t, []string{"DELETE /prescriptions/rx-1"}, f.Calls())
}

func TestDeleteTwiceSurfacesSecondError(t *testing.T) {
	var mu sync.Mutex
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /beds/{id}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if deleted {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := NewBedService(apiclient.New(srv.URL))
	_, err := svc.Delete(context.Background(), "b-1")
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), "b-1")
	assert.True(t, apiclient.IsNotFound(err))
}

func TestGetAllWithNames(t *testing.T) {
	f, api := newFakeAPI(t, map[string]string{
		"GET /appointments": `[{"id":"a-1","patientId":"p-1","doctorId":"d-1"},{"id":"a-2","patientId":"p-2","doctorId":"d-9"}]`,
		"GET /patients":     `[{"id":"p-1","firstName":"Ama","lastName":"Owusu"},{"id":"p-2","firstName":"Kofi"}]`,
		"GET /users":        `[{"id":"d-1","firstName":"Efua","lastName":"Mensah","role":"doctor"}]`,
	})
	svc := New(api)

	views, err := svc.Appointments.GetAllWithNames(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Ama Owusu", views[0].PatientName)
	assert.Equal(t, "Efua Mensah", views[0].DoctorName)
	assert.Equal(t, "Kofi", views[1].PatientName)
	assert.Empty(t, views[1].DoctorName)
	assert.Contains(t, f.Calls(), "GET /users?role=doctor")
}

func TestGetAllWithNamesPropagatesError(t *testing.T) {
	_, api := newFakeAPI(t, map[string]string{
		"GET /appointments": `[]`,
	})
	svc := New(api)

	_, err := svc.Appointments.GetAllWithNames(context.Background())
	assert.True(t, apiclient.IsNotFound(err))
}

func TestQueryVariants(t *testing.T) {
	f, api := newFakeAPI(t, map[string]string{
		"GET /beds":            `[]`,
		"GET /audit-logs":      `[]`,
		"GET /prescriptions":   `[]`,
		"GET /appointments":    `[]`,
		"GET /patients/search": `[]`,
	})
	svc := New(api)
	ctx := context.Background()

	_, err := svc.Beds.GetAvailable(ctx)
	require.NoError(t, err)
	_, err = svc.Audit.GetPage(ctx, 2, 50)
	require.NoError(t, err)
	_, err = svc.Prescriptions.GetByPatient(ctx, "p-1")
	require.NoError(t, err)
	_, err = svc.Appointments.GetByPatient(ctx, "p-1")
	require.NoError(t, err)
	_, err = svc.Patients.Search(ctx, "ama")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /beds?status=available",
		"GET /audit-logs?limit=50&page=2",
		"GET /prescriptions?patientId=p-1",
		"GET /appointments?patientId=p-1",
		"GET /patients/search?q=ama",
	}, f.Calls())
}

func TestBedAssignInvalidatesPatients(t *testing.T) {
	f, api := newFakeAPI(t, map[string]string{
		"PUT /beds/{id}": `{"id":"b-1","status":"occupied","patientId":"p-1"}`,
	})
	svc := NewBedService(api)

	bed, m, err := svc.Assign(context.Background(), "b-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, models.BedOccupied, bed.Status)
	assert.Equal(t, []string{ResourceBeds, ResourcePatients}, m.Invalidates)
	assert.JSONEq(t, `{"status":"occupied","patientId":"p-1"}`, f.Body("PUT /beds/{id}"))
}

func TestSettings(t *testing.T) {
	f, api := newFakeAPI(t, map[string]string{
		"GET /settings": `{"organizationId":"org-1","hospitalName":"Korle Bu","timezone":"Africa/Accra"}`,
		"PUT /settings": `{"organizationId":"org-1","hospitalName":"Korle Bu","timezone":"UTC"}`,
	})
	svc := NewSettingsService(api)
	ctx := context.Background()

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Korle Bu", s.HospitalName)

	tz := "UTC"
	s, m, err := svc.Update(ctx, models.SettingsPatch{Timezone: &tz})
	require.NoError(t, err)
	assert.Equal(t, "UTC", s.Timezone)
	assert.Equal(t, []string{ResourceSettings}, m.Invalidates)
	assert.JSONEq(t, `{"timezone":"UTC"}`, f.Body("PUT /settings"))
}

func TestParseFailureIsNotSwallowed(t *testing.T) {
	_, api := newFakeAPI(t, map[string]string{
		"GET /users": `not json`,
	})
	svc := NewUserService(api)

	users, err := svc.GetAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, users)
	assert.True(t, apiclient.IsParseError(err))
}
