package models

import "time"

// Patient represents a registered patient
type Patient struct {
	BaseEntity
	OrganizationID string    `json:"organizationId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	Gender         string    `json:"gender"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	BloodType      string    `json:"bloodType,omitempty"`
	Status         string    `json:"status"`
}

// PatientInput is the create payload for a patient
type PatientInput struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	BloodType   string    `json:"bloodType,omitempty"`
}

// PatientPatch is a partial update; nil fields are left untouched server-side
type PatientPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
	BloodType *string `json:"bloodType,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// AppointmentStatus tracks an appointment through its lifecycle
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	BaseEntity
	PatientID   string            `json:"patientId"`
	DoctorID    string            `json:"doctorId"`
	ScheduledAt time.Time         `json:"scheduledAt"`
	Duration    int               `json:"durationMinutes"`
	Reason      string            `json:"reason,omitempty"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
}

type AppointmentInput struct {
	PatientID   string    `json:"patientId"`
	DoctorID    string    `json:"doctorId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Duration    int       `json:"durationMinutes"`
	Reason      string    `json:"reason,omitempty"`
}

type AppointmentPatch struct {
	ScheduledAt *time.Time         `json:"scheduledAt,omitempty"`
	Duration    *int               `json:"durationMinutes,omitempty"`
	Reason      *string            `json:"reason,omitempty"`
	Status      *AppointmentStatus `json:"status,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
}

// AppointmentView is an appointment joined with display names
type AppointmentView struct {
	Appointment
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

// BedStatus is the occupancy state of a bed
type BedStatus string

const (
	BedAvailable   BedStatus = "available"
	BedOccupied    BedStatus = "occupied"
	BedMaintenance BedStatus = "maintenance"
)

type Bed struct {
	BaseEntity
	Ward      string    `json:"ward"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Status    BedStatus `json:"status"`
	PatientID string    `json:"patientId,omitempty"`
}

type BedInput struct {
	Ward   string `json:"ward"`
	Number string `json:"number"`
	Type   string `json:"type"`
}

type BedPatch struct {
	Ward      *string    `json:"ward,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Status    *BedStatus `json:"status,omitempty"`
	PatientID *string    `json:"patientId,omitempty"`
}

// Medication is a single line of a prescription
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type Prescription struct {
	BaseEntity
	PatientID    string       `json:"patientId"`
	DoctorID     string       `json:"doctorId"`
	Medications  []Medication `json:"medications"`
	Instructions string       `json:"instructions,omitempty"`
	Status       string       `json:"status"`
}

type PrescriptionInput struct {
	PatientID    string       `json:"patientId"`
	DoctorID     string       `json:"doctorId"`
	Medications  []Medication `json:"medications"`
	Instructions string       `json:"instructions,omitempty"`
}

type PrescriptionPatch struct {
	Medications  []Medication `json:"medications,omitempty"`
	Instructions *string      `json:"instructions,omitempty"`
	Status       *string      `json:"status,omitempty"`
}

// User is a staff or patient account within an organization
type User struct {
	BaseEntity
	OrganizationID string `json:"organizationId"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           string `json:"role"`
	IsActive       bool   `json:"isActive"`
}

// DisplayName returns "First Last"
func (u User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type UserInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Password  string `json:"password,omitempty"`
}

type UserPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// AuditEntry is an audit record kept by the hospital API
type AuditEntry struct {
	BaseEntity
	UserID       string `json:"userId"`
	Action       string `json:"action"`
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId,omitempty"`
	IPAddress    string `json:"ipAddress,omitempty"`
	Details      string `json:"details,omitempty"`
}

type AuditEntryInput struct {
	UserID       string `json:"userId"`
	Action       string `json:"action"`
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId,omitempty"`
	Details      string `json:"details,omitempty"`
}

type AuditEntryPatch struct {
	Details *string `json:"details,omitempty"`
}

// Settings is the per-organization settings document
type Settings struct {
	OrganizationID    string `json:"organizationId"`
	HospitalName      string `json:"hospitalName"`
	Timezone          string `json:"timezone"`
	Currency          string `json:"currency"`
	AppointmentLength int    `json:"appointmentLengthMinutes"`
	EmailNotify       bool   `json:"emailNotifications"`
	SMSNotify         bool   `json:"smsNotifications"`
}

type SettingsPatch struct {
	HospitalName      *string `json:"hospitalName,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	Currency          *string `json:"currency,omitempty"`
	AppointmentLength *int    `json:"appointmentLengthMinutes,omitempty"`
	EmailNotify       *bool   `json:"emailNotifications,omitempty"`
	SMSNotify         *bool   `json:"smsNotifications,omitempty"`
}
