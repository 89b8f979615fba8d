package registry

// Role is the closed set of user roles the system knows about. A role is
// assigned at login and is immutable for the lifetime of a session.
type Role string

const (
	RoleSuperAdmin    Role = "Super Admin"
	RoleHospitalAdmin Role = "Hospital Admin"
	RoleDoctor        Role = "Doctor"
	RoleNurse         Role = "Nurse"
	RolePatient       Role = "Patient"
	RoleReceptionist  Role = "Receptionist"
	RoleLabTech       Role = "Lab Technician"
	RolePharmacist    Role = "Pharmacist"
	RoleAccountant    Role = "Accountant"
)

// AllRoles lists every role in declaration order.
var AllRoles = []Role{
	RoleSuperAdmin, RoleHospitalAdmin, RoleDoctor, RoleNurse, RolePatient,
	RoleReceptionist, RoleLabTech, RolePharmacist, RoleAccountant,
}

var validRoles = map[Role]bool{
	RoleSuperAdmin: true, RoleHospitalAdmin: true, RoleDoctor: true,
	RoleNurse: true, RolePatient: true, RoleReceptionist: true,
	RoleLabTech: true, RolePharmacist: true, RoleAccountant: true,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return validRoles[r] }

// User is the identity attached to an authenticated session.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	AvatarURL  string `json:"avatar_url"`
	HospitalID string `json:"hospital_id"`
}

// HospitalStats holds the aggregate numbers shown on the dashboard for a
// hospital. The values are fed as-is to the chart rendering sink.
type HospitalStats struct {
	Patients  int     `json:"patients"`
	Staff     int     `json:"staff"`
	Revenue   float64 `json:"revenue"`
	Occupancy int     `json:"occupancy"`
}

// Hospital is read-only reference data. One hospital is "active" per
// session; selecting a different one is a UI-context change only.
type Hospital struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Stats    HospitalStats `json:"stats"`
}

// Patient statuses.
const (
	PatientAdmitted   = "Admitted"
	PatientOutpatient = "Outpatient"
	PatientDischarged = "Discharged"
)

var validPatientStatuses = map[string]bool{
	PatientAdmitted: true, PatientOutpatient: true, PatientDischarged: true,
}

// ValidPatientStatus reports whether s is a known patient status.
func ValidPatientStatus(s string) bool { return validPatientStatuses[s] }

// Triage levels, coarse severity classifications guiding care priority.
const (
	TriageGreen  = "Green"
	TriageYellow = "Yellow"
	TriageRed    = "Red"
	TriageBlack  = "Black"
)

var validTriageLevels = map[string]bool{
	TriageGreen: true, TriageYellow: true, TriageRed: true, TriageBlack: true,
}

// ValidTriageLevel reports whether s is a known triage level.
func ValidTriageLevel(s string) bool { return validTriageLevels[s] }

var validGenders = map[string]bool{
	"Male": true, "Female": true, "Other": true,
}

// Patient is a registry entry. Identity is the ID; clinical mutation goes
// through the EMR workflow, the registry itself only reads.
type Patient struct {
	ID             string   `json:"id"`
	FullName       string   `json:"full_name"`
	DOB            string   `json:"dob"`
	Gender         string   `json:"gender"`
	Phone          string   `json:"phone"`
	BloodType      string   `json:"blood_type"`
	LastVisit      string   `json:"last_visit"`
	Status         string   `json:"status"`
	TriageLevel    string   `json:"triage_level,omitempty"`
	Allergies      []string `json:"allergies"`
	MedicalHistory []string `json:"medical_history"`
}

// Appointment types.
const (
	AppointmentConsultation = "Consultation"
	AppointmentFollowUp     = "Follow-up"
	AppointmentEmergency    = "Emergency"
)

var validAppointmentTypes = map[string]bool{
	AppointmentConsultation: true, AppointmentFollowUp: true, AppointmentEmergency: true,
}

// ValidAppointmentType reports whether s is a known appointment type.
func ValidAppointmentType(s string) bool { return validAppointmentTypes[s] }

// Appointment statuses.
const (
	AppointmentScheduled  = "Scheduled"
	AppointmentCompleted  = "Completed"
	AppointmentCancelled  = "Cancelled"
	AppointmentInProgress = "In Progress"
)

var validAppointmentStatuses = map[string]bool{
	AppointmentScheduled: true, AppointmentCompleted: true,
	AppointmentCancelled: true, AppointmentInProgress: true,
}

// ValidAppointmentStatus reports whether s is a known appointment status.
func ValidAppointmentStatus(s string) bool { return validAppointmentStatuses[s] }

// Appointment carries denormalized patient and doctor names so the list
// view needs no joins.
type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

// SOAP is the structured clinical note format.
type SOAP struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// ClinicalNote is a SOAP note with an optional AI analysis attached.
type ClinicalNote struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	DoctorID   string `json:"doctor_id"`
	Date       string `json:"date"`
	SOAP       SOAP   `json:"soap"`
	AIAnalysis string `json:"ai_analysis,omitempty"`
}
