// Package navigation decides which application sections a role may see.
// The policy is a static table; the same role always yields the same
// ordered section list.
package navigation

import "github.com/mednexus/hms/internal/domain/registry"

// Section is one sidebar destination. Icon names the capability icon
// the client renders next to the label.
type Section struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

// Canonical sections in display order. Dashboard leads every staff
// listing.
var (
	SectionDashboard    = Section{Label: "Dashboard", Path: "/", Icon: "layout-dashboard"}
	SectionPatients     = Section{Label: "Patients", Path: "/patients", Icon: "users"}
	SectionAppointments = Section{Label: "Appointments", Path: "/appointments", Icon: "calendar"}
	SectionPharmacy     = Section{Label: "Pharmacy", Path: "/pharmacy", Icon: "pill"}
	SectionLaboratory   = Section{Label: "Laboratory", Path: "/laboratory", Icon: "beaker"}
	SectionBilling      = Section{Label: "Billing", Path: "/billing", Icon: "credit-card"}

	SectionMyHealth       = Section{Label: "My Health", Path: "/", Icon: "layout-dashboard"}
	SectionMyAppointments = Section{Label: "My Appointments", Path: "/appointments", Icon: "calendar"}
	SectionReports        = Section{Label: "Reports", Path: "/reports", Icon: "file-text"}
)

// staffOrder is the fixed ordering for staff roles. Each section names
// the roles allowed to see it; Dashboard is open to every staff role.
var staffOrder = []struct {
	section Section
	roles   []registry.Role
}{
	{SectionDashboard, nil},
	{SectionPatients, []registry.Role{
		registry.RoleSuperAdmin, registry.RoleHospitalAdmin, registry.RoleDoctor, registry.RoleNurse,
	}},
	{SectionAppointments, []registry.Role{
		registry.RoleSuperAdmin, registry.RoleHospitalAdmin, registry.RoleDoctor, registry.RoleNurse,
	}},
	{SectionPharmacy, []registry.Role{
		registry.RoleSuperAdmin, registry.RoleHospitalAdmin, registry.RolePharmacist,
	}},
	{SectionLaboratory, []registry.Role{
		registry.RoleSuperAdmin, registry.RoleHospitalAdmin, registry.RoleLabTech,
	}},
	{SectionBilling, []registry.Role{
		registry.RoleSuperAdmin, registry.RoleHospitalAdmin, registry.RoleAccountant,
	}},
}

// patientSections is the complete portal listing for the patient role.
// Patients never see the staff sections.
var patientSections = []Section{
	SectionMyHealth, SectionMyAppointments, SectionReports,
}

// SectionsFor returns the ordered section list for role. The result is
// a fresh slice each call.
func SectionsFor(role registry.Role) []Section {
	if role == registry.RolePatient {
		out := make([]Section, len(patientSections))
		copy(out, patientSections)
		return out
	}

	var out []Section
	for _, entry := range staffOrder {
		if entry.roles == nil || roleIn(role, entry.roles) {
			out = append(out, entry.section)
		}
	}
	return out
}

// Visible reports whether role may access the section mounted at path.
func Visible(role registry.Role, path string) bool {
	for _, s := range SectionsFor(role) {
		if s.Path == path {
			return true
		}
	}
	return false
}

func roleIn(role registry.Role, roles []registry.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
