// Package dashboard assembles the role-dependent landing view: staff
// get hospital-wide stat cards and chart series, patients get a
// personal health overview.
package dashboard

import (
	"context"
	"fmt"

	"github.com/mednexus/hms/internal/domain/registry"
)

// StatCard is one headline figure with its period-over-period trend.
type StatCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend"`
}

// SeriesPoint is one day in the weekly volume and revenue series.
type SeriesPoint struct {
	Name     string  `json:"name"`
	Patients int     `json:"patients"`
	Revenue  float64 `json:"revenue"`
}

// RevenueShare is one department's slice of revenue.
type RevenueShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StaffView is the landing view for every non-patient role.
type StaffView struct {
	HospitalID    string         `json:"hospital_id"`
	Cards         []StatCard     `json:"cards"`
	WeeklySeries  []SeriesPoint  `json:"weekly_series"`
	RevenueByDept []RevenueShare `json:"revenue_by_dept"`
}

// Vital is one recent measurement on the patient overview.
type Vital struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PatientView is the landing view for the patient role.
type PatientView struct {
	Greeting        string  `json:"greeting"`
	NextAppointment string  `json:"next_appointment"`
	RecentVitals    []Vital `json:"recent_vitals"`
}

// Service builds dashboard views. The series and shares are demo
// figures; a reporting pipeline would replace them.
type Service struct {
	hospitals registry.HospitalRepository
}

func NewService(hospitals registry.HospitalRepository) *Service {
	return &Service{hospitals: hospitals}
}

var weeklySeries = []SeriesPoint{
	{Name: "Mon", Patients: 40, Revenue: 2400},
	{Name: "Tue", Patients: 30, Revenue: 1398},
	{Name: "Wed", Patients: 20, Revenue: 9800},
	{Name: "Thu", Patients: 27, Revenue: 3908},
	{Name: "Fri", Patients: 18, Revenue: 4800},
	{Name: "Sat", Patients: 23, Revenue: 3800},
	{Name: "Sun", Patients: 34, Revenue: 4300},
}

var revenueByDept = []RevenueShare{
	{Name: "Consultation", Value: 400},
	{Name: "Pharmacy", Value: 300},
	{Name: "Lab", Value: 300},
	{Name: "Surgery", Value: 200},
}

// StaffView builds the staff landing view scoped to the session's
// active hospital.
func (s *Service) StaffView(ctx context.Context, hospitalID string) (*StaffView, error) {
	h, err := s.hospitals.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	view := &StaffView{
		HospitalID: h.ID,
		Cards: []StatCard{
			{Label: "Total Patients", Value: formatCount(h.Stats.Patients), Trend: "+12%"},
			{Label: "Appointments", Value: "48", Trend: "+5%"},
			{Label: "Revenue", Value: formatMoney(h.Stats.Revenue), Trend: "+18%"},
			{Label: "Avg Wait Time", Value: "14 min", Trend: "-2%"},
		},
	}
	view.WeeklySeries = append(view.WeeklySeries, weeklySeries...)
	view.RevenueByDept = append(view.RevenueByDept, revenueByDept...)
	return view, nil
}

// PatientView builds the personal overview for a signed-in patient.
func (s *Service) PatientView(user registry.User) *PatientView {
	return &PatientView{
		Greeting:        fmt.Sprintf("Welcome back, %s", user.Name),
		NextAppointment: "Your next appointment is scheduled for tomorrow at 10:00 AM.",
		RecentVitals: []Vital{
			{Label: "Blood Pressure", Value: "120/80 mmHg"},
			{Label: "Heart Rate", Value: "72 bpm"},
		},
	}
}

func formatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatCount(n/1000) + fmt.Sprintf(",%03d", n%1000)
}

func formatMoney(v float64) string {
	return "$" + formatCount(int(v))
}
