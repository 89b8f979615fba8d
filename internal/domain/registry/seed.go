package registry

// Seed fixtures for the default in-memory repositories. The dataset is the
// demo hospital network; a Postgres deployment loads real data instead.

// SeedHospitals returns the demo hospital reference data.
func SeedHospitals() []*Hospital {
	return []*Hospital{
		{
			ID:       "hosp_1",
			Name:     "MedNexus Central",
			Location: "New York, NY",
			Stats:    HospitalStats{Patients: 1240, Staff: 85, Revenue: 450000, Occupancy: 78},
		},
		{
			ID:       "hosp_2",
			Name:     "MedNexus West Branch",
			Location: "San Francisco, CA",
			Stats:    HospitalStats{Patients: 850, Staff: 45, Revenue: 210000, Occupancy: 62},
		},
	}
}

// SeedUsers returns the demo login identities, one per simulated role.
func SeedUsers() []*User {
	return []*User{
		{
			ID:         "u_1",
			Name:       "Dr. Sarah Connor",
			Email:      "sarah@mednexus.com",
			Role:       RoleSuperAdmin,
			AvatarURL:  "https://picsum.photos/200/200?random=1",
			HospitalID: "hosp_1",
		},
		{
			ID:         "u_2",
			Name:       "Dr. Gregory House",
			Email:      "house@mednexus.com",
			Role:       RoleDoctor,
			AvatarURL:  "https://picsum.photos/200/200?random=2",
			HospitalID: "hosp_1",
		},
		{
			ID:         "u_3",
			Name:       "Nurse Jackie",
			Email:      "jackie@mednexus.com",
			Role:       RoleNurse,
			AvatarURL:  "https://picsum.photos/200/200?random=3",
			HospitalID: "hosp_1",
		},
		{
			ID:         "u_4",
			Name:       "John Doe",
			Email:      "john@gmail.com",
			Role:       RolePatient,
			AvatarURL:  "https://picsum.photos/200/200?random=4",
			HospitalID: "hosp_1",
		},
	}
}

// SeedPatients returns the demo patient registry.
func SeedPatients() []*Patient {
	return []*Patient{
		{
			ID:             "P-1001",
			FullName:       "Alice Spriggs",
			DOB:            "1985-04-12",
			Gender:         "Female",
			Phone:          "+1 555-0101",
			BloodType:      "O+",
			LastVisit:      "2023-10-24",
			Status:         PatientOutpatient,
			TriageLevel:    TriageGreen,
			Allergies:      []string{"Penicillin"},
			MedicalHistory: []string{"Hypertension", "Asthma"},
		},
		{
			ID:             "P-1002",
			FullName:       "Robert Chen",
			DOB:            "1972-08-30",
			Gender:         "Male",
			Phone:          "+1 555-0102",
			BloodType:      "A-",
			LastVisit:      "2023-10-25",
			Status:         PatientAdmitted,
			TriageLevel:    TriageRed,
			Allergies:      []string{},
			MedicalHistory: []string{"Diabetes Type 2"},
		},
		{
			ID:             "P-1003",
			FullName:       "Emily Blunt",
			DOB:            "1995-02-15",
			Gender:         "Female",
			Phone:          "+1 555-0103",
			BloodType:      "B+",
			LastVisit:      "2023-10-20",
			Status:         PatientOutpatient,
			TriageLevel:    TriageYellow,
			Allergies:      []string{"Peanuts", "Latex"},
			MedicalHistory: []string{},
		},
	}
}

// SeedAppointments returns the demo appointment list.
func SeedAppointments() []*Appointment {
	return []*Appointment{
		{
			ID:          "apt_1",
			PatientID:   "P-1001",
			PatientName: "Alice Spriggs",
			DoctorID:    "u_2",
			DoctorName:  "Dr. Gregory House",
			Date:        "2023-10-27",
			Time:        "09:00 AM",
			Type:        AppointmentConsultation,
			Status:      AppointmentScheduled,
		},
		{
			ID:          "apt_2",
			PatientID:   "P-1003",
			PatientName: "Emily Blunt",
			DoctorID:    "u_2",
			DoctorName:  "Dr. Gregory House",
			Date:        "2023-10-27",
			Time:        "10:30 AM",
			Type:        AppointmentFollowUp,
			Status:      AppointmentScheduled,
		},
	}
}
