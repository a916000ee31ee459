package seed

import "github.com/mr1hm/go-emergency-prep/internal/models"

func Plan() models.EmergencyPlan {
	return models.EmergencyPlan{
		Contacts: []models.ContactGroup{
			{
				Category: "Primary Emergency",
				Contacts: []models.Contact{
					{Name: "Emergency Services", Number: "911", Description: "Fire, Police, Medical"},
					{Name: "Campus Security", Number: "(555) 123-4567", Description: "24/7 Campus Safety"},
					{Name: "Facilities Management", Number: "(555) 123-4568", Description: "Building Issues"},
				},
			},
			{
				Category: "Medical Emergency",
				Contacts: []models.Contact{
					{Name: "School Nurse", Number: "(555) 123-4569", Description: "On-campus medical"},
					{Name: "Nearest Hospital", Number: "(555) 987-6543", Description: "St. Mary Medical Center"},
					{Name: "Poison Control", Number: "1-800-222-1222", Description: "24/7 Poison Help"},
				},
			},
			{
				Category: "Support Services",
				Contacts: []models.Contact{
					{Name: "Crisis Counseling", Number: "(555) 123-4570", Description: "Psychological support"},
					{Name: "Family Liaison", Number: "(555) 123-4571", Description: "Family communication"},
					{Name: "Media Relations", Number: "(555) 123-4572", Description: "Information updates"},
				},
			},
		},
		AssemblyPoints: []models.AssemblyPoint{
			{
				ID:        "main",
				Name:      "Main Assembly Point",
				Location:  "East Parking Lot",
				Capacity:  "500+ people",
				Features:  []string{"First Aid Station", "PA System", "Weather Protection"},
				Buildings: []string{"Main Building", "Library", "Cafeteria"},
			},
			{
				ID:        "secondary",
				Name:      "Secondary Assembly Point",
				Location:  "Athletic Field",
				Capacity:  "300+ people",
				Features:  []string{"Emergency Supplies", "Communication Hub"},
				Buildings: []string{"Gymnasium", "Science Building"},
			},
			{
				ID:        "alternate",
				Name:      "Alternate Assembly Point",
				Location:  "West Courtyard",
				Capacity:  "200+ people",
				Features:  []string{"Covered Area", "Medical Kit"},
				Buildings: []string{"Arts Building", "Administration"},
			},
		},
		Procedures: []models.ProcedureStep{
			{Step: 1, Title: "Alert Recognition", Description: "Listen for alarm signals and emergency announcements", Actions: []string{"Stop current activity", "Listen for instructions", "Stay calm"}},
			{Step: 2, Title: "Immediate Actions", Description: "Take immediate safety measures based on emergency type", Actions: []string{"Follow Drop/Cover/Hold for earthquakes", "Exit immediately for fires", "Shelter in place if directed"}},
			{Step: 3, Title: "Evacuation Route", Description: "Use designated evacuation routes to reach assembly points", Actions: []string{"Use nearest safe exit", "Do not use elevators", "Help others if safely possible"}},
			{Step: 4, Title: "Assembly & Accountability", Description: "Report to designated assembly point for headcount", Actions: []string{"Report to area supervisor", "Stay in assigned group", "Wait for all-clear signal"}},
		},
	}
}
