package seed

import (
	"github.com/mr1hm/go-emergency-prep/internal/models"
	"github.com/mr1hm/go-emergency-prep/internal/training"
)

// Modules returns the training catalog seed. Completed lessons are the
// first k lessons of each module, where k is the module's starting count.
func Modules() []training.Seed {
	return []training.Seed{
		{
			Module: models.ModuleDefinition{
				ID:            "1",
				Type:          models.ModuleTypeFire,
				Title:         "Fire Safety & Prevention",
				Description:   "Master fire safety procedures, prevention techniques, evacuation routes, and proper use of fire extinguishers.",
				EstimatedTime: "45 min",
				Lessons: []models.Lesson{
					{ID: 0, Title: "Fire Basics & Triangle of Fire", Duration: "5 min", Type: models.LessonTypeVideo, Description: "Understanding how fires start and what they need to survive"},
					{ID: 1, Title: "Types of Fire Extinguishers", Duration: "7 min", Type: models.LessonTypeInteractive, Description: "Learn about different extinguisher types and their proper uses"},
					{ID: 2, Title: "Evacuation Procedures", Duration: "8 min", Type: models.LessonTypeVideo, Description: "Step-by-step evacuation procedures and emergency exits"},
					{ID: 3, Title: "Stop, Drop, and Roll", Duration: "5 min", Type: models.LessonTypePractice, Description: "Practice the essential technique for when clothes catch fire"},
					{ID: 4, Title: "Fire Prevention at Home", Duration: "6 min", Type: models.LessonTypeReading, Description: "Common fire hazards and prevention strategies"},
					{ID: 5, Title: "Smoke Detection Systems", Duration: "5 min", Type: models.LessonTypeVideo, Description: "Understanding smoke alarms and detection systems"},
					{ID: 6, Title: "Emergency Communication", Duration: "4 min", Type: models.LessonTypeInteractive, Description: "How to call for help and communicate during emergencies"},
					{ID: 7, Title: "Final Assessment", Duration: "5 min", Type: models.LessonTypeQuiz, Description: "Test your knowledge with a comprehensive quiz"},
				},
			},
			Achievement: models.Achievement{Title: "Fire Safety Expert", Description: "Completed fire safety training"},
			Completed:   firstN(6),
		},
		{
			Module: models.ModuleDefinition{
				ID:            "2",
				Type:          models.ModuleTypeEarthquake,
				Title:         "Earthquake Response",
				Description:   "Learn Drop, Cover, and Hold procedures, building safety assessment, and post-earthquake protocols.",
				EstimatedTime: "30 min",
				Lessons: []models.Lesson{
					{ID: 0, Title: "Understanding Earthquakes", Duration: "6 min", Type: models.LessonTypeVideo, Description: "What causes earthquakes and how they affect buildings"},
					{ID: 1, Title: "Drop, Cover, and Hold", Duration: "8 min", Type: models.LessonTypePractice, Description: "Master the essential earthquake response technique"},
					{ID: 2, Title: "Safe Spots and Danger Zones", Duration: "5 min", Type: models.LessonTypeInteractive, Description: "Identify safe locations and areas to avoid during earthquakes"},
					{ID: 3, Title: "After the Shaking Stops", Duration: "6 min", Type: models.LessonTypeVideo, Description: "Post-earthquake safety procedures and building assessment"},
					{ID: 4, Title: "Emergency Kit Preparation", Duration: "4 min", Type: models.LessonTypeReading, Description: "Essential supplies for earthquake preparedness"},
					{ID: 5, Title: "Assessment Quiz", Duration: "5 min", Type: models.LessonTypeQuiz, Description: "Test your earthquake response knowledge"},
				},
			},
			Achievement: models.Achievement{Title: "Earthquake Prepared", Description: "Mastered earthquake response"},
			Completed:   firstN(6),
		},
		{
			Module: models.ModuleDefinition{
				ID:            "3",
				Type:          models.ModuleTypeFlood,
				Title:         "Flood & Water Emergency",
				Description:   "Understand flood risks, water safety measures, evacuation procedures, and emergency supplies.",
				EstimatedTime: "40 min",
				Lessons: []models.Lesson{
					{ID: 0, Title: "Types of Flooding", Duration: "6 min", Type: models.LessonTypeVideo, Description: "Understanding different flood types and their dangers"},
					{ID: 1, Title: "Flood Warning Systems", Duration: "5 min", Type: models.LessonTypeInteractive, Description: "Recognizing flood warnings and alert systems"},
					{ID: 2, Title: "Evacuation Planning", Duration: "8 min", Type: models.LessonTypeVideo, Description: "Creating and executing flood evacuation plans"},
					{ID: 3, Title: "Water Safety Rules", Duration: "6 min", Type: models.LessonTypeReading, Description: "Essential rules for staying safe around flood water"},
					{ID: 4, Title: "Emergency Supplies", Duration: "5 min", Type: models.LessonTypeInteractive, Description: "Flood emergency kit essentials and storage"},
					{ID: 5, Title: "Recovery and Cleanup", Duration: "6 min", Type: models.LessonTypeVideo, Description: "Safe procedures for post-flood cleanup and recovery"},
					{ID: 6, Title: "Final Assessment", Duration: "4 min", Type: models.LessonTypeQuiz, Description: "Comprehensive flood preparedness quiz"},
				},
			},
			Achievement: models.Achievement{Title: "Water Safety Champion", Description: "Complete flood preparedness"},
			Completed:   firstN(2),
		},
		{
			Module: models.ModuleDefinition{
				ID:            "4",
				Type:          models.ModuleTypeMedical,
				Title:         "Medical Emergency Response",
				Description:   "Basic first aid, CPR techniques, emergency medical procedures, and when to call for help.",
				EstimatedTime: "60 min",
				Lessons: []models.Lesson{
					{ID: 0, Title: "Emergency Assessment", Duration: "6 min", Type: models.LessonTypeVideo, Description: "How to assess emergency situations and prioritize care"},
					{ID: 1, Title: "Calling for Help", Duration: "4 min", Type: models.LessonTypeInteractive, Description: "When and how to call emergency services effectively"},
					{ID: 2, Title: "CPR Basics", Duration: "10 min", Type: models.LessonTypePractice, Description: "Hands-on CPR training and chest compression techniques"},
					{ID: 3, Title: "Choking Response", Duration: "6 min", Type: models.LessonTypePractice, Description: "Heimlich maneuver and choking first aid"},
					{ID: 4, Title: "Bleeding Control", Duration: "8 min", Type: models.LessonTypeVideo, Description: "Techniques for controlling bleeding and wound care"},
					{ID: 5, Title: "Shock Recognition", Duration: "5 min", Type: models.LessonTypeReading, Description: "Identifying and treating shock in emergency situations"},
					{ID: 6, Title: "Burns and Heat Injuries", Duration: "6 min", Type: models.LessonTypeVideo, Description: "Proper treatment for burns and heat-related injuries"},
					{ID: 7, Title: "Spinal Injury Precautions", Duration: "7 min", Type: models.LessonTypeInteractive, Description: "Recognizing and managing potential spinal injuries"},
					{ID: 8, Title: "AED Usage", Duration: "6 min", Type: models.LessonTypePractice, Description: "Automated External Defibrillator operation and safety"},
					{ID: 9, Title: "Certification Quiz", Duration: "8 min", Type: models.LessonTypeQuiz, Description: "Comprehensive medical emergency response assessment"},
				},
			},
			Achievement: models.Achievement{Title: "Medical Responder", Description: "Master first aid techniques"},
		},
	}
}

func firstN(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
