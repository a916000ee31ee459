package models

type Contact struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Description string `json:"description"`
}

type ContactGroup struct {
	Category string    `json:"category"`
	Contacts []Contact `json:"contacts"`
}

type AssemblyPoint struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Capacity  string   `json:"capacity"`
	Features  []string `json:"features"`
	Buildings []string `json:"buildings"`
}

type ProcedureStep struct {
	Step        int      `json:"step"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// EmergencyPlan is read-only reference data served alongside the models.
type EmergencyPlan struct {
	Contacts       []ContactGroup  `json:"contacts"`
	AssemblyPoints []AssemblyPoint `json:"assembly_points"`
	Procedures     []ProcedureStep `json:"procedures"`
}
