// Package types defines the shared data model for the resume optimization pipeline.
package types

// CompatibilityVerdict is the structured output of the compatibility classifier.
// It scores candidate/job fit and carries the routing flags that decide which
// optimization branch the pipeline takes.
type CompatibilityVerdict struct {
	Compatible          bool     `json:"compatible"`
	CompatibilityScore  int      `json:"compatibility_score" validate:"min=0,max=100"`
	CandidateArea       string   `json:"candidate_area"`
	JobArea             string   `json:"job_area"`
	HasExperience       bool     `json:"has_experience"`
	NeedsCreativeMode   bool     `json:"needs_creative_mode"`
	AllowFictional      bool     `json:"allow_fictional"`
	RequiresCareerPivot bool     `json:"requires_career_pivot"`
	PivotStrategy       string   `json:"pivot_strategy"`
	TransferableSkills  []string `json:"transferable_skills"`
	InformalActivities  []string `json:"informal_activities"`
	Reason              string   `json:"reason"`
}

// Validate checks field constraints after JSON decoding.
func (v *CompatibilityVerdict) Validate() error {
	return validate.Struct(v)
}
