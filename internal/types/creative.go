package types

// CreativeExperience is one experience constructed by the creative builder.
// Unlike OptimizedExperience there is no requirement of 1:1 correspondence
// with a source resume; IsInformal marks entries derived from informal
// activities rather than formal employment.
type CreativeExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"current"`
	IsInformal   bool     `json:"is_informal"`
	WorkMode     string   `json:"work_mode,omitempty"`
	Country      string   `json:"country,omitempty"`
}

// CreativeResume is a resume built from scratch by the creative builder.
type CreativeResume struct {
	CandidateName       string               `json:"candidate_name"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone,omitempty"`
	LinkedIn            string               `json:"linkedin,omitempty"`
	ProfessionalSummary string               `json:"professional_summary"`
	Experiences         []CreativeExperience `json:"experiences"`
	Skills              []string             `json:"skills"`
	Education           []EducationEntry     `json:"education,omitempty"`
	Courses             []string             `json:"courses,omitempty"`
	Languages           []LanguageEntry      `json:"languages,omitempty"`
}

// CreativeResult is the structured output of the creative builder stage.
type CreativeResult struct {
	OptimizedResume  CreativeResume `json:"optimized_resume"`
	Improvements     []string       `json:"improvements"`
	Warnings         []string       `json:"warnings,omitempty"`
	TipsForInterview []string       `json:"tips_for_interview,omitempty"`
	ATSScore         int            `json:"ats_score" validate:"min=0,max=100"`
}

// Validate checks field constraints after JSON decoding.
func (r *CreativeResult) Validate() error {
	return validate.Struct(r)
}

// ToOptimized converts a creative resume into the common shape consumed by
// the rendering stage. Courses map to certifications; the informal flag is
// dropped since the renderer does not distinguish the two.
func (c *CreativeResume) ToOptimized() *OptimizedResume {
	experiences := make([]OptimizedExperience, 0, len(c.Experiences))
	for _, exp := range c.Experiences {
		experiences = append(experiences, OptimizedExperience{
			Company:      exp.Company,
			Position:     exp.Position,
			Description:  exp.Description,
			Achievements: exp.Achievements,
			StartDate:    exp.StartDate,
			EndDate:      exp.EndDate,
			Current:      exp.Current,
			WorkMode:     exp.WorkMode,
			Country:      exp.Country,
		})
	}

	return &OptimizedResume{
		CandidateName:       c.CandidateName,
		Email:               c.Email,
		Phone:               c.Phone,
		LinkedIn:            c.LinkedIn,
		ProfessionalSummary: c.ProfessionalSummary,
		Experiences:         experiences,
		Skills:              c.Skills,
		Languages:           c.Languages,
		Education:           c.Education,
		Certifications:      c.Courses,
	}
}
