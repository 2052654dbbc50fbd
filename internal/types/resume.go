package types

// LanguageEntry is a spoken language on the resume.
type LanguageEntry struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// EducationEntry is a degree or course of study on the resume.
type EducationEntry struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// OptimizedExperience is one rewritten work experience. Company, dates and the
// current flag are copied from the source resume when one is available; the
// model is never allowed to invent them.
type OptimizedExperience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	OriginalPosition string   `json:"original_position,omitempty"`
	Description      string   `json:"description"`
	Achievements     []string `json:"achievements"`
	KeywordsAdded    []string `json:"keywords_added,omitempty"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date,omitempty"`
	Current          bool     `json:"current"`
	WorkMode         string   `json:"work_mode,omitempty"`
	Country          string   `json:"country,omitempty"`
}

// OptimizedResume is the rewritten resume produced by the standard
// optimization stage. Experiences preserve the chronological order of the
// source resume.
type OptimizedResume struct {
	CandidateName       string                `json:"candidate_name"`
	Email               string                `json:"email"`
	Phone               string                `json:"phone,omitempty"`
	LinkedIn            string                `json:"linkedin,omitempty"`
	GitHub              string                `json:"github,omitempty"`
	ProfessionalSummary string                `json:"professional_summary"`
	Experiences         []OptimizedExperience `json:"experiences"`
	Skills              []string              `json:"skills"`
	Languages           []LanguageEntry       `json:"languages,omitempty"`
	Education           []EducationEntry      `json:"education,omitempty"`
	Certifications      []string              `json:"certifications,omitempty"`
}

// OptimizationResult is the structured output of the standard optimization
// stage: the rewritten resume plus metadata about what changed.
type OptimizationResult struct {
	OptimizedResume OptimizedResume `json:"optimized_resume"`
	Improvements    []string        `json:"improvements"`
	KeywordsMatched []string        `json:"keywords_matched"`
	ATSScore        int             `json:"ats_score" validate:"min=0,max=100"`
}

// Validate checks field constraints after JSON decoding.
func (r *OptimizationResult) Validate() error {
	return validate.Struct(r)
}
