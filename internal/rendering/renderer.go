package rendering

import (
	"context"

	"github.com/jonathan/resume-optimizer/internal/language"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DateRange holds the formatted period of one experience.
type DateRange struct {
	StartFormatted string `json:"start_formatted"`
	EndFormatted   string `json:"end_formatted"`
	IsCurrent      bool   `json:"is_current"`
}

// ExperienceData is one experience entry handed to the document template.
type ExperienceData struct {
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	Description  string    `json:"description"`
	Achievements []string  `json:"achievements"`
	DateRange    DateRange `json:"date_range"`
	WorkMode     string    `json:"work_mode,omitempty"`
	Country      string    `json:"country,omitempty"`
}

// SkillData wraps a skill name for the template.
type SkillData struct {
	Name string `json:"name"`
}

// RenderData is the flattened, display-ready view of a resume.
type RenderData struct {
	CandidateName       string                 `json:"candidate_name"`
	Email               string                 `json:"email,omitempty"`
	Phone               string                 `json:"phone,omitempty"`
	LinkedIn            string                 `json:"linkedin,omitempty"`
	GitHub              string                 `json:"github,omitempty"`
	ProfessionalSummary string                 `json:"professional_summary"`
	Experiences         []ExperienceData       `json:"experiences"`
	Skills              []SkillData            `json:"skills"`
	Languages           []types.LanguageEntry  `json:"languages,omitempty"`
	Education           []types.EducationEntry `json:"education,omitempty"`
	Certifications      []string               `json:"certifications,omitempty"`
}

// RenderRequest asks a Renderer for one document.
type RenderRequest struct {
	Resume     RenderData
	TemplateID string
	Language   language.Language
}

// RenderResult identifies the produced document.
type RenderResult struct {
	Filename string
}

// Renderer produces a resume document. Implementations report failures as
// *RenderError or *TemplateError.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)
}

// BuildRenderData flattens resume into the template's view model. A current
// position gets "Presente" as its formatted end date.
func BuildRenderData(resume *types.OptimizedResume) RenderData {
	data := RenderData{
		CandidateName:       resume.CandidateName,
		Email:               resume.Email,
		Phone:               resume.Phone,
		LinkedIn:            resume.LinkedIn,
		GitHub:              resume.GitHub,
		ProfessionalSummary: resume.ProfessionalSummary,
		Languages:           resume.Languages,
		Education:           resume.Education,
		Certifications:      resume.Certifications,
	}

	for _, exp := range resume.Experiences {
		end := exp.EndDate
		if exp.Current || end == "" {
			end = "Presente"
		}
		data.Experiences = append(data.Experiences, ExperienceData{
			Company:      exp.Company,
			Position:     exp.Position,
			Description:  exp.Description,
			Achievements: exp.Achievements,
			DateRange: DateRange{
				StartFormatted: exp.StartDate,
				EndFormatted:   end,
				IsCurrent:      exp.Current,
			},
			WorkMode: exp.WorkMode,
			Country:  exp.Country,
		})
	}

	for _, skill := range resume.Skills {
		data.Skills = append(data.Skills, SkillData{Name: skill})
	}

	return data
}
