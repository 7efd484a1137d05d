package resume

// Profile is the candidate-attribute mapping inferred from one document's
// full text. Every field is optional: heuristic misses leave the zero value,
// and omitempty keeps absent fields out of the stored payload. YOE is the
// exception: it is always present, defaulting to 0 when no role dates parse.
type Profile struct {
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
	YOE          int    `json:"yoe"`
	CurrentTitle string `json:"current_title,omitempty"`
	Seniority    string `json:"seniority,omitempty"`

	// Populated later from forms or follow-up questions, never inferred here.
	WorkAuth   string `json:"work_auth,omitempty"`
	RemotePref string `json:"remote_pref,omitempty"`
	Notice     string `json:"notice,omitempty"`
	Salary     string `json:"salary,omitempty"`

	LinkedinURL  string `json:"linkedin_url,omitempty"`
	PortfolioURL string `json:"portfolio_url,omitempty"`

	Langs           []string `json:"langs,omitempty"`
	SkillsPrimary   []string `json:"skills_primary,omitempty"`
	SkillsSecondary []string `json:"skills_secondary,omitempty"`
	Tools           []string `json:"tools,omitempty"`
	Domains         []string `json:"domains,omitempty"`
	Industries      []string `json:"industries,omitempty"`
	Clouds          []string `json:"clouds,omitempty"`

	Roles     []Role          `json:"roles,omitempty"`
	Education []EducationItem `json:"education,omitempty"`
	Certs     []string        `json:"certs,omitempty"`

	NormalizedKeywords []string `json:"normalized_keywords,omitempty"`
	SkillsetHash       string   `json:"skillset_hash,omitempty"`
}

// Role is one work-history entry. A role with no title, company, dates, or
// bullets is never emitted.
type Role struct {
	Title    string   `json:"title"`
	Company  string   `json:"company,omitempty"`
	Location string   `json:"location,omitempty"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

func (r Role) empty() bool {
	return r.Title == "" && r.Company == "" && r.Start == "" && r.End == "" && len(r.Bullets) == 0
}

// EducationItem is one education entry. Items without an institution are
// discarded at flush.
type EducationItem struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Details     string `json:"details,omitempty"`
}
