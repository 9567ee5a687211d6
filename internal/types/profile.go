package types

// ProfileExperience is a loosely-typed employment entry as returned by a
// profile source. Duration holds the raw date expression ("2020 - Present").
type ProfileExperience struct {
	Title       string `json:"title,omitempty" mapstructure:"title"`
	Company     string `json:"company,omitempty" mapstructure:"company"`
	Duration    string `json:"duration,omitempty" mapstructure:"duration"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// ProfileEducation is a loosely-typed education entry from a profile source.
type ProfileEducation struct {
	School string `json:"school,omitempty" mapstructure:"school"`
	Degree string `json:"degree,omitempty" mapstructure:"degree"`
	Year   string `json:"year,omitempty" mapstructure:"year"`
}

// ProfileData is the structured form of the raw field map returned by a
// profile-acquisition collaborator. Fields are decoded weakly: numbers and
// booleans coerce to strings, scalar skills coerce to one-element lists.
type ProfileData struct {
	Name       string              `json:"name,omitempty" mapstructure:"name"`
	Title      string              `json:"title,omitempty" mapstructure:"title"`
	Company    string              `json:"company,omitempty" mapstructure:"company"`
	Location   string              `json:"location,omitempty" mapstructure:"location"`
	Summary    string              `json:"summary,omitempty" mapstructure:"summary"`
	Email      string              `json:"email,omitempty" mapstructure:"email"`
	Phone      string              `json:"phone,omitempty" mapstructure:"phone"`
	ProfileURL string              `json:"profile_url,omitempty" mapstructure:"profile_url"`
	Skills     []string            `json:"skills,omitempty" mapstructure:"skills"`
	Experience []ProfileExperience `json:"experience,omitempty" mapstructure:"experience"`
	Education  []ProfileEducation  `json:"education,omitempty" mapstructure:"education"`
}
