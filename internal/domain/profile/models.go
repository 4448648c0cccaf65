// Package profile loads the site owner's static profile document.
// The document is read-only at runtime: it is loaded once, validated and
// cached in memory by CachedSource.
package profile

// Profile is the aggregate of personal, professional and educational facts.
// Field tags accept both YAML and JSON documents.
type Profile struct {
	PersonalInfo   PersonalInfo `yaml:"personal_info" json:"personal_info"`
	Skills         Skills       `yaml:"skills" json:"skills"`
	Certifications []string     `yaml:"certifications" json:"certifications"`
	Experience     []Experience `yaml:"experience" json:"experience"`
	Education      []Education  `yaml:"education" json:"education"`
	Achievements   []string     `yaml:"achievements" json:"achievements"`
	LastUpdated    string       `yaml:"last_updated" json:"last_updated"`
}

type PersonalInfo struct {
	Name         string   `yaml:"name" json:"name"`
	Title        string   `yaml:"title" json:"title"`
	Tagline      string   `yaml:"tagline" json:"tagline"`
	Summary      string   `yaml:"summary" json:"summary"`
	Location     string   `yaml:"location" json:"location"`
	Hometown     string   `yaml:"hometown" json:"hometown"`
	Email        string   `yaml:"email" json:"email"`
	Phone        string   `yaml:"phone" json:"phone"`
	LinkedIn     string   `yaml:"linkedin" json:"linkedin"`
	Interests    []string `yaml:"interests" json:"interests"`
	FavoriteFood string   `yaml:"favorite_food" json:"favorite_food"`
	Family       Family   `yaml:"family" json:"family"`
}

type Family struct {
	Spouse  string `yaml:"spouse" json:"spouse"`
	Parents string `yaml:"parents" json:"parents"`
}

type Skills struct {
	Technical []string `yaml:"technical" json:"technical"`
	Tools     []string `yaml:"tools" json:"tools"`
	Domains   []string `yaml:"domains" json:"domains"`
}

type Experience struct {
	Company     string   `yaml:"company" json:"company"`
	Role        string   `yaml:"role" json:"role"`
	Duration    string   `yaml:"duration" json:"duration"`
	Location    string   `yaml:"location" json:"location"`
	Description []string `yaml:"description" json:"description"`
}

type Education struct {
	Institution string `yaml:"institution" json:"institution"`
	Degree      string `yaml:"degree" json:"degree"`
	Years       string `yaml:"years" json:"years,omitempty"`
}

// Bundle is everything the prompt assembler needs: the structured document plus
// two optional free-text blobs (an extended summary and an external profile
// export, e.g. text extracted from a LinkedIn PDF).
type Bundle struct {
	Profile  Profile
	Summary  string
	External string
}
