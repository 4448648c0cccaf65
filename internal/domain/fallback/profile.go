package fallback

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/matiasleandrokruk/folio/internal/domain/profile"
)

const genericParagraph = "I'd be happy to help! You can ask me about my experience, skills, education, " +
	"certifications, achievements, or personal background. What would you like to know?"

// ForProfile builds the orchestrator's table from the owner's profile so canned
// answers still carry real facts.
func ForProfile(p profile.Profile) Table {
	return Table{
		TopicExperience: experienceParagraph(p.Experience),
		TopicSkills:     skillsParagraph(p.Skills),
		TopicEducation:  educationParagraph(p.Education),
		TopicPersonal:   personalParagraph(p.PersonalInfo),
		TopicContact:    contactParagraph(p.PersonalInfo),
		TopicGeneric:    genericParagraph,
	}
}

func experienceParagraph(exp []profile.Experience) string {
	if len(exp) == 0 {
		return "I'd love to talk about my work experience. Ask me about a specific role or project."
	}
	current := exp[0]
	var b strings.Builder
	fmt.Fprintf(&b, "I'm currently %s at %s", current.Role, current.Company)
	if current.Duration != "" {
		fmt.Fprintf(&b, " (%s)", current.Duration)
	}
	b.WriteString(".")
	if len(exp) > 1 {
		previous := lo.Map(exp[1:], func(e profile.Experience, _ int) string {
			return fmt.Sprintf("%s as %s", e.Company, e.Role)
		})
		fmt.Fprintf(&b, " Previously, I worked at %s.", joinList(previous))
	}
	if len(current.Description) > 0 {
		fmt.Fprintf(&b, " In my current role I %s.", lowerFirst(strings.TrimSuffix(current.Description[0], ".")))
	}
	return b.String()
}

func skillsParagraph(s profile.Skills) string {
	var b strings.Builder
	if len(s.Technical) > 0 {
		fmt.Fprintf(&b, "My technical skills include %s.", joinList(s.Technical))
	} else {
		b.WriteString("I'm happy to go through my skills in detail.")
	}
	if len(s.Tools) > 0 {
		fmt.Fprintf(&b, " I'm proficient with %s.", joinList(s.Tools))
	}
	if len(s.Domains) > 0 {
		fmt.Fprintf(&b, " I have domain experience in %s.", joinList(s.Domains))
	}
	return b.String()
}

func educationParagraph(edu []profile.Education) string {
	if len(edu) == 0 {
		return "Ask me about my education and how I learned what I know; I'm happy to share."
	}
	degrees := lo.Map(edu, func(e profile.Education, _ int) string {
		s := fmt.Sprintf("%s from %s", lo.CoalesceOrEmpty(e.Degree, "a degree"), e.Institution)
		if e.Years != "" {
			s += " (" + e.Years + ")"
		}
		return s
	})
	return fmt.Sprintf("I hold %s.", joinList(degrees))
}

func personalParagraph(info profile.PersonalInfo) string {
	var parts []string
	switch {
	case info.Location != "" && info.Hometown != "" && info.Hometown != info.Location:
		parts = append(parts, fmt.Sprintf("I'm from %s and currently live in %s.", info.Hometown, info.Location))
	case info.Location != "":
		parts = append(parts, fmt.Sprintf("I'm based in %s.", info.Location))
	}
	if info.Family.Spouse != "" {
		parts = append(parts, fmt.Sprintf("I'm married to %s.", info.Family.Spouse))
	}
	if len(info.Interests) > 0 {
		parts = append(parts, fmt.Sprintf("My interests include %s.", joinList(info.Interests)))
	}
	if info.FavoriteFood != "" {
		parts = append(parts, fmt.Sprintf("My favorite food is %s!", info.FavoriteFood))
	}
	if len(parts) == 0 {
		return "Outside of work I keep things simple. Ask me anything about my personal background."
	}
	return strings.Join(parts, " ")
}

func contactParagraph(info profile.PersonalInfo) string {
	var parts []string
	if info.Email != "" {
		parts = append(parts, "reach me at "+info.Email)
	}
	if info.LinkedIn != "" {
		parts = append(parts, "connect with me on LinkedIn at "+info.LinkedIn)
	}
	if len(parts) == 0 {
		return "The best way to contact me is through the contact form on this page."
	}
	text := "You can " + strings.Join(parts, " or ") + "."
	if info.Location != "" {
		text += fmt.Sprintf(" I'm currently based in %s.", info.Location)
	}
	return text
}

// joinList renders "a", "a and b", "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
