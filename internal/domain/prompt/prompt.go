// Package prompt turns the profile document into the system prompt sent with
// every chat request. Everything here is pure string assembly.
package prompt

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/matiasleandrokruk/folio/internal/domain/profile"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
)

// WindowEntries is how many history entries (4 exchanges) WithConversation appends.
const WindowEntries = 8

// Format renders the profile, the optional extended summary and the optional
// external profile text into one system prompt. Section order is fixed.
func Format(p profile.Profile, extraSummary, external string) string {
	info := p.PersonalInfo
	var b strings.Builder

	fmt.Fprintf(&b, "# %s's Complete Profile\n\n", info.Name)

	b.WriteString("## Personal Information\n")
	writeField(&b, "Name", info.Name)
	writeField(&b, "Title", info.Title)
	writeField(&b, "Tagline", info.Tagline)
	writeField(&b, "Location", info.Location)
	writeField(&b, "Email", info.Email)
	writeField(&b, "Phone", info.Phone)
	writeField(&b, "LinkedIn", info.LinkedIn)

	if s := strings.TrimSpace(info.Summary); s != "" {
		fmt.Fprintf(&b, "\n## Summary\n%s\n", s)
	}
	if s := strings.TrimSpace(extraSummary); s != "" {
		fmt.Fprintf(&b, "\n## Additional Summary\n%s\n", s)
	}

	b.WriteString("\n## Personal Details & Interests\n")
	writeBullet(&b, "Hometown", info.Hometown)
	writeBullet(&b, "Favorite food", info.FavoriteFood)
	writeBullet(&b, "Family", family(info.Family))
	writeBullet(&b, "Interests", strings.Join(info.Interests, ", "))

	b.WriteString("\n## Professional Experience\n")
	for i, e := range p.Experience {
		fmt.Fprintf(&b, "\n### %d. %s at %s\n", i+1, e.Role, e.Company)
		writeField(&b, "Duration", e.Duration)
		writeField(&b, "Location", e.Location)
		if len(e.Description) > 0 {
			b.WriteString("Responsibilities:\n")
			b.WriteString(bullets(e.Description))
		}
	}

	b.WriteString("\n## Technical Skills\n")
	fmt.Fprintf(&b, "### Technical Expertise\n%s\n", strings.Join(p.Skills.Technical, ", "))
	fmt.Fprintf(&b, "\n### Tools & Technologies\n%s\n", strings.Join(p.Skills.Tools, ", "))
	fmt.Fprintf(&b, "\n### Domain Experience\n%s\n", strings.Join(p.Skills.Domains, ", "))

	b.WriteString("\n## Education\n")
	b.WriteString(bullets(lo.Map(p.Education, func(e profile.Education, _ int) string {
		if e.Years != "" {
			return fmt.Sprintf("%s from %s (%s)", e.Degree, e.Institution, e.Years)
		}
		return fmt.Sprintf("%s from %s", e.Degree, e.Institution)
	})))

	b.WriteString("\n## Certifications\n")
	b.WriteString(bullets(p.Certifications))

	b.WriteString("\n## Key Achievements\n")
	b.WriteString(bullets(p.Achievements))

	if s := strings.TrimSpace(external); s != "" {
		fmt.Fprintf(&b, "\n## External Profile Data\n%s\n", s)
	}

	fmt.Fprintf(&b, "\n---\n%s\n", Instruction(info.Name))
	return b.String()
}

// Instruction is the closing line that makes the model answer as the owner.
func Instruction(name string) string {
	return fmt.Sprintf("Note: You are %s's AI assistant. Always respond in first person as if you are %s. "+
		"Be conversational, friendly, and personal. Use \"I\" instead of \"he\", \"she\" or \"%s\" "+
		"when referring to yourself.", name, name, name)
}

// WithConversation appends the most recent WindowEntries history entries to
// base as alternating "User:" / "Assistant:" lines. An empty history returns
// base unchanged.
func WithConversation(base string, history []llm.Message) string {
	if len(history) == 0 {
		return base
	}
	if len(history) > WindowEntries {
		history = history[len(history)-WindowEntries:]
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n## Recent Conversation\n")
	for _, m := range history {
		speaker := "User"
		if m.Role == llm.RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func writeBullet(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func bullets(items []string) string {
	return strings.Join(lo.Map(items, func(s string, _ int) string {
		return "- " + s + "\n"
	}), "")
}

func family(f profile.Family) string {
	parts := make([]string, 0, 2)
	if f.Spouse != "" {
		parts = append(parts, "married to "+f.Spouse)
	}
	if f.Parents != "" {
		parts = append(parts, "parents "+f.Parents)
	}
	return strings.Join(parts, "; ")
}
