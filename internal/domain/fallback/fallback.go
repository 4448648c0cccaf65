// Package fallback answers chat messages offline when no model reply is usable.
// A keyword classifier picks a topic and a Table maps the topic to one canned
// paragraph.
package fallback

import "strings"

// Topic is the subject a message is classified under.
type Topic string

const (
	TopicExperience Topic = "experience"
	TopicSkills     Topic = "skills"
	TopicEducation  Topic = "education"
	TopicPersonal   Topic = "personal"
	TopicContact    Topic = "contact"
	TopicGeneric    Topic = "generic"
)

// Topics lists every topic a Table must cover, in classification order,
// followed by the generic catch-all.
var Topics = []Topic{TopicExperience, TopicSkills, TopicEducation, TopicPersonal, TopicContact, TopicGeneric}

type rule struct {
	topic    Topic
	keywords []string
}

// Checked in order; the first rule with a matching keyword wins.
var rules = []rule{
	{TopicExperience, []string{"experience", "work", "job", "career"}},
	{TopicSkills, []string{"skill", "technology", "tech"}},
	{TopicEducation, []string{"education", "degree", "university"}},
	{TopicPersonal, []string{"personal", "hobby", "hobbies", "interest"}},
	{TopicContact, []string{"contact", "email", "linkedin"}},
}

// Classify maps a free-text message to a Topic by substring match on the
// lower-cased text.
func Classify(message string) Topic {
	input := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(input, kw) {
				return r.topic
			}
		}
	}
	return TopicGeneric
}

// Table holds one paragraph per Topic.
type Table map[Topic]string

// Respond classifies message and returns the paragraph for its topic,
// falling back to the generic paragraph for topics the table lacks.
func (t Table) Respond(message string) string {
	if text, ok := t[Classify(message)]; ok && text != "" {
		return text
	}
	return t[TopicGeneric]
}

// Static is the profile-independent table used when the orchestrator itself
// cannot be reached.
func Static() Table {
	return Table{
		TopicExperience: "I can't reach my assistant right now, but my work experience is laid out in the " +
			"Experience section of this page. Please try again in a moment.",
		TopicSkills: "I can't reach my assistant right now, but my skills and the technologies I use are " +
			"listed in the Skills section of this page. Please try again in a moment.",
		TopicEducation: "I can't reach my assistant right now, but my degrees and education are listed in " +
			"the Education section of this page. Please try again in a moment.",
		TopicPersonal: "I can't reach my assistant right now, but the About section of this page covers my " +
			"personal background and interests. Please try again in a moment.",
		TopicContact: "I can't reach my assistant right now. You can still get in touch through the contact " +
			"details at the bottom of this page.",
		TopicGeneric: "I'm experiencing some technical difficulties right now. Please try asking me about my " +
			"experience, skills, education, or personal background, and I'll do my best to help!",
	}
}
