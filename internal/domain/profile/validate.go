package profile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate checks the fields the chatbot cannot work without and reports every
// problem at once.
func Validate(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile: document is nil")
	}

	var result *multierror.Error
	if strings.TrimSpace(p.PersonalInfo.Name) == "" {
		result = multierror.Append(result, fmt.Errorf("personal_info.name is required"))
	}
	if strings.TrimSpace(p.PersonalInfo.Title) == "" {
		result = multierror.Append(result, fmt.Errorf("personal_info.title is required"))
	}
	if len(p.Experience) == 0 {
		result = multierror.Append(result, fmt.Errorf("experience must list at least one entry"))
	}
	for i, e := range p.Experience {
		if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Role) == "" {
			result = multierror.Append(result, fmt.Errorf("experience[%d]: company and role are required", i))
		}
	}
	for i, e := range p.Education {
		if strings.TrimSpace(e.Institution) == "" {
			result = multierror.Append(result, fmt.Errorf("education[%d]: institution is required", i))
		}
	}
	return result.ErrorOrNil()
}
