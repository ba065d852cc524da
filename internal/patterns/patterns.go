// Package patterns holds the static registry of semantic field types: for
// each dotted category.fieldName key, the exact keywords, regex patterns,
// input-type hints and autocomplete tokens that identify it, plus a priority
// weight used for confidence tie-breaking. The registry is fixed at init and
// never changes at runtime.
package patterns

import (
	"regexp"
	"strings"
)

// Entry describes the identification signals for one semantic field type.
type Entry struct {
	// Exact keywords matched case-insensitively by equality or containment.
	Exact []string
	// Patterns tested against each candidate text.
	Patterns []*regexp.Regexp
	// Types are accepted HTML input types.
	Types []string
	// Autocomplete tokens accepted for this field.
	Autocomplete []string
	// Priority 5-10; higher means a more authoritative field.
	Priority int
}

// HasType reports whether the entry accepts the given HTML input type.
func (e Entry) HasType(t string) bool {
	for _, v := range e.Types {
		if v == t {
			return true
		}
	}
	return false
}

// HasAutocomplete reports whether the entry accepts the autocomplete token.
func (e Entry) HasAutocomplete(token string) bool {
	for _, v := range e.Autocomplete {
		if v == token {
			return true
		}
	}
	return false
}

func rx(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile("(?i)" + expr)
	}
	return out
}

// registry maps semantic field types to their identification signals.
var registry = map[string]Entry{
	// Personal information - name fields
	"personalInfo.firstName": {
		Exact:        []string{"first name", "firstname", "given name", "fname", "forename"},
		Patterns:     rx(`^f[_.-]?name$`, `^name[_.-]?first$`, `^first$`, `given.*name`),
		Autocomplete: []string{"given-name"},
		Priority:     10,
	},
	"personalInfo.middleName": {
		Exact:        []string{"middle name", "middlename", "middle initial", "mname"},
		Patterns:     rx(`^m[_.-]?name$`, `^name[_.-]?middle$`, `middle.*name`, `^middle$`),
		Autocomplete: []string{"additional-name"},
		Priority:     8,
	},
	"personalInfo.lastName": {
		Exact:        []string{"last name", "lastname", "surname", "family name", "lname"},
		Patterns:     rx(`^l[_.-]?name$`, `^name[_.-]?last$`, `^last$`, `family.*name`, `surname`),
		Autocomplete: []string{"family-name"},
		Priority:     10,
	},
	"personalInfo.fullName": {
		Exact:        []string{"full name", "fullname", "name", "your name", "applicant name"},
		Patterns:     rx(`^name$`, `^full[_.-]?name$`, `applicant.*name`, `candidate.*name`),
		Autocomplete: []string{"name"},
		Priority:     9,
	},

	// Personal information - contact fields
	"personalInfo.email": {
		Exact:        []string{"email", "e-mail", "email address", "e-mail address"},
		Patterns:     rx(`^email`, `e-?mail`, `mail.*address`, `^mail$`),
		Types:        []string{"email"},
		Autocomplete: []string{"email"},
		Priority:     10,
	},
	"personalInfo.phone": {
		Exact:        []string{"phone", "phone number", "telephone", "tel", "mobile", "cell", "contact number"},
		Patterns:     rx(`^phone`, `^tel`, `telephone`, `mobile`, `cell`, `contact.*number`, `phone.*number`),
		Types:        []string{"tel"},
		Autocomplete: []string{"tel", "tel-national"},
		Priority:     10,
	},
	"personalInfo.alternatePhone": {
		Exact:    []string{"alternate phone", "secondary phone", "other phone", "additional phone"},
		Patterns: rx(`alt.*phone`, `secondary.*phone`, `alternate.*phone`, `other.*phone`, `phone.*2`),
		Types:    []string{"tel"},
		Priority: 5,
	},

	// Personal information - address fields
	"personalInfo.address.street": {
		Exact:        []string{"street address", "address", "street", "address line 1", "address1"},
		Patterns:     rx(`^address$`, `street.*address`, `^street$`, `address.*1`, `address.*line.*1`),
		Autocomplete: []string{"address-line1", "street-address"},
		Priority:     9,
	},
	"personalInfo.address.street2": {
		Exact:        []string{"address line 2", "address2", "apt", "apartment", "suite", "unit"},
		Patterns:     rx(`address.*2`, `address.*line.*2`, `apt`, `apartment`, `suite`, `unit`),
		Autocomplete: []string{"address-line2"},
		Priority:     7,
	},
	"personalInfo.city": {
		Exact:        []string{"city", "town"},
		Patterns:     rx(`^city$`, `^town$`),
		Autocomplete: []string{"address-level2"},
		Priority:     10,
	},
	"personalInfo.state": {
		Exact:        []string{"state", "province", "region", "state/province"},
		Patterns:     rx(`^state$`, `province`, `region`, `state.*province`),
		Autocomplete: []string{"address-level1"},
		Priority:     10,
	},
	"personalInfo.zipCode": {
		Exact:        []string{"zip", "zip code", "postal code", "postcode"},
		Patterns:     rx(`^zip`, `postal.*code`, `post.*code`, `^postcode$`),
		Autocomplete: []string{"postal-code"},
		Priority:     10,
	},
	"personalInfo.country": {
		Exact:        []string{"country"},
		Patterns:     rx(`^country$`),
		Autocomplete: []string{"country", "country-name"},
		Priority:     9,
	},

	// Personal information - social and web
	"personalInfo.linkedin": {
		Exact:        []string{"linkedin", "linkedin url", "linkedin profile"},
		Patterns:     rx(`linkedin`, `linked.*in`),
		Autocomplete: []string{"url"},
		Priority:     8,
	},
	"personalInfo.website": {
		Exact:        []string{"website", "personal website", "portfolio", "portfolio url"},
		Patterns:     rx(`^website$`, `personal.*website`, `portfolio`, `^url$`, `web.*site`),
		Types:        []string{"url"},
		Autocomplete: []string{"url"},
		Priority:     7,
	},
	"personalInfo.github": {
		Exact:    []string{"github", "github url", "github profile"},
		Patterns: rx(`github`, `git.*hub`),
		Types:    []string{"url"},
		Priority: 6,
	},

	// Work experience fields
	"workExperience.company": {
		Exact:        []string{"company", "employer", "organization", "company name", "employer name"},
		Patterns:     rx(`^company$`, `employer`, `organization`, `company.*name`, `employer.*name`, `org.*name`),
		Autocomplete: []string{"organization"},
		Priority:     10,
	},
	"workExperience.position": {
		Exact:        []string{"position", "job title", "title", "role", "job role"},
		Patterns:     rx(`^position$`, `job.*title`, `^title$`, `^role$`, `job.*role`, `position.*title`),
		Autocomplete: []string{"organization-title"},
		Priority:     10,
	},
	"workExperience.startDate": {
		Exact:    []string{"start date", "from date", "begin date", "employment start"},
		Patterns: rx(`start.*date`, `from.*date`, `begin.*date`, `date.*from`, `employment.*start`, `^from$`),
		Types:    []string{"date", "month"},
		Priority: 9,
	},
	"workExperience.endDate": {
		Exact:    []string{"end date", "to date", "until", "employment end"},
		Patterns: rx(`end.*date`, `to.*date`, `until`, `date.*to`, `employment.*end`, `^to$`),
		Types:    []string{"date", "month"},
		Priority: 9,
	},
	"workExperience.current": {
		Exact:    []string{"current", "currently working", "present", "currently employed"},
		Patterns: rx(`current`, `present`, `currently.*working`, `still.*working`, `currently.*employed`),
		Types:    []string{"checkbox"},
		Priority: 8,
	},
	"workExperience.location": {
		Exact:    []string{"location", "job location", "work location", "city"},
		Patterns: rx(`^location$`, `job.*location`, `work.*location`, `employment.*location`),
		Priority: 7,
	},
	"workExperience.description": {
		Exact:    []string{"job description", "responsibilities", "duties", "description", "job duties"},
		Patterns: rx(`job.*description`, `responsibilities`, `duties`, `^description$`, `job.*duties`, `role.*description`),
		Priority: 8,
	},

	// Education fields
	"education.school": {
		Exact:    []string{"school", "university", "college", "institution", "school name"},
		Patterns: rx(`^school$`, `university`, `college`, `institution`, `school.*name`, `educational.*institution`),
		Priority: 10,
	},
	"education.degree": {
		Exact:    []string{"degree", "degree type", "qualification", "diploma"},
		Patterns: rx(`^degree$`, `degree.*type`, `qualification`, `diploma`, `certificate`),
		Priority: 10,
	},
	"education.field": {
		Exact:    []string{"field of study", "major", "field", "area of study", "concentration"},
		Patterns: rx(`field.*of.*study`, `^major$`, `^field$`, `area.*of.*study`, `concentration`, `specialization`),
		Priority: 9,
	},
	"education.graduationDate": {
		Exact:    []string{"graduation date", "completion date", "end date", "date graduated"},
		Patterns: rx(`graduation.*date`, `graduated`, `completion.*date`, `date.*graduated`, `end.*date`),
		Types:    []string{"date", "month"},
		Priority: 9,
	},
	"education.gpa": {
		Exact:    []string{"gpa", "grade point average", "grades"},
		Patterns: rx(`^gpa$`, `grade.*point`, `g\.p\.a`),
		// "text" is the default input type and identifies nothing.
		Types:    []string{"number"},
		Priority: 7,
	},

	// Skills fields
	"skills.technical": {
		Exact:    []string{"skills", "technical skills", "technologies", "competencies"},
		Patterns: rx(`^skills$`, `technical.*skills`, `technologies`, `competencies`, `core.*skills`),
		Priority: 8,
	},
	"skills.summary": {
		Exact:    []string{"summary", "professional summary", "objective", "about"},
		Patterns: rx(`^summary$`, `professional.*summary`, `^objective$`, `career.*objective`, `^about$`, `about.*you`),
		Priority: 7,
	},

	// Custom and EEO fields
	"custom.gender": {
		Exact:    []string{"gender", "sex"},
		Patterns: rx(`^gender$`, `^sex$`),
		Priority: 5,
	},
	"custom.ethnicity": {
		Exact:    []string{"ethnicity", "race", "ethnic background"},
		Patterns: rx(`ethnicity`, `^race$`, `ethnic`),
		Priority: 5,
	},
	"custom.veteranStatus": {
		Exact:    []string{"veteran status", "veteran", "military service"},
		Patterns: rx(`veteran`, `military.*service`),
		Priority: 5,
	},
	"custom.disabilityStatus": {
		Exact:    []string{"disability status", "disability", "disabled"},
		Patterns: rx(`disability`, `disabled`),
		Priority: 5,
	},
	"custom.workAuthorization": {
		Exact:    []string{"work authorization", "authorized to work", "work permit", "visa status"},
		Patterns: rx(`work.*authorization`, `authorized.*to.*work`, `work.*permit`, `visa.*status`, `employment.*authorization`),
		Priority: 7,
	},
	"custom.sponsorship": {
		Exact:    []string{"sponsorship", "require sponsorship", "visa sponsorship"},
		Patterns: rx(`sponsorship`, `require.*sponsorship`, `visa.*sponsorship`, `sponsor`),
		Priority: 7,
	},
	"custom.willingToRelocate": {
		Exact:    []string{"willing to relocate", "relocate", "relocation"},
		Patterns: rx(`willing.*to.*relocate`, `^relocate$`, `relocation`, `willing.*relocate`),
		Types:    []string{"checkbox"},
		Priority: 6,
	},
	"custom.salaryExpectation": {
		Exact:    []string{"salary expectation", "desired salary", "expected salary", "salary requirements"},
		Patterns: rx(`salary.*expectation`, `desired.*salary`, `expected.*salary`, `salary.*requirements`, `compensation.*expectation`),
		Types:    []string{"number"},
		Priority: 6,
	},
	"custom.startDate": {
		Exact:    []string{"start date", "available start date", "availability", "when can you start"},
		Patterns: rx(`available.*start`, `availability`, `when.*can.*you.*start`, `start.*date`, `earliest.*start`),
		Types:    []string{"date"},
		Priority: 6,
	},
	"custom.referralSource": {
		Exact:    []string{"how did you hear about us", "referral source", "source", "how did you find us"},
		Patterns: rx(`how.*did.*you.*hear`, `referral.*source`, `how.*did.*you.*find`, `heard.*about.*us`),
		Priority: 5,
	},

	// Document uploads
	"documents.resume": {
		Exact:    []string{"resume", "cv", "curriculum vitae", "upload resume"},
		Patterns: rx(`resume`, `^cv$`, `curriculum.*vitae`, `upload.*resume`),
		Types:    []string{"file"},
		Priority: 9,
	},
	"documents.coverLetter": {
		Exact:    []string{"cover letter", "coverletter", "letter"},
		Patterns: rx(`cover.*letter`, `^letter$`),
		Types:    []string{"file"},
		Priority: 7,
	},
}

// All returns the registry. Callers must not mutate it.
func All() map[string]Entry {
	return registry
}

// Get returns the entry for a field type.
func Get(fieldType string) (Entry, bool) {
	e, ok := registry[fieldType]
	return e, ok
}

// fieldOrder lists the registry keys in declaration order. Ambiguous
// signals match entries in several categories at the same confidence and
// priority; the classifier iterates this order, so the earlier declaration
// wins those ties (work-experience dates beat graduation dates, phone beats
// its alternate).
var fieldOrder = []string{
	"personalInfo.firstName",
	"personalInfo.middleName",
	"personalInfo.lastName",
	"personalInfo.fullName",
	"personalInfo.email",
	"personalInfo.phone",
	"personalInfo.alternatePhone",
	"personalInfo.address.street",
	"personalInfo.address.street2",
	"personalInfo.city",
	"personalInfo.state",
	"personalInfo.zipCode",
	"personalInfo.country",
	"personalInfo.linkedin",
	"personalInfo.website",
	"personalInfo.github",
	"workExperience.company",
	"workExperience.position",
	"workExperience.startDate",
	"workExperience.endDate",
	"workExperience.current",
	"workExperience.location",
	"workExperience.description",
	"education.school",
	"education.degree",
	"education.field",
	"education.graduationDate",
	"education.gpa",
	"skills.technical",
	"skills.summary",
	"custom.gender",
	"custom.ethnicity",
	"custom.veteranStatus",
	"custom.disabilityStatus",
	"custom.workAuthorization",
	"custom.sponsorship",
	"custom.willingToRelocate",
	"custom.salaryExpectation",
	"custom.startDate",
	"custom.referralSource",
	"documents.resume",
	"documents.coverLetter",
}

// FieldTypes returns every registered field type in declaration order.
func FieldTypes() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// ByCategory returns the field types whose key starts with category + ".".
func ByCategory(category string) []string {
	var out []string
	for _, k := range FieldTypes() {
		if strings.HasPrefix(k, category+".") {
			out = append(out, k)
		}
	}
	return out
}
