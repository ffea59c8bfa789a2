package models

// Language is a supported reply language for a business account.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguagePidgin  Language = "pcm"
	LanguageYoruba  Language = "yo"
	LanguageIgbo    Language = "ig"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguagePidgin, LanguageYoruba, LanguageIgbo:
		return true
	}
	return false
}

// DisplayName returns the human-readable name shown in dashboards.
func (l Language) DisplayName() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguagePidgin:
		return "Nigerian Pidgin"
	case LanguageYoruba:
		return "Yorùbá"
	case LanguageIgbo:
		return "Igbo"
	}
	return string(l)
}

// Plan is a subscription tier.
type Plan string

const (
	PlanTrial        Plan = "trial"
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanTrial, PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}
