package domain

// PlanLimits holds the numeric limits of a subscription plan. A nil pointer
// means the limit is not applied.
type PlanLimits struct {
	MaxProjects             *int `json:"maxProjects,omitempty"`
	MaxExpensesPerMonth     *int `json:"maxExpensesPerMonth,omitempty"`
	MaxCategoriesPerProject *int `json:"maxCategoriesPerProject,omitempty"`
	MaxPaymentMethods       *int `json:"maxPaymentMethods,omitempty"`
	MaxTeamMembersPerProject *int `json:"maxTeamMembersPerProject,omitempty"`
	Unlimited               bool `json:"unlimited,omitempty"`
}

// Allows reports whether a count of existing resources is below the given
// limit. Unlimited plans and absent limits always allow.
func (l *PlanLimits) Allows(limit *int, current int) bool {
	if l == nil || l.Unlimited || limit == nil {
		return true
	}
	return current < *limit
}

// Plan is a subscription tier gating features and limits.
type Plan struct {
	PlanID       string `json:"planID"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	IsActive     bool   `json:"isActive"`
	DisplayOrder int    `json:"displayOrder"`

	CanCreateProjects   bool `json:"canCreateProjects"`
	CanShareProjects    bool `json:"canShareProjects"`
	CanExportData       bool `json:"canExportData"`
	CanUseMultiCurrency bool `json:"canUseMultiCurrency"`
	CanSetBudgets       bool `json:"canSetBudgets"`

	Limits *PlanLimits `json:"limits,omitempty"` // stored as JSONB

	AuditFields
}
