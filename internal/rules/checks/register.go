package checks

import "prcheck/internal/rules"

// Registration order is the report order: title, assignee, labels.
func init() {
	for _, r := range []rules.ConfigurableRule{
		&TitleFormatRule{},
		&AssigneeSetRule{},
		&LabelsSetRule{},
	} {
		_ = r.Configure(map[string]string{})
		rules.Register(r)
	}
}
