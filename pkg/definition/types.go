package definition

// Document is the on-disk form definition.
type Document struct {
	Fields     []FieldSpec    `yaml:"fields" json:"fields"`
	Values     map[string]any `yaml:"values,omitempty" json:"values,omitempty"`
	UnsetValue any            `yaml:"unsetValue,omitempty" json:"unsetValue,omitempty"`
}

// FieldSpec declares one field.
type FieldSpec struct {
	Name       string         `yaml:"name" json:"name"`
	Listener   *ListenerSpec  `yaml:"listener,omitempty" json:"listener,omitempty"`
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// ListenerSpec declares the rule groups of a field. An omitted group is absent;
// an empty list is present but never reports errors.
type ListenerSpec struct {
	OnChange []RuleSpec `yaml:"onChange,omitempty" json:"onChange,omitempty"`
	OnBlur   []RuleSpec `yaml:"onBlur,omitempty" json:"onBlur,omitempty"`
	OnSubmit []RuleSpec `yaml:"onSubmit,omitempty" json:"onSubmit,omitempty"`
}

// RuleSpec names a registered validator rule.
type RuleSpec struct {
	Rule        string            `yaml:"rule" json:"rule"`
	Params      map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
	Message     string            `yaml:"message,omitempty" json:"message,omitempty"`
	AfterSubmit bool              `yaml:"afterSubmit,omitempty" json:"afterSubmit,omitempty"`
}
