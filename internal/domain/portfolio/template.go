package portfolio

// Template names one of the fixed render variants.
type Template string

const (
	TemplateDefault Template = "default"
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateMinimal Template = "minimal"
	TemplateDark    Template = "dark"
)

type TemplateInfo struct {
	ID   Template `json:"id"`
	Name string   `json:"name"`
}

var catalogue = []TemplateInfo{
	{ID: TemplateDefault, Name: "Default"},
	{ID: TemplateModern, Name: "Modern"},
	{ID: TemplateClassic, Name: "Classic"},
	{ID: TemplateMinimal, Name: "Minimal"},
	{ID: TemplateDark, Name: "Dark"},
}

// Templates returns the selectable templates in display order.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

func (t Template) Known() bool {
	for _, info := range catalogue {
		if info.ID == t {
			return true
		}
	}
	return false
}

// Resolve maps unknown or empty values to TemplateDefault.
func (t Template) Resolve() Template {
	if t.Known() {
		return t
	}
	return TemplateDefault
}
