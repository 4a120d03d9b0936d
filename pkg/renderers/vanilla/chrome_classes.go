package vanilla

// ChromeClass is a typed identifier for the semantic CSS classes the
// templates emit.
type ChromeClass string

const (
	ClassPicker      ChromeClass = "formkit-picker"
	ClassGroup       ChromeClass = "formkit-group"
	ClassFieldList   ChromeClass = "formkit-fieldlist"
	ClassTranslation ChromeClass = "formkit-translation"
	ClassModal       ChromeClass = "formkit-modal"
	ClassActions     ChromeClass = "formkit-actions"
	ClassErrors      ChromeClass = "formkit-errors"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"picker":      string(ClassPicker),
		"group":       string(ClassGroup),
		"fieldlist":   string(ClassFieldList),
		"translation": string(ClassTranslation),
		"modal":       string(ClassModal),
		"actions":     string(ClassActions),
		"errors":      string(ClassErrors),
	}
}
