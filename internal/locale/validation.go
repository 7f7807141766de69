package locale

import "go-roster/internal/employee"

// LocalizeErrors turns field errors into display strings in lang. A "field"
// param holding a label id is localized before it is interpolated.
func (t *Translator) LocalizeErrors(lang string, errs employee.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, fe := range errs {
		params := make(map[string]any, len(fe.Params))
		for k, v := range fe.Params {
			params[k] = v
		}
		if label, ok := params["field"].(string); ok {
			params["field"] = t.Localize(lang, label, nil)
		}
		out[field] = t.Localize(lang, fe.Kind, params)
	}
	return out
}
