package models

// ChoiceSet maps a stored code to its API label, the direction the
// database schema declares choices in. Remote records carry labels, so
// importers resolve codes through the inverse mapping.
type ChoiceSet map[string]string

// Inverse returns the label -> code lookup for a choice set.
func (c ChoiceSet) Inverse() map[string]string {
	result := make(map[string]string, len(c))
	for code, label := range c {
		result[label] = code
	}
	return result
}
