// Package cedula validates the national id used as the natural key of a
// cliente: 10 digits for a person, 13 for a registered business (RUC).
package cedula

// Validate reports whether the value is a well-formed cédula.
func Validate(cedula string) bool {
	if len(cedula) != 10 && len(cedula) != 13 {
		return false
	}

	for _, r := range cedula {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
