// Package namer contains the naming conventions used for the derived schema names.
package namer

import (
	"github.com/iancoleman/strcase"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
)

// Namer is the function that change the name with some prepared formatting.
type Namer func(string) string

// NamingSnake is a Namer function that converts the 'raw' into the 'snake_case_model'.
func NamingSnake(raw string) string {
	return strcase.ToSnake(raw)
}

// NamingKebab is a Namer function that converts the 'raw' into the 'kebab-case-model'.
func NamingKebab(raw string) string {
	return strcase.ToKebab(raw)
}

// NamingCamel is a Namer function that converts the 'raw' into the 'CamelCaseModel'.
func NamingCamel(raw string) string {
	return strcase.ToCamel(raw)
}

// NamingLowerCamel is a Namer function that converts the 'raw' into the 'camelCaseModel'.
func NamingLowerCamel(raw string) string {
	return strcase.ToLowerCamel(raw)
}

// ByName gets the Namer for the configured naming convention name.
// An empty name results in the snake case naming.
func ByName(name string) (Namer, error) {
	switch name {
	case "", "snake":
		return NamingSnake, nil
	case "kebab":
		return NamingKebab, nil
	case "camel":
		return NamingCamel, nil
	case "lowercamel":
		return NamingLowerCamel, nil
	}
	return nil, errors.NewDetf(class.ConfigInvalid, "unknown naming convention: '%s'", name)
}
