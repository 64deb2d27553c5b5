package config

import (
	"gopkg.in/yaml.v3"
)

// StringOrList is a list of strings which can also be written in the configuration
// as a single string.
type StringOrList []string

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (l *StringOrList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = StringOrList{s}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*l = list
	return nil
}

// MarshalYAML implements yaml.Marshaler interface. A single element list is
// written as a scalar.
func (l StringOrList) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}
