package dynamic

import (
	"fmt"
	"strings"
)

// Kind is a built-in dynamic constraint.
type Kind int

const (
	Dependence Kind = iota
	Consecutive
	Exclusive
)

var kindNames = map[Kind]string{
	Dependence:  "Dependence",
	Consecutive: "Consecutive",
	Exclusive:   "Exclusive",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown dependency kind %q, expected one of dependence, consecutive, exclusive", s)
}
