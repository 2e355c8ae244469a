package quantity

import "strings"

// Dimension identifies the physical quantity measured by a unit. Only units
// that share a dimension can be converted into one another.
type Dimension string

const (
	Time   Dimension = "time"
	Length Dimension = "length"
)

// Unit is implemented by the zero-size marker types below. Scale is the size
// of one unit expressed in the dimension's base unit (seconds, meters).
type Unit interface {
	Symbol() string
	Dimension() Dimension
	Scale() float64
}

type (
	Second    struct{}
	Minute    struct{}
	Hour      struct{}
	Day       struct{}
	Meter     struct{}
	Kilometer struct{}
)

func (Second) Symbol() string       { return "s" }
func (Second) Dimension() Dimension { return Time }
func (Second) Scale() float64       { return 1 }

func (Minute) Symbol() string       { return "min" }
func (Minute) Dimension() Dimension { return Time }
func (Minute) Scale() float64       { return 60 }

func (Hour) Symbol() string       { return "h" }
func (Hour) Dimension() Dimension { return Time }
func (Hour) Scale() float64       { return 3600 }

func (Day) Symbol() string       { return "d" }
func (Day) Dimension() Dimension { return Time }
func (Day) Scale() float64       { return 86400 }

func (Meter) Symbol() string       { return "m" }
func (Meter) Dimension() Dimension { return Length }
func (Meter) Scale() float64       { return 1 }

func (Kilometer) Symbol() string       { return "km" }
func (Kilometer) Dimension() Dimension { return Length }
func (Kilometer) Scale() float64       { return 1000 }

// unitsByName maps configuration names to unit values.
var unitsByName = map[string]Unit{
	"second":    Second{},
	"minute":    Minute{},
	"hour":      Hour{},
	"day":       Day{},
	"meter":     Meter{},
	"kilometer": Kilometer{},
}

// Lookup resolves a unit by its configuration name ("second", "day", ...) or
// its symbol ("s", "d", ...). The match is case-insensitive.
func Lookup(name string) (Unit, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if u, ok := unitsByName[name]; ok {
		return u, true
	}
	for _, u := range unitsByName {
		if u.Symbol() == name {
			return u, true
		}
	}
	return nil, false
}

// Names returns the configuration names accepted by Lookup.
func Names() []string {
	return []string{"second", "minute", "hour", "day", "meter", "kilometer"}
}
