package model

import (
	"encoding/json"
)

// ThermalLevel is a coarse 4-step thermal state.
type ThermalLevel int

const (
	ThermalNominal ThermalLevel = iota
	ThermalFair
	ThermalSerious
	ThermalCritical
)

// ThermalLevelFromRaw maps a raw ordinal onto a level. Unrecognized values
// are treated as nominal.
func ThermalLevelFromRaw(raw int) ThermalLevel {
	switch ThermalLevel(raw) {
	case ThermalNominal, ThermalFair, ThermalSerious, ThermalCritical:
		return ThermalLevel(raw)
	default:
		return ThermalNominal
	}
}

func (t ThermalLevel) String() string {
	switch t {
	case ThermalFair:
		return "Fair"
	case ThermalSerious:
		return "Serious"
	case ThermalCritical:
		return "Critical"
	default:
		return "Normal"
	}
}

func (t ThermalLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
