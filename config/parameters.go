package config

import (
	"fmt"

	"github.com/robmorgan/clockmaker/utils"
)

const (
	ParameterIDPpqn   = "ppqn"
	ParameterIDMulDiv = "mulDiv"
)

// Parameter describes an integer control exposed to the host.
type Parameter struct {
	ID      string
	Name    string
	Min     int
	Max     int
	Default int
}

var (
	// PpqnParameter is the number of pulses per quarter note
	PpqnParameter = Parameter{ID: ParameterIDPpqn, Name: "PPQN", Min: 2, Max: 96, Default: 24}

	// MulDivParameter multiplies (positive) or divides (negative) the pulse rate
	MulDivParameter = Parameter{ID: ParameterIDMulDiv, Name: "Mul/Div", Min: -8, Max: 8, Default: 1}
)

// GetParameters returns every parameter keyed by ID.
func GetParameters() map[string]Parameter {
	return map[string]Parameter{
		PpqnParameter.ID:   PpqnParameter,
		MulDivParameter.ID: MulDivParameter,
	}
}

// Clamp limits v to the parameter range.
func (p Parameter) Clamp(v int) int {
	return utils.Clamp(v, p.Min, p.Max)
}

// Contains reports whether v is inside the parameter range.
func (p Parameter) Contains(v int) bool {
	return v >= p.Min && v <= p.Max
}

func (p Parameter) describeRange(v int) string {
	return fmt.Sprintf("%d is outside %s range [%d, %d]", v, p.Name, p.Min, p.Max)
}
