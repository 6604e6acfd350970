package encoding

// Gate reports the lifecycle facts that decide whether an encoding state may
// be changed.
type Gate interface {
	// InDefineMode reports whether the variable is still in its definition
	// phase.
	InDefineMode() bool
	// Enhanced reports whether the container format supports filters and
	// quantization.
	Enhanced() bool
}

// StaticGate is a Gate with fixed answers.
type StaticGate struct {
	Define      bool
	EnhancedFmt bool
}

var _ Gate = StaticGate{}

func (g StaticGate) InDefineMode() bool { return g.Define }
func (g StaticGate) Enhanced() bool     { return g.EnhancedFmt }
