package projection

// Config maps field names to projection modes. Unrecognized field names are
// ignored by Resolve (config loading reports them separately); malformed
// modes degrade to include.
type Config map[Field]Mode

// Policy is the resolved, immutable form of a Config. It is computed once
// per engine invocation and then only read, so the same policy value can be
// shared across calls and goroutines.
type Policy struct {
	modes    map[Field]Mode
	onlyMode bool
}

// Resolve normalizes a configuration into a Policy. If any field carries
// mode "only" the policy switches to only-mode: fields marked only survive
// and every other field is pruned, regardless of their own modes.
func Resolve(cfg Config) Policy {
	modes := make(map[Field]Mode, len(cfg))
	only := false
	for field, mode := range cfg {
		if !Recognized(field) {
			continue
		}
		switch mode {
		case ModeNever, ModeOnly, ModeInclude:
			modes[field] = mode
		default:
			modes[field] = ModeInclude
		}
		if modes[field] == ModeOnly {
			only = true
		}
	}
	return Policy{modes: modes, onlyMode: only}
}

// Everything is the identity policy: no field is pruned.
func Everything() Policy {
	return Policy{}
}

// Keep reports whether the field survives under this policy. Structural
// discriminators are not fields and always survive.
func (p Policy) Keep(field Field) bool {
	if p.onlyMode {
		return p.modes[field] == ModeOnly
	}
	return p.modes[field] != ModeNever
}

// OnlyMode reports whether any configured field carries mode "only".
func (p Policy) OnlyMode() bool {
	return p.onlyMode
}
