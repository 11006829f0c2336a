package keygen

// Decision is the outcome of the existing-key check before generation.
type Decision int

const (
	// NoExistingKey means nothing is at the key path; generate freely.
	NoExistingKey Decision = iota

	// KeepExisting means a key exists and the user declined to replace it.
	// This is the default on anything but an explicit yes.
	KeepExisting

	// Overwrite means a key exists and the user confirmed replacing it.
	Overwrite
)

// String returns a human-readable decision name.
func (d Decision) String() string {
	switch d {
	case NoExistingKey:
		return "no existing key"
	case KeepExisting:
		return "keep existing key"
	case Overwrite:
		return "overwrite existing key"
	default:
		return "unknown"
	}
}

// Decide checks for an existing key at keyPath and, when one is found, asks
// confirm whether to replace it. confirm is only called when a key exists.
func Decide(keyPath string, confirm func() (bool, error)) (Decision, error) {
	if !Exists(keyPath) {
		return NoExistingKey, nil
	}

	replace, err := confirm()
	if err != nil {
		return KeepExisting, err
	}
	if replace {
		return Overwrite, nil
	}
	return KeepExisting, nil
}
