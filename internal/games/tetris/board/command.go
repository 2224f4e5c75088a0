package board

// Command is a single piece manipulation, issued by a human key press or
// by the CPU controller.
type Command int

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
	CommandRotate
	CommandSoftDrop
	CommandHardDrop
)

// String returns a short name for logs and tests.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandRotate:
		return "rotate"
	case CommandSoftDrop:
		return "soft_drop"
	case CommandHardDrop:
		return "hard_drop"
	default:
		return "unknown"
	}
}
