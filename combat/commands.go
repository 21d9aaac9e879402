package combat

// CommandType tags a Command's payload.
type CommandType int

const (
	CmdApplyDamage CommandType = iota
	CmdConsumeStamina
	CmdEnterHitstun
	CmdForceCancelAttack
	CmdDisableTrace
	CmdEnableTrace
	CmdPlayAnim
	CmdRequestMove
)

func (t CommandType) String() string {
	switch t {
	case CmdApplyDamage:
		return "ApplyDamage"
	case CmdConsumeStamina:
		return "ConsumeStamina"
	case CmdEnterHitstun:
		return "EnterHitstun"
	case CmdForceCancelAttack:
		return "ForceCancelAttack"
	case CmdDisableTrace:
		return "DisableTrace"
	case CmdEnableTrace:
		return "EnableTrace"
	case CmdPlayAnim:
		return "PlayAnim"
	case CmdRequestMove:
		return "RequestMove"
	default:
		return "Unknown"
	}
}

// Command is an imperative effect produced by the FSM or the resolver
// and applied in-frame. Exactly the payload fields relevant to Type
// are meaningful; the rest are zero.
type Command struct {
	Type   CommandType
	Target EntityId

	Amount   float64
	Duration float64

	// RequestMove payload.
	MoveX, MoveY    float64
	MoveSpeed       float64
	CameraRelative  bool
	FaceMove        bool

	// PlayAnim payload.
	ClipName string
	BlendSec float64
	Speed    float64
}

// FsmOutput is what one ActionFsm.Update call produces: the new
// state, the derived flags for this tick, and any commands the
// transition emitted.
type FsmOutput struct {
	State    ActionState
	Flags    ActionFlags
	Commands []Command
}

// ResolveOutput is what the resolver produces for one hit: the
// immediate commands to apply and the deferred events to queue.
type ResolveOutput struct {
	Commands []Command
	Deferred []CombatEvent
}
