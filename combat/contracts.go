// Package combat implements the per-frame combat simulation core: an
// action FSM per fighter, a stateless hit resolver, a command applier,
// and the session that orchestrates them against external component
// stores the package does not own.
package combat

// EntityId is an opaque handle into the external component store.
// Zero is the invalid id; combat never allocates entity ids itself.
type EntityId uint32

// InvalidEntityId is the zero value of EntityId.
const InvalidEntityId EntityId = 0

// Valid reports whether id refers to a real entity.
func (id EntityId) Valid() bool {
	return id != InvalidEntityId
}

// Team identifies which side a fighter belongs to.
type Team int

const (
	TeamNeutral Team = iota
	TeamPlayer
	TeamEnemy
)

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "Player"
	case TeamEnemy:
		return "Enemy"
	default:
		return "Neutral"
	}
}

// ActionState is the fighter's coarse combat state, owned by the FSM.
type ActionState int

const (
	StateIdle ActionState = iota
	StateMove
	StateAttack
	StateDodge
	StateGuard
	StateHitstun
	StateGroggy
	StateDead
)

func (s ActionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateMove:
		return "Move"
	case StateAttack:
		return "Attack"
	case StateDodge:
		return "Dodge"
	case StateGuard:
		return "Guard"
	case StateHitstun:
		return "Hitstun"
	case StateGroggy:
		return "Groggy"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// ActionFlags is the derived per-frame snapshot the resolver consumes.
// Every field here is a pass-through of sensor windows or a pure
// function of ActionState; the FSM never invents one out of thin air.
type ActionFlags struct {
	HitActive         bool
	GuardActive       bool
	ParryWindowActive bool
	InvulnActive      bool
	CanBeInterrupted  bool
}

// Intent is one fighter's per-frame command-level input, produced by a
// player input source or an AI brain. Fields beyond MoveX/MoveY/
// AttackPressed/GuardHeld/DodgePressed/LockOnToggle are carried for
// intent sources that want them; ActionFsm only reads the documented
// subset.
type Intent struct {
	MoveX, MoveY float64

	AttackPressed bool
	GuardHeld     bool
	DodgePressed  bool
	LockOnToggle  bool

	LightAttackPressed bool
	HeavyAttackPressed bool
	AttackHeld         bool
	AttackHeldSec      float64

	GuardPressed   bool
	GuardReleased  bool
	GuardHeldSec   float64
	ParryWindowSec float64

	ItemPressed      bool
	InteractPressed  bool
	RagePressed      bool
	RunHeld          bool
}

// HasMove reports whether the move vector exceeds the FSM's dead zone.
func (i Intent) HasMove() bool {
	return absf(i.MoveX)+absf(i.MoveY) > 1e-3
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Sensors is a per-frame, read-only, by-value snapshot of one
// fighter's world state, built by BuildSensors from external
// components. The FSM consults only Sensors, never components
// directly.
type Sensors struct {
	Dt float64

	Hp        float64
	Stamina   float64
	MoveSpeed float64

	Grounded bool
	Blocked  bool

	TargetId          EntityId
	TargetDistance     float64
	TargetAngle        float64
	TargetInFront      bool
	LastTargetInFront  bool

	AttackWindowActive bool
	GuardWindowActive  bool
	DodgeWindowActive  bool
	InvulnActive       bool

	AttackStateDurationSec float64
	GroggyDuration         float64
	CanBeHitstunned        bool
}
