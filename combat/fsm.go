package combat

// ActionFsm advances one fighter's ActionState by exactly one
// transition step per tick, consuming that fighter's Intent, Sensors
// and queued deferred events and emitting movement/trace commands.
// One instance lives per fighter and persists across frames.
type ActionFsm struct {
	state ActionState

	stateTime float64

	// attackCommitted latches on the first tick attackWindowActive is
	// observed while in Attack; it resets on state exit.
	attackCommitted bool

	// prevHitActive is last tick's hitActive, used to detect the
	// rising/falling edge that emits EnableTrace/DisableTrace.
	prevHitActive bool
}

// NewActionFsm returns a fresh FSM in Idle.
func NewActionFsm() *ActionFsm {
	return &ActionFsm{state: StateIdle}
}

// State returns the fighter's current ActionState.
func (f *ActionFsm) State() ActionState {
	return f.state
}

// Reset returns the FSM to its initial Idle state, clearing all
// latched bits.
func (f *ActionFsm) Reset() {
	f.state = StateIdle
	f.stateTime = 0
	f.attackCommitted = false
	f.prevHitActive = false
}

// Update advances the FSM by dt seconds given this tick's intent,
// sensors and the fighter's deferred events (already peeled off the
// bus by the caller). It never fails: inputs it cannot honor are
// dropped silently, and it never touches external components.
func (f *ActionFsm) Update(intent Intent, sensors Sensors, events []CombatEvent, dt float64) FsmOutput {
	prevState := f.state
	f.stateTime += dt

	var cmds []Command

	switch {
	case sensors.Hp <= 0 || hasEventType(events, OnDeath):
		f.enter(StateDead, prevState)

	case hasEventType(events, OnGroggy) && f.state != StateDead:
		f.enter(StateGroggy, prevState)

	case hasEventType(events, OnHit) && f.state != StateDead && sensors.CanBeHitstunned:
		f.enter(StateHitstun, prevState)

	default:
		switch f.state {
		case StateDead:
			// terminal: no further transitions.
		case StateGroggy:
			if f.stateTime >= sensors.GroggyDuration {
				f.enter(StateIdle, prevState)
			}
		case StateHitstun:
			if f.stateTime >= HitstunDurationSec {
				f.enter(StateIdle, prevState)
			}
		default:
			cmds = f.updateActive(intent, sensors, prevState)
		}
	}

	flags := f.deriveFlags(sensors)

	if traceCmd, ok := f.traceEdgeCommand(flags.HitActive); ok {
		cmds = append(cmds, traceCmd)
	}
	f.prevHitActive = flags.HitActive

	return FsmOutput{State: f.state, Flags: flags, Commands: cmds}
}

// updateActive runs the priority-ordered transition table for every
// state other than the fixed-timer states (Dead/Groggy/Hitstun),
// which are handled by Update before this is reached.
func (f *ActionFsm) updateActive(intent Intent, sensors Sensors, prevState ActionState) []Command {
	hasMove := intent.HasMove()

	if f.state == StateAttack {
		if sensors.AttackStateDurationSec > 0 && f.stateTime >= sensors.AttackStateDurationSec {
			return f.leaveAttack(intent, hasMove, sensors, prevState)
		}

		if !f.attackCommitted {
			if sensors.AttackWindowActive {
				f.attackCommitted = true
				return nil
			}
			if intent.DodgePressed && sensors.Stamina >= DodgeStaminaCost {
				f.enter(StateDodge, prevState)
				return nil
			}
			if intent.GuardHeld {
				f.enter(StateGuard, prevState)
				return nil
			}
			return f.leaveAttack(intent, hasMove, sensors, prevState)
		}

		if !sensors.AttackWindowActive && f.stateTime > AttackCommitGraceSec {
			f.enter(StateIdle, prevState)
		}
		return nil
	}

	switch {
	case intent.DodgePressed && sensors.Stamina >= DodgeStaminaCost:
		f.enter(StateDodge, prevState)
	case intent.GuardHeld:
		f.enter(StateGuard, prevState)
	case intent.AttackPressed && sensors.Stamina >= AttackStaminaCost:
		f.enter(StateAttack, prevState)
	case hasMove:
		f.enter(StateMove, prevState)
		return []Command{requestMoveCommand(intent, sensors)}
	default:
		f.enter(StateIdle, prevState)
		return []Command{zeroMoveCommand()}
	}
	return nil
}

// leaveAttack exits Attack into Move or Idle, matching the FSM's
// "attack state duration elapsed" and "uncommitted attack yields to
// Move/Idle" paths.
func (f *ActionFsm) leaveAttack(intent Intent, hasMove bool, sensors Sensors, prevState ActionState) []Command {
	if hasMove {
		f.enter(StateMove, prevState)
		return []Command{requestMoveCommand(intent, sensors)}
	}
	f.enter(StateIdle, prevState)
	return []Command{zeroMoveCommand()}
}

func requestMoveCommand(intent Intent, sensors Sensors) Command {
	return Command{
		Type:           CmdRequestMove,
		MoveX:          intent.MoveX,
		MoveY:          intent.MoveY,
		MoveSpeed:      sensors.MoveSpeed,
		CameraRelative: true,
		FaceMove:       true,
	}
}

func zeroMoveCommand() Command {
	return Command{Type: CmdRequestMove, MoveX: 0, MoveY: 0}
}

// enter transitions into next, resetting stateTime and, when leaving
// Attack, the commit latch.
func (f *ActionFsm) enter(next ActionState, prevState ActionState) {
	if prevState == StateAttack && next != StateAttack {
		f.attackCommitted = false
	}
	f.state = next
	f.stateTime = 0
}

// deriveFlags computes this tick's ActionFlags as pure pass-throughs
// of sensor windows plus the state-derived canBeInterrupted bit.
func (f *ActionFsm) deriveFlags(sensors Sensors) ActionFlags {
	flags := ActionFlags{
		HitActive:         sensors.AttackWindowActive,
		GuardActive:       sensors.GuardWindowActive,
		InvulnActive:      sensors.DodgeWindowActive || sensors.InvulnActive,
		ParryWindowActive: false,
		CanBeInterrupted:  f.state != StateDodge && f.state != StateDead && f.state != StateGroggy,
	}
	if f.state == StateHitstun || f.state == StateGroggy {
		flags.CanBeInterrupted = false
	}
	return flags
}

// traceEdgeCommand compares hitActive against the latched previous
// value and emits EnableTrace/DisableTrace on rising/falling edges.
func (f *ActionFsm) traceEdgeCommand(hitActive bool) (Command, bool) {
	if hitActive == f.prevHitActive {
		return Command{}, false
	}
	if hitActive {
		return Command{Type: CmdEnableTrace}, true
	}
	return Command{Type: CmdDisableTrace}, true
}

func hasEventType(events []CombatEvent, t CombatEventType) bool {
	for _, e := range events {
		if e.Type == t {
			return true
		}
	}
	return false
}
