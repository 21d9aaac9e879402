package combat

import "time"

// PlayerInputBindings reports the raw button/axis state
// PlayerInputSource needs each tick, decoupled from any specific
// input library (cmd/combat-sandbox adapts tcell key events to this).
type PlayerInputBindings interface {
	MoveAxis() (x, y float64)
	AttackHeld() bool
	GuardHeld() bool
	DodgePressed() bool
	LockOnPressed() bool
}

// PlayerInputSourceConfig mirrors C_PlayerInputSourceComponent's
// tunables for distinguishing light/heavy attacks and sizing the
// parry window.
type PlayerInputSourceConfig struct {
	// HeavyAttackThresholdSec is how long the attack button must be
	// held before release counts as a heavy attack instead of light.
	HeavyAttackThresholdSec float64
	// ParryWindowSec is copied onto every Intent next to GuardHeldSec.
	// Poll does not itself decide whether a parry window is open, and
	// nothing in the package compares the two values.
	ParryWindowSec float64
}

// DefaultPlayerInputSourceConfig returns the original's tunables.
func DefaultPlayerInputSourceConfig() PlayerInputSourceConfig {
	return PlayerInputSourceConfig{
		HeavyAttackThresholdSec: 0.35,
		ParryWindowSec:          0.15,
	}
}

// PlayerInputSource turns PlayerInputBindings into an Intent each
// tick. It is an external collaborator, not part of the core combat
// logic: the session only depends on "something that returns an
// Intent given dt and an optional target id."
type PlayerInputSource struct {
	bindings PlayerInputBindings
	cfg      PlayerInputSourceConfig

	attackHeldSec float64
	wasAttackHeld bool

	guardHeldSec  float64
	wasGuardHeld  bool
	wasLockOn     bool
}

// NewPlayerInputSource wires a player input source to its bindings.
func NewPlayerInputSource(bindings PlayerInputBindings, cfg PlayerInputSourceConfig) *PlayerInputSource {
	return &PlayerInputSource{bindings: bindings, cfg: cfg}
}

// Poll samples bindings for dt seconds and returns this tick's Intent.
func (p *PlayerInputSource) Poll(dt time.Duration) Intent {
	dtSec := dt.Seconds()

	mx, my := p.bindings.MoveAxis()
	attackHeld := p.bindings.AttackHeld()
	guardHeld := p.bindings.GuardHeld()
	dodgePressed := p.bindings.DodgePressed()
	lockOn := p.bindings.LockOnPressed()

	var intent Intent
	intent.MoveX, intent.MoveY = mx, my
	intent.GuardHeld = guardHeld
	intent.DodgePressed = dodgePressed
	intent.LockOnToggle = lockOn && !p.wasLockOn
	p.wasLockOn = lockOn

	if attackHeld {
		p.attackHeldSec += dtSec
	}
	if p.wasAttackHeld && !attackHeld {
		// Release edge: classify light vs heavy by held duration.
		if p.attackHeldSec >= p.cfg.HeavyAttackThresholdSec {
			intent.HeavyAttackPressed = true
		} else {
			intent.LightAttackPressed = true
		}
		intent.AttackPressed = true
		p.attackHeldSec = 0
	}
	intent.AttackHeld = attackHeld
	intent.AttackHeldSec = p.attackHeldSec
	p.wasAttackHeld = attackHeld

	if guardHeld {
		p.guardHeldSec += dtSec
	} else {
		if p.wasGuardHeld {
			intent.GuardReleased = true
		}
		p.guardHeldSec = 0
	}
	if guardHeld && !p.wasGuardHeld {
		intent.GuardPressed = true
	}
	intent.GuardHeldSec = p.guardHeldSec
	intent.ParryWindowSec = p.cfg.ParryWindowSec
	p.wasGuardHeld = guardHeld

	return intent
}
