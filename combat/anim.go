package combat

// AnimBlenderConfig carries the session's animation tunables, named
// after C_CombatSessionComponent.h's exported clip properties.
type AnimBlenderConfig struct {
	AnimBlendSec    float64
	IdleClip        string
	MoveClip        string
	MoveBlendSpeed  float64
	AttackSlowClip  string
	AttackSlowSpeed float64
}

// DefaultAnimBlenderConfig returns the session defaults.
func DefaultAnimBlenderConfig() AnimBlenderConfig {
	return AnimBlenderConfig{
		AnimBlendSec:    DefaultAnimBlendSec,
		IdleClip:        DefaultIdleClip,
		MoveClip:        DefaultMoveClip,
		MoveBlendSpeed:  DefaultMoveBlendSpeed,
		AttackSlowClip:  DefaultAttackSlowClip,
		AttackSlowSpeed: DefaultAttackSlowSpeed,
	}
}

// AnimBlender turns (ActionState, speed) into a PlayAnim command,
// cross-fading over AnimBlendSec on any clip change and applying the
// attack-slow speed scaler only while the fighter is in Attack.
// Grounded on C_CombatSessionComponent::ApplyAnimByState.
type AnimBlender struct {
	cfg AnimBlenderConfig

	currentClip string
	blendTimer  float64
}

// NewAnimBlender returns a blender starting on the idle clip.
func NewAnimBlender(cfg AnimBlenderConfig) *AnimBlender {
	return &AnimBlender{cfg: cfg, currentClip: cfg.IdleClip}
}

// Update picks the clip for state (given whether the fighter is
// currently moving) and returns the PlayAnim command to route to the
// external animation layer, advancing the internal blend timer by dt.
func (b *AnimBlender) Update(state ActionState, moveSpeed float64, dt float64) Command {
	clip, speed := b.clipFor(state, moveSpeed)

	if clip != b.currentClip {
		b.currentClip = clip
		b.blendTimer = b.cfg.AnimBlendSec
	} else if b.blendTimer > 0 {
		b.blendTimer -= dt
		if b.blendTimer < 0 {
			b.blendTimer = 0
		}
	}

	return Command{
		Type:     CmdPlayAnim,
		ClipName: clip,
		BlendSec: b.blendTimer,
		Speed:    speed,
	}
}

func (b *AnimBlender) clipFor(state ActionState, moveSpeed float64) (clip string, speed float64) {
	switch state {
	case StateAttack:
		return b.cfg.AttackSlowClip, b.cfg.AttackSlowSpeed
	case StateMove:
		if moveSpeed > 1e-3 {
			return b.cfg.MoveClip, 1.0
		}
		return b.cfg.IdleClip, 1.0
	default:
		return b.cfg.IdleClip, 1.0
	}
}
