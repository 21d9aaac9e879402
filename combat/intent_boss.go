package combat

import "time"

// BossBrainConfig mirrors C_BossBrainComponent.h's tunables.
type BossBrainConfig struct {
	AttackRange    float64
	AttackCooldown time.Duration
	MoveBias       float64
}

// DefaultBossBrainConfig returns the original's defaults.
func DefaultBossBrainConfig() BossBrainConfig {
	return BossBrainConfig{
		AttackRange:    DefaultBossAttackRange,
		AttackCooldown: DefaultBossAttackCooldown,
		MoveBias:       DefaultBossMoveBias,
	}
}

// BossBrain is a distance-gated AI that attacks when in range and its
// cooldown has expired, otherwise moves toward the target. It is an
// external collaborator, not part of the core combat logic.
type BossBrain struct {
	cfg BossBrainConfig

	cooldownRemaining time.Duration
}

// NewBossBrain wires a boss brain with cfg.
func NewBossBrain(cfg BossBrainConfig) *BossBrain {
	return &BossBrain{cfg: cfg}
}

// Think produces this tick's Intent given dt and the distance/
// direction to the target. dirX/dirY is the unit vector from the
// boss toward its target (zero vector if distance is ~0).
func (b *BossBrain) Think(dt time.Duration, distance float64, dirX, dirY float64) Intent {
	if b.cooldownRemaining > 0 {
		b.cooldownRemaining -= dt
		if b.cooldownRemaining < 0 {
			b.cooldownRemaining = 0
		}
	}

	var intent Intent
	if distance <= b.cfg.AttackRange && b.cooldownRemaining <= 0 {
		intent.AttackPressed = true
		b.cooldownRemaining = b.cfg.AttackCooldown
		return intent
	}

	intent.MoveX = dirX * b.cfg.MoveBias
	intent.MoveY = dirY * b.cfg.MoveBias
	return intent
}
