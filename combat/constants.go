package combat

import "time"

// Fighter defaults, matching a fresh session's starting fighters.
const (
	DefaultHp        = 100.0
	DefaultStamina   = 100.0
	DefaultMoveSpeed = 5.0
)

// Stamina costs gating transitions in ActionFsm.Update.
const (
	DodgeStaminaCost  = 10.0
	AttackStaminaCost = 15.0
)

// Fixed exit timers for states the FSM enters on events rather than
// on sensor windows.
const (
	HitstunDurationSec = 0.4

	// AttackCommitGraceSec is the minimum time, counted from entering
	// Attack, before a committed attack whose window has closed drops
	// to Idle.
	AttackCommitGraceSec = 0.05
)

// Groggy accumulation (boss only), matching C_CombatSessionComponent's
// PostCombatUpdate groggy step.
const (
	DefaultGroggyMax        = 100.0
	DefaultGroggyGainScale  = 1.0
	DefaultGroggyDuration   = 3.0
)

// Session animation/movement tunables, matching
// C_CombatSessionComponent.h's defaults.
const (
	DefaultAnimBlendSec       = 0.12
	DefaultIdleClip           = "Idle"
	DefaultMoveClip           = "Walk"
	DefaultMoveBlendSpeed     = 8.0
	DefaultAttackSlowClip     = "swing"
	DefaultAttackSlowSpeed    = 0.7
	DefaultRotationOffsetDeg  = 180.0
)

// Boss AI brain defaults, matching C_BossBrainComponent.h.
const (
	DefaultBossAttackRange    = 2.5
	DefaultBossAttackCooldown = 1.0 * time.Second
	DefaultBossMoveBias       = 1.0
)
