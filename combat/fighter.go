package combat

import "math"

// Fighter is the combat-owned state of one character: identity,
// resources, current ActionState/flags, and the per-frame
// lastTargetInFront cache BuildSensors maintains. It lives for the
// duration of the session and is reset on disable.
type Fighter struct {
	Id   EntityId
	Team Team

	Hp        float64
	Stamina   float64
	MoveSpeed float64

	State ActionState
	Flags ActionFlags

	CanBeHitstunned   bool
	LastTargetInFront bool
}

// NewFighter returns a fighter with the session's default resources.
func NewFighter(id EntityId, team Team) *Fighter {
	return &Fighter{
		Id:        id,
		Team:      team,
		Hp:        DefaultHp,
		Stamina:   DefaultStamina,
		MoveSpeed: DefaultMoveSpeed,
		State:     StateIdle,
	}
}

// Alive reports whether the fighter's hp is still positive.
func (f *Fighter) Alive() bool {
	return f.Hp > 0
}

// FighterSnapshot is an immutable by-value copy of Fighter taken
// after the FSM has run, guaranteeing the resolver sees a
// post-transition, pre-apply view untouched by concurrent mutation.
type FighterSnapshot struct {
	Id   EntityId
	Team Team

	Hp      float64
	Stamina float64

	State ActionState
	Flags ActionFlags

	CanBeHitstunned bool
	TargetInFront   bool
}

// Snapshot copies f's resolver-relevant fields by value.
func (f *Fighter) Snapshot(targetInFront bool) FighterSnapshot {
	return FighterSnapshot{
		Id:              f.Id,
		Team:            f.Team,
		Hp:              f.Hp,
		Stamina:         f.Stamina,
		State:           f.State,
		Flags:           f.Flags,
		CanBeHitstunned: f.CanBeHitstunned,
		TargetInFront:   targetInFront,
	}
}

// Transform is the minimal position/orientation external collaborators
// supply for BuildSensors' distance/facing computation.
type Transform struct {
	X, Y, Z   float64
	YawRadians float64
}

// LocomotionSample is what BuildSensors reads from an external
// locomotion/CCT component, when present.
type LocomotionSample struct {
	Present  bool
	OnGround bool
	Blocked  bool
}

// HealthSample is what BuildSensors reads from an external health
// component, when present.
type HealthSample struct {
	Present        bool
	CurrentHealth  float64
	GuardActive    bool
	DodgeActive    bool
	InvulnRemaining float64
	GroggyDuration float64
}

// AttackDriverSample is what BuildSensors ORs in from an external
// attack-driver component, when present. The driver is additive with
// respect to the health component's windows, never exclusive.
type AttackDriverSample struct {
	Present            bool
	AttackWindowActive bool
	GuardWindowActive  bool
	DodgeWindowActive  bool
}

// BuildSensorsInput bundles everything BuildSensors needs beyond the
// fighter itself: dt, the fighter's own transform and its current
// target's, and the samples from whichever external components are
// present this frame.
type BuildSensorsInput struct {
	Dt float64

	AttackStateDurationSec float64

	TargetId EntityId

	SelfTransform   Transform
	HasSelfTransform bool

	TargetTransform   Transform
	HasTargetTransform bool

	Locomotion   LocomotionSample
	Health       HealthSample
	AttackDriver AttackDriverSample
}

// BuildSensors populates a fresh Sensors for fighter f by sampling
// whichever authoritative components are present, following the
// override/OR-in order: fighter defaults, then locomotion, then
// health (overrides hp/windows), then attack driver (ORs in
// windows), then transform-derived distance/facing. It also updates
// f.LastTargetInFront so the next BuildSensors call sees a
// one-frame-latched value when a transform sample is momentarily
// absent.
func (f *Fighter) BuildSensors(in BuildSensorsInput) Sensors {
	s := Sensors{
		Dt:                     in.Dt,
		Hp:                     f.Hp,
		Stamina:                f.Stamina,
		MoveSpeed:              f.MoveSpeed,
		TargetId:               in.TargetId,
		AttackStateDurationSec: in.AttackStateDurationSec,
		CanBeHitstunned:        f.CanBeHitstunned,
		LastTargetInFront:      f.LastTargetInFront,
		TargetInFront:          f.LastTargetInFront,
	}

	if in.Locomotion.Present {
		s.Grounded = in.Locomotion.OnGround
		s.Blocked = in.Locomotion.Blocked
	}

	if in.Health.Present {
		s.Hp = in.Health.CurrentHealth
		s.GuardWindowActive = in.Health.GuardActive
		s.DodgeWindowActive = in.Health.DodgeActive
		s.InvulnActive = in.Health.InvulnRemaining > 0
		s.GroggyDuration = in.Health.GroggyDuration
	}

	if in.AttackDriver.Present {
		s.AttackWindowActive = s.AttackWindowActive || in.AttackDriver.AttackWindowActive
		s.GuardWindowActive = s.GuardWindowActive || in.AttackDriver.GuardWindowActive
		s.DodgeWindowActive = s.DodgeWindowActive || in.AttackDriver.DodgeWindowActive
	}

	if in.HasSelfTransform && in.HasTargetTransform {
		dx := in.TargetTransform.X - in.SelfTransform.X
		dy := in.TargetTransform.Y - in.SelfTransform.Y
		dz := in.TargetTransform.Z - in.SelfTransform.Z
		s.TargetDistance = math.Sqrt(dx*dx + dy*dy + dz*dz)

		fx := math.Sin(in.SelfTransform.YawRadians)
		fz := math.Cos(in.SelfTransform.YawRadians)

		xzLen := math.Sqrt(dx*dx + dz*dz)
		inFront := true
		if xzLen > 1e-6 {
			ux, uz := dx/xzLen, dz/xzLen
			dot := fx*ux + fz*uz
			s.TargetAngle = math.Acos(clamp(dot, -1, 1))
			inFront = dot >= 0
		}
		s.TargetInFront = inFront
		f.LastTargetInFront = inFront
	}

	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
