package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/vi-fighter/combat"
)

// SandboxWorld is the sandbox's tiny external component store: just
// enough Health/AttackDriver/WeaponTrace/position state to drive one
// CombatSession, grounded on engine.Store[T]'s map-backed shape.
type SandboxWorld struct {
	Health       *combat.InMemoryHealthStore
	AttackDriver *combat.InMemoryAttackDriverStore
	WeaponTrace  *combat.InMemoryWeaponTraceStore

	positions map[combat.EntityId]*position

	pendingHits []combat.HitEvent
}

type position struct {
	x, y float64
	yaw  float64
}

func NewSandboxWorld() *SandboxWorld {
	w := &SandboxWorld{
		Health:       combat.NewInMemoryHealthStore(),
		AttackDriver: combat.NewInMemoryAttackDriverStore(),
		WeaponTrace:  combat.NewInMemoryWeaponTraceStore(),
		positions:    make(map[combat.EntityId]*position),
	}

	w.Health.Set(playerId, &combat.HealthComponent{CurrentHealth: combat.DefaultHp})
	w.Health.Set(bossId, &combat.HealthComponent{
		CurrentHealth:   combat.DefaultHp,
		GroggyMax:       combat.DefaultGroggyMax,
		GroggyGainScale: combat.DefaultGroggyGainScale,
		GroggyDuration:  combat.DefaultGroggyDuration,
	})

	w.AttackDriver.Set(playerId, &combat.AttackDriverComponent{AttackCancelable: true})
	w.AttackDriver.Set(bossId, &combat.AttackDriverComponent{AttackCancelable: true})

	w.WeaponTrace.Set(playerId, &combat.WeaponTraceComponent{HitVictims: make(map[combat.EntityId]bool)})
	w.WeaponTrace.Set(bossId, &combat.WeaponTraceComponent{HitVictims: make(map[combat.EntityId]bool)})

	w.positions[playerId] = &position{x: -2, y: 0}
	w.positions[bossId] = &position{x: 2, y: 0}

	return w
}

// Distance returns the XZ distance between two tracked entities.
func (w *SandboxWorld) Distance(a, b combat.EntityId) float64 {
	pa, pb := w.positions[a], w.positions[b]
	if pa == nil || pb == nil {
		return 0
	}
	dx, dy := pb.x-pa.x, pb.y-pa.y
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionTo returns the unit vector from `from` toward `to`.
func (w *SandboxWorld) DirectionTo(from, to combat.EntityId) (x, y float64) {
	pa, pb := w.positions[from], w.positions[to]
	if pa == nil || pb == nil {
		return 0, 0
	}
	dx, dy := pb.x-pa.x, pb.y-pa.y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1e-6 {
		return 0, 0
	}
	return dx / dist, dy / dist
}

// BuildSensors answers combat.BuildSensorsFn for this sandbox: it
// samples the in-memory health/attack-driver components and the
// tracked positions for self/target.
func (w *SandboxWorld) BuildSensors(self, target combat.EntityId) combat.BuildSensorsInput {
	in := combat.BuildSensorsInput{Dt: tickInterval.Seconds(), TargetId: target}

	if hc, ok := w.Health.Get(self); ok {
		in.Health = combat.HealthSample{
			Present:         true,
			CurrentHealth:   hc.CurrentHealth,
			GuardActive:     hc.GuardActive,
			DodgeActive:     hc.DodgeActive,
			InvulnRemaining: hc.InvulnRemaining,
			GroggyDuration:  hc.GroggyDuration,
		}
	}
	if dc, ok := w.AttackDriver.Get(self); ok {
		in.AttackDriver = combat.AttackDriverSample{
			Present:            true,
			AttackWindowActive: dc.AttackActive,
			GuardWindowActive:  dc.GuardActive,
			DodgeWindowActive:  dc.DodgeActive,
		}
	}

	if selfPos, ok := w.positions[self]; ok {
		if targetPos, ok := w.positions[target]; ok {
			in.HasSelfTransform = true
			in.HasTargetTransform = true
			in.SelfTransform = combat.Transform{X: selfPos.x, Z: selfPos.y, YawRadians: selfPos.yaw}
			in.TargetTransform = combat.Transform{X: targetPos.x, Z: targetPos.y}
		}
	}

	return in
}

// DrainFrameHits answers combat.HitEventSource: any pending hits
// queued by RouteMove's active-trace check since the last drain
// (RouteMove runs after PostCombatUpdate, so these are the previous
// tick's hits).
func (w *SandboxWorld) DrainFrameHits() []combat.HitEvent {
	hits := w.pendingHits
	w.pendingHits = nil
	return hits
}

// RouteMove applies a RequestMove command to the tracked position and,
// while the attacker's weapon trace is active, queues a hit event
// against the other tracked entity within a fixed short range — a
// stand-in for the external weapon-trace system spec.md treats as out
// of scope.
func (w *SandboxWorld) RouteMove(self combat.EntityId, cmd combat.Command, dt time.Duration) {
	pos := w.positions[self]
	if pos == nil {
		return
	}
	if cmd.Type == combat.CmdRequestMove {
		speed := cmd.MoveSpeed
		if speed == 0 {
			speed = combat.DefaultMoveSpeed
		}
		pos.x += cmd.MoveX * speed * dt.Seconds()
		pos.y += cmd.MoveY * speed * dt.Seconds()
		if cmd.FaceMove && (cmd.MoveX != 0 || cmd.MoveY != 0) {
			pos.yaw = math.Atan2(cmd.MoveX, cmd.MoveY)
		}
	}

	trace, ok := w.WeaponTrace.Get(self)
	if !ok || !trace.Active {
		return
	}
	other := bossId
	if self == bossId {
		other = playerId
	}
	if w.Distance(self, other) > 2.0 {
		return
	}
	if trace.HitVictims[other] {
		return
	}
	trace.HitVictims[other] = true
	w.pendingHits = append(w.pendingHits, combat.HitEvent{
		AttackerOwner:    self,
		VictimOwner:      other,
		AttackInstanceId: trace.AttackInstanceId,
		Damage:           10 + rand.Float64()*10,
	})
}
