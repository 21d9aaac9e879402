package combat

import (
	"log"
	"time"
)

// IntentSource is anything that can produce an Intent for one
// fighter on demand: "something that returns an Intent given dt and
// an optional target id", per spec. Both PlayerInputSource and
// BossBrain satisfy it through thin adapters in cmd/combat-sandbox.
type IntentSource interface {
	Intent(dt time.Duration) Intent
}

// IntentSourceFunc adapts a function to IntentSource.
type IntentSourceFunc func(dt time.Duration) Intent

func (f IntentSourceFunc) Intent(dt time.Duration) Intent { return f(dt) }

// FacingProvider supplies a yaw-only camera forward basis for
// camera-relative movement. A CombatSession with no FacingProvider
// treats move intent as already world/axis-aligned.
type FacingProvider interface {
	ForwardBasis() (fx, fz float64)
}

// SessionConfig carries the session's recognized configuration
// options, all with safe defaults (see SPEC_FULL.md / spec.md §6).
type SessionConfig struct {
	PlayerCanBeHitstunned bool
	BossCanBeHitstunned   bool
	EnableLogs            bool

	RotationOffsetDeg float64

	GroggyMax       float64
	GroggyGainScale float64

	Anim AnimBlenderConfig
}

// DefaultSessionConfig returns the original's defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PlayerCanBeHitstunned: true,
		BossCanBeHitstunned:   false,
		RotationOffsetDeg:     DefaultRotationOffsetDeg,
		GroggyMax:             DefaultGroggyMax,
		GroggyGainScale:       DefaultGroggyGainScale,
		Anim:                  DefaultAnimBlenderConfig(),
	}
}

// CombatSession orchestrates one tick: it resolves entity handles,
// runs intent sources, the sensor builder, both FSMs and the applier,
// in a fixed order, owning no combat logic beyond composition.
type CombatSession struct {
	cfg SessionConfig

	player *Fighter
	boss   *Fighter

	playerFsm *ActionFsm
	bossFsm   *ActionFsm

	bus      *CombatEventBus
	resolver *CombatResolver
	applier  *CombatApplier

	playerSource IntentSource
	bossSource   IntentSource

	facing FacingProvider

	playerAnim *AnimBlender
	bossAnim   *AnimBlender

	// bossGroggyTriggered guards PostCombatUpdate's once-per-frame
	// OnGroggy emission when multiple qualifying hits land the same
	// frame (see S5).
	bossGroggyTriggered bool

	// Latest snapshots, valid from the end of Update through the end
	// of the following PostCombatUpdate.
	playerSnapshot FighterSnapshot
	bossSnapshot   FighterSnapshot

	// Latest RequestMove/PlayAnim commands, exposed for the caller to
	// route to locomotion/animation (out of scope for combat itself).
	PlayerMoveCommand Command
	BossMoveCommand   Command
	PlayerAnimCommand Command
	BossAnimCommand   Command
}

// NewCombatSession constructs a session for a player and boss entity,
// with fresh fighters, FSMs and event bus.
func NewCombatSession(cfg SessionConfig, playerId, bossId EntityId, applier *CombatApplier, playerSource, bossSource IntentSource) *CombatSession {
	player := NewFighter(playerId, TeamPlayer)
	player.CanBeHitstunned = cfg.PlayerCanBeHitstunned
	boss := NewFighter(bossId, TeamEnemy)
	boss.CanBeHitstunned = cfg.BossCanBeHitstunned

	return &CombatSession{
		cfg:          cfg,
		player:       player,
		boss:         boss,
		playerFsm:    NewActionFsm(),
		bossFsm:      NewActionFsm(),
		bus:          NewCombatEventBus(),
		resolver:     NewCombatResolver(),
		applier:      applier,
		playerSource: playerSource,
		bossSource:   bossSource,
		playerAnim:   NewAnimBlender(cfg.Anim),
		bossAnim:     NewAnimBlender(cfg.Anim),
	}
}

// SetFacingProvider wires an optional camera-relative move basis.
func (s *CombatSession) SetFacingProvider(f FacingProvider) {
	s.facing = f
}

// Player returns the player fighter for read access (e.g. HUD display).
func (s *CombatSession) Player() *Fighter { return s.player }

// Boss returns the boss fighter for read access.
func (s *CombatSession) Boss() *Fighter { return s.boss }

// Bus returns the session's event bus, for external subscribers.
func (s *CombatSession) Bus() *CombatEventBus { return s.bus }

// BuildSensorsFn supplies per-fighter sensor inputs for one tick; the
// session calls it once per fighter per Update, passing the fighter's
// own id and its target's id.
type BuildSensorsFn func(self, target EntityId) BuildSensorsInput

// Update runs one tick's worth of intent gathering, sensor building,
// FSM evaluation and move/trace command routing. buildSensors is
// consulted once per fighter. If either fighter is missing (nil
// session, dead construction) the tick is inert.
func (s *CombatSession) Update(dt time.Duration, buildSensors BuildSensorsFn) {
	if s.player == nil || s.boss == nil {
		if s.cfg.EnableLogs {
			log.Printf("[COMBAT] Update: missing player or boss, skipping tick")
		}
		return
	}

	dtSec := dt.Seconds()

	playerIntent := s.playerSource.Intent(dt)
	bossIntent := s.bossSource.Intent(dt)

	playerSensorsIn := buildSensors(s.player.Id, s.boss.Id)
	bossSensorsIn := buildSensors(s.boss.Id, s.player.Id)
	playerSensors := s.player.BuildSensors(playerSensorsIn)
	bossSensors := s.boss.BuildSensors(bossSensorsIn)

	playerEvents := s.bus.PeekDeferred(s.player.Id)
	playerEventsCopy := append([]CombatEvent(nil), playerEvents...)
	s.bus.ClearDeferred(s.player.Id)

	bossEvents := s.bus.PeekDeferred(s.boss.Id)
	bossEventsCopy := append([]CombatEvent(nil), bossEvents...)
	s.bus.ClearDeferred(s.boss.Id)

	playerOut := s.playerFsm.Update(s.applyFacing(playerIntent), playerSensors, playerEventsCopy, dtSec)
	bossOut := s.bossFsm.Update(bossIntent, bossSensors, bossEventsCopy, dtSec)

	s.player.State, s.player.Flags = playerOut.State, playerOut.Flags
	s.boss.State, s.boss.Flags = bossOut.State, bossOut.Flags

	s.playerSnapshot = s.player.Snapshot(playerSensors.TargetInFront)
	s.bossSnapshot = s.boss.Snapshot(bossSensors.TargetInFront)

	s.routeCommands(playerOut.Commands, s.player.Id, &s.PlayerMoveCommand)
	s.routeCommands(bossOut.Commands, s.boss.Id, &s.BossMoveCommand)

	s.PlayerAnimCommand = s.playerAnim.Update(s.player.State, playerSensors.MoveSpeed*moveMagnitude(playerIntent), dtSec)
	s.BossAnimCommand = s.bossAnim.Update(s.boss.State, bossSensors.MoveSpeed*moveMagnitude(bossIntent), dtSec)
}

func moveMagnitude(i Intent) float64 {
	if i.HasMove() {
		return 1
	}
	return 0
}

// applyFacing transforms a move intent's axes by the facing
// provider's forward basis, if one is wired; otherwise intent passes
// through unchanged (axis-aligned movement).
func (s *CombatSession) applyFacing(intent Intent) Intent {
	if s.facing == nil {
		return intent
	}
	fx, fz := s.facing.ForwardBasis()
	rx, ry := fx*intent.MoveX-fz*intent.MoveY, fz*intent.MoveX+fx*intent.MoveY
	intent.MoveX, intent.MoveY = rx, ry
	return intent
}

// routeCommands applies EnableTrace/DisableTrace immediately
// (skipDamage=true, matching the FSM's trace commands never carrying
// damage) and stores the RequestMove command for the caller to route
// to locomotion.
func (s *CombatSession) routeCommands(cmds []Command, owner EntityId, moveOut *Command) {
	fighters := map[EntityId]*Fighter{s.player.Id: s.player, s.boss.Id: s.boss}
	var traceCmds []Command
	for _, c := range cmds {
		switch c.Type {
		case CmdRequestMove:
			c.Target = owner
			*moveOut = c
		case CmdEnableTrace, CmdDisableTrace:
			c.Target = owner
			traceCmds = append(traceCmds, c)
		}
	}
	if len(traceCmds) > 0 {
		s.applier.Apply(traceCmds, fighters, s.bus, true)
	}
}

// HitEventSource supplies the current frame's hit list from the
// external weapon-trace system.
type HitEventSource func() []HitEvent

// PostCombatUpdate ingests this frame's hits, sorts and dedupes them,
// resolves each against the snapshots taken in Update, applies
// immediate commands, pushes deferred events, and runs boss groggy
// accumulation.
func (s *CombatSession) PostCombatUpdate(dt time.Duration, hitSource HitEventSource) {
	s.bus.ClearFrame()
	s.bus.SetFrameHits(hitSource())
	s.bossGroggyTriggered = false
	for _, id := range []EntityId{s.player.Id, s.boss.Id} {
		if hc, ok := s.applier.Health.Get(id); ok {
			hc.DodgeAvoidedThisFrame = false
		}
	}

	hits := SortAndDedupHits(s.bus.Hits())
	fighters := map[EntityId]*Fighter{s.player.Id: s.player, s.boss.Id: s.boss}

	lookup := func(id EntityId) (FighterSnapshot, bool) {
		switch id {
		case s.player.Id:
			return s.playerSnapshot, true
		case s.boss.Id:
			return s.bossSnapshot, true
		default:
			return FighterSnapshot{}, false
		}
	}

	for _, hit := range hits {
		attacker, ok := lookup(hit.AttackerOwner)
		if !ok {
			continue
		}
		victim, ok := lookup(hit.VictimOwner)
		if !ok {
			continue
		}

		out := s.resolver.ResolveOne(hit, attacker, victim)
		s.mirrorHitInfo(hit, out)
		s.applier.Apply(out.Commands, fighters, s.bus, false)
		for _, ev := range out.Deferred {
			s.bus.PushDeferred(ev)
		}

		s.accumulateGroggy(hit, out, fighters)
	}
}

// mirrorHitInfo copies the hit outcome into the victim's external
// health per-frame hit fields, matching
// C_CombatSessionComponent::UpdateHealthHitInfo.
func (s *CombatSession) mirrorHitInfo(hit HitEvent, out ResolveOutput) {
	hc, ok := s.applier.Health.Get(hit.VictimOwner)
	if !ok {
		return
	}
	if len(out.Commands) == 0 && len(out.Deferred) == 0 {
		// Invuln-absorbed or victim-mismatch no-op.
		hc.DodgeAvoidedThisFrame = true
		return
	}
	hc.LastHitDamage = hit.Damage
	hc.LastHitAttacker = hit.AttackerOwner
	hc.LastHitPart = hit.Part
}

// accumulateGroggy adds to the boss's groggy meter on qualifying
// player→boss OnHit outcomes, capping at the boss health component's
// GroggyMax (cfg.GroggyMax when that is unset) and emitting a
// single OnGroggy event plus ForceCancelAttack+DisableTrace the frame
// the cap is first reached.
func (s *CombatSession) accumulateGroggy(hit HitEvent, out ResolveOutput, fighters map[EntityId]*Fighter) {
	if hit.VictimOwner != s.boss.Id || hit.AttackerOwner != s.player.Id {
		return
	}
	if !containsOnHit(out.Deferred) {
		return
	}
	hc, ok := s.applier.Health.Get(s.boss.Id)
	if !ok {
		return
	}
	if hc.GroggyMax <= 0 {
		hc.GroggyMax = s.cfg.GroggyMax
	}
	scale := hc.GroggyGainScale
	if scale == 0 {
		scale = s.cfg.GroggyGainScale
	}

	hc.Groggy += hit.Damage * scale
	if hc.Groggy < hc.GroggyMax {
		return
	}
	hc.Groggy = hc.GroggyMax

	if s.bossGroggyTriggered {
		return
	}
	hc.Groggy = 0
	s.bossGroggyTriggered = true

	s.applier.Apply([]Command{
		{Type: CmdForceCancelAttack, Target: s.boss.Id},
		{Type: CmdDisableTrace, Target: s.boss.Id},
	}, fighters, s.bus, true)

	s.bus.PushDeferred(CombatEvent{
		Type:             OnGroggy,
		Subject:          s.boss.Id,
		Other:            hit.AttackerOwner,
		AttackInstanceId: hit.AttackInstanceId,
	})
}

func containsOnHit(events []CombatEvent) bool {
	for _, e := range events {
		if e.Type == OnHit {
			return true
		}
	}
	return false
}

// ForceReset returns both fighters and FSMs to their initial state
// and clears the event bus. Always safe to call; calling it twice is
// equivalent to calling it once.
func (s *CombatSession) ForceReset() {
	s.player.Hp, s.player.Stamina = DefaultHp, DefaultStamina
	s.player.State, s.player.Flags = StateIdle, ActionFlags{}
	s.boss.Hp, s.boss.Stamina = DefaultHp, DefaultStamina
	s.boss.State, s.boss.Flags = StateIdle, ActionFlags{}

	s.playerFsm.Reset()
	s.bossFsm.Reset()
	s.bus.ClearAll()

	s.bossGroggyTriggered = false
	s.playerSnapshot = FighterSnapshot{}
	s.bossSnapshot = FighterSnapshot{}
	s.PlayerMoveCommand = Command{}
	s.BossMoveCommand = Command{}
}
