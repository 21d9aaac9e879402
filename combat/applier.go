package combat

// CombatApplier executes a batch of Commands against the fighter map
// and the external component stores, in order. It performs every
// command-driven mutation of external state; the session itself writes
// only the health component's per-frame hit info and groggy meter.
type CombatApplier struct {
	Health       HealthStore
	AttackDriver AttackDriverStore
	WeaponTrace  WeaponTraceStore
}

// NewCombatApplier wires an applier to the three external stores it
// mutates.
func NewCombatApplier(health HealthStore, driver AttackDriverStore, trace WeaponTraceStore) *CombatApplier {
	return &CombatApplier{Health: health, AttackDriver: driver, WeaponTrace: trace}
}

// Apply executes cmds in order against fighters (by id) and the
// external stores. When skipDamage is true, ApplyDamage commands are
// dropped before execution; this lets the session apply FSM-emitted
// trace commands without accidentally applying damage from the same
// batch. bus receives any OnDeath event ApplyDamage triggers.
func (a *CombatApplier) Apply(cmds []Command, fighters map[EntityId]*Fighter, bus *CombatEventBus, skipDamage bool) {
	for _, cmd := range cmds {
		if skipDamage && cmd.Type == CmdApplyDamage {
			continue
		}
		a.applyOne(cmd, fighters, bus)
	}
}

func (a *CombatApplier) applyOne(cmd Command, fighters map[EntityId]*Fighter, bus *CombatEventBus) {
	switch cmd.Type {
	case CmdApplyDamage:
		a.applyDamage(cmd, fighters, bus)
	case CmdConsumeStamina:
		a.consumeStamina(cmd, fighters)
	case CmdForceCancelAttack:
		a.forceCancelAttack(cmd)
	case CmdDisableTrace:
		a.setTraceActive(cmd.Target, false)
	case CmdEnableTrace:
		a.enableTrace(cmd.Target)
	case CmdEnterHitstun:
		// Placeholder: hitstun is enforced purely by the FSM's
		// internal timer (see DESIGN.md Open Questions). No external
		// state is recorded today.
	case CmdPlayAnim, CmdRequestMove:
		// Not handled by the applier; routed by the session directly.
	}
}

func (a *CombatApplier) applyDamage(cmd Command, fighters map[EntityId]*Fighter, bus *CombatEventBus) {
	f, ok := fighters[cmd.Target]
	if !ok {
		return
	}
	wasAlive := f.Alive()
	f.Hp -= cmd.Amount

	if hc, ok := a.Health.Get(cmd.Target); ok {
		hc.CurrentHealth -= cmd.Amount
		if hc.CurrentHealth <= 0 {
			hc.CurrentHealth = 0
		}
		if hc.InvulnDuration > 0 {
			hc.InvulnRemaining = hc.InvulnDuration
		}
	}

	if f.Hp <= 0 {
		f.Hp = 0
		if wasAlive {
			bus.PushDeferred(CombatEvent{Type: OnDeath, Subject: cmd.Target})
		}
	}
}

func (a *CombatApplier) consumeStamina(cmd Command, fighters map[EntityId]*Fighter) {
	f, ok := fighters[cmd.Target]
	if !ok {
		return
	}
	f.Stamina -= cmd.Amount
	if f.Stamina < 0 {
		f.Stamina = 0
	}
}

func (a *CombatApplier) forceCancelAttack(cmd Command) {
	if driver, ok := a.AttackDriver.Get(cmd.Target); ok {
		if driver.AttackCancelable {
			driver.CancelAttackRequested = true
		}
	}
	a.setTraceActive(cmd.Target, false)
}

func (a *CombatApplier) setTraceActive(owner EntityId, active bool) {
	traceId := a.ResolveTraceEntity(owner)
	trace, ok := a.WeaponTrace.Get(traceId)
	if !ok {
		return
	}
	trace.Active = active
}

func (a *CombatApplier) enableTrace(owner EntityId) {
	traceId := a.ResolveTraceEntity(owner)
	trace, ok := a.WeaponTrace.Get(traceId)
	if !ok {
		return
	}
	if trace.Active {
		return
	}
	trace.AttackInstanceId++
	trace.Active = true
	trace.HitVictims = make(map[EntityId]bool)
	trace.LastAttackInstanceId = trace.AttackInstanceId
}

// ResolveTraceEntity resolves owner to the weapon trace entity that
// should be affected by a trace command: if owner itself carries a
// WeaponTraceComponent, that is the target; otherwise it follows
// owner's AttackDriverComponent.TraceGuid, falling back to owner
// itself if the driver has no guid. This is the only cross-entity
// indirection in the applier.
func (a *CombatApplier) ResolveTraceEntity(owner EntityId) EntityId {
	if _, ok := a.WeaponTrace.Get(owner); ok {
		return owner
	}
	if driver, ok := a.AttackDriver.Get(owner); ok && driver.TraceGuid.Valid() {
		return driver.TraceGuid
	}
	return owner
}
