package combat

// CombatResolver is a stateless pure function from (hit event,
// attacker snapshot, victim snapshot) to (immediate commands,
// deferred events). It never reads or writes external state; the
// applier does that.
type CombatResolver struct{}

// NewCombatResolver returns a resolver. It carries no state; the zero
// value is equally usable.
func NewCombatResolver() *CombatResolver {
	return &CombatResolver{}
}

// ResolveOne evaluates the combat rules for a single hit against the
// attacker/victim snapshots taken this frame, in priority order: first
// match wins, each path returns.
func (r *CombatResolver) ResolveOne(hit HitEvent, attacker, victim FighterSnapshot) ResolveOutput {
	// 1. Defensive: hit doesn't actually target this victim snapshot.
	if hit.VictimOwner != victim.Id {
		return ResolveOutput{}
	}

	// 2. Invuln absorbs the hit outright.
	if victim.Flags.InvulnActive {
		return ResolveOutput{}
	}

	// 3. Parry.
	if victim.Flags.ParryWindowActive && victim.TargetInFront {
		out := ResolveOutput{
			Deferred: []CombatEvent{
				{Type: OnParried, Subject: victim.Id, Other: attacker.Id, AttackInstanceId: hit.AttackInstanceId},
			},
			Commands: []Command{
				{Type: CmdDisableTrace, Target: attacker.Id},
			},
		}
		if attacker.Flags.CanBeInterrupted {
			out.Commands = append(out.Commands, Command{Type: CmdForceCancelAttack, Target: attacker.Id})
		}
		return out
	}

	// 4. Guard (including guard-break).
	if victim.Flags.GuardActive && victim.TargetInFront {
		return r.resolveGuard(hit, attacker, victim)
	}

	// 5. Default: clean hit.
	return r.resolveCleanHit(hit, attacker, victim)
}

func (r *CombatResolver) resolveGuard(hit HitEvent, attacker, victim FighterSnapshot) ResolveOutput {
	cost := hit.Damage
	if cost < 0 {
		cost = 0
	}

	var out ResolveOutput
	if cost > 0 {
		out.Commands = append(out.Commands, Command{Type: CmdConsumeStamina, Target: victim.Id, Amount: cost})
	}

	if victim.Stamina-cost <= 0 {
		out.Deferred = append(out.Deferred, CombatEvent{
			Type: OnGuardBreak, Subject: victim.Id, Other: attacker.Id, AttackInstanceId: hit.AttackInstanceId,
		})
		out.Commands = append(out.Commands, Command{Type: CmdApplyDamage, Target: victim.Id, Amount: hit.Damage})
		if victim.Flags.CanBeInterrupted && victim.CanBeHitstunned {
			out.Commands = append(out.Commands,
				Command{Type: CmdForceCancelAttack, Target: victim.Id},
				Command{Type: CmdDisableTrace, Target: victim.Id},
			)
		}
		out.Deferred = append(out.Deferred, CombatEvent{
			Type: OnHit, Subject: victim.Id, Other: attacker.Id, AttackInstanceId: hit.AttackInstanceId, Value: hit.Damage,
		})
		return out
	}

	out.Deferred = append(out.Deferred, CombatEvent{
		Type: OnGuarded, Subject: victim.Id, Other: attacker.Id, AttackInstanceId: hit.AttackInstanceId,
	})
	return out
}

func (r *CombatResolver) resolveCleanHit(hit HitEvent, attacker, victim FighterSnapshot) ResolveOutput {
	out := ResolveOutput{
		Commands: []Command{
			{Type: CmdApplyDamage, Target: victim.Id, Amount: hit.Damage},
		},
	}
	if victim.Flags.CanBeInterrupted && victim.CanBeHitstunned {
		out.Commands = append(out.Commands,
			Command{Type: CmdForceCancelAttack, Target: victim.Id},
			Command{Type: CmdDisableTrace, Target: victim.Id},
		)
	}
	out.Deferred = append(out.Deferred, CombatEvent{
		Type: OnHit, Subject: victim.Id, Other: attacker.Id, AttackInstanceId: hit.AttackInstanceId, Value: hit.Damage,
	})
	return out
}

// ResolveBatch runs ResolveOne over a slice of already sorted/deduped
// hits, resolving each against the snapshot lookup function, and
// concatenates the results in hit order.
func (r *CombatResolver) ResolveBatch(hits []HitEvent, lookup func(EntityId) (FighterSnapshot, bool)) ResolveOutput {
	var out ResolveOutput
	for _, h := range hits {
		attacker, ok := lookup(h.AttackerOwner)
		if !ok {
			continue
		}
		victim, ok := lookup(h.VictimOwner)
		if !ok {
			continue
		}
		one := r.ResolveOne(h, attacker, victim)
		out.Commands = append(out.Commands, one.Commands...)
		out.Deferred = append(out.Deferred, one.Deferred...)
	}
	return out
}
