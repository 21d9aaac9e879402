package combat

import "testing"

func newApplierFixture() (*CombatApplier, map[EntityId]*Fighter, *CombatEventBus) {
	health := NewInMemoryHealthStore()
	driver := NewInMemoryAttackDriverStore()
	trace := NewInMemoryWeaponTraceStore()

	health.Set(1, &HealthComponent{CurrentHealth: 100, InvulnDuration: 0.5})
	driver.Set(1, &AttackDriverComponent{AttackCancelable: true})
	trace.Set(1, &WeaponTraceComponent{HitVictims: map[EntityId]bool{}})

	fighters := map[EntityId]*Fighter{
		1: {Id: 1, Team: TeamEnemy, Hp: 100, Stamina: 25},
	}

	return NewCombatApplier(health, driver, trace), fighters, NewCombatEventBus()
}

func TestApplierApplyDamageClampsAtZeroAndFiresDeathOnce(t *testing.T) {
	applier, fighters, bus := newApplierFixture()

	applier.Apply([]Command{{Type: CmdApplyDamage, Target: 1, Amount: 150}}, fighters, bus, false)

	if fighters[1].Hp != 0 {
		t.Fatalf("expected hp clamped to 0, got %v", fighters[1].Hp)
	}
	hc, _ := applier.Health.Get(1)
	if hc.CurrentHealth != 0 {
		t.Fatalf("expected external health component clamped to 0, got %v", hc.CurrentHealth)
	}
	if !hasDeferred(bus.PeekDeferred(1), OnDeath, 1) {
		t.Fatalf("expected OnDeath deferred, got %+v", bus.PeekDeferred(1))
	}

	// Applying more damage to an already-dead fighter must not push a
	// second OnDeath.
	bus.ClearDeferred(1)
	applier.Apply([]Command{{Type: CmdApplyDamage, Target: 1, Amount: 10}}, fighters, bus, false)
	if hasDeferred(bus.PeekDeferred(1), OnDeath, 1) {
		t.Fatalf("OnDeath must fire at most once, got %+v", bus.PeekDeferred(1))
	}
}

func TestApplierApplyDamageResetsInvuln(t *testing.T) {
	applier, fighters, bus := newApplierFixture()

	applier.Apply([]Command{{Type: CmdApplyDamage, Target: 1, Amount: 10}}, fighters, bus, false)

	hc, _ := applier.Health.Get(1)
	if hc.InvulnRemaining != hc.InvulnDuration {
		t.Fatalf("expected invuln window refreshed to %v, got %v", hc.InvulnDuration, hc.InvulnRemaining)
	}
}

func TestApplierSkipDamageDropsApplyDamageOnly(t *testing.T) {
	applier, fighters, bus := newApplierFixture()

	applier.Apply([]Command{
		{Type: CmdApplyDamage, Target: 1, Amount: 10},
		{Type: CmdConsumeStamina, Target: 1, Amount: 5},
	}, fighters, bus, true)

	if fighters[1].Hp != 100 {
		t.Fatalf("expected ApplyDamage to be skipped, got hp=%v", fighters[1].Hp)
	}
	if fighters[1].Stamina != 20 {
		t.Fatalf("expected ConsumeStamina to still apply, got stamina=%v", fighters[1].Stamina)
	}
}

func TestApplierConsumeStaminaNeverGoesNegative(t *testing.T) {
	applier, fighters, bus := newApplierFixture()

	applier.Apply([]Command{{Type: CmdConsumeStamina, Target: 1, Amount: 1000}}, fighters, bus, false)

	if fighters[1].Stamina != 0 {
		t.Fatalf("expected stamina clamped at 0, got %v", fighters[1].Stamina)
	}
}

func TestApplierForceCancelAttackRespectsCancelable(t *testing.T) {
	applier, fighters, bus := newApplierFixture()

	applier.Apply([]Command{{Type: CmdForceCancelAttack, Target: 1}}, fighters, bus, false)

	driver, _ := applier.AttackDriver.Get(1)
	if !driver.CancelAttackRequested {
		t.Fatalf("expected CancelAttackRequested set on a cancelable driver")
	}
	trace, _ := applier.WeaponTrace.Get(1)
	if trace.Active {
		t.Fatalf("expected trace disabled alongside the cancel")
	}
}

func TestApplierForceCancelAttackNoOpWhenNotCancelable(t *testing.T) {
	applier, fighters, bus := newApplierFixture()
	driver, _ := applier.AttackDriver.Get(1)
	driver.AttackCancelable = false

	applier.Apply([]Command{{Type: CmdForceCancelAttack, Target: 1}}, fighters, bus, false)

	if driver.CancelAttackRequested {
		t.Fatalf("must not request cancel on a non-cancelable driver")
	}
}

func TestApplierEnableTraceIncrementsInstanceAndClearsVictims(t *testing.T) {
	applier, _, _ := newApplierFixture()
	trace, _ := applier.WeaponTrace.Get(1)
	trace.HitVictims[42] = true
	startId := trace.AttackInstanceId

	applier.enableTrace(1)

	if trace.AttackInstanceId != startId+1 {
		t.Fatalf("expected attackInstanceId to increase monotonically, got %v -> %v", startId, trace.AttackInstanceId)
	}
	if !trace.Active {
		t.Fatalf("expected trace marked active")
	}
	if len(trace.HitVictims) != 0 {
		t.Fatalf("expected hit-victim set cleared on (re)enable, got %v", trace.HitVictims)
	}
}

func TestApplierEnableTraceIsIdempotentWhileAlreadyActive(t *testing.T) {
	applier, _, _ := newApplierFixture()
	trace, _ := applier.WeaponTrace.Get(1)

	applier.enableTrace(1)
	firstId := trace.AttackInstanceId
	trace.HitVictims[7] = true

	applier.enableTrace(1)
	if trace.AttackInstanceId != firstId {
		t.Fatalf("re-enabling an already-active trace must not bump the instance id, got %v -> %v", firstId, trace.AttackInstanceId)
	}
	if len(trace.HitVictims) != 1 {
		t.Fatalf("re-enabling an already-active trace must not clear hit victims")
	}
}

func TestApplierResolveTraceEntityPrefersOwnTrace(t *testing.T) {
	applier, _, _ := newApplierFixture()
	if got := applier.ResolveTraceEntity(1); got != 1 {
		t.Fatalf("expected entity 1's own trace to resolve to itself, got %v", got)
	}
}

func TestApplierResolveTraceEntityFollowsDriverGuid(t *testing.T) {
	health := NewInMemoryHealthStore()
	driver := NewInMemoryAttackDriverStore()
	trace := NewInMemoryWeaponTraceStore()

	driver.Set(1, &AttackDriverComponent{TraceGuid: 5})
	trace.Set(5, &WeaponTraceComponent{HitVictims: map[EntityId]bool{}})

	applier := NewCombatApplier(health, driver, trace)
	if got := applier.ResolveTraceEntity(1); got != 5 {
		t.Fatalf("expected resolution to follow TraceGuid to 5, got %v", got)
	}
}

func TestApplierResolveTraceEntityFallsBackToOwner(t *testing.T) {
	health := NewInMemoryHealthStore()
	driver := NewInMemoryAttackDriverStore()
	trace := NewInMemoryWeaponTraceStore()

	driver.Set(1, &AttackDriverComponent{})

	applier := NewCombatApplier(health, driver, trace)
	if got := applier.ResolveTraceEntity(1); got != 1 {
		t.Fatalf("expected fallback to owner when no trace or guid, got %v", got)
	}
}

func TestApplierEmptyBatchIsNoOp(t *testing.T) {
	applier, fighters, bus := newApplierFixture()
	before := *fighters[1]

	applier.Apply(nil, fighters, bus, false)

	if *fighters[1] != before {
		t.Fatalf("expected an empty command batch to leave the fighter untouched")
	}
	if len(bus.PeekDeferred(1)) != 0 {
		t.Fatalf("expected no deferred events from an empty batch")
	}
}
