package combat

import "testing"

func TestBuildSensorsFighterDefaultsWithNoComponents(t *testing.T) {
	f := NewFighter(1, TeamPlayer)
	f.Hp = 42
	f.Stamina = 7

	s := f.BuildSensors(BuildSensorsInput{Dt: 0.016})

	if s.Hp != 42 || s.Stamina != 7 {
		t.Fatalf("expected sensors to mirror fighter defaults when no components present, got %+v", s)
	}
	if s.AttackWindowActive || s.GuardWindowActive || s.DodgeWindowActive {
		t.Fatalf("expected all windows closed with no components, got %+v", s)
	}
}

func TestBuildSensorsHealthOverridesHpAndWindows(t *testing.T) {
	f := NewFighter(1, TeamPlayer)
	f.Hp = 100

	s := f.BuildSensors(BuildSensorsInput{
		Health: HealthSample{Present: true, CurrentHealth: 55, GuardActive: true, InvulnRemaining: 0.2},
	})

	if s.Hp != 55 {
		t.Fatalf("expected health component to override fighter hp, got %v", s.Hp)
	}
	if !s.GuardWindowActive {
		t.Fatalf("expected health component's GuardActive to set GuardWindowActive")
	}
	if !s.InvulnActive {
		t.Fatalf("expected positive InvulnRemaining to set InvulnActive")
	}
}

func TestBuildSensorsAttackDriverOrsInWindows(t *testing.T) {
	f := NewFighter(1, TeamPlayer)

	s := f.BuildSensors(BuildSensorsInput{
		Health:       HealthSample{Present: true, GuardActive: true},
		AttackDriver: AttackDriverSample{Present: true, AttackWindowActive: true, DodgeWindowActive: true},
	})

	if !s.GuardWindowActive {
		t.Fatalf("expected health's GuardActive to survive the OR-in pass")
	}
	if !s.AttackWindowActive || !s.DodgeWindowActive {
		t.Fatalf("expected attack driver windows ORed in, got %+v", s)
	}
}

func TestBuildSensorsTargetInFrontAndDistance(t *testing.T) {
	f := NewFighter(1, TeamPlayer)

	s := f.BuildSensors(BuildSensorsInput{
		HasSelfTransform:  true,
		HasTargetTransform: true,
		SelfTransform:      Transform{X: 0, Y: 0, Z: 0, YawRadians: 0},
		TargetTransform:    Transform{X: 0, Y: 0, Z: 5},
	})

	if s.TargetDistance != 5 {
		t.Fatalf("expected target distance 5, got %v", s.TargetDistance)
	}
	if !s.TargetInFront {
		t.Fatalf("expected target directly ahead (yaw 0, +Z forward) to be in front")
	}
	if !f.LastTargetInFront {
		t.Fatalf("expected BuildSensors to latch LastTargetInFront for next frame")
	}
}

func TestBuildSensorsTargetBehindIsNotInFront(t *testing.T) {
	f := NewFighter(1, TeamPlayer)

	s := f.BuildSensors(BuildSensorsInput{
		HasSelfTransform:  true,
		HasTargetTransform: true,
		SelfTransform:      Transform{YawRadians: 0},
		TargetTransform:    Transform{Z: -5},
	})

	if s.TargetInFront {
		t.Fatalf("expected a target behind the fighter to not be in front")
	}
	if f.LastTargetInFront {
		t.Fatalf("expected the latch to record false for a target behind")
	}
}

func TestBuildSensorsLatchesTargetInFrontWhenTransformAbsent(t *testing.T) {
	f := NewFighter(1, TeamPlayer)

	// First frame: transform present, target in front; latches true.
	f.BuildSensors(BuildSensorsInput{
		HasSelfTransform:  true,
		HasTargetTransform: true,
		SelfTransform:      Transform{YawRadians: 0},
		TargetTransform:    Transform{Z: 5},
	})
	if !f.LastTargetInFront {
		t.Fatalf("expected latch set true on the first frame")
	}

	// Second frame: no transform sample this tick (e.g. target out of
	// range); sensors should fall back to the latched value.
	s := f.BuildSensors(BuildSensorsInput{})
	if !s.TargetInFront {
		t.Fatalf("expected TargetInFront to fall back to the latched value when transform is absent")
	}
}

func TestFighterSnapshotCopiesResolverRelevantFields(t *testing.T) {
	f := NewFighter(1, TeamEnemy)
	f.Hp = 60
	f.Stamina = 30
	f.State = StateGuard
	f.Flags = ActionFlags{GuardActive: true}
	f.CanBeHitstunned = true

	snap := f.Snapshot(true)

	if snap.Id != 1 || snap.Team != TeamEnemy || snap.Hp != 60 || snap.Stamina != 30 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.State != StateGuard || !snap.Flags.GuardActive || !snap.CanBeHitstunned || !snap.TargetInFront {
		t.Fatalf("snapshot did not faithfully copy fsm-derived fields: %+v", snap)
	}
}

func TestFighterAliveTracksHp(t *testing.T) {
	f := NewFighter(1, TeamPlayer)
	if !f.Alive() {
		t.Fatalf("a fresh fighter should be alive")
	}
	f.Hp = 0
	if f.Alive() {
		t.Fatalf("a fighter at 0 hp must not be alive")
	}
}
