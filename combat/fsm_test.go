package combat

import "testing"

func TestActionFsmDeadIsTerminal(t *testing.T) {
	fsm := NewActionFsm()
	out := fsm.Update(Intent{}, Sensors{Hp: 0}, nil, 0.05)
	if out.State != StateDead {
		t.Fatalf("expected Dead, got %s", out.State)
	}
	if out.Flags.CanBeInterrupted {
		t.Errorf("Dead fighter must not be interruptible")
	}

	// No further transitions, even with attack-worthy intent.
	out = fsm.Update(Intent{AttackPressed: true}, Sensors{Hp: 0, Stamina: 100}, nil, 0.05)
	if out.State != StateDead {
		t.Fatalf("expected Dead to remain terminal, got %s", out.State)
	}
}

func TestActionFsmGroggyEntersAndExits(t *testing.T) {
	fsm := NewActionFsm()
	out := fsm.Update(Intent{}, Sensors{Hp: 100, GroggyDuration: 1.0}, []CombatEvent{{Type: OnGroggy}}, 0.1)
	if out.State != StateGroggy {
		t.Fatalf("expected Groggy, got %s", out.State)
	}
	if out.Flags.CanBeInterrupted {
		t.Errorf("Groggy must not be interruptible")
	}

	// Still within duration.
	out = fsm.Update(Intent{}, Sensors{Hp: 100, GroggyDuration: 1.0}, nil, 0.5)
	if out.State != StateGroggy {
		t.Fatalf("expected to remain Groggy, got %s", out.State)
	}

	// Duration elapsed.
	out = fsm.Update(Intent{}, Sensors{Hp: 100, GroggyDuration: 1.0}, nil, 0.5)
	if out.State != StateIdle {
		t.Fatalf("expected Idle after groggyDuration elapsed, got %s", out.State)
	}
}

func TestActionFsmHitstunRequiresCanBeHitstunned(t *testing.T) {
	fsm := NewActionFsm()
	out := fsm.Update(Intent{}, Sensors{Hp: 100, CanBeHitstunned: false}, []CombatEvent{{Type: OnHit}}, 0.1)
	if out.State == StateHitstun {
		t.Fatalf("fighter with canBeHitstunned=false must not enter Hitstun")
	}

	fsm2 := NewActionFsm()
	out2 := fsm2.Update(Intent{}, Sensors{Hp: 100, CanBeHitstunned: true}, []CombatEvent{{Type: OnHit}}, 0.1)
	if out2.State != StateHitstun {
		t.Fatalf("expected Hitstun, got %s", out2.State)
	}
	if out2.Flags.CanBeInterrupted {
		t.Errorf("Hitstun must not be interruptible")
	}

	out2 = fsm2.Update(Intent{}, Sensors{Hp: 100, CanBeHitstunned: true}, nil, 0.4)
	if out2.State != StateIdle {
		t.Fatalf("expected Idle after 0.4s hitstun, got %s", out2.State)
	}
}

func TestActionFsmDodgeGatedByStamina(t *testing.T) {
	fsm := NewActionFsm()
	out := fsm.Update(Intent{DodgePressed: true}, Sensors{Hp: 100, Stamina: 5}, nil, 0.05)
	if out.State == StateDodge {
		t.Fatalf("dodge with insufficient stamina must be dropped silently")
	}

	fsm2 := NewActionFsm()
	out2 := fsm2.Update(Intent{DodgePressed: true}, Sensors{Hp: 100, Stamina: 10}, nil, 0.05)
	if out2.State != StateDodge {
		t.Fatalf("expected Dodge with stamina>=10, got %s", out2.State)
	}
	if out2.Flags.CanBeInterrupted {
		t.Errorf("Dodge must not be interruptible")
	}
}

func TestActionFsmAttackCommitAndWindowExit(t *testing.T) {
	fsm := NewActionFsm()

	out := fsm.Update(Intent{AttackPressed: true}, Sensors{Hp: 100, Stamina: 15}, nil, 0.05)
	if out.State != StateAttack {
		t.Fatalf("expected Attack, got %s", out.State)
	}

	// Window opens: becomes committed, stays in Attack.
	out = fsm.Update(Intent{}, Sensors{Hp: 100, AttackWindowActive: true}, nil, 0.001)
	if out.State != StateAttack {
		t.Fatalf("expected to remain Attack once window opens, got %s", out.State)
	}
	if !out.Flags.HitActive {
		t.Errorf("hitActive should mirror attackWindowActive")
	}

	// Window closes; grace period (measured from time already spent in
	// Attack) not yet elapsed.
	out = fsm.Update(Intent{}, Sensors{Hp: 100, AttackWindowActive: false}, nil, 0.001)
	if out.State != StateAttack {
		t.Fatalf("expected to remain Attack within grace period, got %s", out.State)
	}

	// Grace period elapsed.
	out = fsm.Update(Intent{}, Sensors{Hp: 100, AttackWindowActive: false}, nil, 0.1)
	if out.State != StateIdle {
		t.Fatalf("expected Idle after committed attack window closes past grace, got %s", out.State)
	}
}

func TestActionFsmAttackUncommittedYieldsToDodge(t *testing.T) {
	fsm := NewActionFsm()
	fsm.Update(Intent{AttackPressed: true}, Sensors{Hp: 100, Stamina: 15}, nil, 0.05)

	out := fsm.Update(Intent{DodgePressed: true}, Sensors{Hp: 100, Stamina: 10, AttackWindowActive: false}, nil, 0.02)
	if out.State != StateDodge {
		t.Fatalf("expected uncommitted attack to yield to dodge, got %s", out.State)
	}
}

func TestActionFsmTraceEdgeCommands(t *testing.T) {
	fsm := NewActionFsm()
	out := fsm.Update(Intent{}, Sensors{Hp: 100, AttackWindowActive: true}, nil, 0.05)
	if !hasCommand(out.Commands, CmdEnableTrace) {
		t.Fatalf("expected EnableTrace on rising edge, got %v", out.Commands)
	}

	out = fsm.Update(Intent{}, Sensors{Hp: 100, AttackWindowActive: false}, nil, 0.05)
	if !hasCommand(out.Commands, CmdDisableTrace) {
		t.Fatalf("expected DisableTrace on falling edge, got %v", out.Commands)
	}
}

func TestActionFsmResetClearsLatches(t *testing.T) {
	fsm := NewActionFsm()
	fsm.Update(Intent{AttackPressed: true}, Sensors{Hp: 100, Stamina: 15, AttackWindowActive: true}, nil, 0.05)
	fsm.Reset()

	if fsm.State() != StateIdle {
		t.Fatalf("expected Idle after Reset, got %s", fsm.State())
	}
	if fsm.attackCommitted || fsm.prevHitActive || fsm.stateTime != 0 {
		t.Fatalf("Reset must clear all latched state")
	}
}

func hasCommand(cmds []Command, t CommandType) bool {
	for _, c := range cmds {
		if c.Type == t {
			return true
		}
	}
	return false
}
