package main

import "github.com/gdamore/tcell/v2"

// KeyState tracks held/edge keyboard state and implements
// combat.PlayerInputBindings over tcell key events: WASD for
// movement, space to attack, ctrl-g to guard, 'k' to dodge, 'l' for
// lock-on.
type KeyState struct {
	up, down, left, right bool
	attack                bool
	guard                 bool
	dodgePressed          bool
	lockOnPressed         bool
}

func NewKeyState() *KeyState {
	return &KeyState{}
}

// HandleKey updates held/edge state from one tcell key event.
func (k *KeyState) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			k.up = true
		case 's', 'S':
			k.down = true
		case 'a', 'A':
			k.left = true
		case 'd', 'D':
			k.right = true
		case ' ':
			k.attack = true
		case 'k', 'K':
			k.dodgePressed = true
		case 'l', 'L':
			k.lockOnPressed = true
		}
	case tcell.KeyCtrlG:
		k.guard = true
	}
}

// release is called once per tick after polling to clear
// edge-triggered flags (dodge/lock-on) and lapse stale held state; the
// sandbox's tick loop drives this via MoveAxis/AttackHeld/GuardHeld
// consuming the current snapshot and DodgePressed/LockOnPressed being
// one-shot.
func (k *KeyState) release() {
	k.up, k.down, k.left, k.right = false, false, false, false
	k.attack = false
	k.guard = false
	k.dodgePressed = false
	k.lockOnPressed = false
}

func (k *KeyState) MoveAxis() (x, y float64) {
	if k.left {
		x -= 1
	}
	if k.right {
		x += 1
	}
	if k.up {
		y -= 1
	}
	if k.down {
		y += 1
	}
	return x, y
}

func (k *KeyState) AttackHeld() bool { return k.attack }
func (k *KeyState) GuardHeld() bool  { return k.guard }

func (k *KeyState) DodgePressed() bool {
	v := k.dodgePressed
	k.dodgePressed = false
	return v
}

func (k *KeyState) LockOnPressed() bool {
	v := k.lockOnPressed
	k.lockOnPressed = false
	return v
}
