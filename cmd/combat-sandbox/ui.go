package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-fighter/combat"
)

// UI renders the session's two fighters as one text row each (hp,
// stamina and action state) above a key-binding footer,
// following main.go's direct screen.Clear/SetContent/Show draw loop.
type UI struct {
	screen tcell.Screen
}

func NewUI(screen tcell.Screen) *UI {
	return &UI{screen: screen}
}

func (u *UI) Draw(s *combat.CombatSession, w *SandboxWorld) {
	u.screen.Clear()

	u.drawFighterRow(1, "Player", s.Player())
	u.drawFighterRow(3, "Boss", s.Boss())

	width, _ := u.screen.Size()
	footer := "WASD move · space attack · ctrl-g guard · k dodge · l lock-on · esc quit"
	for i, r := range footer {
		if i >= width {
			break
		}
		u.screen.SetContent(i, 5, r, nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	u.screen.Show()
}

func (u *UI) drawFighterRow(row int, name string, f *combat.Fighter) {
	label := fmt.Sprintf("%-7s hp=%3.0f stamina=%3.0f state=%s", name, f.Hp, f.Stamina, f.State)
	style := tcell.StyleDefault
	if f.Hp <= 0 {
		style = style.Foreground(tcell.ColorRed)
	}
	for i, r := range label {
		u.screen.SetContent(i, row, r, nil, style)
	}
}
