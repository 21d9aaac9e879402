// Command combat-sandbox is a terminal demo that drives one
// combat.CombatSession between a keyboard-controlled player and an
// AI-controlled boss, rendering fighter state as a tcell screen and
// cueing hit events with a short synthesized tone.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-fighter/combat"
)

const tickInterval = 50 * time.Millisecond

func main() {
	rand.Seed(time.Now().UnixNano())

	game, err := NewGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "combat-sandbox: failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.Cleanup()

	game.Run()
}

// Game wires a CombatSession to a terminal UI and an audio cue
// engine, following main.go's NewGame/run/cleanup shape.
type Game struct {
	screen tcell.Screen
	ui     *UI
	audio  *AudioCues

	session *gameSession
}

// gameSession groups the combat session with the world state the
// sandbox uses to answer BuildSensorsFn/HitEventSource.
type gameSession struct {
	world   *SandboxWorld
	session *combat.CombatSession
	keys    *KeyState
	boss    *combat.BossBrain
}

const (
	playerId combat.EntityId = 1
	bossId   combat.EntityId = 2
)

func NewGame() (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	world := NewSandboxWorld()
	keys := NewKeyState()

	cfg := combat.DefaultSessionConfig()
	applier := combat.NewCombatApplier(world.Health, world.AttackDriver, world.WeaponTrace)

	playerInput := combat.NewPlayerInputSource(keys, combat.DefaultPlayerInputSourceConfig())
	playerSource := combat.IntentSourceFunc(func(dt time.Duration) combat.Intent {
		return playerInput.Poll(dt)
	})

	boss := combat.NewBossBrain(combat.DefaultBossBrainConfig())
	bossSource := combat.IntentSourceFunc(func(dt time.Duration) combat.Intent {
		dist := world.Distance(playerId, bossId)
		dx, dy := world.DirectionTo(bossId, playerId)
		return boss.Think(dt, dist, dx, dy)
	})

	session := combat.NewCombatSession(cfg, playerId, bossId, applier, playerSource, bossSource)

	audio, err := NewAudioCues()
	if err != nil {
		// Non-fatal, sandbox can run without sound.
		audio = nil
	}

	g := &Game{
		screen: screen,
		ui:     NewUI(screen),
		audio:  audio,
		session: &gameSession{
			world:   world,
			session: session,
			keys:    keys,
			boss:    boss,
		},
	}
	return g, nil
}

func (g *Game) Cleanup() {
	if g.audio != nil {
		g.audio.Close()
	}
	g.screen.Fini()
}

func (g *Game) Run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.tick(tickInterval)
			g.ui.Draw(g.session.session, g.session.world)
		}
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		g.session.keys.HandleKey(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) tick(dt time.Duration) {
	s := g.session.session
	w := g.session.world

	s.Update(dt, w.BuildSensors)
	g.session.keys.release()
	s.PostCombatUpdate(dt, w.DrainFrameHits)

	if g.audio != nil {
		for _, ev := range s.Bus().PeekDeferred(bossId) {
			g.audio.MaybePlay(ev.Type)
		}
		for _, ev := range s.Bus().PeekDeferred(playerId) {
			g.audio.MaybePlay(ev.Type)
		}
	}

	w.RouteMove(playerId, s.PlayerMoveCommand, dt)
	w.RouteMove(bossId, s.BossMoveCommand, dt)
}
