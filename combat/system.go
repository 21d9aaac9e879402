package combat

import "time"

// CombatSystem is the engine.System-shaped wrapper around a
// CombatSession, following systems.DrainSystem's constructor/
// Priority/Update shape. Unlike most systems in this repo it does not
// take an *engine.GameContext: the combat core's external
// dependencies are the small store interfaces in stores.go, not the
// host game's cursor/mode/spawn state, so CombatSystem is wired
// directly to a session plus the sensor/hit callbacks it needs.
type CombatSystem struct {
	session      *CombatSession
	buildSensors BuildSensorsFn
	hitSource    HitEventSource
}

// NewCombatSystem wires a CombatSystem to an existing session and the
// callbacks it needs to read this frame's sensors and hits from the
// host's component store / weapon-trace system.
func NewCombatSystem(session *CombatSession, buildSensors BuildSensorsFn, hitSource HitEventSource) *CombatSystem {
	return &CombatSystem{session: session, buildSensors: buildSensors, hitSource: hitSource}
}

// Priority returns the system's tick-order priority (priorityCombat).
// Update reads the frame's hits through hitSource, so whatever fills
// that source has to run earlier in the host frame.
func (s *CombatSystem) Priority() int {
	return priorityCombat
}

// priorityCombat is the fixed tick-order value CombatSystem reports.
// It is declared here rather than imported, keeping combat free of
// any host constants package.
const priorityCombat = 40

// Update runs one full combat tick: Update followed immediately by
// PostCombatUpdate, matching the engine's split entry points being
// invoked back-to-back once physics/trace integration has happened
// earlier in the same host frame.
func (s *CombatSystem) Update(dt time.Duration) {
	s.session.Update(dt, s.buildSensors)
	s.session.PostCombatUpdate(dt, s.hitSource)
}
