package combat

import "sort"

// CombatEventType is the tag of a deferred CombatEvent.
type CombatEventType int

const (
	OnHit CombatEventType = iota
	OnGuarded
	OnParried
	OnGuardBreak
	OnGroggy
	OnDeath
)

func (t CombatEventType) String() string {
	switch t {
	case OnHit:
		return "OnHit"
	case OnGuarded:
		return "OnGuarded"
	case OnParried:
		return "OnParried"
	case OnGuardBreak:
		return "OnGuardBreak"
	case OnGroggy:
		return "OnGroggy"
	case OnDeath:
		return "OnDeath"
	default:
		return "Unknown"
	}
}

// CombatEvent is queued by the resolver or applier against its
// Subject's deferred queue and consumed by Subject's FSM on the next
// tick.
type CombatEvent struct {
	Type            CombatEventType
	Subject         EntityId
	Other           EntityId
	AttackInstanceId uint64
	Value           float64
}

// HitEvent is one detected weapon overlap reported by the external
// trace system for the current frame.
type HitEvent struct {
	AttackerOwner    EntityId
	VictimOwner      EntityId
	HurtboxEntity    EntityId
	Part             int
	AttackInstanceId uint64
	SubShapeIndex    int
	Damage           float64
	HasSweepFraction bool
	SweepFraction    float64
	HitPosX, HitPosY, HitPosZ    float64
	HitNormalX, HitNormalY, HitNormalZ float64
}

// hitSortLess orders hits by (attackInstanceId, attackerOwner,
// victimOwner, hasSweepFraction desc, sweepFraction asc,
// subShapeIndex, hurtboxEntity, part), matching the original combat
// session's hit comparator so dedup keeps a deterministic survivor.
func hitSortLess(a, b HitEvent) bool {
	if a.AttackInstanceId != b.AttackInstanceId {
		return a.AttackInstanceId < b.AttackInstanceId
	}
	if a.AttackerOwner != b.AttackerOwner {
		return a.AttackerOwner < b.AttackerOwner
	}
	if a.VictimOwner != b.VictimOwner {
		return a.VictimOwner < b.VictimOwner
	}
	if a.HasSweepFraction != b.HasSweepFraction {
		return a.HasSweepFraction // true (has fraction) sorts first
	}
	if a.HasSweepFraction && a.SweepFraction != b.SweepFraction {
		return a.SweepFraction < b.SweepFraction
	}
	if a.SubShapeIndex != b.SubShapeIndex {
		return a.SubShapeIndex < b.SubShapeIndex
	}
	if a.HurtboxEntity != b.HurtboxEntity {
		return a.HurtboxEntity < b.HurtboxEntity
	}
	return a.Part < b.Part
}

// SortAndDedupHits sorts hits with hitSortLess and keeps only the
// first survivor per (attackInstanceId, attackerOwner, victimOwner)
// triple, matching PostCombatUpdate's dedup step.
func SortAndDedupHits(hits []HitEvent) []HitEvent {
	sorted := make([]HitEvent, len(hits))
	copy(sorted, hits)
	sort.Slice(sorted, func(i, j int) bool { return hitSortLess(sorted[i], sorted[j]) })

	type key struct {
		attackInstanceId uint64
		attacker, victim EntityId
	}
	seen := make(map[key]bool, len(sorted))
	result := make([]HitEvent, 0, len(sorted))
	for _, h := range sorted {
		k := key{h.AttackInstanceId, h.AttackerOwner, h.VictimOwner}
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, h)
	}
	return result
}

// CombatEventBus holds the frame-scoped hit list and the per-entity
// deferred event queues. A deferred event pushed during one
// PostCombatUpdate is observed by its subject's FSM exactly once, on
// the following tick's Update, then cleared.
type CombatEventBus struct {
	hits     []HitEvent
	deferred map[EntityId][]CombatEvent
}

// NewCombatEventBus constructs an empty bus.
func NewCombatEventBus() *CombatEventBus {
	return &CombatEventBus{
		deferred: make(map[EntityId][]CombatEvent),
	}
}

// ClearFrame empties the hit list. Called at the start of
// PostCombatUpdate, before the frame's hits are ingested.
func (b *CombatEventBus) ClearFrame() {
	b.hits = b.hits[:0]
}

// ClearAll empties both the hit list and every deferred queue.
func (b *CombatEventBus) ClearAll() {
	b.hits = nil
	b.deferred = make(map[EntityId][]CombatEvent)
}

// PushHit appends a hit to the frame-scoped list.
func (b *CombatEventBus) PushHit(h HitEvent) {
	b.hits = append(b.hits, h)
}

// SetFrameHits replaces the frame-scoped hit list wholesale, for
// sessions that ingest an already-collected slice from the external
// trace system.
func (b *CombatEventBus) SetFrameHits(hits []HitEvent) {
	b.hits = append(b.hits[:0], hits...)
}

// Hits returns the current frame's hit list, read-only.
func (b *CombatEventBus) Hits() []HitEvent {
	return b.hits
}

// PushDeferred appends a CombatEvent to its subject's deferred queue.
func (b *CombatEventBus) PushDeferred(e CombatEvent) {
	b.deferred[e.Subject] = append(b.deferred[e.Subject], e)
}

// PeekDeferred returns who's deferred queue, or an empty slice if
// absent. The returned slice must not be mutated by the caller.
func (b *CombatEventBus) PeekDeferred(who EntityId) []CombatEvent {
	return b.deferred[who]
}

// ClearDeferred removes who's deferred queue entirely.
func (b *CombatEventBus) ClearDeferred(who EntityId) {
	delete(b.deferred, who)
}
