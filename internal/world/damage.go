package world

import (
	"fmt"

	"go.uber.org/zap"
)

// DamageKind names the damage def applied.
type DamageKind string

const DamageBomb DamageKind = "bomb"

// BodyPartHeight and BodyPartDepth narrow where a hit on a pawn lands.
type BodyPartHeight int

const (
	HeightUndefined BodyPartHeight = iota
	HeightBottom
	HeightMiddle
	HeightTop
)

type BodyPartDepth int

const (
	DepthUndefined BodyPartDepth = iota
	DepthInside
	DepthOutside
)

// DamageInfo describes one hit.
type DamageInfo struct {
	Kind   DamageKind
	Amount int
	Height BodyPartHeight
	Depth  BodyPartDepth
}

// TakeDamage applies one hit. Things that reach zero hit points are
// destroyed with DestroyKill, which turns pawns into corpses. Hits of zero
// or less, hits on destroyed things and hits on things without hit points
// do nothing.
func (m *Map) TakeDamage(t *Thing, dinfo DamageInfo) error {
	if t.destroyed || dinfo.Amount <= 0 || t.Def.MaxHitPoints <= 0 {
		return nil
	}
	t.HitPoints -= dinfo.Amount
	if t.HitPoints > 0 {
		return nil
	}
	t.HitPoints = 0
	m.log.Debug("thing killed by damage",
		zap.Stringer("thing", t),
		zap.String("kind", string(dinfo.Kind)),
		zap.Int("amount", dinfo.Amount),
	)
	if err := m.Destroy(t, DestroyKill); err != nil {
		return fmt.Errorf("damage %s: %w", t, err)
	}
	return nil
}
