package event

import "github.com/l1jgo/groundzero/internal/core/ecs"

// ThingSpawned is emitted when a thing enters a map's index.
type ThingSpawned struct {
	ID    ecs.EntityID
	Def   string
	X, Y  int32
	Count int
}

// ThingDestroyed is emitted when a thing leaves a map's index.
type ThingDestroyed struct {
	ID   ecs.EntityID
	Def  string
	Mode string
}

// ForbiddenChanged is emitted by non-silent forbid toggles.
type ForbiddenChanged struct {
	ID        ecs.EntityID
	Forbidden bool
}

// TerrainChanged is emitted for every top-layer terrain edit.
type TerrainChanged struct {
	X, Y    int32
	Terrain string
}
