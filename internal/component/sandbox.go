package component

import "github.com/l1jgo/arcade/internal/asset"

// Model carries the asset handle a graphical host would draw.
type Model struct {
	Handle asset.Handle
}

// Spaceship marks the player ship in the 3D sandbox.
type Spaceship struct{}

// Missile marks a projectile fired by the ship.
type Missile struct{}

// Asteroid marks a drifting rock.
type Asteroid struct{}
