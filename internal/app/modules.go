package app

import (
	"github.com/vk/principia/internal/catalog"
	"github.com/vk/principia/sims/cosmology"
	"github.com/vk/principia/sims/mixing"
	"github.com/vk/principia/sims/topology"
)

// coreModules is the definitive list of simulation modules compiled into the
// binary. Order matters: the driver executes simulations in registration
// order and performs no dependency resolution, so producers must precede
// their consumers here.
var coreModules = []catalog.Module{
	topology.Module{},
	cosmology.Module{},
	mixing.Module{},
}
