// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface, which reports whether it is
// enabled and registers its routes. The Manager keeps the registry and loads
// every enabled feature at startup:
//
//	mgr := loader.NewManager()
//	mgr.Register(member.NewFeature(...))
//	mgr.Register(statistics.NewFeature(...))
//	err := mgr.LoadAll(app)
package loader
