package world

// Entity is an opaque handle to a node in the scene graph. Identity is
// handle equality. The zero value is NoEntity and never refers to a live
// entity.
type Entity uint64

// NoEntity is the invalid entity handle.
const NoEntity Entity = 0

// Tick is a monotonically increasing change version. Every world mutation
// advances the tick and stamps what it touched.
type Tick uint64
