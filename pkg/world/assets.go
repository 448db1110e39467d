package world

// AssetHandle refers to a loaded host asset (font, image). The view layer
// never inspects asset content; handles are resolved by path and passed
// through to host components.
type AssetHandle uint64

// NoAsset is the invalid asset handle.
const NoAsset AssetHandle = 0

// AssetServer maps abstract asset paths to handles. Registration is done
// by the host when assets finish loading; the view layer only looks up.
type AssetServer struct {
	table map[string]AssetHandle
	next  AssetHandle
}

// Assets returns the world's asset server.
func (w *World) Assets() *AssetServer {
	return &w.assets
}

// Register assigns a handle to path, returning the existing handle if the
// path was already registered.
func (a *AssetServer) Register(path string) AssetHandle {
	if h, ok := a.table[path]; ok {
		return h
	}
	a.next++
	a.table[path] = a.next
	return a.next
}

// Lookup resolves a path to its handle.
func (a *AssetServer) Lookup(path string) (AssetHandle, bool) {
	h, ok := a.table[path]
	return h, ok
}
