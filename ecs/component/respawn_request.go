package component

// RespawnRequest asks the respawn system to put a downed player back on its
// spawn point.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
