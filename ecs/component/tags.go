package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// GhoulTag marks entities driven by the ghoul AI.
type GhoulTag struct{}

var GhoulTagComponent = NewComponent[GhoulTag]()

// RealmAuthority marks the entity whose Realm toggle is the authoritative
// world state. Exactly one entity should carry it.
type RealmAuthority struct{}

var RealmAuthorityComponent = NewComponent[RealmAuthority]()
