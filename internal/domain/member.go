package domain

type Role int

const (
	RoleHost Role = iota
	RolePlayer
)

func (r Role) String() string {
	if r == RoleHost {
		return "host"
	}
	return "player"
}

type PlayerStatus string

const (
	PlayerOnline  PlayerStatus = "online"
	PlayerOffline PlayerStatus = "offline"
)

// Identity is either the room's host or a named player.
// The zero value is the host.
type Identity struct {
	role Role
	name string
}

func Host() Identity { return Identity{role: RoleHost} }

func Player(name string) Identity { return Identity{role: RolePlayer, name: name} }

// IdentityFromName maps the connect query to an identity: clients join as
// host by leaving the name empty.
func IdentityFromName(name string) Identity {
	if name == "" {
		return Host()
	}
	return Player(name)
}

func (i Identity) Role() Role { return i.role }
func (i Identity) IsHost() bool { return i.role == RoleHost }
func (i Identity) Name() string { return i.name }

func (i Identity) String() string {
	if i.IsHost() {
		return "host"
	}
	return "player:" + i.name
}
