package entities

// Friend pair states. A pair reads "character 1 holds character 2 in state".
const (
	FriendStateFriend  = 0
	FriendStateRequest = 1
)
