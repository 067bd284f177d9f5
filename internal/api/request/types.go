package request

// AddPlayerRequest is the request body for adding one player
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// BulkAddRequest is the request body for adding players, one name per line
type BulkAddRequest struct {
	Text string `json:"text"`
}

// DrawRequest is the request body for starting a draw
type DrawRequest struct {
	Mode string `json:"mode"`
}

// StartTossRequest is the request body for starting the side decision
type StartTossRequest struct {
	SideMode      string `json:"side_mode,omitempty"`
	PreferredSide string `json:"preferred_side,omitempty"`
}

// CallRequest is the request body for Team 1's call
type CallRequest struct {
	Call string `json:"call"`
}

// ChooseSideRequest is the request body for the toss winner's side
type ChooseSideRequest struct {
	Side string `json:"side"`
}

// MapCountRequest is the request body for the map-count preference
type MapCountRequest struct {
	MapCount int `json:"map_count"`
}
