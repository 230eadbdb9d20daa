package cancellation

// MalfunctionRequest is the payload for reporting a plane malfunction.
// Retire permanently removes the plane from service instead of sending it
// to maintenance.
type MalfunctionRequest struct {
	Retire bool `json:"retire"`
}
