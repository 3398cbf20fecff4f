package zone

// Zone is an availability zone as reported by the endpoint.
type Zone struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}
