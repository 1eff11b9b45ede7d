package entity

// Analytics is the role-scoped dashboard summary. Fields irrelevant to the
// caller's role stay zero and are omitted from the JSON.
type Analytics struct {
	Products      int     `json:"products,omitempty"`
	Demands       int     `json:"demands,omitempty"`
	Transports    int     `json:"transports,omitempty"`
	Orders        int     `json:"orders,omitempty"`
	Revenue       float64 `json:"revenue,omitempty"`
	Spend         float64 `json:"spend,omitempty"`
	Users         int     `json:"users,omitempty"`
	Notifications int     `json:"notifications,omitempty"`
}
