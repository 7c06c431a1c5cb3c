package dto

type CreateMatchRequest struct {
	Title          string `json:"title"`
	Sport          string `json:"sport"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	MaxPlayers     *int   `json:"max_players,omitempty"`
	CreatorID      string `json:"creator_id"`
	CreatorName    string `json:"creator_name"`
	CaptainName    string `json:"captain_name,omitempty"`
	PricePerPerson *int   `json:"price_per_person,omitempty"`
}

// UpdateMatchRequest carries only the editable fields; CreatorID identifies
// the caller when no identity token is sent.
type UpdateMatchRequest struct {
	CreatorID      string  `json:"creator_id"`
	Title          *string `json:"title,omitempty"`
	Sport          *string `json:"sport,omitempty"`
	Location       *string `json:"location,omitempty"`
	Date           *string `json:"date,omitempty"`
	Time           *string `json:"time,omitempty"`
	MaxPlayers     *int    `json:"max_players,omitempty"`
	CaptainName    *string `json:"captain_name,omitempty"`
	PricePerPerson *int    `json:"price_per_person,omitempty"`
}

type DeleteMatchRequest struct {
	CreatorID string `json:"creator_id"`
}

type JoinMatchRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

type LeaveMatchRequest struct {
	UserID string `json:"user_id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type JoinedResponse struct {
	Joined bool `json:"joined"`
}

type IssueIdentityRequest struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
}

type IdentityResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	ExpiresIn int64  `json:"expires_in"`
}

// ErrorResponse is the body of every business error. Code is stable and
// safe to branch on; Message is for display.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
