package models

import "time"

// Request types

type CreateElectionRequest struct {
	Position       string     `json:"position"`
	CandidateName  string     `json:"candidate_name"`
	Votes          int64      `json:"votes"`
	DailyIncrement int64      `json:"daily_increment"`
	StartDate      *time.Time `json:"start_date,omitempty"`
}

// Admin edit of a candidate row. Votes becomes the new base_votes.
type UpdateElectionRequest struct {
	CandidateName  string `json:"candidate_name"`
	Votes          int64  `json:"votes"`
	DailyIncrement int64  `json:"daily_increment"`
}

type CastBallotRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Fields accept a JSON number or a numeric string; anything else is rejected.
type UpdateDonationSettingsRequest struct {
	TotalRaised  interface{} `json:"total_raised"`
	TargetGoal   interface{} `json:"target_goal"`
	TotalDonors  interface{} `json:"total_donors"`
	AvgPerMosque interface{} `json:"avg_per_mosque"`
}

// Response types

type CastBallotResponse struct {
	BallotID       string `json:"ballot_id"`
	Position       string `json:"position"`
	CandidateID    string `json:"candidate_id"`
	Displayed      int64  `json:"displayed"`
	DisplayedLabel string `json:"displayed_label"`
	Synced         bool   `json:"synced"`
	Message        string `json:"message"`
}

type Standing struct {
	CandidateID    string `json:"candidate_id"`
	Name           string `json:"name"`
	Expertise      string `json:"expertise,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Displayed      int64  `json:"displayed"`
	DisplayedLabel string `json:"displayed_label"`
	Leading        bool   `json:"leading"`
}

type PositionStandings struct {
	Position   string     `json:"position"`
	Candidates []Standing `json:"candidates"`
}

type DonationSettingsResponse struct {
	DonationSettings
	PercentOfGoal float64 `json:"percent_of_goal"`
}

// Domain types

// Election is one candidate row of the shared elections table.
type Election struct {
	ID             string    `json:"id"`
	Position       string    `json:"position"`
	CandidateName  string    `json:"candidate_name"`
	Votes          int64     `json:"votes"`
	BaseVotes      int64     `json:"base_votes"`
	DailyIncrement int64     `json:"daily_increment"`
	StartDate      time.Time `json:"start_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DonationSettings struct {
	ID           string    `json:"id"`
	TotalRaised  int64     `json:"total_raised"`
	TargetGoal   int64     `json:"target_goal"`
	TotalDonors  int64     `json:"total_donors"`
	AvgPerMosque int64     `json:"avg_per_mosque"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Donation struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	DonorName *string   `json:"donor_name"`
	Email     *string   `json:"email"`
	Country   *string   `json:"country"`
	Frequency *string   `json:"frequency"`
	Purpose   *string   `json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
