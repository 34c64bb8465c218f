package domain

import "time"

// Rank is a member's rank; the monthly subscription fee is looked up by rank.
type Rank string

const (
	RankLieutenant        Rank = "LIEUTENANT"
	RankFirstLieutenant   Rank = "FIRST_LIEUTENANT"
	RankCaptain           Rank = "CAPTAIN"
	RankMajor             Rank = "MAJOR"
	RankLtColonel         Rank = "LT_COLONEL"
	RankColonel           Rank = "COLONEL"
	RankBrigadier         Rank = "BRIGADIER"
	RankMajorGeneral      Rank = "MAJOR_GENERAL"
	RankAssistantMinister Rank = "ASSISTANT_MINISTER"
)

// AllRanks lists every rank, in seniority order. Used for fee seeding and
// request validation.
var AllRanks = []Rank{
	RankLieutenant,
	RankFirstLieutenant,
	RankCaptain,
	RankMajor,
	RankLtColonel,
	RankColonel,
	RankBrigadier,
	RankMajorGeneral,
	RankAssistantMinister,
}

// Member is the slice of the membership record the engine consumes. Members
// are managed by the membership CRUD layer; this engine reads them and owns
// their financial rows.
type Member struct {
	MemberID           string    `json:"memberID"` // Primary Key (UUID)
	Name               string    `json:"name"`
	Rank               Rank      `json:"rank"`
	MembershipNumber   string    `json:"membershipNumber"`
	SubscriptionDate   time.Time `json:"subscriptionDate"`
	IsActive           bool      `json:"isActive"`
	PrepaymentRecordID *string   `json:"prepaymentRecordID"` // Nullable FK -> ledger_records
}
