package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// Platform identifies where a lead streams or posts.
type Platform string

const (
	PlatformTwitch    Platform = "Twitch"
	PlatformYouTube   Platform = "YouTube"
	PlatformInstagram Platform = "Instagram"
)

// LeadSource records how a lead entered the funnel.
type LeadSource string

const (
	SourceScraper  LeadSource = "scraper"
	SourceReferral LeadSource = "referral"
	SourceInbound  LeadSource = "inbound"
	SourceOutbound LeadSource = "outbound"
)

// LeadStatus tracks outreach progress on a lead.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusReplied     LeadStatus = "replied"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
)

// Tier is the coarse lead-quality bucket derived from the numeric score.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

// TierForScore maps a 0-100 score onto a tier: hot >= 70, warm >= 40,
// cold below that. Tier is never stored independently of the score.
func TierForScore(score int) Tier {
	switch {
	case score >= 70:
		return TierHot
	case score >= 40:
		return TierWarm
	default:
		return TierCold
	}
}

// Stage is a deal's position in the sales pipeline.
type Stage string

const (
	StageLead        Stage = "lead"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageWon         Stage = "won"
	StageLost        Stage = "lost"
)

// Stages lists all pipeline stages in display order.
var Stages = []Stage{StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost}

// ErrInvalidStage is returned when a stage value is outside the pipeline enum.
var ErrInvalidStage = eris.New("invalid stage")

// ParseStage validates a stage string against the closed six-value enum.
// Any stage may transition to any other; there is no ordering constraint.
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages {
		if Stage(s) == st {
			return st, nil
		}
	}
	return "", eris.Wrapf(ErrInvalidStage, "%q", s)
}

// Terminal reports whether the stage is a pipeline outcome.
func (s Stage) Terminal() bool {
	return s == StageWon || s == StageLost
}

// ClientStatus tracks a client's lifecycle.
type ClientStatus string

const (
	ClientOnboarding ClientStatus = "onboarding"
	ClientActive     ClientStatus = "active"
	ClientPaused     ClientStatus = "paused"
	ClientChurned    ClientStatus = "churned"
)

// BillingPeriod is a service's billing cadence.
type BillingPeriod string

const (
	PeriodMonth   BillingPeriod = "month"
	PeriodYear    BillingPeriod = "year"
	PeriodOneTime BillingPeriod = "one-time"
)

// TaskType categorizes a task.
type TaskType string

const (
	TaskFollowUp   TaskType = "follow-up"
	TaskOutreach   TaskType = "outreach"
	TaskOnboarding TaskType = "onboarding"
	TaskSupport    TaskType = "support"
	TaskMeeting    TaskType = "meeting"
)

// TaskStatus is pending or completed.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// ActivityType identifies the event kind behind an activity entry.
type ActivityType string

const (
	ActivityLeadAdded     ActivityType = "lead_added"
	ActivityLeadContacted ActivityType = "lead_contacted"
	ActivityDealCreated   ActivityType = "deal_created"
	ActivityDealMoved     ActivityType = "deal_moved"
	ActivityClientAdded   ActivityType = "client_added"
	ActivityTaskCompleted ActivityType = "task_completed"
)

// Lead is a prospect imported from a scraper export or entered by hand.
type Lead struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Platform        Platform   `json:"platform"`
	Source          LeadSource `json:"source"`
	Followers       int        `json:"followers"`
	AvgViewers      int        `json:"avgViewers,omitempty"`
	Score           int        `json:"score"`
	Tier            Tier       `json:"tier"`
	Status          LeadStatus `json:"status"`
	BroadcasterType string     `json:"broadcasterType,omitempty"`
	PrimaryGame     string     `json:"primaryGame,omitempty"`
	Twitter         string     `json:"twitter,omitempty"`
	YouTube         string     `json:"youtube,omitempty"`
	Instagram       string     `json:"instagram,omitempty"`
	Discord         string     `json:"discord,omitempty"`
	TwitchURL       string     `json:"twitchUrl,omitempty"`
	Description     string     `json:"description,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SetScore writes the score and re-derives the tier, keeping the two in sync.
func (l *Lead) SetScore(score int) {
	l.Score = score
	l.Tier = TierForScore(score)
}

// Deal is a pipeline opportunity created from a lead.
type Deal struct {
	ID     string `json:"id"`
	LeadID string `json:"leadId"`
	Name   string `json:"name"`
	// ServiceName caches the service's name at assignment time so the card
	// survives later service renames and deletions.
	ServiceID   string    `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Value       int       `json:"value"`
	Stage       Stage     `json:"stage"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Client is a converted deal. Created at most once per deal.
type Client struct {
	ID        string       `json:"id"`
	LeadID    string       `json:"leadId"`
	DealID    string       `json:"dealId"`
	Name      string       `json:"name"`
	Email     string       `json:"email,omitempty"`
	Platform  Platform     `json:"platform"`
	Status    ClientStatus `json:"status"`
	Services  []string     `json:"services"`
	MRR       int          `json:"mrr"`
	StartDate time.Time    `json:"startDate"`
	Notes     string       `json:"notes,omitempty"`
}

// Service is a sellable offering.
type Service struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       int           `json:"price"`
	Period      BillingPeriod `json:"period"`
	Features    []string      `json:"features"`
	// ClientCount increments on conversion and never decrements, so it
	// overstates the live count once clients churn.
	ClientCount int `json:"clientCount"`
}

// Task is a to-do, optionally tied to a lead or client.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        TaskType   `json:"type"`
	Status      TaskStatus `json:"status"`
	DueDate     time.Time  `json:"dueDate"`
	RelatedTo   string     `json:"relatedTo,omitempty"`
	RelatedType string     `json:"relatedType,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Activity is one entry in the append-only event feed.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Text      string       `json:"text"`
	Timestamp time.Time    `json:"timestamp"`
}

// Settings holds workspace display preferences.
type Settings struct {
	Currency   string `json:"currency"`
	DateFormat string `json:"dateFormat"`
}
