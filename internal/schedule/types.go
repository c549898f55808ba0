package schedule

import (
	"encoding/json"
	"time"

	"github.com/rwalker123/draco-sub018/internal/league"
)

// MaxUmpiresPerGame is the number of umpire slots a game record carries.
const MaxUmpiresPerGame = 4

// FieldSlot is one concrete bookable window on one field, generated from an
// availability rule. Slots sharing a window are overlapping candidate start
// points, not a partition: they all carry the window's end instant.
type FieldSlot struct {
	ID        string    `json:"id"`
	FieldID   string    `json:"fieldId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// SeasonConfig is the season projection handed to the solver. StartDate and
// EndDate are derived from the enabled availability rules on every call,
// never stored.
type SeasonConfig struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	WeekdayGameMinutes *int   `json:"weekdayGameMinutes,omitempty"`
	WeekendGameMinutes *int   `json:"weekendGameMinutes,omitempty"`
}

// GameRequest is one game still needing an assignment.
type GameRequest struct {
	ID                  string     `json:"id"`
	LeagueSeasonID      string     `json:"leagueSeasonId"`
	HomeTeamSeasonID    string     `json:"homeTeamSeasonId"`
	VisitorTeamSeasonID string     `json:"visitorTeamSeasonId"`
	MinUmpires          *int       `json:"minUmpires,omitempty"`
	PreferredFieldIDs   []string   `json:"preferredFieldIds,omitempty"`
	EarliestStart       *time.Time `json:"earliestStart,omitempty"`
	LatestEnd           *time.Time `json:"latestEnd,omitempty"`
	DurationMinutes     *int       `json:"durationMinutes,omitempty"`
}

// ProblemSpecPreview is the read-only projection shown to an operator before
// solving: everything the solver would see plus the raw rules.
type ProblemSpecPreview struct {
	Season  SeasonConfig              `json:"season"`
	Teams   []league.Team             `json:"teams"`
	Fields  []league.Field            `json:"fields"`
	Umpires []league.Umpire           `json:"umpires"`
	Games   []GameRequest             `json:"games"`
	Slots   []FieldSlot               `json:"slots"`
	Rules   []league.AvailabilityRule `json:"rules"`
}

// ProblemSpec is the complete, self-contained input handed to the external
// solver; it requires no further lookups.
type ProblemSpec struct {
	Season      SeasonConfig       `json:"season"`
	Teams       []league.Team      `json:"teams"`
	Fields      []league.Field     `json:"fields"`
	Umpires     []league.Umpire    `json:"umpires"`
	Games       []GameRequest      `json:"games"`
	Slots       []FieldSlot        `json:"slots"`
	Constraints *SolverConstraints `json:"constraints,omitempty"`
	Objectives  json.RawMessage    `json:"objectives,omitempty"`
}

// SolveRequest narrows and directs a solve. GameIDs, when non-empty, limits
// the games included in the spec. Objectives pass through to the solver
// untouched.
type SolveRequest struct {
	GameIDs     []string           `json:"gameIds,omitempty"`
	Constraints *SolverConstraints `json:"constraints,omitempty"`
	Objectives  json.RawMessage    `json:"objectives,omitempty"`
}

// SolverConstraints carries the hard-constraint toggles this engine enforces
// plus soft preferences it forwards verbatim.
type SolverConstraints struct {
	Hard *HardConstraints `json:"hard,omitempty"`
	Soft json.RawMessage  `json:"soft,omitempty"`
}

// HardConstraints toggles the individually enforceable scheduling rules.
// A nil field means "not enforced".
type HardConstraints struct {
	NoTeamOverlap           *bool       `json:"noTeamOverlap,omitempty"`
	NoUmpireOverlap         *bool       `json:"noUmpireOverlap,omitempty"`
	NoFieldOverlap          *bool       `json:"noFieldOverlap,omitempty"`
	MaxGamesPerTeamPerDay   *int        `json:"maxGamesPerTeamPerDay,omitempty"`
	MaxGamesPerUmpirePerDay *int        `json:"maxGamesPerUmpirePerDay,omitempty"`
	RequireLightsAfter      *LightsRule `json:"requireLightsAfter,omitempty"`
}

// LightsRule requires a lit field for any game starting at or after the given
// local hour. The assembler stamps the account timezone onto the rule so the
// solver and the apply engine never resolve timezones themselves.
type LightsRule struct {
	StartHourLocal int    `json:"startHourLocal"`
	TimeZone       string `json:"timeZone,omitempty"`
}

// ApplyMode selects whether a proposal is applied in full or restricted to a
// requested subset of games.
type ApplyMode string

const (
	ApplyModeAll    ApplyMode = "all"
	ApplyModeSubset ApplyMode = "subset"
)

// Assignment is one proposed (game, field, time, umpires) tuple. Timestamps
// are RFC 3339; umpire order is meaningful (position i fills umpire slot i+1).
type Assignment struct {
	GameID    string   `json:"gameId"`
	FieldID   string   `json:"fieldId"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime,omitempty"`
	UmpireIDs []string `json:"umpireIds,omitempty"`
}

// ApplyRequest asks the engine to validate and persist a set of proposed
// assignments. RunID is generated when omitted.
type ApplyRequest struct {
	RunID       string             `json:"runId,omitempty"`
	Mode        ApplyMode          `json:"mode,omitempty"`
	GameIDs     []string           `json:"gameIds,omitempty"`
	Assignments []Assignment       `json:"assignments"`
	Constraints *SolverConstraints `json:"constraints,omitempty"`
}

// ApplyStatus summarizes an apply run.
type ApplyStatus string

const (
	StatusApplied ApplyStatus = "applied"
	StatusPartial ApplyStatus = "partial"
	StatusFailed  ApplyStatus = "failed"
)

// SkipRecord explains why one game's assignment was not applied.
type SkipRecord struct {
	GameID string `json:"gameId"`
	Reason string `json:"reason"`
}

// ApplyResult reports per-game outcomes of an apply run. Callers must inspect
// Status and Skipped; a non-error return never implies every game was applied.
type ApplyResult struct {
	RunID   string       `json:"runId"`
	Status  ApplyStatus  `json:"status"`
	Applied []string     `json:"applied"`
	Skipped []SkipRecord `json:"skipped"`
}
