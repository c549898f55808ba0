package schedule

import (
	"github.com/charmbracelet/log"
	"github.com/rwalker123/draco-sub018/internal/booking"
	"github.com/rwalker123/draco-sub018/internal/league"
	"github.com/rwalker123/draco-sub018/internal/metrics"
)

// Engine builds solver problem specs and applies chosen assignments. It owns
// no mutable state; every call works from durable storage plus call-local
// bookkeeping, so one Engine is safely shared across requests.
type Engine struct {
	leagues  league.LeagueStore
	bookings booking.BookingStore
	metrics  metrics.Metrics
}

// NewEngine creates a new scheduling Engine.
func NewEngine(leagues league.LeagueStore, bookings booking.BookingStore, metrics metrics.Metrics) *Engine {
	return &Engine{
		leagues:  leagues,
		bookings: bookings,
		metrics:  metrics,
	}
}

// BuildPreview assembles the read-only projection an operator reviews before
// solving: season, teams, fields, umpires, unscheduled games, expanded slots
// and the raw availability rules.
func (e *Engine) BuildPreview(accountID, seasonID string) (*ProblemSpecPreview, error) {
	preview, _, err := e.buildPreview(accountID, seasonID)
	return preview, err
}

func (e *Engine) buildPreview(accountID, seasonID string) (*ProblemSpecPreview, *league.Account, error) {
	account, season, err := e.resolveSeason(accountID, seasonID)
	if err != nil {
		return nil, nil, err
	}

	rules, err := e.leagues.ListAvailabilityRules(seasonID)
	if err != nil {
		return nil, nil, err
	}
	startDate, endDate, err := deriveSeasonRange(rules)
	if err != nil {
		return nil, nil, err
	}
	slots, err := Expand(rules, *account.TimeZone)
	if err != nil {
		return nil, nil, err
	}
	e.metrics.ObserveSlotsGenerated(len(slots))

	teams, err := e.leagues.ListSeasonTeams(seasonID)
	if err != nil {
		return nil, nil, err
	}
	fields, err := e.leagues.ListAccountFields(accountID)
	if err != nil {
		return nil, nil, err
	}
	umpires, err := e.leagues.ListAccountUmpires(accountID)
	if err != nil {
		return nil, nil, err
	}
	games, err := e.leagues.ListSeasonGames(seasonID)
	if err != nil {
		return nil, nil, err
	}

	preview := &ProblemSpecPreview{
		Season: SeasonConfig{
			ID:                 season.ID,
			Name:               season.Name,
			StartDate:          startDate,
			EndDate:            endDate,
			WeekdayGameMinutes: season.WeekdayGameMinutes,
			WeekendGameMinutes: season.WeekendGameMinutes,
		},
		Teams:   teams,
		Fields:  fields,
		Umpires: umpires,
		Games:   unscheduledRequests(games),
		Slots:   slots,
		Rules:   rules,
	}
	log.Info("Built problem spec preview", "seasonID", seasonID, "games", len(preview.Games), "slots", len(slots))
	return preview, account, nil
}

// BuildProblemSpec assembles the self-contained spec handed to the solver.
// It narrows games to the requested subset, forwards the solver directives
// and stamps the account timezone onto the lights rule so the solver never
// resolves timezones itself.
func (e *Engine) BuildProblemSpec(accountID, seasonID string, req SolveRequest) (*ProblemSpec, error) {
	preview, account, err := e.buildPreview(accountID, seasonID)
	if err != nil {
		return nil, err
	}

	games := preview.Games
	if len(req.GameIDs) > 0 {
		wanted := make(map[string]bool, len(req.GameIDs))
		for _, id := range req.GameIDs {
			wanted[id] = true
		}
		var filtered []GameRequest
		for _, game := range games {
			if wanted[game.ID] {
				filtered = append(filtered, game)
			}
		}
		games = filtered
	}
	if len(games) == 0 {
		return nil, validationErrorf("no games to schedule after filtering")
	}

	constraints := req.Constraints
	if constraints != nil && constraints.Hard != nil && constraints.Hard.RequireLightsAfter != nil {
		if constraints.Hard.RequireLightsAfter.TimeZone == "" {
			constraints.Hard.RequireLightsAfter.TimeZone = *account.TimeZone
		}
	}

	return &ProblemSpec{
		Season:      preview.Season,
		Teams:       preview.Teams,
		Fields:      preview.Fields,
		Umpires:     preview.Umpires,
		Games:       games,
		Slots:       preview.Slots,
		Constraints: constraints,
		Objectives:  req.Objectives,
	}, nil
}

// resolveSeason validates the account/season pair and the mandatory account
// timezone shared by the build operations and the apply engine.
func (e *Engine) resolveSeason(accountID, seasonID string) (*league.Account, *league.Season, error) {
	account, err := e.resolveAccount(accountID)
	if err != nil {
		return nil, nil, err
	}
	season, err := e.leagues.FindSeason(seasonID, accountID)
	if err != nil {
		return nil, nil, err
	}
	if season == nil {
		return nil, nil, &NotFoundError{Resource: "season", ID: seasonID}
	}
	return account, season, nil
}

func (e *Engine) resolveAccount(accountID string) (*league.Account, error) {
	account, err := e.leagues.FindAccount(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, &NotFoundError{Resource: "account", ID: accountID}
	}
	if account.TimeZone == nil || *account.TimeZone == "" {
		return nil, validationErrorf("account %s has no configured timezone", accountID)
	}
	return account, nil
}

func unscheduledRequests(games []league.GameInfo) []GameRequest {
	var requests []GameRequest
	for _, game := range games {
		if game.Scheduled() {
			continue
		}
		requests = append(requests, GameRequest{
			ID:                  game.ID,
			LeagueSeasonID:      game.LeagueSeasonID,
			HomeTeamSeasonID:    game.HomeTeamSeasonID,
			VisitorTeamSeasonID: game.VisitorTeamSeasonID,
			MinUmpires:          game.MinUmpires,
			PreferredFieldIDs:   game.PreferredFieldIDs,
			EarliestStart:       game.EarliestStart,
			LatestEnd:           game.LatestEnd,
			DurationMinutes:     game.DurationMinutes,
		})
	}
	return requests
}
