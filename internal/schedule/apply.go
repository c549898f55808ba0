package schedule

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/rwalker123/draco-sub018/internal/booking"
	"github.com/rwalker123/draco-sub018/internal/league"
)

// Skip reasons reported to the caller. They must stay specific enough for an
// operator to retry only the failed subset.
const (
	reasonUnknownField   = "Unknown fieldId"
	reasonTooManyUmpires = "Too many umpires for one game"
	reasonGameNotFound   = "Game not found"
	reasonTeamBooked     = "Team is already booked for this date and time"
	reasonUmpireBooked   = "Umpire is already booked for this date and time"
	reasonFieldBooked    = "Field is already booked for this date and time"
	reasonTeamDayLimit   = "Team has reached the maximum games for this day"
	reasonUmpireDayLimit = "Umpire has reached the maximum games for this day"
	reasonFieldNoLights  = "Field does not have lights for a game this late"
	reasonNoAssignment   = "No assignment provided for requested gameId"
)

// parsedAssignment is an Assignment after step-2 validation.
type parsedAssignment struct {
	gameID    string
	fieldID   string
	start     time.Time
	umpireIDs []string
}

// ApplyProposal validates each proposed assignment against the enabled hard
// constraints and persists the valid ones, one game at a time, strictly in
// input order. Constraint conflicts become skip records in the result;
// structural input errors abort the whole call. With dryRun set, nothing is
// written but every check still runs.
func (e *Engine) ApplyProposal(accountID string, req ApplyRequest, dryRun bool) (*ApplyResult, error) {
	started := time.Now()
	e.metrics.IncApplyRuns()

	runID := req.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	mode := req.Mode
	if mode == "" {
		mode = ApplyModeAll
	}
	if mode != ApplyModeAll && mode != ApplyModeSubset {
		return nil, validationErrorf("unknown apply mode %q", mode)
	}

	account, err := e.resolveAccount(accountID)
	if err != nil {
		return nil, err
	}

	hard := hardConstraintsOf(req.Constraints)
	lightsLoc, err := resolveLightsZone(hard, *account.TimeZone)
	if err != nil {
		return nil, err
	}

	// Field properties and per-umpire caps are loaded once; per-assignment
	// lookups would repeat the same queries for every row.
	fields, err := e.leagues.ListAccountFields(accountID)
	if err != nil {
		return nil, err
	}
	fieldsByID := make(map[string]league.Field, len(fields))
	for _, field := range fields {
		fieldsByID[field.ID] = field
	}
	umpires, err := e.leagues.ListAccountUmpires(accountID)
	if err != nil {
		return nil, err
	}
	umpiresByID := make(map[string]league.Umpire, len(umpires))
	for _, umpire := range umpires {
		umpiresByID[umpire.ID] = umpire
	}

	requested := make(map[string]bool, len(req.GameIDs))
	if mode == ApplyModeSubset {
		for _, id := range req.GameIDs {
			requested[id] = true
		}
	}

	// Structural validation covers the whole batch before any write. A caller
	// bug late in the input must abort the call with nothing applied, not
	// after earlier assignments were already persisted.
	var proposals []parsedAssignment
	for _, proposal := range req.Assignments {
		if mode == ApplyModeSubset && !requested[proposal.GameID] {
			continue
		}
		assignment, err := parseAssignment(proposal)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, assignment)
	}

	led := newLedger()
	processed := make(map[string]bool)
	var applied []string
	var skipped []SkipRecord

	log.Info("Applying schedule proposal", "runID", runID, "mode", mode, "assignments", len(req.Assignments), "dryRun", dryRun)

	for _, assignment := range proposals {
		if mode == ApplyModeSubset {
			processed[assignment.gameID] = true
		}

		field, ok := fieldsByID[assignment.fieldID]
		if !ok {
			skipped = append(skipped, SkipRecord{GameID: assignment.gameID, Reason: reasonUnknownField})
			continue
		}
		if len(assignment.umpireIDs) > MaxUmpiresPerGame {
			skipped = append(skipped, SkipRecord{GameID: assignment.gameID, Reason: reasonTooManyUmpires})
			continue
		}

		game, err := e.bookings.FindGameWithContext(assignment.gameID, accountID)
		if err != nil {
			return nil, err
		}
		if game == nil {
			skipped = append(skipped, SkipRecord{GameID: assignment.gameID, Reason: reasonGameNotFound})
			continue
		}

		reason, err := e.checkConstraints(assignment, game, field, hard, umpiresByID, lightsLoc, led)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			log.Debug("Assignment skipped", "runID", runID, "gameID", assignment.gameID, "reason", reason)
			skipped = append(skipped, SkipRecord{GameID: assignment.gameID, Reason: reason})
			continue
		}

		// Accepted: the ledger must reflect this assignment before the next
		// one is checked.
		recordInLedger(led, assignment, game)

		if !sameAssignment(assignment, game) && !dryRun {
			err := e.bookings.UpdateGameAssignment(assignment.gameID, booking.GameAssignmentUpdate{
				FieldID:   assignment.fieldID,
				StartTime: assignment.start,
				UmpireIDs: assignment.umpireIDs,
			})
			if err != nil {
				return nil, err
			}
		}
		applied = append(applied, assignment.gameID)
	}

	if mode == ApplyModeSubset {
		for _, id := range req.GameIDs {
			if !processed[id] {
				skipped = append(skipped, SkipRecord{GameID: id, Reason: reasonNoAssignment})
			}
		}
	}

	status := StatusPartial
	switch {
	case len(applied) == 0:
		status = StatusFailed
	case len(skipped) == 0:
		status = StatusApplied
	}

	e.metrics.IncAssignmentsApplied(len(applied))
	e.metrics.IncAssignmentsSkipped(len(skipped))
	e.metrics.ObserveApplyDuration(time.Since(started).Seconds())

	log.Info("Apply run finished", "runID", runID, "status", status, "applied", len(applied), "skipped", len(skipped))
	return &ApplyResult{
		RunID:   runID,
		Status:  status,
		Applied: applied,
		Skipped: skipped,
	}, nil
}

// parseAssignment validates the structural fields of a proposal. Failures
// here are caller bugs, not schedulability conflicts, so they abort the call.
func parseAssignment(a Assignment) (parsedAssignment, error) {
	if a.GameID == "" {
		return parsedAssignment{}, validationErrorf("assignment has empty gameId")
	}
	if a.FieldID == "" {
		return parsedAssignment{}, validationErrorf("assignment for game %s has empty fieldId", a.GameID)
	}
	start, err := time.Parse(time.RFC3339, a.StartTime)
	if err != nil {
		return parsedAssignment{}, validationErrorf("assignment for game %s has malformed start time %q", a.GameID, a.StartTime)
	}
	if a.EndTime != "" {
		if _, err := time.Parse(time.RFC3339, a.EndTime); err != nil {
			return parsedAssignment{}, validationErrorf("assignment for game %s has malformed end time %q", a.GameID, a.EndTime)
		}
	}
	return parsedAssignment{
		gameID:    a.GameID,
		fieldID:   a.FieldID,
		start:     start.UTC(),
		umpireIDs: a.UmpireIDs,
	}, nil
}

// checkConstraints evaluates every enabled hard constraint, consulting
// durable counts plus the batch ledger. It returns a skip reason, or "" when
// the assignment passes.
func (e *Engine) checkConstraints(a parsedAssignment, game *booking.GameContext, field league.Field, hard *HardConstraints, umpiresByID map[string]league.Umpire, lightsLoc *time.Location, led *ledger) (string, error) {
	if hard == nil {
		return "", nil
	}
	leagueID := game.LeagueSeasonID
	teams := []string{game.HomeTeamSeasonID, game.VisitorTeamSeasonID}

	if enabled(hard.NoTeamOverlap) {
		for _, teamID := range teams {
			durable, err := e.bookings.CountTeamBookingsAtTime(teamID, a.start, leagueID, a.gameID)
			if err != nil {
				return "", err
			}
			if durable+led.count(instantKey("team", teamID, a.start, leagueID)) > 0 {
				return reasonTeamBooked, nil
			}
		}
	}

	if enabled(hard.NoUmpireOverlap) {
		for _, umpireID := range a.umpireIDs {
			durable, err := e.bookings.CountUmpireBookingsAtTime(umpireID, a.start, leagueID, a.gameID)
			if err != nil {
				return "", err
			}
			if durable+led.count(instantKey("ump", umpireID, a.start, leagueID)) > 0 {
				return reasonUmpireBooked, nil
			}
		}
	}

	if enabled(hard.NoFieldOverlap) {
		durable, err := e.bookings.CountFieldBookingsAtTime(a.fieldID, a.start, leagueID, a.gameID)
		if err != nil {
			return "", err
		}
		if durable+led.count(instantKey("field", a.fieldID, a.start, leagueID)) >= field.MaxParallelGames {
			return reasonFieldBooked, nil
		}
	}

	if hard.MaxGamesPerTeamPerDay != nil {
		limit := *hard.MaxGamesPerTeamPerDay
		dayStart, dayEnd := utcDayBounds(a.start)
		for _, teamID := range teams {
			durable, err := e.bookings.CountTeamGamesInRange(teamID, dayStart, dayEnd, leagueID, a.gameID)
			if err != nil {
				return "", err
			}
			if durable+led.count(dayKey("team", teamID, a.start, leagueID)) >= limit {
				return reasonTeamDayLimit, nil
			}
		}
	}

	if hard.MaxGamesPerUmpirePerDay != nil {
		dayStart, dayEnd := utcDayBounds(a.start)
		for _, umpireID := range a.umpireIDs {
			limit := *hard.MaxGamesPerUmpirePerDay
			if umpire, ok := umpiresByID[umpireID]; ok && umpire.MaxGamesPerDay != nil {
				limit = *umpire.MaxGamesPerDay
			}
			durable, err := e.bookings.CountUmpireGamesInRange(umpireID, dayStart, dayEnd, leagueID, a.gameID)
			if err != nil {
				return "", err
			}
			if durable+led.count(dayKey("ump", umpireID, a.start, leagueID)) >= limit {
				return reasonUmpireDayLimit, nil
			}
		}
	}

	if hard.RequireLightsAfter != nil {
		// The lights threshold is the account-local hour even though daily
		// caps bucket on UTC days; the mixed frame matches the stored data.
		if a.start.In(lightsLoc).Hour() >= hard.RequireLightsAfter.StartHourLocal && !field.HasLights {
			return reasonFieldNoLights, nil
		}
	}

	return "", nil
}

// recordInLedger bumps every bucket an accepted assignment occupies.
func recordInLedger(led *ledger, a parsedAssignment, game *booking.GameContext) {
	leagueID := game.LeagueSeasonID
	led.add(instantKey("field", a.fieldID, a.start, leagueID))
	for _, teamID := range []string{game.HomeTeamSeasonID, game.VisitorTeamSeasonID} {
		led.add(instantKey("team", teamID, a.start, leagueID))
		led.add(dayKey("team", teamID, a.start, leagueID))
	}
	for _, umpireID := range a.umpireIDs {
		led.add(instantKey("ump", umpireID, a.start, leagueID))
		led.add(dayKey("ump", umpireID, a.start, leagueID))
	}
}

// sameAssignment reports whether the proposal matches the game's stored
// field, time and umpires, in which case persisting again is a no-op.
func sameAssignment(a parsedAssignment, game *booking.GameContext) bool {
	if game.FieldID == nil || *game.FieldID != a.fieldID {
		return false
	}
	if game.StartTime == nil || !game.StartTime.Equal(a.start) {
		return false
	}
	if len(game.UmpireIDs) != len(a.umpireIDs) {
		return false
	}
	for i := range a.umpireIDs {
		if game.UmpireIDs[i] != a.umpireIDs[i] {
			return false
		}
	}
	return true
}

func hardConstraintsOf(c *SolverConstraints) *HardConstraints {
	if c == nil {
		return nil
	}
	return c.Hard
}

func resolveLightsZone(hard *HardConstraints, accountTZ string) (*time.Location, error) {
	if hard == nil || hard.RequireLightsAfter == nil {
		return nil, nil
	}
	tz := hard.RequireLightsAfter.TimeZone
	if tz == "" {
		tz = accountTZ
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, validationErrorf("unresolvable timezone %q on requireLightsAfter", tz)
	}
	return loc, nil
}

func enabled(flag *bool) bool {
	return flag != nil && *flag
}
