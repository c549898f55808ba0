package booking

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the BookingStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	FindGameWithContextFunc     func(gameID, accountID string) (*GameContext, error)
	CountTeamBookingsAtTimeFunc func(teamSeasonID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error)
	CountUmpireBookingsFunc     func(umpireID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error)
	CountFieldBookingsFunc      func(fieldID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error)
	CountTeamGamesInRangeFunc   func(teamSeasonID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error)
	CountUmpireGamesInRangeFunc func(umpireID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error)
	UpdateGameAssignmentFunc    func(gameID string, update GameAssignmentUpdate) error

	// Call records
	UpdateGameAssignmentCalls []struct {
		GameID string
		Update GameAssignmentUpdate
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) FindGameWithContext(gameID, accountID string) (*GameContext, error) {
	if m.FindGameWithContextFunc != nil {
		return m.FindGameWithContextFunc(gameID, accountID)
	}
	return nil, nil
}

func (m *MockStore) CountTeamBookingsAtTime(teamSeasonID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	if m.CountTeamBookingsAtTimeFunc != nil {
		return m.CountTeamBookingsAtTimeFunc(teamSeasonID, at, leagueSeasonID, excludeGameID)
	}
	return 0, nil
}

func (m *MockStore) CountUmpireBookingsAtTime(umpireID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	if m.CountUmpireBookingsFunc != nil {
		return m.CountUmpireBookingsFunc(umpireID, at, leagueSeasonID, excludeGameID)
	}
	return 0, nil
}

func (m *MockStore) CountFieldBookingsAtTime(fieldID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	if m.CountFieldBookingsFunc != nil {
		return m.CountFieldBookingsFunc(fieldID, at, leagueSeasonID, excludeGameID)
	}
	return 0, nil
}

func (m *MockStore) CountTeamGamesInRange(teamSeasonID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	if m.CountTeamGamesInRangeFunc != nil {
		return m.CountTeamGamesInRangeFunc(teamSeasonID, start, end, leagueSeasonID, excludeGameID)
	}
	return 0, nil
}

func (m *MockStore) CountUmpireGamesInRange(umpireID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	if m.CountUmpireGamesInRangeFunc != nil {
		return m.CountUmpireGamesInRangeFunc(umpireID, start, end, leagueSeasonID, excludeGameID)
	}
	return 0, nil
}

func (m *MockStore) UpdateGameAssignment(gameID string, update GameAssignmentUpdate) error {
	m.mu.Lock()
	m.UpdateGameAssignmentCalls = append(m.UpdateGameAssignmentCalls, struct {
		GameID string
		Update GameAssignmentUpdate
	}{gameID, update})
	m.mu.Unlock()
	if m.UpdateGameAssignmentFunc != nil {
		return m.UpdateGameAssignmentFunc(gameID, update)
	}
	return nil
}
