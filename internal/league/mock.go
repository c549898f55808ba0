package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	FindAccountFunc           func(accountID string) (*Account, error)
	FindSeasonFunc            func(seasonID, accountID string) (*Season, error)
	ListSeasonTeamsFunc       func(seasonID string) ([]Team, error)
	ListAccountFieldsFunc     func(accountID string) ([]Field, error)
	ListAccountUmpiresFunc    func(accountID string) ([]Umpire, error)
	ListSeasonGamesFunc       func(seasonID string) ([]GameInfo, error)
	ListAvailabilityRulesFunc func(seasonID string) ([]AvailabilityRule, error)

	// Call records
	FindAccountCalls           []string
	FindSeasonCalls            []string
	ListAvailabilityRulesCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) FindAccount(accountID string) (*Account, error) {
	m.mu.Lock()
	m.FindAccountCalls = append(m.FindAccountCalls, accountID)
	m.mu.Unlock()
	if m.FindAccountFunc != nil {
		return m.FindAccountFunc(accountID)
	}
	return nil, nil
}

func (m *MockStore) FindSeason(seasonID, accountID string) (*Season, error) {
	m.mu.Lock()
	m.FindSeasonCalls = append(m.FindSeasonCalls, seasonID)
	m.mu.Unlock()
	if m.FindSeasonFunc != nil {
		return m.FindSeasonFunc(seasonID, accountID)
	}
	return nil, nil
}

func (m *MockStore) ListSeasonTeams(seasonID string) ([]Team, error) {
	if m.ListSeasonTeamsFunc != nil {
		return m.ListSeasonTeamsFunc(seasonID)
	}
	return nil, nil
}

func (m *MockStore) ListAccountFields(accountID string) ([]Field, error) {
	if m.ListAccountFieldsFunc != nil {
		return m.ListAccountFieldsFunc(accountID)
	}
	return nil, nil
}

func (m *MockStore) ListAccountUmpires(accountID string) ([]Umpire, error) {
	if m.ListAccountUmpiresFunc != nil {
		return m.ListAccountUmpiresFunc(accountID)
	}
	return nil, nil
}

func (m *MockStore) ListSeasonGames(seasonID string) ([]GameInfo, error) {
	if m.ListSeasonGamesFunc != nil {
		return m.ListSeasonGamesFunc(seasonID)
	}
	return nil, nil
}

func (m *MockStore) ListAvailabilityRules(seasonID string) ([]AvailabilityRule, error) {
	m.mu.Lock()
	m.ListAvailabilityRulesCalls = append(m.ListAvailabilityRulesCalls, seasonID)
	m.mu.Unlock()
	if m.ListAvailabilityRulesFunc != nil {
		return m.ListAvailabilityRulesFunc(seasonID)
	}
	return nil, nil
}
