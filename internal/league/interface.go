package league

// LeagueStore defines the read side for season reference data. Lookup
// methods return (nil, nil) when the record does not exist so callers can
// distinguish "not found" from a storage failure.
type LeagueStore interface {
	FindAccount(accountID string) (*Account, error)
	FindSeason(seasonID, accountID string) (*Season, error)
	ListSeasonTeams(seasonID string) ([]Team, error)
	ListAccountFields(accountID string) ([]Field, error)
	ListAccountUmpires(accountID string) ([]Umpire, error)
	ListSeasonGames(seasonID string) ([]GameInfo, error)
	ListAvailabilityRules(seasonID string) ([]AvailabilityRule, error)
}
