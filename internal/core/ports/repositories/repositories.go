package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo               UserRepositoryFacade
	NoteRepo               NoteRepositoryFacade
	RefreshTokenRepo       TokenRepository
	EmailTokenRepo         TokenRepository
	PasswordResetTokenRepo TokenRepository
}

// TokenRepos returns the three token stores, for callers that treat them uniformly.
func (p RepositoryProvider) TokenRepos() []TokenRepository {
	return []TokenRepository{p.RefreshTokenRepo, p.EmailTokenRepo, p.PasswordResetTokenRepo}
}
