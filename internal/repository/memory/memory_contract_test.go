package memory

import (
	"testing"

	"github.com/fcabl/league-service/internal/repository/contract"
)

func makeRepos(t *testing.T) (contract.Repos, func()) {
	t.Helper()
	s := New(nil)
	return contract.Repos{
		Teams:    s.Teams(),
		Users:    s.Users(),
		Players:  s.Players(),
		Games:    s.Games(),
		Payments: s.Payments(),
		Tx:       s,
		Pinger:   s,
	}, s.Reset
}

func TestMemoryContract(t *testing.T) {
	contract.RunAll(t, makeRepos)
}
