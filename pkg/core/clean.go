package core

import (
	"github.com/arthur-debert/symkeeper/pkg/filesystem"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/arthur-debert/symkeeper/pkg/types"
)

// CleanResult is the pruned record and the links that were actually removed.
type CleanResult struct {
	State   *types.PersistedState
	Removed []string
}

// Clean removes every link pending removal, in sorted order. Links that are
// already gone are skipped. On any failure no state is returned, so the
// caller keeps the previous record and the whole set is retried next time.
func Clean(port filesystem.Port, previous *types.PersistedState) (*CleanResult, error) {
	logger := logging.GetLogger("core.clean")
	prev := previous.OrEmpty()

	var removed []string
	for _, link := range prev.PendingLinks() {
		occupied, err := port.Occupied(link)
		if err != nil {
			return nil, err
		}
		if !occupied {
			logger.Debug().Str("link", link).Msg("Already removed")
			continue
		}
		if err := port.Remove(link); err != nil {
			return nil, err
		}
		logger.Info().Str("link", link).Msg("Removed link")
		removed = append(removed, link)
	}

	state := prev.Clone()
	state.PendingRemoval = make(map[string]struct{})
	return &CleanResult{State: state, Removed: removed}, nil
}
