package core

import (
	"sort"

	"github.com/arthur-debert/symkeeper/pkg/filesystem"
	"github.com/arthur-debert/symkeeper/pkg/types"
)

// Status reports every recorded link and every configured link the record
// does not know yet. It never mutates anything. desired may be nil.
func Status(port filesystem.Port, desired types.DesiredState, previous *types.PersistedState) ([]types.LinkStatus, error) {
	prev := previous.OrEmpty()
	var rows []types.LinkStatus

	for _, link := range prev.ManagedLinks() {
		recorded := prev.Managed[link]
		live, err := inspect(port, link)
		if err != nil {
			return nil, err
		}
		row := types.LinkStatus{Link: link, Target: recorded, Live: live.target}
		switch {
		case !live.occupied:
			row.State = types.LinkMissing
		case live.isLink && live.target == recorded:
			row.State = types.LinkOK
		default:
			row.State = types.LinkDrifted
		}
		rows = append(rows, row)
	}

	for _, link := range prev.PendingLinks() {
		live, err := inspect(port, link)
		if err != nil {
			return nil, err
		}
		rows = append(rows, types.LinkStatus{Link: link, Live: live.target, State: types.LinkPendingRemoval})
	}

	for _, link := range desired.Links() {
		if _, ok := prev.IsManaged(link); ok || prev.IsPendingRemoval(link) {
			continue
		}
		live, err := inspect(port, link)
		if err != nil {
			return nil, err
		}
		rows = append(rows, types.LinkStatus{Link: link, Target: desired[link], Live: live.target, State: types.LinkUnrecorded})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Link < rows[j].Link })
	return rows, nil
}
