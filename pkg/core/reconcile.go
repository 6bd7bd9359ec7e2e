package core

import (
	"path/filepath"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/filesystem"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/arthur-debert/symkeeper/pkg/types"
)

// Result is the outcome of planning: what to do, and the record to persist
// once it has been done.
type Result struct {
	Plan  *types.ActionPlan
	State *types.PersistedState
}

// Reconcile plans and applies desired against previous. The returned state
// must only be persisted when err is nil.
func Reconcile(port filesystem.Port, desired types.DesiredState, previous *types.PersistedState, force bool) (*Result, error) {
	res, err := Plan(port, desired, previous, force)
	if err != nil {
		return nil, err
	}
	if err := Apply(port, res.Plan); err != nil {
		return nil, err
	}
	return res, nil
}

// Plan runs both gates and builds the action plan. It never mutates the
// filesystem.
func Plan(port filesystem.Port, desired types.DesiredState, previous *types.PersistedState, force bool) (*Result, error) {
	logger := logging.GetLogger("core.plan")
	prev := previous.OrEmpty()
	links := desired.Links()

	// Target existence gate
	var missing []string
	for _, link := range links {
		target := desired[link]
		ok, err := port.Exists(target)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, target)
		}
	}
	if len(missing) > 0 {
		logger.Debug().Strs("missing", missing).Msg("Targets do not exist")
		return nil, errors.NewPathSet(errors.ErrMissingTargets, "target does not exist", missing)
	}

	// Ownership gate and actions
	plan := &types.ActionPlan{}
	var conflicts []string
	for _, link := range links {
		target := desired[link]
		live, err := inspect(port, link)
		if err != nil {
			return nil, err
		}

		switch {
		case live.isLink && live.target == target:
			plan.Actions = append(plan.Actions, types.Action{Kind: types.ActionSkip, Link: link, Target: target})
			if !force && requiresForce(prev, link, live) {
				conflicts = append(conflicts, link)
			}
		case !live.occupied:
			plan.Actions = append(plan.Actions, types.Action{Kind: types.ActionCreate, Link: link, Target: target})
		default:
			plan.Actions = append(plan.Actions, types.Action{Kind: types.ActionReplace, Link: link, Target: target})
			if !force && requiresForce(prev, link, live) {
				conflicts = append(conflicts, link)
			}
		}
	}
	if len(conflicts) > 0 {
		logger.Debug().Strs("conflicts", conflicts).Msg("Links require --force")
		return nil, errors.NewPathSet(errors.ErrLinkConflict, "symlink already exists, use --force to overwrite", conflicts)
	}

	state := NextState(desired, prev)
	plan.Queued = state.PendingLinks()

	logger.Debug().
		Int("actions", len(plan.Actions)).
		Int("mutations", plan.Mutations()).
		Int("queued", len(plan.Queued)).
		Bool("force", force).
		Msg("Plan ready")
	return &Result{Plan: plan, State: state}, nil
}

// NextState computes the record that follows a successful apply of desired:
// desired becomes the managed set, and every link known before but no longer
// desired is pending removal.
func NextState(desired types.DesiredState, previous *types.PersistedState) *types.PersistedState {
	prev := previous.OrEmpty()
	next := types.NewPersistedState()
	for link, target := range desired {
		next.Managed[link] = target
	}
	for link := range prev.Managed {
		if _, ok := desired[link]; !ok {
			next.PendingRemoval[link] = struct{}{}
		}
	}
	for link := range prev.PendingRemoval {
		if _, ok := desired[link]; !ok {
			next.PendingRemoval[link] = struct{}{}
		}
	}
	return next
}

// requiresForce decides whether an occupied link may be overwritten without
// --force.
func requiresForce(prev *types.PersistedState, link string, live liveLink) bool {
	if prev.IsPendingRemoval(link) {
		return false
	}
	recorded, managed := prev.IsManaged(link)
	if !managed {
		return true
	}
	return !live.isLink || live.target != recorded
}

// Apply executes the plan in order and stops at the first failure.
func Apply(port filesystem.Port, plan *types.ActionPlan) error {
	logger := logging.GetLogger("core.apply")
	for _, action := range plan.Actions {
		switch action.Kind {
		case types.ActionSkip:
			logger.Debug().Str("link", action.Link).Msg("Already up to date")
			continue
		case types.ActionReplace:
			if err := port.Remove(action.Link); err != nil {
				return err
			}
		}
		if err := port.CreateParentDirs(action.Link); err != nil {
			return err
		}
		if err := port.CreateSymlink(action.Target, action.Link); err != nil {
			return err
		}
		logger.Info().Str("link", action.Link).Str("target", action.Target).Str("kind", string(action.Kind)).Msg("Symlink written")
	}
	return nil
}

// liveLink is what currently sits at a link path.
type liveLink struct {
	occupied bool
	isLink   bool
	// target is absolute and cleaned; relative symlinks are resolved
	// against the link's directory
	target string
}

func inspect(port filesystem.Port, link string) (liveLink, error) {
	occupied, err := port.Occupied(link)
	if err != nil || !occupied {
		return liveLink{}, err
	}
	raw, isLink, err := port.ReadSymlinkTarget(link)
	if err != nil {
		return liveLink{}, err
	}
	if !isLink {
		return liveLink{occupied: true}, nil
	}
	if !filepath.IsAbs(raw) {
		raw = filepath.Join(filepath.Dir(link), raw)
	}
	return liveLink{occupied: true, isLink: true, target: filepath.Clean(raw)}, nil
}
