package domain

import "sort"

// Plan is the outcome of diffing a local file set against the remote
// object set of the same target. Applying it makes the bucket prefix
// mirror the folder.
type Plan struct {
	ToUpload []string
	ToDelete []string
}

// Empty reports whether the two sets were already identical.
func (p Plan) Empty() bool {
	return len(p.ToUpload) == 0 && len(p.ToDelete) == 0
}

// Diff computes which names exist only locally (to upload) and which exist
// only remotely (to delete). Names present on both sides are untouched:
// matching is by name only, file contents are never compared. Duplicates
// collapse and the results are sorted so logs stay stable.
func Diff(local, remote []string) Plan {
	localSet := toSet(local)
	remoteSet := toSet(remote)

	var plan Plan
	for name := range localSet {
		if _, ok := remoteSet[name]; !ok {
			plan.ToUpload = append(plan.ToUpload, name)
		}
	}
	for name := range remoteSet {
		if _, ok := localSet[name]; !ok {
			plan.ToDelete = append(plan.ToDelete, name)
		}
	}

	sort.Strings(plan.ToUpload)
	sort.Strings(plan.ToDelete)
	return plan
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
