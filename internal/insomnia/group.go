package insomnia

import (
	"sort"

	"github.com/docstack/swagger2insomnia/internal/spec"
)

// preferredTagOrder lists known tags rendered ahead of everything else.
// Tags outside this list follow in the order they are first seen while
// scanning the source document.
var preferredTagOrder = []string{"meta", "chain", "game"}

// fallbackTag groups operations that declare no tags at all.
const fallbackTag = "other"

// Folder is a named group of operations rendered as one collection folder.
type Folder struct {
	Tag        string
	Operations []spec.Operation
	Secured    bool // at least one member operation declares security
}

// GroupByTag partitions operations into folders. An operation carrying
// several tags appears in every matching folder. Within a folder,
// operations sort by (path, method) ascending, case-sensitive.
func GroupByTag(ops []spec.Operation) []Folder {
	grouped := make(map[string][]spec.Operation)
	var seen []string
	add := func(tag string, op spec.Operation) {
		if _, ok := grouped[tag]; !ok {
			seen = append(seen, tag)
		}
		grouped[tag] = append(grouped[tag], op)
	}
	for _, op := range ops {
		if len(op.Tags) == 0 {
			add(fallbackTag, op)
			continue
		}
		for _, tag := range op.Tags {
			add(tag, op)
		}
	}

	order := make([]string, 0, len(seen))
	for _, tag := range preferredTagOrder {
		if _, ok := grouped[tag]; ok {
			order = append(order, tag)
		}
	}
	for _, tag := range seen {
		if !isPreferredTag(tag) {
			order = append(order, tag)
		}
	}

	folders := make([]Folder, 0, len(order))
	for _, tag := range order {
		members := grouped[tag]
		sort.Slice(members, func(i, j int) bool {
			if members[i].Path == members[j].Path {
				return members[i].Method < members[j].Method
			}
			return members[i].Path < members[j].Path
		})
		folder := Folder{Tag: tag, Operations: members}
		for _, op := range members {
			if op.Secured {
				folder.Secured = true
				break
			}
		}
		folders = append(folders, folder)
	}
	return folders
}

func isPreferredTag(tag string) bool {
	for _, t := range preferredTagOrder {
		if t == tag {
			return true
		}
	}
	return false
}
