package queue

import "sort"

// Less orders entries by priority score descending, then position ascending.
// Positions are unique per category so the order is total.
func Less(a, b *Entry) bool {
	if a.priorityScore != b.priorityScore {
		return a.priorityScore > b.priorityScore
	}
	if a.position != b.position {
		return a.position < b.position
	}
	return a.id.String() < b.id.String()
}

func SortForAllocation(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
}

// SelectEligible picks waiting entries in allocation order whose capped
// requests fit in what is left of capacity. An entry that does not fit is
// skipped and keeps its place for the next pass; smaller requests behind it
// may use the remainder.
func SelectEligible(entries []*Entry, capacity, maxPerOrder int) []*Entry {
	if capacity <= 0 {
		return nil
	}

	waiting := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if e.status == StatusWaiting {
			waiting = append(waiting, e)
		}
	}
	SortForAllocation(waiting)

	selected := make([]*Entry, 0)
	used := 0
	for _, e := range waiting {
		want := e.requestedQuantity
		if maxPerOrder > 0 && want > maxPerOrder {
			want = maxPerOrder
		}
		if used+want > capacity {
			continue
		}
		used += want
		selected = append(selected, e)
		if used == capacity {
			break
		}
	}
	return selected
}

// CountAhead returns how many waiting entries would be served before target.
func CountAhead(entries []*Entry, target *Entry) int {
	ahead := 0
	for _, e := range entries {
		if e.id == target.id || e.status != StatusWaiting {
			continue
		}
		if Less(e, target) {
			ahead++
		}
	}
	return ahead
}
