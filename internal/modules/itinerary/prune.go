package itinerary

import (
	"tripsmith/internal/modules/geo"
)

// MaxHopKm is the largest plausible jump between two consecutive stops
// within one day. Anything beyond this is treated as a model hallucination.
const MaxHopKm = 5.5

// Prune removes itinerary items that represent an implausible sequential
// geographic jump. Per day, items are scanned left to right against the last
// retained item; an item is dropped when both carry coordinates and the
// great-circle distance between them exceeds MaxHopKm. A dropped item never
// becomes the comparison anchor. The first item of a day is always kept.
//
// The result is a subsequence of the input (no reordering, no insertion)
// and the pass is idempotent.
func Prune(it *Itinerary) {
	for di := range it.DailyPlan {
		day := &it.DailyPlan[di]

		pruned := make([]Item, 0, len(day.Items))
		var last *Item
		for i := range day.Items {
			item := day.Items[i]
			if last != nil && last.HasCoords() && item.HasCoords() {
				if geo.DistanceKm(*last.Lat, *last.Lon, *item.Lat, *item.Lon) > MaxHopKm {
					continue
				}
			}
			pruned = append(pruned, item)
			last = &pruned[len(pruned)-1]
		}
		day.Items = pruned
	}
}
