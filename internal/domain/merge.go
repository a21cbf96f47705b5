package domain

// MergeTrips reconciles the local trip set with an authoritative pull.
//
// Server records win for every ID present on both sides. Local trips whose
// ID is still local are kept after the server records. Local trips with a
// server-assigned ID that the server did not return are dropped: the server
// is the deletion authority.
func MergeTrips(local, server []Trip) []Trip {
	merged := make([]Trip, 0, len(server)+len(local))
	seen := make(map[string]struct{}, len(server))

	for _, t := range server {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}

	for _, t := range local {
		if !t.IsLocal() {
			continue
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}

	return merged
}

// FindTrip returns the index of the trip with id, or -1
func FindTrip(trips []Trip, id string) int {
	for i, t := range trips {
		if t.ID == id {
			return i
		}
	}
	return -1
}
