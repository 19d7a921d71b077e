package exchange

import "lendloop/listing"

// Dashboard groups a viewer's transactions into presentation buckets.
type Dashboard struct {
	ActionRequired  []Entry
	PendingOnOthers []Entry
	Active          []Entry
	History         []Entry
}

// Projector classifies transactions for one viewer. It is stateless and
// performs no I/O, so it is safe to share across goroutines.
type Projector struct {
	// HistoryIncludesCancelled also places cancelled transactions in the
	// history bucket. Off by default: the dashboard traditionally hides them.
	HistoryIncludesCancelled bool
}

// Classify splits the entries into the four dashboard buckets. A pending
// transaction needs the viewer's response when the viewer is the party who
// holds the item: the owner of a give listing, or the initiator who offered
// to fulfill a take listing. Every entry lands in at most one bucket.
func (p Projector) Classify(entries []Entry, viewerID string) Dashboard {
	var d Dashboard
	for _, e := range entries {
		switch e.Status {
		case StatusPending:
			if p.needsViewerResponse(e, viewerID) {
				d.ActionRequired = append(d.ActionRequired, e)
			} else {
				d.PendingOnOthers = append(d.PendingOnOthers, e)
			}
		case StatusActive:
			d.Active = append(d.Active, e)
		case StatusCompleted, StatusRejected:
			d.History = append(d.History, e)
		case StatusCancelled:
			if p.HistoryIncludesCancelled {
				d.History = append(d.History, e)
			}
		}
	}
	return d
}

func (p Projector) needsViewerResponse(e Entry, viewerID string) bool {
	viewerIsOwner := e.OwnerID == viewerID
	if e.Direction == listing.DirectionGive {
		return viewerIsOwner
	}
	return !viewerIsOwner
}
