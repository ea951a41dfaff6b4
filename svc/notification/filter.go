package notification

import (
	"github.com/dmitrymomot/notifykit/svc/entity"
)

// filterResolvedNotes keeps notifications that reference no note or whose note
// was packed. It returns the retained notifications in input order and the
// number dropped.
func filterResolvedNotes(notifications []Notification, packed map[string]entity.PackedNote) ([]Notification, int) {
	out := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.NoteID != nil {
			if _, ok := packed[*n.NoteID]; !ok {
				continue
			}
		}
		out = append(out, n)
	}
	return out, len(notifications) - len(out)
}

// filterPendingFollowRequests keeps receiveFollowRequest notifications only
// when a pending request from the same actor exists. Other kinds, including
// followRequestAccepted, always pass.
func filterPendingFollowRequests(notifications []Notification, pending []entity.FollowRequest) ([]Notification, int) {
	followers := make(map[string]struct{}, len(pending))
	for _, r := range pending {
		followers[r.FollowerID] = struct{}{}
	}

	out := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.Type == KindReceiveFollowRequest {
			if n.NotifierID == nil {
				continue
			}
			if _, ok := followers[*n.NotifierID]; !ok {
				continue
			}
		}
		out = append(out, n)
	}
	return out, len(notifications) - len(out)
}
