package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/notifykit/svc/entity"
)

func ids(notifications []Notification) []string {
	out := make([]string, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, n.ID)
	}
	return out
}

func TestFilterResolvedNotes(t *testing.T) {
	t.Parallel()

	packed := map[string]entity.PackedNote{"n1": {ID: "n1"}}
	input := []Notification{
		{ID: "a", Type: KindMention, NoteID: ptr("n1")},
		{ID: "b", Type: KindMention, NoteID: ptr("n2")},
		{ID: "c", Type: KindFollow},
		{ID: "d", Type: KindReaction, NoteID: ptr("n1")},
	}

	got, dropped := filterResolvedNotes(input, packed)
	assert.Equal(t, []string{"a", "c", "d"}, ids(got))
	assert.Equal(t, 1, dropped)

	got, dropped = filterResolvedNotes(nil, packed)
	assert.Empty(t, got)
	assert.Zero(t, dropped)
}

func TestFilterPendingFollowRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []Notification
		pending []entity.FollowRequest
		want    []string
		dropped int
	}{
		{
			name: "pending request retained",
			input: []Notification{
				{ID: "a", Type: KindReceiveFollowRequest, NotifierID: ptr("u1")},
			},
			pending: []entity.FollowRequest{{FollowerID: "u1", FolloweeID: "me"}},
			want:    []string{"a"},
		},
		{
			name: "resolved request dropped",
			input: []Notification{
				{ID: "a", Type: KindReceiveFollowRequest, NotifierID: ptr("u1")},
				{ID: "b", Type: KindReceiveFollowRequest, NotifierID: ptr("u2")},
			},
			pending: []entity.FollowRequest{{FollowerID: "u2"}},
			want:    []string{"b"},
			dropped: 1,
		},
		{
			name: "request without actor dropped",
			input: []Notification{
				{ID: "a", Type: KindReceiveFollowRequest},
			},
			want:    []string{},
			dropped: 1,
		},
		{
			name: "other kinds pass untouched",
			input: []Notification{
				{ID: "a", Type: KindFollowRequestAccepted, NotifierID: ptr("u1")},
				{ID: "b", Type: KindFollow, NotifierID: ptr("u1")},
				{ID: "c", Type: KindApp},
			},
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := filterPendingFollowRequests(tt.input, tt.pending)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, tt.dropped, dropped)
		})
	}
}

func TestDistinct(t *testing.T) {
	t.Parallel()

	input := []Notification{
		{NotifierID: ptr("u2")},
		{NotifierID: ptr("u1")},
		{},
		{NotifierID: ptr("u2")},
	}
	got := distinct(input, func(n Notification) *string { return n.NotifierID })
	assert.Equal(t, []string{"u2", "u1"}, got)
}

func TestKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Kind("groupInvited").Valid())

	assert.True(t, KindMention.RequiresNote())
	assert.True(t, KindReaction.RequiresNote())
	assert.True(t, KindPollEnded.RequiresNote())
	assert.False(t, KindFollow.RequiresNote())
	assert.False(t, KindReceiveFollowRequest.RequiresNote())
	assert.False(t, KindApp.RequiresNote())
}
