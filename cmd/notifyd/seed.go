package main

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/svc/entity"
	"github.com/dmitrymomot/notifykit/svc/notification"
	"github.com/dmitrymomot/notifykit/svc/store"
)

// seedDemo creates a viewer "demo" with a small mixed feed, including one
// mention of a deleted note and one stale follow request that packing drops.
func seedDemo(mem *store.Memory, log *slog.Logger) {
	now := time.Now().UTC()

	demo := mem.AddUser(entity.User{ID: "demo", Username: "demo"})
	alice := mem.AddUser(entity.User{Username: "alice"})
	bob := mem.AddUser(entity.User{Username: "bob", IsBot: true})

	text := func(s string) *string { return &s }
	post, _ := mem.AddNote(entity.Note{UserID: demo.ID, Text: text("hello fediverse")})
	reply, _ := mem.AddNote(entity.Note{UserID: alice.ID, Text: text("welcome!"), ReplyID: &post.ID})
	deleted, _ := mem.AddNote(entity.Note{UserID: bob.ID, Text: text("@demo soon gone")})
	mem.DeleteNote(deleted.ID)

	mem.AddFollowRequest(entity.FollowRequest{FollowerID: alice.ID, FolloweeID: demo.ID})

	feed := []notification.Notification{
		{Type: notification.KindFollow, NotifierID: &bob.ID},
		{Type: notification.KindReceiveFollowRequest, NotifierID: &alice.ID},
		{Type: notification.KindReceiveFollowRequest, NotifierID: &bob.ID},
		{Type: notification.KindReply, NotifierID: &alice.ID, NoteID: &reply.ID},
		{Type: notification.KindMention, NotifierID: &bob.ID, NoteID: &deleted.ID},
		{Type: notification.KindReaction, NotifierID: &alice.ID, NoteID: &post.ID, Reaction: "👍"},
		{Type: notification.KindAchievementEarned, Achievement: "notes1"},
		{Type: notification.KindApp, CustomBody: "Your export is ready", CustomHeader: text("Exports")},
	}
	for i, n := range feed {
		n.NotifieeID = demo.ID
		n.CreatedAt = now.Add(time.Duration(i-len(feed)) * time.Minute)
		if _, err := mem.AddNotification(n); err != nil {
			log.Warn("failed to seed notification", logger.Error(err))
		}
	}

	log.Info("seeded demo data", slog.String("viewer", demo.ID), logger.Count("notifications", len(feed)))
}
