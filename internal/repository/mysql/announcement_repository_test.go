package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

func TestAnnouncementRepository_CreateAndFeed(t *testing.T) {
	db := openTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	ann := &models.Announcement{
		Title:    "Harvest Accepted! ✅",
		Message:  "Your corn harvest has been validated.",
		Audience: models.AudienceFarmer,
		FarmerID: 7,
	}
	if err := repo.CreateWithNotification(ctx, ann); err != nil {
		t.Fatalf("create: %v", err)
	}
	if ann.ID == 0 {
		t.Fatal("announcement id should be assigned on insert")
	}

	feed, err := repo.ListByFarmer(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("want 1 notification, got %d", len(feed))
	}
	item := feed[0]
	if item.AnnouncementID != ann.ID || item.Title != ann.Title {
		t.Fatalf("feed item does not reference announcement: %+v", item)
	}
	if item.Read {
		t.Fatal("new notification must start unread")
	}

	other, err := repo.ListByFarmer(ctx, 8)
	if err != nil {
		t.Fatalf("list other farmer: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("feed leaked across farmers: %+v", other)
	}
}

func TestAnnouncementRepository_MarkRead(t *testing.T) {
	db := openTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	ann := &models.Announcement{Title: "Harvest Status Updated", Audience: models.AudienceFarmer, FarmerID: 7}
	if err := repo.CreateWithNotification(ctx, ann); err != nil {
		t.Fatalf("create: %v", err)
	}
	feed, err := repo.ListByFarmer(ctx, 7)
	if err != nil || len(feed) != 1 {
		t.Fatalf("feed: %v %v", feed, err)
	}

	// A different farmer cannot flip someone else's marker.
	if err := repo.MarkRead(ctx, 8, feed[0].ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound for foreign farmer, got %v", err)
	}

	if err := repo.MarkRead(ctx, 7, feed[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	feed, err = repo.ListByFarmer(ctx, 7)
	if err != nil {
		t.Fatalf("reload feed: %v", err)
	}
	if !feed[0].Read {
		t.Fatal("notification should be read after MarkRead")
	}
}
