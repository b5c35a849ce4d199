package yield

import (
	"strings"
	"testing"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

func TestDeriveAnnouncement_IdentityTransitionsStaySilent(t *testing.T) {
	for _, status := range []models.YieldStatus{
		models.YieldStatusPending,
		models.YieldStatusAccepted,
		models.YieldStatusRejected,
	} {
		if got := DeriveAnnouncement(status, status, "Awa Diallo", "Corn", 100, 2.5); got != nil {
			t.Fatalf("expected nil for %s -> %s, got %+v", status, status, got)
		}
	}
}

func TestDeriveAnnouncement_CaseInsensitive(t *testing.T) {
	if got := DeriveAnnouncement("PENDING", "pending", "Awa Diallo", "Corn", 100, 2.5); got != nil {
		t.Fatalf("expected nil for case-variant identity transition, got %+v", got)
	}
	got := DeriveAnnouncement("pending", "ACCEPTED", "Awa Diallo", "Corn", 100, 2.5)
	if got == nil {
		t.Fatal("expected announcement for pending -> ACCEPTED")
	}
	if got.Title != "Harvest Accepted! ✅" {
		t.Fatalf("unexpected title %q", got.Title)
	}
}

func TestDeriveAnnouncement_Accepted(t *testing.T) {
	got := DeriveAnnouncement(models.YieldStatusPending, models.YieldStatusAccepted, "Awa Diallo", "Corn", 100, 2.5)
	if got == nil {
		t.Fatal("expected announcement for Pending -> Accepted")
	}
	if got.Title != "Harvest Accepted! ✅" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	if !strings.Contains(got.Message, "100.00") || !strings.Contains(got.Message, "2.50") {
		t.Fatalf("message should carry volume and area, got %q", got.Message)
	}

	reconsidered := DeriveAnnouncement(models.YieldStatusRejected, models.YieldStatusAccepted, "Awa Diallo", "Corn", 100, 2.5)
	if reconsidered == nil {
		t.Fatal("expected announcement for Rejected -> Accepted")
	}
	if reconsidered.Title != "Harvest Accepted! ✅" {
		t.Fatalf("unexpected title %q", reconsidered.Title)
	}
	if reconsidered.Message == got.Message {
		t.Fatal("reconsideration wording should differ from first acceptance")
	}
	if !strings.Contains(reconsidered.Message, "100.00") || !strings.Contains(reconsidered.Message, "2.50") {
		t.Fatalf("message should carry volume and area, got %q", reconsidered.Message)
	}
}

func TestDeriveAnnouncement_Resubmission(t *testing.T) {
	got := DeriveAnnouncement(models.YieldStatusRejected, models.YieldStatusPending, "Awa Diallo", "Corn", 100, 2.5)
	if got == nil {
		t.Fatal("expected announcement for Rejected -> Pending")
	}
	if got.Title != "Harvest Resubmitted" {
		t.Fatalf("unexpected title %q", got.Title)
	}

	if got := DeriveAnnouncement(models.YieldStatusAccepted, models.YieldStatusPending, "Awa Diallo", "Corn", 100, 2.5); got != nil {
		t.Fatalf("Accepted -> Pending has no rule, got %+v", got)
	}
}

func TestDeriveAnnouncement_Rejected(t *testing.T) {
	for _, from := range []models.YieldStatus{models.YieldStatusPending, models.YieldStatusAccepted} {
		got := DeriveAnnouncement(from, models.YieldStatusRejected, "Awa Diallo", "Corn", 100, 2.5)
		if got == nil {
			t.Fatalf("expected announcement for %s -> Rejected", from)
		}
		if got.Title != "Harvest Status Updated" {
			t.Fatalf("unexpected title %q", got.Title)
		}
		if !strings.Contains(got.Message, "resubmit") {
			t.Fatalf("rejection message should invite a resubmission, got %q", got.Message)
		}
	}
}

func TestDeriveAnnouncement_UnknownStatus(t *testing.T) {
	if got := DeriveAnnouncement(models.YieldStatusPending, "Archived", "Awa Diallo", "Corn", 100, 2.5); got != nil {
		t.Fatalf("unknown target status should stay silent, got %+v", got)
	}
	if got := DeriveAnnouncement("Draft", models.YieldStatusAccepted, "Awa Diallo", "Corn", 100, 2.5); got != nil {
		t.Fatalf("unknown prior status should stay silent, got %+v", got)
	}
}
