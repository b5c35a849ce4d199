package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedWorld(t *testing.T, db *gorm.DB) {
	t.Helper()
	fixtures := []interface{}{
		&models.Sector{ID: 1, Name: "Cereals"},
		&models.Product{ID: 5, Name: "Corn", SectorID: 1},
		&models.Product{ID: 6, Name: "Millet", SectorID: 1},
		&models.Farmer{ID: 1, FirstName: "Awa", LastName: "Diallo"},
		&models.Farm{ID: 10, Name: "Riverside", FarmerID: 1, ProductIDs: models.IDList{}},
	}
	for _, fixture := range fixtures {
		if err := db.Create(fixture).Error; err != nil {
			t.Fatalf("seed %T: %v", fixture, err)
		}
	}
}

func newRecord() *models.YieldRecord {
	return &models.YieldRecord{
		FarmerID:      1,
		ProductID:     5,
		FarmID:        10,
		HarvestDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Volume:        100,
		AreaHarvested: 2.5,
		Status:        models.YieldStatusPending,
	}
}

func TestYieldRepository_CreateSyncsFarmIndex(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Create(ctx, newRecord()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	var farm models.Farm
	if err := db.First(&farm, 10).Error; err != nil {
		t.Fatalf("load farm: %v", err)
	}
	count := 0
	for _, pid := range farm.ProductIDs {
		if pid == 5 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("product 5 should appear exactly once in farm index, got %v", farm.ProductIDs)
	}
}

func TestYieldRepository_CreateUnknownFarm(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)

	rec := newRecord()
	rec.FarmID = 99
	if err := repo.Create(context.Background(), rec); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	var count int64
	db.Model(&models.YieldRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("no record should persist when the farm lookup fails, got %d", count)
	}
}

func TestYieldRepository_GetDetailJoinsNames(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)
	ctx := context.Background()

	rec := newRecord()
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := repo.GetDetail(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.FarmerName != "Awa Diallo" {
		t.Fatalf("farmer name %q", detail.FarmerName)
	}
	if detail.ProductName != "Corn" || detail.SectorName != "Cereals" {
		t.Fatalf("product %q sector %q", detail.ProductName, detail.SectorName)
	}
	if detail.FarmName != "Riverside" {
		t.Fatalf("farm name %q", detail.FarmName)
	}
}

func TestYieldRepository_UpdateOverwritesAllFields(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)
	ctx := context.Background()

	rec := newRecord()
	rec.Notes = "weighed on the old scale, re-check"
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	value := 1500.0
	updated := *rec
	updated.Volume = 120
	updated.Value = &value
	updated.Notes = ""
	updated.Status = models.YieldStatusAccepted
	if err := repo.Update(ctx, &updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Volume != 120 || got.Status != models.YieldStatusAccepted {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Value == nil || *got.Value != 1500 {
		t.Fatalf("monetary value not applied: %+v", got.Value)
	}
	if got.Notes != "" {
		t.Fatalf("zero-value notes must overwrite, still %q", got.Notes)
	}
}

func TestYieldRepository_UpdateUnknownRecord(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)

	rec := newRecord()
	rec.ID = 404
	if err := repo.Update(context.Background(), rec); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestYieldRepository_ArchiveAndDelete(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)
	ctx := context.Background()

	first := newRecord()
	second := newRecord()
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	if err := repo.ArchiveAndDelete(ctx, first.ID); err != nil {
		t.Fatalf("archive first: %v", err)
	}

	var archive models.YieldArchive
	if err := db.Where("yield_id = ?", first.ID).First(&archive).Error; err != nil {
		t.Fatalf("archive row missing: %v", err)
	}
	if archive.DeleteDate.IsZero() {
		t.Fatal("archive must carry a deletion timestamp")
	}
	if archive.FarmerName != "Awa Diallo" || archive.ProductName != "Corn" {
		t.Fatalf("archive should denormalize names, got %+v", archive)
	}
	if _, err := repo.GetByID(ctx, first.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("live record should be gone, got %v", err)
	}

	// A sibling still references (farm 10, product 5): index untouched.
	var farm models.Farm
	if err := db.First(&farm, 10).Error; err != nil {
		t.Fatalf("load farm: %v", err)
	}
	if !farm.ProductIDs.Contains(5) {
		t.Fatal("farm index pruned while a sibling yield remains")
	}

	if err := repo.ArchiveAndDelete(ctx, second.ID); err != nil {
		t.Fatalf("archive second: %v", err)
	}
	if err := db.First(&farm, 10).Error; err != nil {
		t.Fatalf("reload farm: %v", err)
	}
	if farm.ProductIDs.Contains(5) {
		t.Fatal("farm index should drop product 5 after the last yield is deleted")
	}
}

func TestYieldRepository_ArchiveUnknownRecord(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)

	if err := repo.ArchiveAndDelete(context.Background(), 404); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestYieldRepository_ListIDs(t *testing.T) {
	db := openTestDB(t)
	seedWorld(t, db)
	repo := NewYieldRepository(db)
	ctx := context.Background()

	corn := newRecord()
	millet := newRecord()
	millet.ProductID = 6
	if err := repo.Create(ctx, corn); err != nil {
		t.Fatalf("create corn: %v", err)
	}
	if err := repo.Create(ctx, millet); err != nil {
		t.Fatalf("create millet: %v", err)
	}

	byFarmer, err := repo.ListIDsByFarmer(ctx, 1)
	if err != nil {
		t.Fatalf("list by farmer: %v", err)
	}
	if len(byFarmer) != 2 {
		t.Fatalf("want 2 ids for farmer 1, got %v", byFarmer)
	}

	byProduct, err := repo.ListIDsByProduct(ctx, 6)
	if err != nil {
		t.Fatalf("list by product: %v", err)
	}
	if len(byProduct) != 1 || byProduct[0] != millet.ID {
		t.Fatalf("want [%d], got %v", millet.ID, byProduct)
	}
}
