package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	mysqlrepo "github.com/mamadbah2/agrilink/internal/repository/mysql"
	yieldsvc "github.com/mamadbah2/agrilink/internal/service/yield"
)

type archiverStub struct {
	byFarmer  map[uint]int
	byFarm    map[uint]int
	byProduct map[uint]int
	calls     []string
	failWith  error
}

func (a *archiverStub) DeleteByFarmer(ctx context.Context, farmerID uint) (int, error) {
	a.calls = append(a.calls, fmt.Sprintf("farmer:%d", farmerID))
	if a.failWith != nil {
		return 0, a.failWith
	}
	return a.byFarmer[farmerID], nil
}

func (a *archiverStub) DeleteByFarm(ctx context.Context, farmID uint) (int, error) {
	a.calls = append(a.calls, fmt.Sprintf("farm:%d", farmID))
	if a.failWith != nil {
		return 0, a.failWith
	}
	return a.byFarm[farmID], nil
}

func (a *archiverStub) DeleteByProduct(ctx context.Context, productID uint) (int, error) {
	a.calls = append(a.calls, fmt.Sprintf("product:%d", productID))
	if a.failWith != nil {
		return 0, a.failWith
	}
	return a.byProduct[productID], nil
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := mysqlrepo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newServiceOn(db *gorm.DB, archiver YieldArchiver) *Service {
	return NewService(
		mysqlrepo.NewFarmerRepository(db),
		mysqlrepo.NewFarmRepository(db),
		mysqlrepo.NewCatalogRepository(db),
		archiver,
		nil,
	)
}

func newTestService(t *testing.T, archiver YieldArchiver) (*Service, *gorm.DB) {
	t.Helper()
	db := openDB(t)
	return newServiceOn(db, archiver), db
}

func TestDeleteFarmer_CascadesThroughYieldsAndFarms(t *testing.T) {
	archiver := &archiverStub{byFarmer: map[uint]int{1: 3}}
	svc, db := newTestService(t, archiver)
	ctx := context.Background()

	farmer := &models.Farmer{FirstName: "Awa", LastName: "Diallo"}
	if err := svc.CreateFarmer(ctx, farmer); err != nil {
		t.Fatalf("create farmer: %v", err)
	}
	for _, name := range []string{"North plot", "South plot"} {
		if err := svc.CreateFarm(ctx, &models.Farm{Name: name, FarmerID: farmer.ID}); err != nil {
			t.Fatalf("create farm %q: %v", name, err)
		}
	}

	archived, err := svc.DeleteFarmer(ctx, farmer.ID)
	if err != nil {
		t.Fatalf("delete farmer: %v", err)
	}
	if archived != 3 {
		t.Fatalf("want 3 yields archived, got %d", archived)
	}
	// One farmer-scoped pass, then one farm-scoped pass per farm.
	if len(archiver.calls) != 3 || archiver.calls[0] != fmt.Sprintf("farmer:%d", farmer.ID) {
		t.Fatalf("archiver calls: %v", archiver.calls)
	}
	for _, call := range archiver.calls[1:] {
		if !strings.HasPrefix(call, "farm:") {
			t.Fatalf("archiver calls: %v", archiver.calls)
		}
	}

	var farms int64
	db.Model(&models.Farm{}).Count(&farms)
	if farms != 0 {
		t.Fatalf("farms should be removed with their owner, %d left", farms)
	}
	if _, err := svc.GetFarmer(ctx, farmer.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("farmer should be gone, got %v", err)
	}
}

func TestDeleteFarmer_ArchivesOtherFarmersYieldsOnTheirFarms(t *testing.T) {
	db := openDB(t)
	yields := yieldsvc.NewService(
		mysqlrepo.NewYieldRepository(db),
		mysqlrepo.NewAnnouncementRepository(db),
		nil,
	)
	svc := newServiceOn(db, yields)
	ctx := context.Background()

	owner := &models.Farmer{FirstName: "Awa", LastName: "Diallo"}
	visitor := &models.Farmer{FirstName: "Moussa", LastName: "Ba"}
	for _, farmer := range []*models.Farmer{owner, visitor} {
		if err := svc.CreateFarmer(ctx, farmer); err != nil {
			t.Fatalf("create farmer: %v", err)
		}
	}
	farm := &models.Farm{Name: "Riverside", FarmerID: owner.ID}
	if err := svc.CreateFarm(ctx, farm); err != nil {
		t.Fatalf("create farm: %v", err)
	}
	sector := &models.Sector{Name: "Cereals"}
	if err := svc.CreateSector(ctx, sector); err != nil {
		t.Fatalf("create sector: %v", err)
	}
	product := &models.Product{Name: "Corn", SectorID: sector.ID}
	if err := svc.CreateProduct(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	// The visitor declares a harvest on the owner's farm.
	if _, err := yields.Create(ctx, yieldsvc.CreateInput{
		FarmerID:      visitor.ID,
		ProductID:     product.ID,
		FarmID:        farm.ID,
		HarvestDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Volume:        40,
		AreaHarvested: 1.5,
	}, models.RoleFarmer); err != nil {
		t.Fatalf("create yield: %v", err)
	}

	archived, err := svc.DeleteFarmer(ctx, owner.ID)
	if err != nil {
		t.Fatalf("delete farmer: %v", err)
	}
	if archived != 1 {
		t.Fatalf("want the visitor's yield archived with the farm, got %d", archived)
	}

	var live, archives int64
	db.Model(&models.YieldRecord{}).Count(&live)
	db.Model(&models.YieldArchive{}).Count(&archives)
	if live != 0 || archives != 1 {
		t.Fatalf("want 0 live yields and 1 archive row, got %d and %d", live, archives)
	}
	var farms int64
	db.Model(&models.Farm{}).Count(&farms)
	if farms != 0 {
		t.Fatalf("farm should be removed, %d left", farms)
	}
	if _, err := svc.GetFarmer(ctx, visitor.ID); err != nil {
		t.Fatalf("the visiting farmer must survive: %v", err)
	}
}

func TestDeleteFarmer_Unknown(t *testing.T) {
	archiver := &archiverStub{}
	svc, _ := newTestService(t, archiver)

	if _, err := svc.DeleteFarmer(context.Background(), 42); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if len(archiver.calls) != 0 {
		t.Fatalf("archiver must not run for unknown farmer: %v", archiver.calls)
	}
}

func TestDeleteFarmer_KeepsFarmerWhenArchivalFails(t *testing.T) {
	archiver := &archiverStub{failWith: errors.New("storage down")}
	svc, _ := newTestService(t, archiver)
	ctx := context.Background()

	farmer := &models.Farmer{FirstName: "Moussa", LastName: "Ba"}
	if err := svc.CreateFarmer(ctx, farmer); err != nil {
		t.Fatalf("create farmer: %v", err)
	}

	if _, err := svc.DeleteFarmer(ctx, farmer.ID); err == nil {
		t.Fatal("delete should surface the archival failure")
	}
	if _, err := svc.GetFarmer(ctx, farmer.ID); err != nil {
		t.Fatalf("farmer must survive a failed cascade: %v", err)
	}
}

func TestCreateFarm_RequiresExistingFarmer(t *testing.T) {
	svc, _ := newTestService(t, &archiverStub{})

	err := svc.CreateFarm(context.Background(), &models.Farm{Name: "Orphan", FarmerID: 9})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing owner, got %v", err)
	}
}

func TestDeleteProduct_CascadesYields(t *testing.T) {
	archiver := &archiverStub{byProduct: map[uint]int{0: 0}}
	svc, _ := newTestService(t, archiver)
	ctx := context.Background()

	sector := &models.Sector{Name: "Cereals"}
	if err := svc.CreateSector(ctx, sector); err != nil {
		t.Fatalf("create sector: %v", err)
	}
	product := &models.Product{Name: "Corn", SectorID: sector.ID}
	if err := svc.CreateProduct(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	archiver.byProduct = map[uint]int{product.ID: 2}

	archived, err := svc.DeleteProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if archived != 2 {
		t.Fatalf("want 2 archived, got %d", archived)
	}
	if _, err := svc.GetProduct(ctx, product.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("product should be gone, got %v", err)
	}
}

func TestCreateProduct_RequiresExistingSector(t *testing.T) {
	svc, _ := newTestService(t, &archiverStub{})

	err := svc.CreateProduct(context.Background(), &models.Product{Name: "Corn", SectorID: 77})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing sector, got %v", err)
	}
}
