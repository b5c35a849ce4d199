package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	repo "github.com/mamadbah2/agrilink/internal/repository/mysql"
)

// YieldArchiver is the slice of the yield service the registry needs:
// archiving every yield owned by an entity before that entity is removed.
type YieldArchiver interface {
	DeleteByFarmer(ctx context.Context, farmerID uint) (int, error)
	DeleteByFarm(ctx context.Context, farmID uint) (int, error)
	DeleteByProduct(ctx context.Context, productID uint) (int, error)
}

// Service manages the registry entities: farmers, farms, products, sectors
// and associations. Deleting a farmer, farm or product cascades through the
// yield archiver first so no harvest history is lost.
type Service struct {
	farmers  repo.FarmerRepository
	farms    repo.FarmRepository
	catalog  repo.CatalogRepository
	archiver YieldArchiver
	logger   *zap.Logger
}

// NewService wires a registry service instance.
func NewService(farmers repo.FarmerRepository, farms repo.FarmRepository, catalog repo.CatalogRepository, archiver YieldArchiver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		farmers:  farmers,
		farms:    farms,
		catalog:  catalog,
		archiver: archiver,
		logger:   logger,
	}
}

// CreateFarmer registers a new producer.
func (s *Service) CreateFarmer(ctx context.Context, farmer *models.Farmer) error {
	return s.farmers.Create(ctx, farmer)
}

// GetFarmer returns one farmer by id.
func (s *Service) GetFarmer(ctx context.Context, id uint) (*models.Farmer, error) {
	return s.farmers.GetByID(ctx, id)
}

// ListFarmers returns all farmers ordered by name.
func (s *Service) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	return s.farmers.List(ctx)
}

// UpdateFarmer overwrites the farmer's mutable fields.
func (s *Service) UpdateFarmer(ctx context.Context, farmer *models.Farmer) error {
	return s.farmers.Update(ctx, farmer)
}

// DeleteFarmer archives every yield the farmer owns, then every yield
// declared on their farms (other farmers may declare there too), removes
// the farms, then removes the farmer. Returns the number of yields
// archived.
func (s *Service) DeleteFarmer(ctx context.Context, id uint) (int, error) {
	if _, err := s.farmers.GetByID(ctx, id); err != nil {
		return 0, err
	}

	archived, err := s.archiver.DeleteByFarmer(ctx, id)
	if err != nil {
		return archived, err
	}

	farms, err := s.farms.ListByFarmer(ctx, id)
	if err != nil {
		return archived, err
	}
	for _, farm := range farms {
		n, err := s.archiver.DeleteByFarm(ctx, farm.ID)
		archived += n
		if err != nil {
			return archived, err
		}
		if err := s.farms.Delete(ctx, farm.ID); err != nil {
			return archived, err
		}
	}

	if err := s.farmers.Delete(ctx, id); err != nil {
		return archived, err
	}

	s.logger.Info("farmer deleted",
		zap.Uint("farmer_id", id),
		zap.Int("yields_archived", archived),
		zap.Int("farms_removed", len(farms)))
	return archived, nil
}

// CreateFarm registers a new production site.
func (s *Service) CreateFarm(ctx context.Context, farm *models.Farm) error {
	if _, err := s.farmers.GetByID(ctx, farm.FarmerID); err != nil {
		return err
	}
	return s.farms.Create(ctx, farm)
}

// GetFarm returns one farm by id.
func (s *Service) GetFarm(ctx context.Context, id uint) (*models.Farm, error) {
	return s.farms.GetByID(ctx, id)
}

// ListFarms returns all farms ordered by name.
func (s *Service) ListFarms(ctx context.Context) ([]models.Farm, error) {
	return s.farms.List(ctx)
}

// UpdateFarm overwrites the farm's mutable fields. The product index is
// owned by the yield workflow and is not touched here.
func (s *Service) UpdateFarm(ctx context.Context, farm *models.Farm) error {
	return s.farms.Update(ctx, farm)
}

// DeleteFarm archives every yield declared on the farm before removing it.
// Returns the number of yields archived.
func (s *Service) DeleteFarm(ctx context.Context, id uint) (int, error) {
	if _, err := s.farms.GetByID(ctx, id); err != nil {
		return 0, err
	}

	archived, err := s.archiver.DeleteByFarm(ctx, id)
	if err != nil {
		return archived, err
	}

	if err := s.farms.Delete(ctx, id); err != nil {
		return archived, err
	}

	s.logger.Info("farm deleted", zap.Uint("farm_id", id), zap.Int("yields_archived", archived))
	return archived, nil
}

// CreateProduct registers a new product under a sector.
func (s *Service) CreateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.catalog.GetSector(ctx, product.SectorID); err != nil {
		return err
	}
	return s.catalog.CreateProduct(ctx, product)
}

// GetProduct returns one product by id.
func (s *Service) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}

// ListProducts returns all products ordered by name.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.catalog.ListProducts(ctx)
}

// UpdateProduct overwrites the product's mutable fields.
func (s *Service) UpdateProduct(ctx context.Context, product *models.Product) error {
	return s.catalog.UpdateProduct(ctx, product)
}

// DeleteProduct archives every yield declaring the product before removing
// it. Returns the number of yields archived.
func (s *Service) DeleteProduct(ctx context.Context, id uint) (int, error) {
	if _, err := s.catalog.GetProduct(ctx, id); err != nil {
		return 0, err
	}

	archived, err := s.archiver.DeleteByProduct(ctx, id)
	if err != nil {
		return archived, err
	}

	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return archived, err
	}

	s.logger.Info("product deleted", zap.Uint("product_id", id), zap.Int("yields_archived", archived))
	return archived, nil
}

// CreateSector registers a new sector.
func (s *Service) CreateSector(ctx context.Context, sector *models.Sector) error {
	return s.catalog.CreateSector(ctx, sector)
}

// GetSector returns one sector by id.
func (s *Service) GetSector(ctx context.Context, id uint) (*models.Sector, error) {
	return s.catalog.GetSector(ctx, id)
}

// ListSectors returns all sectors ordered by name.
func (s *Service) ListSectors(ctx context.Context) ([]models.Sector, error) {
	return s.catalog.ListSectors(ctx)
}

// UpdateSector overwrites the sector's mutable fields.
func (s *Service) UpdateSector(ctx context.Context, sector *models.Sector) error {
	return s.catalog.UpdateSector(ctx, sector)
}

// DeleteSector removes a sector.
func (s *Service) DeleteSector(ctx context.Context, id uint) error {
	return s.catalog.DeleteSector(ctx, id)
}

// CreateAssociation registers a new association.
func (s *Service) CreateAssociation(ctx context.Context, association *models.Association) error {
	return s.catalog.CreateAssociation(ctx, association)
}

// GetAssociation returns one association by id.
func (s *Service) GetAssociation(ctx context.Context, id uint) (*models.Association, error) {
	return s.catalog.GetAssociation(ctx, id)
}

// ListAssociations returns all associations ordered by name.
func (s *Service) ListAssociations(ctx context.Context) ([]models.Association, error) {
	return s.catalog.ListAssociations(ctx)
}

// UpdateAssociation overwrites the association's mutable fields.
func (s *Service) UpdateAssociation(ctx context.Context, association *models.Association) error {
	return s.catalog.UpdateAssociation(ctx, association)
}

// DeleteAssociation removes an association.
func (s *Service) DeleteAssociation(ctx context.Context, id uint) error {
	return s.catalog.DeleteAssociation(ctx, id)
}
