package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/messaging"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

// CatalogService covers the three role-scoped listing surfaces: produce,
// demand requests, and transport capacity.
type CatalogService struct {
	products   repository.ProductRepository
	demands    repository.DemandRepository
	transports repository.TransportRepository
	publisher  messaging.Publisher
}

func NewCatalogService(
	products repository.ProductRepository,
	demands repository.DemandRepository,
	transports repository.TransportRepository,
	publisher messaging.Publisher,
) *CatalogService {
	return &CatalogService{
		products:   products,
		demands:    demands,
		transports: transports,
		publisher:  publisher,
	}
}

// publishBestEffort publishes a fan-out event and swallows any failure.
// Notification delivery must never fail or roll back the creation that
// triggered it.
func (s *CatalogService) publishBestEffort(ctx context.Context, topic, key string, event entity.Event) {
	if err := s.publisher.PublishEvent(ctx, topic, key, event); err != nil {
		slog.Error("Failed to publish event, continuing", "topic", topic, "event", event.EventType(), "err", err)
	}
}

// --- Products ---

func (s *CatalogService) ListProducts(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	return s.products.Find(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.products.FindByID(ctx, id)
}

// CreateProduct lists new produce. Farmer only; retailers are told about the
// listing through the fan-out pipeline.
func (s *CatalogService) CreateProduct(ctx context.Context, caller *session.Session, p *entity.Product) (*entity.Product, error) {
	if err := requireRole(caller, entity.RoleFarmer); err != nil {
		return nil, err
	}

	p.ID = uuid.NewString()
	p.FarmerID = caller.UserID
	p.IsAvailable = p.Quantity > 0
	p.CreatedAt = time.Now()
	if p.Quality == "" {
		p.Quality = entity.QualityStandard
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("Product listed", "product_id", p.ID, "farmer_id", p.FarmerID)

	s.publishBestEffort(ctx, messaging.TopicProductListed, p.ID, entity.ProductListed{
		ProductID: p.ID,
		FarmerID:  p.FarmerID,
		Name:      p.Name,
		Location:  p.Location,
		ListedAt:  p.CreatedAt,
	})
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, caller *session.Session, p *entity.Product) error {
	if err := requireRole(caller, entity.RoleFarmer); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.products.Update(ctx, p, caller.UserID)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, caller *session.Session, id string) error {
	if err := requireRole(caller, entity.RoleFarmer); err != nil {
		return err
	}
	return s.products.Delete(ctx, id, caller.UserID)
}

// --- Demands ---

// ListDemands applies the visibility policy before building the query:
// a retailer only ever sees their own demands, everyone else sees all
// demands matching the filter. The narrowing is decided here, not buried
// in query construction, so it can be audited on its own.
func (s *CatalogService) ListDemands(ctx context.Context, caller *session.Session, f repository.DemandFilter) ([]entity.Demand, error) {
	if caller.Role == entity.RoleRetailer {
		f.RetailerID = caller.UserID
	}
	return s.demands.Find(ctx, f)
}

func (s *CatalogService) GetDemand(ctx context.Context, id string) (*entity.Demand, error) {
	return s.demands.FindByID(ctx, id)
}

// CreateDemand posts a demand request. Retailer only; every farmer is
// notified through the fan-out pipeline. Status always starts open; no
// flow moves it anywhere else yet.
func (s *CatalogService) CreateDemand(ctx context.Context, caller *session.Session, d *entity.Demand) (*entity.Demand, error) {
	if err := requireRole(caller, entity.RoleRetailer); err != nil {
		return nil, err
	}

	d.ID = uuid.NewString()
	d.RetailerID = caller.UserID
	d.Status = entity.DemandOpen
	d.CreatedAt = time.Now()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := s.demands.Create(ctx, d); err != nil {
		return nil, err
	}
	slog.Info("Demand posted", "demand_id", d.ID, "retailer_id", d.RetailerID)

	s.publishBestEffort(ctx, messaging.TopicDemandPosted, d.ID, entity.DemandPosted{
		DemandID:   d.ID,
		RetailerID: d.RetailerID,
		Title:      d.Title,
		Category:   d.Category,
		PostedAt:   d.CreatedAt,
	})
	return d, nil
}

func (s *CatalogService) UpdateDemand(ctx context.Context, caller *session.Session, d *entity.Demand) error {
	if err := requireRole(caller, entity.RoleRetailer); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	return s.demands.Update(ctx, d, caller.UserID)
}

func (s *CatalogService) DeleteDemand(ctx context.Context, caller *session.Session, id string) error {
	if err := requireRole(caller, entity.RoleRetailer); err != nil {
		return err
	}
	return s.demands.Delete(ctx, id, caller.UserID)
}

// --- Transport ---

func (s *CatalogService) ListTransports(ctx context.Context, f repository.TransportFilter) ([]entity.Transport, error) {
	return s.transports.Find(ctx, f)
}

func (s *CatalogService) GetTransport(ctx context.Context, id string) (*entity.Transport, error) {
	return s.transports.FindByID(ctx, id)
}

func (s *CatalogService) CreateTransport(ctx context.Context, caller *session.Session, t *entity.Transport) (*entity.Transport, error) {
	if err := requireRole(caller, entity.RoleTransporter); err != nil {
		return nil, err
	}

	t.ID = uuid.NewString()
	t.TransporterID = caller.UserID
	t.CreatedAt = time.Now()
	if t.Status == "" {
		t.Status = entity.TransportAvailable
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.transports.Create(ctx, t); err != nil {
		return nil, err
	}
	slog.Info("Transport listed", "transport_id", t.ID, "transporter_id", t.TransporterID)
	return t, nil
}

func (s *CatalogService) UpdateTransport(ctx context.Context, caller *session.Session, t *entity.Transport) error {
	if err := requireRole(caller, entity.RoleTransporter); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	return s.transports.Update(ctx, t, caller.UserID)
}

func (s *CatalogService) DeleteTransport(ctx context.Context, caller *session.Session, id string) error {
	if err := requireRole(caller, entity.RoleTransporter); err != nil {
		return err
	}
	return s.transports.Delete(ctx, id, caller.UserID)
}
