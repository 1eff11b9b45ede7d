package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

// In-memory repository fakes implementing the contracts the services rely
// on, including the all-or-nothing placement semantics.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role entity.Role) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) Find(_ context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.FarmerID != "" && p.FarmerID != f.FarmerID {
			continue
		}
		if f.Quality != "" && p.Quality != f.Quality {
			continue
		}
		if f.Available != nil && p.IsAvailable != *f.Available {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok || existing.FarmerID != ownerID {
		return repository.ErrNotFound
	}
	p.FarmerID = ownerID
	p.IsAvailable = p.Quantity > 0
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[id]
	if !ok || existing.FarmerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Seed(ctx context.Context, products []entity.Product) error {
	for i := range products {
		if err := r.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeDemandRepo struct {
	mu      sync.Mutex
	demands map[string]entity.Demand
}

func newFakeDemandRepo() *fakeDemandRepo {
	return &fakeDemandRepo{demands: make(map[string]entity.Demand)}
}

func (r *fakeDemandRepo) Create(_ context.Context, d *entity.Demand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.demands[d.ID] = *d
	return nil
}

func (r *fakeDemandRepo) FindByID(_ context.Context, id string) (*entity.Demand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.demands[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDemandRepo) Find(_ context.Context, f repository.DemandFilter) ([]entity.Demand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Demand
	for _, d := range r.demands {
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		if f.RetailerID != "" && d.RetailerID != f.RetailerID {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeDemandRepo) Update(_ context.Context, d *entity.Demand, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.demands[d.ID]
	if !ok || existing.RetailerID != ownerID {
		return repository.ErrNotFound
	}
	d.RetailerID = ownerID
	r.demands[d.ID] = *d
	return nil
}

func (r *fakeDemandRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.demands[id]
	if !ok || existing.RetailerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.demands, id)
	return nil
}

type fakeTransportRepo struct {
	mu         sync.Mutex
	transports map[string]entity.Transport
}

func newFakeTransportRepo() *fakeTransportRepo {
	return &fakeTransportRepo{transports: make(map[string]entity.Transport)}
}

func (r *fakeTransportRepo) Create(_ context.Context, t *entity.Transport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transports[t.ID] = *t
	return nil
}

func (r *fakeTransportRepo) FindByID(_ context.Context, id string) (*entity.Transport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTransportRepo) Find(_ context.Context, f repository.TransportFilter) ([]entity.Transport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Transport
	for _, t := range r.transports {
		if f.TransporterID != "" && t.TransporterID != f.TransporterID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureAt.Before(out[j].DepartureAt) })
	return out, nil
}

func (r *fakeTransportRepo) Update(_ context.Context, t *entity.Transport, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.transports[t.ID]
	if !ok || existing.TransporterID != ownerID {
		return repository.ErrNotFound
	}
	t.TransporterID = ownerID
	r.transports[t.ID] = *t
	return nil
}

func (r *fakeTransportRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.transports[id]
	if !ok || existing.TransporterID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.transports, id)
	return nil
}

// fakeOrderRepo mirrors the real placement contract: stock checks and
// decrements stage against a copy and only land when every line item
// passes, so a failing item leaves earlier items untouched.
type fakeOrderRepo struct {
	mu       sync.Mutex
	products *fakeProductRepo
	orders   map[string]entity.Order
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{products: products, orders: make(map[string]entity.Order)}
}

func (r *fakeOrderRepo) Place(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	staged := make(map[string]entity.Product, len(o.Items))
	var total float64
	for i := range o.Items {
		item := &o.Items[i]
		p, ok := staged[item.ProductID]
		if !ok {
			p, ok = r.products.products[item.ProductID]
			if !ok {
				return fmt.Errorf("product %s: %w", item.ProductID, repository.ErrNotFound)
			}
		}
		if p.Quantity < item.Quantity {
			return fmt.Errorf("product %s: %w", item.ProductID, repository.ErrInsufficientStock)
		}
		item.Name = p.Name
		item.Price = p.Price
		total += p.Price * float64(item.Quantity)
		p.Quantity -= item.Quantity
		p.IsAvailable = p.Quantity > 0
		staged[item.ProductID] = p
	}

	for id, p := range staged {
		r.products.products[id] = p
	}
	o.TotalAmount = total
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) FindForUser(_ context.Context, userID string, limit int) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		if o.BuyerID == userID || o.SellerID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]entity.Notification)}
}

func (r *fakeNotificationRepo) InsertBatch(_ context.Context, ns []entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range ns {
		r.notifications[n.ID] = n
	}
	return nil
}

func (r *fakeNotificationRepo) FindForRecipient(_ context.Context, recipientID string, onlyUnread bool, limit int) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if onlyUnread && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return repository.ErrNotFound
	}
	n.IsRead = true
	r.notifications[id] = n
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var modified int64
	for id, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			r.notifications[id] = n
			modified++
		}
	}
	return modified, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return repository.ErrNotFound
	}
	delete(r.notifications, id)
	return nil
}

// fakePublisher records published events and can be told to fail.
type fakePublisher struct {
	mu       sync.Mutex
	failWith error
	events   []publishedEvent
}

type publishedEvent struct {
	Topic string
	Key   string
	Event any
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *fakePublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
