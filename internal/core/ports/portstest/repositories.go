package portstest

import (
	"context"
	"time"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// ----------------------------------------------------------------------------
// Users
// ----------------------------------------------------------------------------

type UserRepository struct {
	rows *collection[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{rows: newCollection[domain.User]()}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if err := r.checkUnique("", user.Username, user.Email); err != nil {
		return nil, err
	}
	u := *user
	u.ID = NewID()
	r.rows.insert(u.ID, u)
	return &u, nil
}

func (r *UserRepository) checkUnique(selfID, username, email string) error {
	for _, u := range r.rows.newest(nil, func(u domain.User) time.Time { return u.CreatedAt }) {
		if u.ID == selfID {
			continue
		}
		if username != "" && u.Username == username {
			return domain.ErrUserExists
		}
		if email != "" && u.Email == email {
			return domain.ErrEmailExists
		}
	}
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	found := r.rows.newest(func(u domain.User) bool { return u.Username == username }, userCreated)
	if len(found) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &found[0], nil
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.rows.get(id); ok {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	return pointers(r.rows.newest(nil, userCreated)), nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	var username, email string
	if patch.Username != nil {
		username = *patch.Username
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := r.checkUnique(id, username, email); err != nil {
		return nil, err
	}
	u, ok := r.rows.update(id, func(u *domain.User) { patch.Apply(u) })
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	if !r.rows.remove(id) {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(_ context.Context, f ports.UserCountFilter) (int64, error) {
	return r.rows.count(func(u domain.User) bool {
		if f.Role != "" && u.Role != f.Role {
			return false
		}
		return f.CreatedSince.IsZero() || !u.CreatedAt.Before(f.CreatedSince)
	}), nil
}

func userCreated(u domain.User) time.Time { return u.CreatedAt }

// ----------------------------------------------------------------------------
// Market data
// ----------------------------------------------------------------------------

type MarketDataRepository struct {
	rows *collection[domain.MarketData]
}

func NewMarketDataRepository() *MarketDataRepository {
	return &MarketDataRepository{rows: newCollection[domain.MarketData]()}
}

var _ ports.MarketDataRepository = (*MarketDataRepository)(nil)

func (r *MarketDataRepository) Create(_ context.Context, m *domain.MarketData) (*domain.MarketData, error) {
	v := *m
	v.ID = NewID()
	r.rows.insert(v.ID, v)
	return &v, nil
}

func (r *MarketDataRepository) FindByID(_ context.Context, id string) (*domain.MarketData, error) {
	v, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrMarketDataNotFound
	}
	return &v, nil
}

func (r *MarketDataRepository) List(_ context.Context, productName string) ([]*domain.MarketData, error) {
	keep := func(m domain.MarketData) bool { return productName == "" || m.ProductName == productName }
	return pointers(r.rows.newest(keep, func(m domain.MarketData) time.Time { return m.Timestamp })), nil
}

func (r *MarketDataRepository) Update(_ context.Context, id string, patch ports.MarketDataPatch) (*domain.MarketData, error) {
	v, ok := r.rows.update(id, func(m *domain.MarketData) { patch.Apply(m) })
	if !ok {
		return nil, domain.ErrMarketDataNotFound
	}
	return &v, nil
}

func (r *MarketDataRepository) Count(_ context.Context) (int64, error) {
	return r.rows.count(nil), nil
}

// ----------------------------------------------------------------------------
// Shipping routes
// ----------------------------------------------------------------------------

type ShippingRouteRepository struct {
	rows *collection[domain.ShippingRoute]
}

func NewShippingRouteRepository() *ShippingRouteRepository {
	return &ShippingRouteRepository{rows: newCollection[domain.ShippingRoute]()}
}

var _ ports.ShippingRouteRepository = (*ShippingRouteRepository)(nil)

func (r *ShippingRouteRepository) Create(_ context.Context, route *domain.ShippingRoute) (*domain.ShippingRoute, error) {
	v := *route
	v.ID = NewID()
	r.rows.insert(v.ID, v)
	return &v, nil
}

func (r *ShippingRouteRepository) FindByID(_ context.Context, id string) (*domain.ShippingRoute, error) {
	v, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrRouteNotFound
	}
	return &v, nil
}

func (r *ShippingRouteRepository) ListByOwner(_ context.Context, userID string) ([]*domain.ShippingRoute, error) {
	keep := func(s domain.ShippingRoute) bool { return s.UserID == userID }
	return pointers(r.rows.newest(keep, func(s domain.ShippingRoute) time.Time { return s.CreatedAt })), nil
}

func (r *ShippingRouteRepository) Update(_ context.Context, id string, patch ports.ShippingRoutePatch) (*domain.ShippingRoute, error) {
	v, ok := r.rows.update(id, func(s *domain.ShippingRoute) { patch.Apply(s) })
	if !ok {
		return nil, domain.ErrRouteNotFound
	}
	return &v, nil
}

func (r *ShippingRouteRepository) Count(_ context.Context) (int64, error) {
	return r.rows.count(nil), nil
}

// ----------------------------------------------------------------------------
// Customs documents
// ----------------------------------------------------------------------------

type CustomsDocumentRepository struct {
	rows *collection[domain.CustomsDocument]
}

func NewCustomsDocumentRepository() *CustomsDocumentRepository {
	return &CustomsDocumentRepository{rows: newCollection[domain.CustomsDocument]()}
}

var _ ports.CustomsDocumentRepository = (*CustomsDocumentRepository)(nil)

func (r *CustomsDocumentRepository) Create(_ context.Context, doc *domain.CustomsDocument) (*domain.CustomsDocument, error) {
	v := *doc
	v.ID = NewID()
	r.rows.insert(v.ID, v)
	return &v, nil
}

func (r *CustomsDocumentRepository) FindByID(_ context.Context, id string) (*domain.CustomsDocument, error) {
	v, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &v, nil
}

func (r *CustomsDocumentRepository) ListByOwner(_ context.Context, userID string) ([]*domain.CustomsDocument, error) {
	keep := func(d domain.CustomsDocument) bool { return d.UserID == userID }
	return pointers(r.rows.newest(keep, func(d domain.CustomsDocument) time.Time { return d.CreatedAt })), nil
}

func (r *CustomsDocumentRepository) Update(_ context.Context, id string, patch ports.CustomsDocumentPatch) (*domain.CustomsDocument, error) {
	v, ok := r.rows.update(id, func(d *domain.CustomsDocument) { patch.Apply(d) })
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &v, nil
}

func (r *CustomsDocumentRepository) Count(_ context.Context, status domain.DocumentStatus) (int64, error) {
	return r.rows.count(func(d domain.CustomsDocument) bool { return status == "" || d.Status == status }), nil
}

// ----------------------------------------------------------------------------
// Currency rates
// ----------------------------------------------------------------------------

type CurrencyRateRepository struct {
	rows *collection[domain.CurrencyExchangeRate]
}

func NewCurrencyRateRepository() *CurrencyRateRepository {
	return &CurrencyRateRepository{rows: newCollection[domain.CurrencyExchangeRate]()}
}

var _ ports.CurrencyRateRepository = (*CurrencyRateRepository)(nil)

func (r *CurrencyRateRepository) Create(_ context.Context, rate *domain.CurrencyExchangeRate) (*domain.CurrencyExchangeRate, error) {
	v := *rate
	v.ID = NewID()
	r.rows.insert(v.ID, v)
	return &v, nil
}

func (r *CurrencyRateRepository) FindByID(_ context.Context, id string) (*domain.CurrencyExchangeRate, error) {
	v, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrRateNotFound
	}
	return &v, nil
}

func (r *CurrencyRateRepository) List(_ context.Context) ([]*domain.CurrencyExchangeRate, error) {
	return pointers(r.rows.newest(nil, func(c domain.CurrencyExchangeRate) time.Time { return c.LastUpdated })), nil
}

func (r *CurrencyRateRepository) Update(_ context.Context, id string, patch ports.CurrencyRatePatch) (*domain.CurrencyExchangeRate, error) {
	v, ok := r.rows.update(id, func(c *domain.CurrencyExchangeRate) { patch.Apply(c) })
	if !ok {
		return nil, domain.ErrRateNotFound
	}
	return &v, nil
}

// ----------------------------------------------------------------------------
// Market opportunities
// ----------------------------------------------------------------------------

type OpportunityRepository struct {
	rows *collection[domain.MarketOpportunity]
}

func NewOpportunityRepository() *OpportunityRepository {
	return &OpportunityRepository{rows: newCollection[domain.MarketOpportunity]()}
}

var _ ports.OpportunityRepository = (*OpportunityRepository)(nil)

func (r *OpportunityRepository) Create(_ context.Context, o *domain.MarketOpportunity) (*domain.MarketOpportunity, error) {
	v := *o
	v.ID = NewID()
	r.rows.insert(v.ID, v)
	return &v, nil
}

func (r *OpportunityRepository) FindByID(_ context.Context, id string) (*domain.MarketOpportunity, error) {
	v, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}
	return &v, nil
}

func (r *OpportunityRepository) List(_ context.Context) ([]*domain.MarketOpportunity, error) {
	return pointers(r.rows.newest(nil, func(o domain.MarketOpportunity) time.Time { return o.CreatedAt })), nil
}

func (r *OpportunityRepository) Update(_ context.Context, id string, patch ports.OpportunityPatch) (*domain.MarketOpportunity, error) {
	v, ok := r.rows.update(id, func(o *domain.MarketOpportunity) { patch.Apply(o) })
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}
	return &v, nil
}

// ----------------------------------------------------------------------------
// Activity log
// ----------------------------------------------------------------------------

// ActivityRepository records entries in memory. When FailInserts is set every
// Insert returns it, which lets tests exercise best-effort audit logging.
type ActivityRepository struct {
	rows        *collection[domain.ActivityLog]
	FailInserts error
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{rows: newCollection[domain.ActivityLog]()}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) Insert(_ context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error) {
	if r.FailInserts != nil {
		return nil, r.FailInserts
	}
	v := *entry
	v.ID = NewID()
	r.rows.insert(v.ID, v)
	return &v, nil
}

func (r *ActivityRepository) ListByUser(_ context.Context, userID string, n int) ([]*domain.ActivityLog, error) {
	keep := func(a domain.ActivityLog) bool { return a.UserID == userID }
	return pointers(limit(r.rows.newest(keep, activityTime), n)), nil
}

func (r *ActivityRepository) ListRecent(_ context.Context, n int) ([]*domain.ActivityLog, error) {
	return pointers(limit(r.rows.newest(nil, activityTime), n)), nil
}

func (r *ActivityRepository) CountSince(_ context.Context, since time.Time) (int64, error) {
	return r.rows.count(func(a domain.ActivityLog) bool { return !a.Timestamp.Before(since) }), nil
}

// Len reports the number of stored entries.
func (r *ActivityRepository) Len() int {
	return int(r.rows.count(nil))
}

func activityTime(a domain.ActivityLog) time.Time { return a.Timestamp }

// ----------------------------------------------------------------------------
// Store
// ----------------------------------------------------------------------------

// Store bundles one in-memory repository per collection.
type Store struct {
	Users         *UserRepository
	MarketData    *MarketDataRepository
	Routes        *ShippingRouteRepository
	Documents     *CustomsDocumentRepository
	Rates         *CurrencyRateRepository
	Opportunities *OpportunityRepository
	Activities    *ActivityRepository
}

func NewStore() *Store {
	return &Store{
		Users:         NewUserRepository(),
		MarketData:    NewMarketDataRepository(),
		Routes:        NewShippingRouteRepository(),
		Documents:     NewCustomsDocumentRepository(),
		Rates:         NewCurrencyRateRepository(),
		Opportunities: NewOpportunityRepository(),
		Activities:    NewActivityRepository(),
	}
}
