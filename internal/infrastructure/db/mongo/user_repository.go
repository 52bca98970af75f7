package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository on the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

var _ ports.UserRepository = (*UserRepository)(nil)

type permissionsDoc struct {
	CanManageUsers      bool `bson:"canManageUsers"`
	CanViewAnalytics    bool `bson:"canViewAnalytics"`
	CanManageMarketData bool `bson:"canManageMarketData"`
	CanApproveDocuments bool `bson:"canApproveDocuments"`
}

type notificationsDoc struct {
	EmailNotifications bool `bson:"emailNotifications"`
	MarketAlerts       bool `bson:"marketAlerts"`
	CustomsUpdates     bool `bson:"customsUpdates"`
	RouteOptimizations bool `bson:"routeOptimizations"`
}

// userDoc keeps isActive and notifications optional: accounts created before
// those fields existed are active and receive the default settings.
type userDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	Password      string             `bson:"password"`
	Email         string             `bson:"email"`
	FullName      string             `bson:"fullName"`
	Company       string             `bson:"company,omitempty"`
	Role          string             `bson:"role"`
	Permissions   permissionsDoc     `bson:"permissions"`
	IsActive      *bool              `bson:"isActive,omitempty"`
	Notifications *notificationsDoc  `bson:"notifications,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	LastLogin     *time.Time         `bson:"lastLogin,omitempty"`
}

func toUserDoc(u *domain.User) userDoc {
	active := u.IsActive
	n := notificationsDoc(u.Notifications)
	return userDoc{
		Username:      u.Username,
		Password:      u.PasswordHash,
		Email:         u.Email,
		FullName:      u.FullName,
		Company:       u.Company,
		Role:          string(u.Role),
		Permissions:   permissionsDoc(u.Permissions),
		IsActive:      &active,
		Notifications: &n,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
	}
}

func (d *userDoc) toDomain() *domain.User {
	role := domain.Role(d.Role)
	if role == "" {
		role = domain.RoleTrader
	}
	notifications := domain.DefaultNotificationSettings()
	if d.Notifications != nil {
		notifications = domain.NotificationSettings(*d.Notifications)
	}
	return &domain.User{
		ID:            d.ID.Hex(),
		Username:      d.Username,
		Email:         d.Email,
		PasswordHash:  d.Password,
		FullName:      d.FullName,
		Company:       d.Company,
		Role:          role,
		Permissions:   domain.Permissions(d.Permissions),
		IsActive:      d.IsActive == nil || *d.IsActive,
		Notifications: notifications,
		CreatedAt:     d.CreatedAt,
		LastLogin:     d.LastLogin,
	}
}

// duplicateError maps a unique-index violation to the offending field.
func duplicateError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "email") {
		return domain.ErrEmailExists
	}
	return domain.ErrUserExists
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := toUserDoc(user)
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := findByID[userDoc](ctx, r.col, id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}

	docs, err := findMany[userDoc](ctx, r.col, bson.M{"_id": bson.M{"$in": oids}}, "createdAt", 0)
	if err != nil {
		return nil, err
	}
	return usersToDomain(docs), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	docs, err := findMany[userDoc](ctx, r.col, bson.M{}, "createdAt", 0)
	if err != nil {
		return nil, err
	}
	return usersToDomain(docs), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	set := setter{}
	put(set, "username", patch.Username)
	put(set, "email", patch.Email)
	put(set, "fullName", patch.FullName)
	put(set, "company", patch.Company)
	put(set, "password", patch.PasswordHash)
	put(set, "isActive", patch.IsActive)
	put(set, "lastLogin", patch.LastLogin)
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}
	if patch.Permissions != nil {
		set["permissions"] = permissionsDoc(*patch.Permissions)
	}
	if patch.Notifications != nil {
		set["notifications"] = notificationsDoc(*patch.Notifications)
	}

	doc, err := updateByID[userDoc](ctx, r.col, id, bson.M(set), domain.ErrUserNotFound)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateError(err)
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context, f ports.UserCountFilter) (int64, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}
	if !f.CreatedSince.IsZero() {
		filter["createdAt"] = bson.M{"$gte": f.CreatedSince}
	}
	return count(ctx, r.col, filter)
}

func usersToDomain(docs []userDoc) []*domain.User {
	out := make([]*domain.User, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out
}
