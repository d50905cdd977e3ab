package users

import (
	"context"
	"time"

	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertInput carries the identity fields learned from the OAuth provider.
// Nil optional fields are left untouched on conflict.
type UpsertInput struct {
	OpenID      string
	Name        *string
	Email       *string
	LoginMethod *string
	Role        *enums.Role
}

// Upsert inserts the user keyed by open_id or refreshes the existing row.
// last_signed_in is always bumped; a second login never creates a second
// row.
func (r *Repository) Upsert(ctx context.Context, input UpsertInput) (*models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		OpenID:       input.OpenID,
		Name:         input.Name,
		Email:        input.Email,
		LoginMethod:  input.LoginMethod,
		Role:         enums.RoleUser,
		LastSignedIn: now,
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	assignments := map[string]any{
		"last_signed_in": now,
		"updated_at":     now,
	}
	if input.Name != nil {
		assignments["name"] = input.Name
	}
	if input.Email != nil {
		assignments["email"] = input.Email
	}
	if input.LoginMethod != nil {
		assignments["login_method"] = input.LoginMethod
	}
	if input.Role != nil {
		assignments["role"] = *input.Role
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "open_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}

	return r.FindByOpenID(ctx, input.OpenID)
}

// FindByOpenID retrieves the user matching the external identity.
func (r *Repository) FindByOpenID(ctx context.Context, openID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("open_id = ?", openID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by surrogate key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs loads the users whose ids appear in the list. Unknown ids are
// simply absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
