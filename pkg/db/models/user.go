package models

import (
	"time"

	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
)

// User is an account resolved from the OAuth provider. OpenID is the
// external identity; the surrogate id is what order items reference.
type User struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OpenID       string     `gorm:"column:open_id;size:64;not null;uniqueIndex" json:"openId"`
	Name         *string    `gorm:"column:name" json:"name"`
	Email        *string    `gorm:"column:email;size:320" json:"email"`
	LoginMethod  *string    `gorm:"column:login_method;size:64" json:"loginMethod"`
	Role         enums.Role `gorm:"column:role;size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	LastSignedIn time.Time  `gorm:"column:last_signed_in;not null" json:"lastSignedIn"`
}
