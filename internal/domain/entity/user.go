package entity

import "time"

// AppUser usuario de la aplicación. Lo crea/actualiza el flujo de inicio de sesión del proveedor
// de identidad externo (AuthUserID es su "sub").
type AppUser struct {
	ID          string    `json:"id"`
	AuthUserID  string    `json:"authUserId"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// Meta información pública del servidor.
type Meta struct {
	AppName    string    `json:"appName"`
	ServerTime time.Time `json:"serverTime"`
}
