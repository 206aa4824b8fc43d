package model

import "tickoff/shared/model"

const (
	TableName      = "users"
	CollectionName = "users"
	EntityName     = "user"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldPasswordHash = "password_hash"
)

// User is a registered account. Username is unique and never changes;
// PasswordHash is a bcrypt hash, never the password itself.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	model.Metadata
}
