package model

import (
	"tickoff/shared/constant"
	gDto "tickoff/shared/dto"
	"tickoff/shared/model"
)

const (
	TableName      = "todo_items"
	CollectionName = "todo_items"
	EntityName     = "todo"

	FieldID         = "id"
	FieldName       = "name"
	FieldIsComplete = "is_complete"
	FieldOwnerID    = "owner_id"
	FieldVersion    = "version"
)

// SortableFields are the values accepted for sort_by.
var SortableFields = []string{FieldID, FieldName, FieldIsComplete, constant.FieldCreatedAt}

// Todo is one item of a user's list. OwnerID is fixed at creation and every
// read or write of the item is scoped by it.
type Todo struct {
	ID         string
	Name       string
	IsComplete bool
	OwnerID    string
	model.Metadata
}

// ListQuery narrows a listing. The zero value lists every item of the owner.
type ListQuery struct {
	Name       string
	IsComplete *bool
	gDto.QueryParams
}
