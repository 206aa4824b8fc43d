package dto

import (
	"net/http"

	"tickoff/internal/domains/todo/model"
	"tickoff/shared"
	"tickoff/shared/constant"
	gDto "tickoff/shared/dto"
	"tickoff/shared/identifier"
	gModel "tickoff/shared/model"
	"tickoff/shared/timezone"
)

type ListTodoRequest struct {
	model.ListQuery
}

// FromRequest reads the optional name, is_complete, paging and sorting
// parameters. Unknown sort columns are dropped.
func (l *ListTodoRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	l.Name = query.Get(constant.RequestParamName)
	l.IsComplete = shared.ConvertStringToBool(query.Get(constant.RequestParamIsComplete))

	l.QueryParams.FromRequest(r, false)
	l.QueryParams.Restrict(model.SortableFields...)
}

// CreateTodoRequest has no id or owner_id: both are assigned by the server,
// so whatever the client sends for them is skipped while decoding.
type CreateTodoRequest struct {
	Name       string `json:"name"        validate:"required,max=255"`
	IsComplete bool   `json:"is_complete"`
}

func (c *CreateTodoRequest) ToModel(owner string) model.Todo {
	now := timezone.Now()

	return model.Todo{
		Name:       c.Name,
		IsComplete: c.IsComplete,
		OwnerID:    owner,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// UpdateTodoRequest is a full replacement of the mutable fields. ID and
// OwnerID must repeat the path id and the caller.
type UpdateTodoRequest struct {
	ID         identifier.ID `json:"id"          swaggertype:"string"`
	Name       string        `json:"name"        validate:"required,max=255"`
	IsComplete bool          `json:"is_complete"`
	OwnerID    identifier.ID `json:"owner_id"    swaggertype:"string"`
}

// Matches reports whether the payload targets item id of owner.
func (u *UpdateTodoRequest) Matches(id, owner string) bool {
	return u.ID.String() == id && u.OwnerID.String() == owner
}

func (u *UpdateTodoRequest) ToModel() model.Todo {
	return model.Todo{
		ID:         u.ID.String(),
		Name:       u.Name,
		IsComplete: u.IsComplete,
		OwnerID:    u.OwnerID.String(),
		Metadata: gModel.Metadata{
			ModifiedAt: timezone.Now(),
		},
	}
}

type TodoResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsComplete bool   `json:"is_complete"`
	OwnerID    string `json:"owner_id"`
	gDto.Metadata
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Name = model.Name
	r.IsComplete = model.IsComplete
	r.OwnerID = model.OwnerID
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Todo) []TodoResponse {
	res := make([]TodoResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
