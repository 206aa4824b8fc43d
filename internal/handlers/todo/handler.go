package todo

import (
	"net/http"

	"tickoff/infras/otel"
	"tickoff/internal/domains/todo/model/dto"
	"tickoff/internal/domains/todo/service"
	"tickoff/shared/constant"
	"tickoff/shared/validator"
	"tickoff/transport/http/middleware"
	"tickoff/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const basePath = "/todoitems"

type Handler struct {
	service    service.Todo
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Todo, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route(basePath, func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Post("/", handler.CreateTodo)
		routerGroup.Get("/{id}", handler.GetTodoByID)
		routerGroup.Put("/{id}", handler.UpdateTodo)
		routerGroup.Delete("/{id}", handler.DeleteTodo)
	})
}

// GetTodos lists the caller's todo items.
// @Summary List todo items
// @Description Retrieve the caller's todo items with optional filtering, sorting and pagination.
// @Tags Todo
// @Produce json
// @Param name query string false "Filter by name, case insensitive contains"
// @Param is_complete query boolean false "Filter by completion status"
// @Param page query int false "Page, starting at 1"
// @Param limit query int false "Items per page"
// @Param sort_by query string false "Sort column" Enums(id, name, is_complete, created_at)
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {array} dto.TodoResponse "List of todo items"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/todoitems [get]
// @Security BearerAuth
func (handler *Handler) GetTodos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	req := dto.ListTodoRequest{}
	req.FromRequest(r)

	todos, err := handler.service.GetAll(ctx, middleware.UserID(ctx), req.ListQuery)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todo items")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("todo.count", len(todos))

	response.WithJSON(w, http.StatusOK, todos)
}

// GetTodoByID retrieves one of the caller's todo items.
// @Summary Get a todo item by ID
// @Description Items of other users are reported as not found.
// @Tags Todo
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} dto.TodoResponse "Todo item details"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/todoitems/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodoByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	todo, err := handler.service.Get(ctx, id, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, todo)
}

// CreateTodo creates a todo item owned by the caller.
// @Summary Create a todo item
// @Description Any id or owner_id in the body is ignored.
// @Tags Todo
// @Accept json
// @Produce json
// @Param request body dto.CreateTodoRequest true "Create Todo Request"
// @Success 201 {object} dto.TodoResponse "Todo item created"
// @Header 201 {string} Location "/api/todoitems/{id}"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/todoitems [post]
// @Security BearerAuth
func (handler *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	req := dto.CreateTodoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user := middleware.UserID(ctx)

	todo, err := handler.service.Create(ctx, req, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo created successfully by " + middleware.Username(ctx))

	response.WithCreated(w, "/api"+basePath+"/"+todo.ID, todo)
}

// UpdateTodo replaces one of the caller's todo items.
// @Summary Replace a todo item
// @Description The body must repeat the path id and the caller's id as owner_id.
// @Tags Todo
// @Accept json
// @Param id path string true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Update Todo Request"
// @Success 204
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/todoitems/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTodoRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user := middleware.UserID(ctx)

	if err := handler.service.Update(ctx, id, req, user); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo updated successfully by " + middleware.Username(ctx))

	response.WithNoContent(w)
}

// DeleteTodo deletes one of the caller's todo items.
// @Summary Delete a todo item
// @Tags Todo
// @Param id path string true "Todo ID"
// @Success 204
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/todoitems/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	user := middleware.UserID(ctx)

	if err := handler.service.Delete(ctx, id, user); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo deleted successfully by " + middleware.Username(ctx))

	response.WithNoContent(w)
}
