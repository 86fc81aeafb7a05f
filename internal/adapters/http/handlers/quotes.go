package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nordsym/guldkant/internal/adapters/http/dto"
	"github.com/nordsym/guldkant/internal/app"
	"github.com/nordsym/guldkant/internal/domain"
	"github.com/nordsym/guldkant/internal/ports"
)

// QuoteHandler handles quote collection and mutation endpoints.
type QuoteHandler struct {
	store   *app.Store
	gateway ports.QuoteGateway
}

// NewQuoteHandler creates a new quote handler. The gateway is used for
// direct single-record lookups when the record is not in the store.
func NewQuoteHandler(store *app.Store, gateway ports.QuoteGateway) *QuoteHandler {
	return &QuoteHandler{
		store:   store,
		gateway: gateway,
	}
}

// CostLine is a free-form cost entry in requests and responses.
type CostLine struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// DietLine is an open-ended dietary requirement in requests and responses.
type DietLine struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// LogEntry is one audit trail item in responses.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
}

// QuoteResponse is the HTTP representation of a quote.
type QuoteResponse struct {
	ID          string `json:"id"`
	RawID       string `json:"rawId,omitempty"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`

	CustomerName     string `json:"customerName"`
	CustomerType     string `json:"customerType"`
	ContactPerson    string `json:"contactPerson,omitempty"`
	ContactEmail     string `json:"contactEmail,omitempty"`
	ContactPhone     string `json:"contactPhone,omitempty"`
	CustomerIDNumber string `json:"customerIdNumber,omitempty"`

	EventDate     string `json:"eventDate,omitempty"`
	EventStart    string `json:"eventStart,omitempty"`
	EventEnd      string `json:"eventEnd,omitempty"`
	EventLocation string `json:"eventLocation,omitempty"`
	GuestCount    int    `json:"guestCount"`

	PricePerGuest    float64    `json:"pricePerGuest"`
	NumChefs         int        `json:"numChefs"`
	ChefCost         float64    `json:"chefCost"`
	NumServingStaff  int        `json:"numServingStaff"`
	ServingStaffCost float64    `json:"servingStaffCost"`
	DiscountAmount   float64    `json:"discountAmount"`
	CustomCosts      []CostLine `json:"customCosts,omitempty"`
	Total            float64    `json:"total"`

	HasVegetarian  bool       `json:"hasVegetarian"`
	NumVegetarian  int        `json:"numVegetarian"`
	HasVegan       bool       `json:"hasVegan"`
	NumVegan       int        `json:"numVegan"`
	HasGlutenFree  bool       `json:"hasGlutenFree"`
	NumGlutenFree  int        `json:"numGlutenFree"`
	HasLactoseFree bool       `json:"hasLactoseFree"`
	NumLactoseFree int        `json:"numLactoseFree"`
	HasNutAllergy  bool       `json:"hasNutAllergy"`
	NumNutAllergy  int        `json:"numNutAllergy"`
	CustomDiets    []DietLine `json:"customDiets,omitempty"`

	MenuDescription  string `json:"menuDescription,omitempty"`
	CustomerRequests string `json:"customerRequests,omitempty"`
	InternalComment  string `json:"internalComment,omitempty"`

	Events      []LogEntry `json:"events,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
}

// QuoteRequest is the HTTP body for saving a quote. An empty ID creates a
// new quote.
type QuoteRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	CustomerName     string `json:"customerName" validate:"omitempty,max=200"`
	CustomerType     string `json:"customerType" validate:"omitempty,oneof=privat företag"`
	ContactPerson    string `json:"contactPerson" validate:"omitempty,max=200"`
	ContactEmail     string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone     string `json:"contactPhone" validate:"omitempty,max=50"`
	CustomerIDNumber string `json:"customerIdNumber" validate:"omitempty,max=50"`

	EventDate     string `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	EventStart    string `json:"eventStart"`
	EventEnd      string `json:"eventEnd"`
	EventLocation string `json:"eventLocation" validate:"omitempty,max=500"`
	GuestCount    int    `json:"guestCount" validate:"gte=0"`

	PricePerGuest    float64    `json:"pricePerGuest"`
	NumChefs         int        `json:"numChefs" validate:"gte=0"`
	ChefCost         float64    `json:"chefCost"`
	NumServingStaff  int        `json:"numServingStaff" validate:"gte=0"`
	ServingStaffCost float64    `json:"servingStaffCost"`
	DiscountAmount   float64    `json:"discountAmount"`
	CustomCosts      []CostLine `json:"customCosts"`

	HasVegetarian  bool       `json:"hasVegetarian"`
	NumVegetarian  int        `json:"numVegetarian" validate:"gte=0"`
	HasVegan       bool       `json:"hasVegan"`
	NumVegan       int        `json:"numVegan" validate:"gte=0"`
	HasGlutenFree  bool       `json:"hasGlutenFree"`
	NumGlutenFree  int        `json:"numGlutenFree" validate:"gte=0"`
	HasLactoseFree bool       `json:"hasLactoseFree"`
	NumLactoseFree int        `json:"numLactoseFree" validate:"gte=0"`
	HasNutAllergy  bool       `json:"hasNutAllergy"`
	NumNutAllergy  int        `json:"numNutAllergy" validate:"gte=0"`
	CustomDiets    []DietLine `json:"customDiets"`

	MenuDescription  string `json:"menuDescription"`
	CustomerRequests string `json:"customerRequests"`
	InternalComment  string `json:"internalComment"`
}

// StatusRequest is the HTTP body for a status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SyncStateResponse reports the store's sync flags.
type SyncStateResponse struct {
	IsLoading      bool   `json:"isLoading"`
	IsSyncing      bool   `json:"isSyncing"`
	IsFetchingMore bool   `json:"isFetchingMore"`
	HasMore        bool   `json:"hasMore"`
	FetchError     string `json:"fetchError,omitempty"`
}

// bindJSON binds and validates a JSON body, responding 400 with field
// details on failure. Returns false when the request was rejected.
func bindJSON(c *gin.Context, v any) bool {
	err := dto.BindAndValidate(c, v)
	if err == nil {
		return true
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
		dto.ErrorCodeValidation,
		"invalid request body",
		dto.ValidationErrors(err),
	).WithTraceID(dto.GetTraceID(c)))

	return false
}

func toQuoteResponse(q *domain.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		ID:          q.ID,
		RawID:       q.RawID,
		Status:      string(q.Status),
		StatusLabel: domain.BackendLabel(q.Status),

		CustomerName:     q.CustomerName,
		CustomerType:     string(q.CustomerType),
		ContactPerson:    q.ContactPerson,
		ContactEmail:     q.ContactEmail,
		ContactPhone:     q.ContactPhone,
		CustomerIDNumber: q.CustomerIDNumber,

		EventDate:     q.EventDate,
		EventStart:    q.EventStart,
		EventEnd:      q.EventEnd,
		EventLocation: q.EventLocation,
		GuestCount:    q.GuestCount,

		PricePerGuest:    q.PricePerGuest,
		NumChefs:         q.NumChefs,
		ChefCost:         q.ChefCost,
		NumServingStaff:  q.NumServingStaff,
		ServingStaffCost: q.ServingStaffCost,
		DiscountAmount:   q.DiscountAmount,
		Total:            q.Total,

		HasVegetarian:  q.HasVegetarian,
		NumVegetarian:  q.NumVegetarian,
		HasVegan:       q.HasVegan,
		NumVegan:       q.NumVegan,
		HasGlutenFree:  q.HasGlutenFree,
		NumGlutenFree:  q.NumGlutenFree,
		HasLactoseFree: q.HasLactoseFree,
		NumLactoseFree: q.NumLactoseFree,
		HasNutAllergy:  q.HasNutAllergy,
		NumNutAllergy:  q.NumNutAllergy,

		MenuDescription:  q.MenuDescription,
		CustomerRequests: q.CustomerRequests,
		InternalComment:  q.InternalComment,
	}

	for _, c := range q.CustomCosts {
		resp.CustomCosts = append(resp.CustomCosts, CostLine(c))
	}

	for _, d := range q.CustomDiets {
		resp.CustomDiets = append(resp.CustomDiets, DietLine(d))
	}

	for _, e := range q.Events {
		resp.Events = append(resp.Events, LogEntry(e))
	}

	if !q.Created.IsZero() {
		t := q.Created
		resp.Created = &t
	}

	if !q.LastUpdated.IsZero() {
		t := q.LastUpdated
		resp.LastUpdated = &t
	}

	if !q.ArchivedAt.IsZero() {
		t := q.ArchivedAt
		resp.ArchivedAt = &t
	}

	return resp
}

func toQuoteResponses(quotes []*domain.Quote) []*QuoteResponse {
	out := make([]*QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = toQuoteResponse(q)
	}

	return out
}

func (r *QuoteRequest) toDomain() *domain.Quote {
	q := &domain.Quote{
		ID:     r.ID,
		Status: domain.NormalizeStatus(r.Status),

		CustomerName:     r.CustomerName,
		CustomerType:     domain.CustomerType(r.CustomerType),
		ContactPerson:    r.ContactPerson,
		ContactEmail:     r.ContactEmail,
		ContactPhone:     r.ContactPhone,
		CustomerIDNumber: r.CustomerIDNumber,

		EventDate:     r.EventDate,
		EventStart:    r.EventStart,
		EventEnd:      r.EventEnd,
		EventLocation: r.EventLocation,
		GuestCount:    r.GuestCount,

		PricePerGuest:    r.PricePerGuest,
		NumChefs:         r.NumChefs,
		ChefCost:         r.ChefCost,
		NumServingStaff:  r.NumServingStaff,
		ServingStaffCost: r.ServingStaffCost,
		DiscountAmount:   r.DiscountAmount,

		HasVegetarian:  r.HasVegetarian,
		NumVegetarian:  r.NumVegetarian,
		HasVegan:       r.HasVegan,
		NumVegan:       r.NumVegan,
		HasGlutenFree:  r.HasGlutenFree,
		NumGlutenFree:  r.NumGlutenFree,
		HasLactoseFree: r.HasLactoseFree,
		NumLactoseFree: r.NumLactoseFree,
		HasNutAllergy:  r.HasNutAllergy,
		NumNutAllergy:  r.NumNutAllergy,

		MenuDescription:  r.MenuDescription,
		CustomerRequests: r.CustomerRequests,
		InternalComment:  r.InternalComment,
	}

	if r.CustomerType == "" {
		q.CustomerType = domain.CustomerPrivate
	}

	for _, c := range r.CustomCosts {
		q.CustomCosts = append(q.CustomCosts, domain.CostLine(c))
	}

	for _, d := range r.CustomDiets {
		q.CustomDiets = append(q.CustomDiets, domain.DietLine(d))
	}

	return q
}

// ListQuotes handles GET /api/v1/quotes
// Returns the loaded collection filtered by status group and search term.
//
// @Summary List quotes
// @Description Returns loaded quotes matching the filter and search term
// @Tags quotes
// @Produce json
// @Param filter query string false "Status filter: alla, arkiv, or a status token"
// @Param search query string false "Case-insensitive match on customer name or ID"
// @Success 200 {object} dto.CollectionResponse[QuoteResponse]
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	filter := c.DefaultQuery("filter", domain.FilterAll)
	search := c.Query("search")

	quotes := h.store.Filtered(filter, search)

	c.JSON(http.StatusOK, dto.NewCollectionResponse(toQuoteResponses(quotes), h.store.HasMore()))
}

// GetQuote handles GET /api/v1/quotes/:id
// Serves from the store when loaded, otherwise asks the backend directly.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id := c.Param("id")

	if q := h.store.Get(id); q != nil {
		c.JSON(http.StatusOK, toQuoteResponse(q))
		return
	}

	q, err := h.gateway.FetchByID(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(q))
}

// SaveQuote handles POST /api/v1/quotes
// Creates or updates a quote. The server recomputes the total; any total in
// the request body is ignored.
//
// @Summary Save a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) SaveQuote(c *gin.Context) {
	var req QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	saved, err := h.store.Save(c.Request.Context(), req.toDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(saved))
}

// CreateDraft handles POST /api/v1/quotes/drafts
// Creates and saves a blank draft dated today.
//
// @Summary Create a blank draft
// @Tags quotes
// @Produce json
// @Success 201 {object} QuoteResponse
// @Router /api/v1/quotes/drafts [post]
func (h *QuoteHandler) CreateDraft(c *gin.Context) {
	created, err := h.store.AddNew(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(created))
}

// CopyQuote handles POST /api/v1/quotes/:id/copy
// Saves a fresh draft derived from an existing quote.
//
// @Summary Copy a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Source quote ID"
// @Success 201 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id}/copy [post]
func (h *QuoteHandler) CopyQuote(c *gin.Context) {
	copied, err := h.store.Copy(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(copied))
}

// ChangeStatus handles PUT /api/v1/quotes/:id/status
// Moves a quote to a new lifecycle status. Legacy status tokens are
// normalized to their canonical form.
//
// @Summary Change quote status
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id}/status [put]
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.store.ChangeStatus(c.Request.Context(), c.Param("id"), domain.NormalizeStatus(req.Status))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(updated))
}

// ArchiveQuote handles DELETE /api/v1/quotes/:id
// Archives the quote; nothing is ever hard-deleted.
//
// @Summary Archive a quote
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 204
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [delete]
func (h *QuoteHandler) ArchiveQuote(c *gin.Context) {
	if err := h.store.Archive(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DispatchProposal handles POST /api/v1/quotes/:id/dispatch
// Emails the proposal to the customer and marks the quote proposal-sent.
//
// @Summary Send a proposal to the customer
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 202
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id}/dispatch [post]
func (h *QuoteHandler) DispatchProposal(c *gin.Context) {
	if err := h.store.SendProposal(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

// ApproveProposal handles POST /api/v1/quotes/:id/approve
// Marks a sent proposal as approved by the customer.
//
// @Summary Approve a proposal
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id}/approve [post]
func (h *QuoteHandler) ApproveProposal(c *gin.Context) {
	approved, err := h.store.ApproveProposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(approved))
}

// LoadMore handles POST /api/v1/quotes/load-more
// Appends the next page from the backend to the loaded collection.
//
// @Summary Load the next page of quotes
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.CollectionResponse[QuoteResponse]
// @Router /api/v1/quotes/load-more [post]
func (h *QuoteHandler) LoadMore(c *gin.Context) {
	if err := h.store.LoadNextPage(c.Request.Context()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCollectionResponse(toQuoteResponses(h.store.Quotes()), h.store.HasMore()))
}

// SyncState handles GET /api/v1/quotes/sync
// Reports the store's loading and syncing flags.
//
// @Summary Get collection sync state
// @Tags quotes
// @Produce json
// @Success 200 {object} SyncStateResponse
// @Router /api/v1/quotes/sync [get]
func (h *QuoteHandler) SyncState(c *gin.Context) {
	resp := SyncStateResponse{
		IsLoading:      h.store.IsLoading(),
		IsSyncing:      h.store.IsSyncing(),
		IsFetchingMore: h.store.IsFetchingMore(),
		HasMore:        h.store.HasMore(),
	}

	if err := h.store.FetchError(); err != nil {
		resp.FetchError = err.Error()
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.SaveQuote)
	quotes.POST("/drafts", h.CreateDraft)
	quotes.POST("/load-more", h.LoadMore)
	quotes.GET("/sync", h.SyncState)
	quotes.GET("/:id", h.GetQuote)
	quotes.DELETE("/:id", h.ArchiveQuote)
	quotes.POST("/:id/copy", h.CopyQuote)
	quotes.PUT("/:id/status", h.ChangeStatus)
	quotes.POST("/:id/dispatch", h.DispatchProposal)
	quotes.POST("/:id/approve", h.ApproveProposal)
}
