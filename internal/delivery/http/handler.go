package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/service"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

// Handler handles HTTP requests for the application.
type Handler struct {
	auth          *service.AuthService
	catalog       *service.CatalogService
	orders        *service.OrderService
	notifications *service.NotificationService
	analytics     *service.AnalyticsService
	sessions      session.Store
}

func NewHandler(
	auth *service.AuthService,
	catalog *service.CatalogService,
	orders *service.OrderService,
	notifications *service.NotificationService,
	analytics *service.AnalyticsService,
	sessions session.Store,
) *Handler {
	return &Handler{
		auth:          auth,
		catalog:       catalog,
		orders:        orders,
		notifications: notifications,
		analytics:     analytics,
		sessions:      sessions,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", h.authenticated(h.handleLogout))

	mux.HandleFunc("GET /api/products", h.authenticated(h.handleListProducts))
	mux.HandleFunc("POST /api/products", h.authenticated(h.handleCreateProduct))
	mux.HandleFunc("GET /api/products/{id}", h.authenticated(h.handleGetProduct))
	mux.HandleFunc("PUT /api/products/{id}", h.authenticated(h.handleUpdateProduct))
	mux.HandleFunc("DELETE /api/products/{id}", h.authenticated(h.handleDeleteProduct))

	mux.HandleFunc("GET /api/demands", h.authenticated(h.handleListDemands))
	mux.HandleFunc("POST /api/demands", h.authenticated(h.handleCreateDemand))
	mux.HandleFunc("GET /api/demands/{id}", h.authenticated(h.handleGetDemand))
	mux.HandleFunc("PUT /api/demands/{id}", h.authenticated(h.handleUpdateDemand))
	mux.HandleFunc("DELETE /api/demands/{id}", h.authenticated(h.handleDeleteDemand))

	mux.HandleFunc("GET /api/transport", h.authenticated(h.handleListTransports))
	mux.HandleFunc("POST /api/transport", h.authenticated(h.handleCreateTransport))
	mux.HandleFunc("GET /api/transport/{id}", h.authenticated(h.handleGetTransport))
	mux.HandleFunc("PUT /api/transport/{id}", h.authenticated(h.handleUpdateTransport))
	mux.HandleFunc("DELETE /api/transport/{id}", h.authenticated(h.handleDeleteTransport))

	mux.HandleFunc("POST /api/orders", h.authenticated(h.handleCreateOrder))
	mux.HandleFunc("GET /api/orders", h.authenticated(h.handleListOrders))
	mux.HandleFunc("GET /api/orders/{id}", h.authenticated(h.handleGetOrder))

	mux.HandleFunc("GET /api/notifications", h.authenticated(h.handleListNotifications))
	mux.HandleFunc("PUT /api/notifications/read-all", h.authenticated(h.handleReadAllNotifications))
	mux.HandleFunc("PUT /api/notifications/{id}", h.authenticated(h.handleReadNotification))
	mux.HandleFunc("DELETE /api/notifications/{id}", h.authenticated(h.handleDeleteNotification))

	mux.HandleFunc("GET /api/analytics", h.authenticated(h.handleAnalytics))
}

// --- Auth ---

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.auth.Register(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, u, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"token": sess.Token,
		"user":  u,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

// --- Products ---

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.ProductFilter{
		Category: q.Get("category"),
		FarmerID: q.Get("farmer"),
		Quality:  entity.Quality(q.Get("quality")),
	}
	if v := q.Get("available"); v != "" {
		b := v == "true"
		f.Available = &b
	}

	products, err := h.catalog.ListProducts(r.Context(), f)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p entity.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), sessionFrom(r), &p)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p entity.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = r.PathValue("id")

	if err := h.catalog.UpdateProduct(r.Context(), sessionFrom(r), &p); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), sessionFrom(r), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

// --- Demands ---

func (h *Handler) handleListDemands(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.DemandFilter{
		Category:   q.Get("category"),
		RetailerID: q.Get("retailer"),
	}

	demands, err := h.catalog.ListDemands(r.Context(), sessionFrom(r), f)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, demands)
}

func (h *Handler) handleCreateDemand(w http.ResponseWriter, r *http.Request) {
	var d entity.Demand
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.catalog.CreateDemand(r.Context(), sessionFrom(r), &d)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) handleGetDemand(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.GetDemand(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) handleUpdateDemand(w http.ResponseWriter, r *http.Request) {
	var d entity.Demand
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.ID = r.PathValue("id")

	if err := h.catalog.UpdateDemand(r.Context(), sessionFrom(r), &d); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) handleDeleteDemand(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteDemand(r.Context(), sessionFrom(r), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

// --- Transport ---

func (h *Handler) handleListTransports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.TransportFilter{
		Departure:     q.Get("departure"),
		Destination:   q.Get("destination"),
		TransporterID: q.Get("transporter"),
	}

	transports, err := h.catalog.ListTransports(r.Context(), f)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, transports)
}

func (h *Handler) handleCreateTransport(w http.ResponseWriter, r *http.Request) {
	var t entity.Transport
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.catalog.CreateTransport(r.Context(), sessionFrom(r), &t)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) handleGetTransport(w http.ResponseWriter, r *http.Request) {
	t, err := h.catalog.GetTransport(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) handleUpdateTransport(w http.ResponseWriter, r *http.Request) {
	var t entity.Transport
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = r.PathValue("id")

	if err := h.catalog.UpdateTransport(r.Context(), sessionFrom(r), &t); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) handleDeleteTransport(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteTransport(r.Context(), sessionFrom(r), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

// --- Orders ---

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in service.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), sessionFrom(r), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, order)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, err := h.orders.ListOrders(r.Context(), sessionFrom(r), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), sessionFrom(r), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

// --- Notifications ---

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	onlyUnread := q.Get("unread") == "true"
	limit, _ := strconv.Atoi(q.Get("limit"))

	list, err := h.notifications.List(r.Context(), sessionFrom(r), onlyUnread, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, list)
}

func (h *Handler) handleReadNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(r.Context(), sessionFrom(r), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *Handler) handleReadAllNotifications(w http.ResponseWriter, r *http.Request) {
	modified, err := h.notifications.MarkAllRead(r.Context(), sessionFrom(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]int64{"modified_count": modified})
}

func (h *Handler) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.Delete(r.Context(), sessionFrom(r), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

// --- Analytics ---

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Summarize(r.Context(), sessionFrom(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, summary)
}
