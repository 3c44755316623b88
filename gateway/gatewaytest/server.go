// Package gatewaytest runs an in-process fake of the storefront
// backend for tests. It implements just enough of the API contract to
// drive the client controllers end to end.
package gatewaytest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kiranamart/storefront-client/models"
)

type Server struct {
	*httptest.Server

	Products   []models.Product
	Categories []models.Category
	Orders     []models.Order

	AdminEmail    string
	AdminPassword string

	// FailCreateOrder, when non-empty, makes order creation fail with
	// a 400 carrying this message.
	FailCreateOrder string

	// CreateOrderCalls counts how many submissions reached the server.
	CreateOrderCalls int

	customers map[string]models.User // by mobile
	sessions  map[string]models.User // by token
	nextID    int
}

// New starts the fake backend. Callers own Close.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		AdminEmail:    "admin@example.com",
		AdminPassword: "secret",
		customers:     make(map[string]models.User),
		sessions:      make(map[string]models.User),
		nextID:        1,
	}

	r := gin.New()

	r.GET("/api/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": s.Products})
	})
	r.GET("/api/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": s.Categories})
	})

	r.POST("/api/auth/customer-register", func(c *gin.Context) {
		var body struct {
			Name   string `json:"name"`
			Mobile string `json:"mobile"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		if _, exists := s.customers[body.Mobile]; exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mobile already registered"})
			return
		}
		s.customers[body.Mobile] = models.User{
			ID:     fmt.Sprintf("user-%d", len(s.customers)+1),
			Name:   body.Name,
			Mobile: body.Mobile,
			Role:   models.RoleCustomer,
		}
		c.JSON(http.StatusOK, gin.H{"message": "registered"})
	})

	r.POST("/api/auth/customer-login", func(c *gin.Context) {
		var body struct {
			Mobile string `json:"mobile"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		user, exists := s.customers[body.Mobile]
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "customer not found"})
			return
		}
		token := IssueToken(string(models.RoleCustomer), time.Hour)
		s.sessions[token] = user
		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	})

	r.GET("/api/auth/customer-me", func(c *gin.Context) {
		user, ok := s.authed(c)
		if !ok || user.Role != models.RoleCustomer {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	})

	r.POST("/api/auth/customer-logout", func(c *gin.Context) {
		delete(s.sessions, bearer(c))
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	})

	r.POST("/api/auth/login", func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		if body.Email != s.AdminEmail || body.Password != s.AdminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin credentials"})
			return
		}
		admin := models.User{ID: "admin-1", Name: "Admin", Email: body.Email, Role: models.RoleAdmin}
		token := IssueToken(string(models.RoleAdmin), time.Hour)
		s.sessions[token] = admin
		c.JSON(http.StatusOK, gin.H{"user": admin, "token": token})
	})

	r.POST("/api/auth/logout", func(c *gin.Context) {
		delete(s.sessions, bearer(c))
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	})

	r.POST("/api/orders", func(c *gin.Context) {
		user, ok := s.authed(c)
		if !ok || user.Role != models.RoleCustomer {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		s.CreateOrderCalls++
		if s.FailCreateOrder != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": s.FailCreateOrder})
			return
		}
		var body struct {
			DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
			Items           []struct {
				ProductID string `json:"productId"`
				Quantity  int    `json:"quantity"`
			} `json:"items"`
			PaymentMethod models.PaymentMethod `json:"paymentMethod"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		order := models.Order{
			ID:            fmt.Sprintf("ord-%d", s.nextID),
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPendingVerification,
			PaymentMethod: body.PaymentMethod,
			Address:       &body.DeliveryAddress,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		s.nextID++
		for _, item := range body.Items {
			for _, p := range s.Products {
				if p.ID == item.ProductID {
					order.Total += p.Price * float64(item.Quantity)
					oi := models.OrderItem{ProductID: p.ID, Quantity: item.Quantity, Price: p.Price}
					oi.Product.Name = p.Name
					order.Items = append(order.Items, oi)
				}
			}
		}
		s.Orders = append(s.Orders, order)
		c.JSON(http.StatusOK, gin.H{"orderId": order.ID, "order": order, "totalAmount": order.Total})
	})

	r.GET("/api/orders/my", func(c *gin.Context) {
		user, ok := s.authed(c)
		if !ok || user.Role != models.RoleCustomer {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": s.Orders})
	})

	r.GET("/api/orders/admin", func(c *gin.Context) {
		user, ok := s.authed(c)
		if !ok || user.Role != models.RoleAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": s.Orders})
	})

	r.PATCH("/api/orders/:id", func(c *gin.Context) {
		user, ok := s.authed(c)
		if !ok || user.Role != models.RoleAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		var body struct {
			Status        models.OrderStatus   `json:"status"`
			PaymentStatus models.PaymentStatus `json:"paymentStatus"`
			CancelReason  string               `json:"cancelReason"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		for i := range s.Orders {
			if s.Orders[i].ID != c.Param("id") {
				continue
			}
			if body.Status != "" {
				s.Orders[i].Status = body.Status
			}
			if body.PaymentStatus != "" {
				s.Orders[i].PaymentStatus = body.PaymentStatus
			}
			s.Orders[i].UpdatedAt = time.Now()
			c.JSON(http.StatusOK, gin.H{"message": "updated", "order": s.Orders[i]})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	})

	s.registerAdminCatalog(r)

	s.Server = httptest.NewServer(r)
	return s
}

func (s *Server) registerAdminCatalog(r *gin.Engine) {
	adminOnly := func(c *gin.Context) bool {
		user, ok := s.authed(c)
		if !ok || user.Role != models.RoleAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return false
		}
		return true
	}

	r.POST("/api/products", func(c *gin.Context) {
		if !adminOnly(c) {
			return
		}
		var p models.Product
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		p.ID = fmt.Sprintf("p-%d", s.nextID)
		s.nextID++
		s.Products = append(s.Products, p)
		c.JSON(http.StatusOK, gin.H{"product": p})
	})

	r.PATCH("/api/products/:id", func(c *gin.Context) {
		if !adminOnly(c) {
			return
		}
		var patch struct {
			Name  string   `json:"name"`
			Price *float64 `json:"price"`
			Stock *int     `json:"stock"`
		}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		for i := range s.Products {
			if s.Products[i].ID == c.Param("id") {
				if patch.Name != "" {
					s.Products[i].Name = patch.Name
				}
				if patch.Price != nil {
					s.Products[i].Price = *patch.Price
				}
				if patch.Stock != nil {
					s.Products[i].Stock = *patch.Stock
				}
				c.JSON(http.StatusOK, gin.H{"product": s.Products[i]})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	})

	r.DELETE("/api/products/:id", func(c *gin.Context) {
		if !adminOnly(c) {
			return
		}
		for i := range s.Products {
			if s.Products[i].ID == c.Param("id") {
				s.Products = append(s.Products[:i], s.Products[i+1:]...)
				c.JSON(http.StatusOK, gin.H{"message": "deleted"})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	})

	r.POST("/api/categories", func(c *gin.Context) {
		if !adminOnly(c) {
			return
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		category := models.Category{ID: fmt.Sprintf("c-%d", s.nextID), Name: body.Name}
		s.nextID++
		s.Categories = append(s.Categories, category)
		c.JSON(http.StatusOK, gin.H{"category": category})
	})

	r.PATCH("/api/categories/:id", func(c *gin.Context) {
		if !adminOnly(c) {
			return
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		for i := range s.Categories {
			if s.Categories[i].ID == c.Param("id") {
				s.Categories[i].Name = body.Name
				c.JSON(http.StatusOK, gin.H{"category": s.Categories[i]})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
	})

	r.DELETE("/api/categories/:id", func(c *gin.Context) {
		if !adminOnly(c) {
			return
		}
		for i := range s.Categories {
			if s.Categories[i].ID == c.Param("id") {
				s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
				c.JSON(http.StatusOK, gin.H{"message": "deleted"})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
	})
}

// AddCustomer registers a customer account directly.
func (s *Server) AddCustomer(name, mobile string) models.User {
	user := models.User{
		ID:     fmt.Sprintf("user-%d", len(s.customers)+1),
		Name:   name,
		Mobile: mobile,
		Role:   models.RoleCustomer,
	}
	s.customers[mobile] = user
	return user
}

// Seed installs an already-authenticated session for the given role
// and returns its token, standing in for a login from a previous run.
func (s *Server) Seed(role models.Role, ttl time.Duration) string {
	token := IssueToken(string(role), ttl)
	user := models.User{ID: "seeded", Name: "Seeded", Role: role}
	if role == models.RoleCustomer {
		user.Mobile = "9876543210"
	}
	s.sessions[token] = user
	return token
}

func (s *Server) authed(c *gin.Context) (models.User, bool) {
	user, ok := s.sessions[bearer(c)]
	return user, ok
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// IssueToken mints an HS256 session token with role and expiry
// claims. Clients never verify the signature, so the key is
// arbitrary.
func IssueToken(role string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return token
}
