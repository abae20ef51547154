package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/dmitrijs2005/smartirrigation/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Location string `json:"location"`
	CropType string `json:"cropType"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type proposalRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       number   `json:"price"`
	TargetCrops []string `json:"targetCrops"`
}

type waterUsageRequest struct {
	Field      string `json:"field"`
	LitersUsed number `json:"litersUsed"`
	Status     string `json:"status"`
}

type healthResponse struct {
	Status         string `json:"status"`
	StoreConnected bool   `json:"storeConnected"`
	Store          string `json:"store"`
	Timestamp      string `json:"timestamp"`
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := s.svc.Users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Location: req.Location,
		CropType: req.CropType,
	})
	if err != nil {
		s.fail(c, err, "Registration failed")
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", res.User.ID, "role", res.User.Role)
	c.JSON(http.StatusOK, authResponse{Message: "Registration successful", Token: res.Token, User: res.User})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := s.svc.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, authResponse{Message: "Login successful", Token: res.Token, User: res.User})
}

func (s *HTTPServer) listUsers(c *gin.Context) {
	list, err := s.svc.Users.List(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) listProposals(c *gin.Context) {
	list, err := s.svc.Proposals.List(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch proposals")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) createProposal(c *gin.Context) {
	claims, _ := ClaimsFromContext(c.Request.Context())

	var req proposalRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := s.svc.Proposals.Create(c.Request.Context(), claims.UserID, services.ProposalInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price.Ptr(),
		TargetCrops: req.TargetCrops,
	})
	if err != nil {
		s.fail(c, err, "Failed to create proposal")
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (s *HTTPServer) deleteProposal(c *gin.Context) {
	claims, _ := ClaimsFromContext(c.Request.Context())

	if err := s.svc.Proposals.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		s.fail(c, err, "Failed to delete proposal")
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) listWaterUsage(c *gin.Context) {
	list, err := s.svc.WaterUsage.List(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch water usage")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) createWaterUsage(c *gin.Context) {
	claims, _ := ClaimsFromContext(c.Request.Context())

	var req waterUsageRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := s.svc.WaterUsage.Create(c.Request.Context(), claims.UserID, services.WaterUsageInput{
		Field:      req.Field,
		LitersUsed: req.LitersUsed.Ptr(),
		Status:     req.Status,
	})
	if err != nil {
		s.fail(c, err, "Failed to save water usage")
		return
	}

	c.JSON(http.StatusCreated, w)
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:         "ok",
		StoreConnected: s.store.Available(),
		Store:          s.store.Name(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
	})
}
