package api

import (
	"net/http" // HTTP status codes

	"marketplace/internal/account" // Identity store
	"marketplace/internal/domain"  // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request and Response structs
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`              // Login email, unique
	Password string `json:"password" binding:"required,min=6,max=72"`    // Plain password, bcrypt limit applies
	Name     string `json:"name" binding:"required,min=2"`               // Display name
	Role     string `json:"role" binding:"required,oneof=CLIENT VENDOR"` // Immutable account type
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token  string      `json:"token"`            // JWT token
	User   UserView    `json:"user"`             // Authenticated user
	Vendor *VendorView `json:"vendor,omitempty"` // Vendor profile for VENDOR accounts
}

func newAuthResponse(res *account.AuthResult) AuthResponse {
	return AuthResponse{Token: res.Token, User: newUserView(res.User), Vendor: newVendorView(res.Vendor)}
}

// RegisterHandler creates a user, and a vendor profile for VENDOR accounts
func RegisterHandler(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := accounts.Register(c.Request.Context(), account.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Role:     domain.Role(req.Role),
		})
		if err != nil {
			respondError(c, err) // Duplicate email maps to 409
			return
		}
		c.JSON(http.StatusCreated, newAuthResponse(res))
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newAuthResponse(res))
	}
}
