package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"quickrent/internal/domain/models"
	"quickrent/internal/http/middleware"
	"quickrent/internal/repositories"
)

type apartmentRequest struct {
	Title        string `json:"title"`
	Location     string `json:"location"`
	PricePesewas int64  `json:"price_pesewas"`
}

// GET /api/apartments
func ListApartments(c *gin.Context) {
	out, err := (repositories.ApartmentRepository{}).List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list apartments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apartments": out})
}

// GET /api/apartments/:id
func GetApartment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid apartment id", nil)
		return
	}

	apt, err := (repositories.ApartmentRepository{}).GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusNotFound, "apartment not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to load apartment", err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

// POST /api/apartments (landlord)
func CreateApartment(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req apartmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.PricePesewas <= 0 {
		RespondError(c, http.StatusBadRequest, "title and a positive price are required", nil)
		return
	}

	// Inherit the landlord's payout destination when already configured.
	userRepo := repositories.UserRepository{}
	sub := ""
	if u, err := userRepo.GetByID(sess.UserID); err == nil {
		sub = u.SubaccountCode
	}

	apt := models.Apartment{
		LandlordID:     sess.UserID,
		Title:          strings.TrimSpace(req.Title),
		Location:       strings.TrimSpace(req.Location),
		PricePesewas:   req.PricePesewas,
		SubaccountCode: sub,
	}
	if err := (repositories.ApartmentRepository{}).Create(&apt); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create apartment", err)
		return
	}
	c.JSON(http.StatusCreated, apt)
}

// PUT /api/apartments/:id (owning landlord)
func UpdateApartment(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid apartment id", nil)
		return
	}

	var req struct {
		Title        *string `json:"title"`
		Location     *string `json:"location"`
		PricePesewas *int64  `json:"price_pesewas"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.PricePesewas != nil && *req.PricePesewas <= 0 {
		RespondError(c, http.StatusBadRequest, "price must be positive", nil)
		return
	}

	ok, err := (repositories.ApartmentRepository{}).Update(id, sess.UserID, models.ApartmentUpdate{
		Title:        req.Title,
		Location:     req.Location,
		PricePesewas: req.PricePesewas,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update apartment", err)
		return
	}
	if !ok {
		RespondError(c, http.StatusNotFound, "apartment not found or not yours", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
