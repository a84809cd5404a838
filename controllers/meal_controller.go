package controllers

import (
	"errors"
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

// POST /meals — upload a meal photo and start the analysis. Returns 202
// with the meal in processing state; the analysis result lands later.
func (mc *MealController) AnalyzeMeal(c *gin.Context) {
	var body struct {
		Type        string    `json:"type"`
		AteAt       time.Time `json:"ate_at"`
		ImageBase64 string    `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	user, err := services.FindUserByEmail(c.GetString("email"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	meal, err := mc.Meals.LogMealPhoto(user, body.Type, body.AteAt, body.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, meal)
}

func (mc *MealController) GetMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	meal, err := mc.Meals.GetMeal(uid, parseUintParam(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) ListMeals(c *gin.Context) {
	uid := c.GetUint("userID")

	if fromStr, toStr := c.Query("from"), c.Query("to"); fromStr != "" && toStr != "" {
		from, err1 := time.Parse("2006-01-02", fromStr)
		to, err2 := time.Parse("2006-01-02", toStr)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from/to must be YYYY-MM-DD"})
			return
		}
		meals, err := mc.Meals.ListMealsByDateRange(uid, from, to.AddDate(0, 0, 1))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := mc.Meals.ListMeals(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) ListRecentMeals(c *gin.Context) {
	uid := c.GetUint("userID")

	meals, err := mc.Meals.ListRecentMeals(uid, intQuery(c, "limit", 3))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/risks — only meals whose analysis raised findings or warnings.
func (mc *MealController) ListMealRisks(c *gin.Context) {
	uid := c.GetUint("userID")

	var from, to *time.Time
	if fromStr, toStr := c.Query("from"), c.Query("to"); fromStr != "" && toStr != "" {
		f, err1 := time.Parse("2006-01-02", fromStr)
		t, err2 := time.Parse("2006-01-02", toStr)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from/to must be YYYY-MM-DD"})
			return
		}
		t = t.AddDate(0, 0, 1)
		from, to = &f, &t
	}

	out, err := mc.Meals.ListMealsWithRisks(uid, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /meals/:id/reanalyze — rerun analysis over the stored photo with the
// user's current conditions.
func (mc *MealController) ReanalyzeMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	meal, err := mc.Meals.Reanalyze(uid, parseUintParam(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, meal)
}

func (mc *MealController) DeleteMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := mc.Meals.DeleteMeal(uid, parseUintParam(c, "id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}
