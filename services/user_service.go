package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"
)

type HealthConditionInput struct {
	Condition string `json:"condition"`
	Details   string `json:"details"`
}

type ProfileInput struct {
	FirstName        string                 `json:"first_name"`
	LastName         string                 `json:"last_name"`
	Birthday         string                 `json:"birthday"` // sent as YYYY-MM-DD
	Height           float64                `json:"height"`
	Weight           float64                `json:"weight"`
	HealthConditions []HealthConditionInput `json:"health_conditions"`
	ProfilePicture   string                 `json:"profile_picture"`
	Onboarded        bool                   `json:"onboarded"`
}

// ConditionCodes flattens a user's stored conditions into the lowercase
// codes the risk engine matches on. Duplicates are harmless (set semantics
// downstream); unknown codes are inert.
func ConditionCodes(u *models.User) []string {
	if u == nil {
		return nil
	}
	codes := make([]string, 0, len(u.HealthConditions))
	for _, hc := range u.HealthConditions {
		c := strings.ToLower(strings.TrimSpace(hc.Condition))
		if c != "" && c != utils.ConditionNone {
			codes = append(codes, c)
		}
	}
	return codes
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Preload("HealthConditions").
		Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	conditions := make([]map[string]string, 0, len(user.HealthConditions))
	for _, hc := range user.HealthConditions {
		conditions = append(conditions, map[string]string{
			"condition": hc.Condition,
			"details":   hc.Details,
		})
	}

	profile := map[string]interface{}{
		"id":                user.ID,
		"user_id":           user.UserID,
		"email":             user.Email,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"birthday":          user.Birthday.Format("2006-01-02"),
		"age":               age,
		"height":            user.Height,
		"weight":            user.Weight,
		"health_conditions": conditions,
		"profile_picture":   user.ProfilePicture,
		"mfa_enabled":       user.MFAEnabled,
		"onboarded":         user.Onboarded,
	}

	if bmi, err := utils.CalculateBMI(user.Height, user.Weight); err == nil {
		profile["bmi"] = bmi
		profile["bmi_category"] = utils.BMICategory(bmi)
	}
	return profile, nil
}

func UpdateUserProfile(email string, input ProfileInput) error {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}

	if input.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", input.Birthday)
		if err == nil {
			user.Birthday = birthday
		}
	}

	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	user.Onboarded = input.Onboarded

	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	if input.HealthConditions != nil {
		return ReplaceHealthConditions(user.ID, input.HealthConditions)
	}
	return nil
}

// ReplaceHealthConditions swaps the user's declared conditions for the
// given set. Empty input clears them all.
func ReplaceHealthConditions(userID uint, inputs []HealthConditionInput) error {
	if err := config.DB.
		Where("user_id = ?", userID).
		Delete(&models.HealthCondition{}).Error; err != nil {
		return err
	}

	for _, in := range inputs {
		code := strings.ToLower(strings.TrimSpace(in.Condition))
		if code == "" {
			continue
		}
		hc := &models.HealthCondition{
			UserID:    userID,
			Condition: code,
			Details:   in.Details,
		}
		if err := config.DB.Create(hc).Error; err != nil {
			return err
		}
	}
	return nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.Preload("HealthConditions").First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func DeleteUser(email string) error {
	var user models.User
	result := config.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return result.Error
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}
