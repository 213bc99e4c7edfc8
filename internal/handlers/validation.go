package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stanielhristov/medical-reservation-sub004/internal/models"
	"github.com/stanielhristov/medical-reservation-sub004/internal/notifications"
	appErrors "github.com/stanielhristov/medical-reservation-sub004/pkg/errors"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/logger"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
	appValidator "github.com/stanielhristov/medical-reservation-sub004/pkg/validator"
)

const (
	tagNotificationCategory = "notification_category"
	tagNotificationPriority = "notification_priority"
	tagUserRole             = "user_role"
)

var registerRules sync.Once

// registerValidationRules installs the enum tags request payloads use.
func registerValidationRules() {
	registerRules.Do(func() {
		categories := make([]string, 0, len(notifications.Categories()))
		for _, category := range notifications.Categories() {
			categories = append(categories, string(category))
		}
		rules := map[string][]string{
			tagNotificationCategory: categories,
			tagNotificationPriority: {
				string(notifications.PriorityHigh),
				string(notifications.PriorityMedium),
				string(notifications.PriorityLow),
			},
			tagUserRole: {models.RolePatient, models.RoleDoctor, models.RoleAdmin},
		}
		for tag, values := range rules {
			if err := appValidator.RegisterEnum(tag, values...); err != nil {
				logger.WithModule("http").Error("register validation rule", zap.String("tag", tag), zap.Error(err))
			}
		}
	})
}

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	registerValidationRules()

	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest(formatValidationError(err)))
		return false
	}

	return true
}

func formatValidationError(err error) string {
	if err == nil {
		return "invalid request payload"
	}

	ve, ok := err.(appValidator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return "invalid request payload"
	}

	messages := make([]string, 0, len(ve))
	for _, failure := range ve {
		field := prettifyFieldName(failure.Field)
		switch failure.Tag {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, failure.Param))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, failure.Param))
		case tagNotificationCategory:
			messages = append(messages, fmt.Sprintf("%s must be one of appointments, reminders, health, system", field))
		case tagNotificationPriority:
			messages = append(messages, fmt.Sprintf("%s must be one of high, medium, low", field))
		case tagUserRole:
			messages = append(messages, fmt.Sprintf("%s must be one of patient, doctor, admin", field))
		default:
			if failure.Param != "" {
				messages = append(messages, fmt.Sprintf("%s failed validation: %s=%s", field, failure.Tag, failure.Param))
			} else {
				messages = append(messages, fmt.Sprintf("%s failed validation: %s", field, failure.Tag))
			}
		}
	}
	return strings.Join(messages, "; ")
}

func prettifyFieldName(name string) string {
	if name == "" {
		return "field"
	}
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToLower(name)
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBoolQuery(c *gin.Context, key string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && parsed
}
