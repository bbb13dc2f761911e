package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"stockroom/internal/models"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Register custom validation tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	err := v.RegisterValidation("employee_role", validateEmployeeRole)
	if err != nil {
		return nil
	}
	err = v.RegisterValidation("product_size", validateProductSize)
	if err != nil {
		return nil
	}
	err = v.RegisterValidation("task_status", validateTaskStatus)
	if err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateEmployeeRole(fl playgroundvalidator.FieldLevel) bool {
	return models.IsValidRole(models.Role(fl.Field().String()))
}

func validateProductSize(fl playgroundvalidator.FieldLevel) bool {
	return models.ProductSize(fl.Field().String()).Valid()
}

func validateTaskStatus(fl playgroundvalidator.FieldLevel) bool {
	return models.TaskStatus(fl.Field().String()).IsWorkable()
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// Request validation structs

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,employee_role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ProductRequest struct {
	Name string `json:"product_name" validate:"required"`
	Size string `json:"product_size" validate:"required,product_size"`
}

type RenameProductRequest struct {
	NewName string `json:"new_product_name" validate:"required"`
}

type StockRequest struct {
	ProductID   uint `json:"product_id" validate:"required"`
	WarehouseID uint `json:"warehouse_id" validate:"required"`
}

type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

type WarehouseRequest struct {
	Name     string `json:"warehouse_name" validate:"required"`
	Capacity int64  `json:"capacity" validate:"required,gt=0"`
}

type ModifyWarehouseRequest struct {
	Name     string `json:"warehouse_name"`
	Capacity *int64 `json:"capacity"`
}

type OccupiedAreaRequest struct {
	OccupiedArea int64 `json:"occupied_area"`
}

type TaskRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Status    string `json:"status" validate:"required,task_status"`
}
