package controller

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"royalestates_backend/internal/model"
	"royalestates_backend/internal/service"
	"royalestates_backend/pkg/utils/jwt"
	"royalestates_backend/pkg/utils/validation"
)

var propertyService *service.PropertyService

func InitPropertyController(s *service.PropertyService) {
	propertyService = s
}

type PropertyInput struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Location     string   `json:"location" validate:"required"`
	District     string   `json:"district" validate:"required,district"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=residential commercial land plot"`
	Category     string   `json:"category" validate:"required,oneof=sale rent homestay holiday-home"`
	Bedrooms     *int     `json:"bedrooms" validate:"required_if=PropertyType residential"`
	Bathrooms    *int     `json:"bathrooms" validate:"required_if=PropertyType residential"`
	Area         float64  `json:"area" validate:"required,gt=0"`
	AreaUnit     string   `json:"areaUnit" validate:"required,oneof=sqft sqm acres kanal"`
	Amenities    []string `json:"amenities" validate:"omitempty,dive,amenity"`
	Images       []string `json:"images" validate:"required,min=1,dive,required,uri"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status" validate:"omitempty,oneof=available sold rented"`
}

type PropertyPatchInput struct {
	Title        *string  `json:"title" validate:"omitempty,min=1"`
	Description  *string  `json:"description" validate:"omitempty,min=1"`
	Price        *float64 `json:"price" validate:"omitempty,gt=0"`
	Location     *string  `json:"location" validate:"omitempty,min=1"`
	District     *string  `json:"district" validate:"omitempty,district"`
	PropertyType *string  `json:"propertyType" validate:"omitempty,oneof=residential commercial land plot"`
	Category     *string  `json:"category" validate:"omitempty,oneof=sale rent homestay holiday-home"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	Area         *float64 `json:"area" validate:"omitempty,gt=0"`
	AreaUnit     *string  `json:"areaUnit" validate:"omitempty,oneof=sqft sqm acres kanal"`
	Amenities    []string `json:"amenities" validate:"omitempty,dive,amenity"`
	Images       []string `json:"images" validate:"omitempty,min=1,dive,required,uri"`
	Featured     *bool    `json:"featured"`
	Status       *string  `json:"status" validate:"omitempty,oneof=available sold rented"`
}

// parseFilters reads the recognized filter parameters off the query string.
// Unrecognized keys are ignored; malformed numbers are rejected here so the
// filter translator never sees them.
func parseFilters(c *fiber.Ctx) (service.PropertyFilters, validation.FieldErrors) {
	filters := service.PropertyFilters{
		District:     c.Query("district"),
		PropertyType: c.Query("propertyType"),
		Category:     c.Query("category"),
	}

	errs := validation.FieldErrors{}
	for param, dest := range map[string]**int{
		"minPrice": &filters.MinPrice,
		"maxPrice": &filters.MaxPrice,
		"bedrooms": &filters.Bedrooms,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			errs[param] = param + " must be a number"
			continue
		}
		*dest = &value
	}

	if len(errs) > 0 {
		return filters, errs
	}
	return filters, nil
}

func ListProperties(c *fiber.Ctx) error {
	filters, errs := parseFilters(c)
	if errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}

	properties, err := propertyService.List(filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

func GetFeaturedProperties(c *fiber.Ctx) error {
	properties, err := propertyService.Featured()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

func GetProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	property, err := propertyService.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	return c.JSON(property)
}

func CreateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}

	status := model.PropertyStatus(input.Status)
	if status == "" {
		status = model.PropertyStatusAvailable
	}

	property := model.Property{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Location:     input.Location,
		District:     input.District,
		PropertyType: model.PropertyType(input.PropertyType),
		Category:     model.Category(input.Category),
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
		AreaUnit:     model.AreaUnit(input.AreaUnit),
		Amenities:    toJSON(input.Amenities),
		Images:       toJSON(input.Images),
		Featured:     input.Featured,
		Status:       status,
		CreatedByID:  claims.UserID,
	}

	if err := propertyService.Create(&property); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	created, err := propertyService.Get(property.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func UpdateProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	input := new(PropertyPatchInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.District != nil {
		updates["district"] = *input.District
	}
	if input.PropertyType != nil {
		updates["property_type"] = *input.PropertyType
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Bedrooms != nil {
		updates["bedrooms"] = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		updates["bathrooms"] = *input.Bathrooms
	}
	if input.Area != nil {
		updates["area"] = *input.Area
	}
	if input.AreaUnit != nil {
		updates["area_unit"] = *input.AreaUnit
	}
	if input.Amenities != nil {
		updates["amenities"] = toJSON(input.Amenities)
	}
	if input.Images != nil {
		updates["images"] = toJSON(input.Images)
	}
	if input.Featured != nil {
		updates["featured"] = *input.Featured
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	property, err := propertyService.Update(uint(id), updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update property",
		})
	}

	return c.JSON(property)
}

func DeleteProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if err := propertyService.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Property deleted successfully",
	})
}

// GetSavedProperties lists the caller's saved properties.
func GetSavedProperties(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	properties, err := propertyService.SavedProperties(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch saved properties",
		})
	}

	return c.JSON(properties)
}

func SaveProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if err := propertyService.SaveForUser(claims.UserID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save property",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Property saved successfully",
	})
}

func UnsaveProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if err := propertyService.UnsaveForUser(claims.UserID, uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not remove saved property",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Property removed from saved list",
	})
}

func toJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return data
}
