package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"royalestates_backend/pkg/geocode"
)

var geocodeClient *geocode.Client

func InitLocationController(client *geocode.Client) {
	geocodeClient = client
}

func SearchLocations(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "City parameter is required",
		})
	}

	locations, err := geocodeClient.Search(city, c.Query("category"))
	if err != nil {
		return upstreamFailure(c, "Error fetching location data", err)
	}

	return c.JSON(locations)
}

func ReverseGeocode(c *fiber.Ctx) error {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both latitude and longitude parameters are required",
		})
	}

	location, err := geocodeClient.Reverse(lat, lon)
	if err != nil {
		return upstreamFailure(c, "Error fetching location details", err)
	}

	return c.JSON(location)
}

func NearbyLocations(c *fiber.Ctx) error {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both latitude and longitude parameters are required",
		})
	}
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Latitude must be a number",
		})
	}
	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Longitude must be a number",
		})
	}

	radius := c.Query("radius", "1000")

	locations, err := geocodeClient.Nearby(lat, lon, radius)
	if err != nil {
		return upstreamFailure(c, "Error fetching nearby locations", err)
	}

	return c.JSON(locations)
}

// upstreamFailure translates a geocoding failure to a 500. Provider errors
// carry the underlying message; anything else stays generic.
func upstreamFailure(c *fiber.Ctx, msg string, err error) error {
	log.Printf("%s: %v", msg, err)

	var upstream *geocode.UpstreamError
	if errors.As(err, &upstream) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   msg,
			"message": upstream.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}
