package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"royalestates_backend/internal/middleware"
	"royalestates_backend/internal/model"
	"royalestates_backend/internal/service"
	"royalestates_backend/pkg/database"
	"royalestates_backend/pkg/utils/jwt"
)

// newTestApp wires the controllers against an in-memory database and
// returns an app with the same routes main registers.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// One connection, or every pooled conn gets its own :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.Property{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	database.DB = db
	InitPropertyController(service.NewPropertyService(db))

	app := fiber.New()
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", Register)
	auth.Post("/login", Login)
	auth.Get("/me", middleware.AuthMiddleware(), GetMe)
	auth.Patch("/me", middleware.AuthMiddleware(), UpdateMe)
	auth.Get("/saved-searches", middleware.AuthMiddleware(), GetSavedSearches)
	auth.Post("/saved-searches", middleware.AuthMiddleware(), CreateSavedSearch)
	auth.Delete("/saved-searches/:id", middleware.AuthMiddleware(), DeleteSavedSearch)

	properties := api.Group("/properties")
	properties.Get("/", ListProperties)
	properties.Get("/featured", GetFeaturedProperties)
	properties.Get("/saved", middleware.AuthMiddleware(), GetSavedProperties)
	properties.Get("/:id", GetProperty)
	properties.Post("/", middleware.AuthMiddleware(), middleware.AdminOnly(), CreateProperty)
	properties.Patch("/:id", middleware.AuthMiddleware(), middleware.AdminOnly(), UpdateProperty)
	properties.Delete("/:id", middleware.AuthMiddleware(), middleware.AdminOnly(), DeleteProperty)
	properties.Post("/:id/save", middleware.AuthMiddleware(), SaveProperty)
	properties.Delete("/:id/save", middleware.AuthMiddleware(), UnsaveProperty)

	return app
}

func createUser(t *testing.T, role string) (model.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	email := role + "@royal.example"
	user := model.User{Name: "Test " + role, Email: email, Password: string(hash), Role: role}
	if err := database.GetDB().Create(&user).Error; err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func jsonDecode(resp *http.Response, dest interface{}) error {
	return json.NewDecoder(resp.Body).Decode(dest)
}

func validPropertyBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Lakeview Villa",
		"description":  "Three bedroom villa overlooking Dal Lake",
		"price":        4500000,
		"location":     "Boulevard Road",
		"district":     "Srinagar",
		"propertyType": "residential",
		"category":     "sale",
		"bedrooms":     3,
		"bathrooms":    2,
		"area":         2400,
		"areaUnit":     "sqft",
		"amenities":    []string{"parking", "garden"},
		"images":       []string{"https://example.com/villa.jpg"},
	}
}
