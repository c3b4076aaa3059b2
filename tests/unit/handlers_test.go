package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/crossbox/wodtracker/internal/handlers"
	"github.com/crossbox/wodtracker/internal/middleware"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/services"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/crossbox/wodtracker/tests/helpers"
)

// setupTestApp wires the full route map against a fresh in-memory store,
// the same way cmd/server does.
func setupTestApp(t *testing.T) (*fiber.App, *store.MemoryStore, *services.SessionManager) {
	t.Helper()

	st := store.NewMemoryStore()
	sessions := services.NewSessionManager(time.Hour)

	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
	})

	authRequired := middleware.AuthRequired(sessions, st)

	authHandler := &handlers.AuthHandler{Store: st, Sessions: sessions}
	userHandler := &handlers.UserHandler{Store: st}
	workoutHandler := &handlers.WorkoutHandler{Store: st}
	exerciseHandler := &handlers.ExerciseHandler{Store: st}
	recordHandler := &handlers.RecordHandler{Store: st}
	groupHandler := &handlers.GroupHandler{Store: st}
	scheduleHandler := &handlers.ScheduleHandler{Store: st}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)

	users := api.Group("/users", authRequired)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	workouts := api.Group("/workouts", authRequired)
	workouts.Post("/", workoutHandler.CreateWorkout)
	workouts.Get("/", workoutHandler.ListWorkouts)
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Put("/:id", workoutHandler.UpdateWorkout)
	workouts.Delete("/:id", workoutHandler.DeleteWorkout)

	exercises := api.Group("/exercises", authRequired)
	exercises.Get("/", exerciseHandler.ListExercises)
	exercises.Get("/search", exerciseHandler.SearchExercises)
	exercises.Get("/:id", exerciseHandler.GetExercise)
	exercises.Post("/", exerciseHandler.CreateExercise)
	exercises.Put("/:id", exerciseHandler.UpdateExercise)
	exercises.Delete("/:id", exerciseHandler.DeleteExercise)

	records := api.Group("/records", authRequired)
	records.Post("/", recordHandler.CreateRecord)
	records.Get("/", recordHandler.ListRecords)
	records.Get("/recent", recordHandler.RecentRecords)
	records.Get("/exercise/:exerciseId", recordHandler.RecordsByExercise)
	records.Put("/:id", recordHandler.UpdateRecord)
	records.Delete("/:id", recordHandler.DeleteRecord)

	groups := api.Group("/groups", authRequired)
	groups.Post("/", groupHandler.CreateGroup)
	groups.Get("/", groupHandler.ListGroups)
	groups.Get("/:id", groupHandler.GetGroup)
	groups.Put("/:id", groupHandler.UpdateGroup)
	groups.Delete("/:id", groupHandler.DeleteGroup)
	groups.Get("/:id/members", groupHandler.GetMembers)
	groups.Post("/:id/members", groupHandler.AddMember)
	groups.Delete("/:id/members/:userId", groupHandler.RemoveMember)
	groups.Post("/:id/schedule", scheduleHandler.ScheduleWorkout)
	groups.Get("/:id/schedule", scheduleHandler.ListGroupSchedule)

	schedule := api.Group("/schedule", authRequired)
	schedule.Get("/upcoming", scheduleHandler.UpcomingWorkouts)
	schedule.Put("/:id", scheduleHandler.UpdateScheduledWorkout)
	schedule.Delete("/:id", scheduleHandler.DeleteScheduledWorkout)
	schedule.Post("/:id/results", scheduleHandler.SubmitResult)
	schedule.Get("/:id/results", scheduleHandler.ListResults)

	results := api.Group("/results", authRequired)
	results.Get("/", scheduleHandler.MyResults)
	results.Put("/:id", scheduleHandler.UpdateResult)
	results.Delete("/:id", scheduleHandler.DeleteResult)

	return app, st, sessions
}

// request builds a JSON request with an optional session cookie.
func request(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: services.SessionCookie, Value: token})
	}
	return req
}

func TestRegisterLoginMe(t *testing.T) {
	app, _, _ := setupTestApp(t)

	password := helpers.GeneratePassword()
	resp, err := app.Test(request(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": password,
		"name":     "Alice Fraser",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	var created map[string]interface{}
	helpers.ParseJSON(t, resp, &created)
	if created["username"] != "alice" {
		t.Errorf("Expected username alice, got %v", created["username"])
	}
	if created["role"] != models.RoleAthlete {
		t.Errorf("Expected default role athlete, got %v", created["role"])
	}
	if _, leaked := created["passwordHash"]; leaked {
		t.Error("Password hash leaked in register response")
	}

	// Login and use the session cookie.
	resp, err = app.Test(request(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": password,
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var token string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == services.SessionCookie {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatal("Login did not set a session cookie")
	}

	resp, err = app.Test(request(t, "GET", "/api/auth/me", token, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var me map[string]interface{}
	helpers.ParseJSON(t, resp, &me)
	if me["username"] != "alice" {
		t.Errorf("Expected me to be alice, got %v", me["username"])
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	app, _, _ := setupTestApp(t)

	body := map[string]string{"username": "alice", "password": helpers.GeneratePassword()}
	resp, err := app.Test(request(t, "POST", "/api/auth/register", "", body))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	resp, err = app.Test(request(t, "POST", "/api/auth/register", "", body))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusBadRequest)
	helpers.AssertErrorEnvelope(t, resp)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(request(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "mallory",
		"password": helpers.GeneratePassword(),
		"role":     models.RoleAdmin,
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)

	resp, err := app.Test(request(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "definitely-wrong",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)
	helpers.AssertErrorEnvelope(t, resp)
}

func TestMeRequiresSession(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(request(t, "GET", "/api/auth/me", "", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)
	helpers.AssertErrorEnvelope(t, resp)
}

func TestWorkoutLifecycle(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	_, token := helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)

	resp, err := app.Test(request(t, "POST", "/api/workouts", token, map[string]interface{}{
		"date":        "2026-08-15T09:00:00Z",
		"type":        models.WorkoutForTime,
		"description": "Fran",
		"result":      "3:58",
		"completed":   true,
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	var workout models.Workout
	helpers.ParseJSON(t, resp, &workout)
	if workout.ID == 0 {
		t.Fatal("Expected workout id to be assigned")
	}

	// Filtered list only returns matching types.
	helpers.CreateTestWorkout(t, st, workout.UserID, models.WorkoutAMRAP, time.Now().UTC())
	resp, err = app.Test(request(t, "GET", "/api/workouts?type="+models.WorkoutForTime, token, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var listed []models.Workout
	helpers.ParseJSON(t, resp, &listed)
	if len(listed) != 1 || listed[0].Type != models.WorkoutForTime {
		t.Errorf("Type filter returned wrong workouts: %+v", listed)
	}

	// Update and delete round-trip.
	resp, err = app.Test(request(t, "PUT", fmt.Sprintf("/api/workouts/%d", workout.ID), token, map[string]string{
		"result": "3:45",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var updated models.Workout
	helpers.ParseJSON(t, resp, &updated)
	if updated.Result != "3:45" {
		t.Errorf("Expected patched result, got %q", updated.Result)
	}
	if updated.Description != "Fran" {
		t.Errorf("Patch changed unrelated field: %q", updated.Description)
	}

	resp, err = app.Test(request(t, "DELETE", fmt.Sprintf("/api/workouts/%d", workout.ID), token, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	resp, err = app.Test(request(t, "GET", fmt.Sprintf("/api/workouts/%d", workout.ID), token, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestWorkoutOwnershipEnforced(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	alice, _ := helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)
	_, bobToken := helpers.AcquireAccount(t, st, sessions, "bob", models.RoleAthlete)

	w := helpers.CreateTestWorkout(t, st, alice.ID, models.WorkoutAMRAP, time.Now().UTC())

	// Someone else's workout: 403.
	resp, err := app.Test(request(t, "PUT", fmt.Sprintf("/api/workouts/%d", w.ID), bobToken, map[string]string{
		"result": "stolen",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)

	// A missing workout: 404, even though bob could never own it.
	resp, err = app.Test(request(t, "PUT", "/api/workouts/9999", bobToken, map[string]string{
		"result": "ghost",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestWorkoutRejectsUnknownType(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	_, token := helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)

	resp, err := app.Test(request(t, "POST", "/api/workouts", token, map[string]interface{}{
		"date": "2026-08-15T09:00:00Z",
		"type": "yoga",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestExerciseCatalogIsAdminManaged(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	_, athleteToken := helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)
	_, adminToken := helpers.AcquireAccount(t, st, sessions, "root", models.RoleAdmin)

	body := map[string]string{
		"name":     "Overhead Squat",
		"category": models.CategoryWeightlifting,
	}

	resp, err := app.Test(request(t, "POST", "/api/exercises", athleteToken, body))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)

	resp, err = app.Test(request(t, "POST", "/api/exercises", adminToken, body))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	// Reads are open to everyone.
	resp, err = app.Test(request(t, "GET", "/api/exercises?category="+models.CategoryWeightlifting, athleteToken, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var listed []models.Exercise
	helpers.ParseJSON(t, resp, &listed)
	if len(listed) != 1 {
		t.Errorf("Expected 1 exercise, got %d", len(listed))
	}
}

func TestExerciseSearchRequiresQuery(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	_, token := helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)

	resp, err := app.Test(request(t, "GET", "/api/exercises/search", token, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestRecordFlow(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	_, token := helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)
	ex := helpers.CreateTestExercise(t, st, "Deadlift", models.CategoryWeightlifting)

	// exerciseId arrives as a JSON string here; the handler accepts both.
	resp, err := app.Test(request(t, "POST", "/api/records", token, map[string]interface{}{
		"exerciseId": fmt.Sprintf("%d", ex.ID),
		"value":      180.0,
		"unit":       "kg",
		"date":       "2026-08-01T00:00:00Z",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	var record models.PersonalRecord
	helpers.ParseJSON(t, resp, &record)
	if record.ExerciseID != ex.ID {
		t.Errorf("Expected exercise id %d, got %d", ex.ID, record.ExerciseID)
	}

	// Unknown exercise fails up front.
	resp, err = app.Test(request(t, "POST", "/api/records", token, map[string]interface{}{
		"exerciseId": 9999,
		"value":      100.0,
		"unit":       "kg",
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp, err = app.Test(request(t, "GET", fmt.Sprintf("/api/records/exercise/%d", ex.ID), token, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var byExercise []models.PersonalRecord
	helpers.ParseJSON(t, resp, &byExercise)
	if len(byExercise) != 1 {
		t.Errorf("Expected 1 record for exercise, got %d", len(byExercise))
	}
}

func TestRecentRecordsDefaultLimit(t *testing.T) {
	app, st, sessions := setupTestApp(t)
	alice, token := helpers.AcquireAccount(t, st, sessions, "alice", models.RoleAthlete)
	ex := helpers.CreateTestExercise(t, st, "Snatch", models.CategoryWeightlifting)

	for d := 1; d <= 8; d++ {
		_, err := st.CreatePersonalRecord(&models.PersonalRecord{
			UserID:     alice.ID,
			ExerciseID: ex.ID,
			Value:      float64(60 + d),
			Unit:       "kg",
			Date:       time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Failed to create record: %v", err)
		}
	}

	resp, err := app.Test(request(t, "GET", "/api/records/recent", token, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var recent []models.PersonalRecord
	helpers.ParseJSON(t, resp, &recent)
	if len(recent) != 5 {
		t.Fatalf("Expected default limit of 5, got %d", len(recent))
	}
	if recent[0].Date.Before(recent[len(recent)-1].Date) {
		t.Error("Recent records not sorted newest first")
	}
}
