package handlers

import (
	"encoding/json"
	"testing"

	"cropadvisory/config"
	"cropadvisory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiz(t *testing.T, app *fiber.App, module, body, token string) (int, models.QuizResult) {
	t.Helper()
	status, env := doJSON(t, app, call{method: "POST", path: "/api/v1/learning/modules/" + module + "/quiz", body: body, token: token})
	var res models.QuizResult
	if status == fiber.StatusOK {
		require.NoError(t, json.Unmarshal(env.Data, &res))
	}
	return status, res
}

func register(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	status, env := doJSON(t, app, call{
		method: "POST",
		path:   "/api/v1/auth/register",
		body:   `{"name":"` + name + `","email":"` + email + `","password":"s3cret-pass"}`,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	require.NotEmpty(t, env.AccessToken)
	return env.AccessToken
}

func TestModulesHideAnswers(t *testing.T) {
	app := newTestApp(newTestHandler(t))

	status, raw, _ := do(t, app, call{method: "GET", path: "/api/v1/learning/modules"})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(raw), "correct")

	status, env := doJSON(t, app, call{method: "GET", path: "/api/v1/learning/modules/crop-rotation"})
	require.Equal(t, fiber.StatusOK, status)
	var m models.LearningModule
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, "Crop Rotation", m.Title)
	assert.Empty(t, m.Quiz.Correct)

	status, _ = doJSON(t, app, call{method: "GET", path: "/api/v1/learning/modules/composting"})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSubmitQuizAnonymous(t *testing.T) {
	app := newTestApp(newTestHandler(t))

	status, res := quiz(t, app, "smart-irrigation", `{"answer":"Early morning"}`, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, res.Correct)
	assert.Equal(t, "Correct!", res.Feedback)
	assert.Empty(t, res.Expected)
	assert.False(t, res.Recorded)

	status, res = quiz(t, app, "smart-irrigation", `{"answer":"Noon"}`, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.False(t, res.Correct)
	assert.Equal(t, "Early morning", res.Expected)
	assert.Equal(t, "Try again. Answer: Early morning", res.Feedback)

	status, _ = quiz(t, app, "smart-irrigation", `{"answer":"Midnight"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = quiz(t, app, "smart-irrigation", `{"answer":""}`, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = quiz(t, app, "beekeeping", `{"answer":"Noon"}`, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = quiz(t, app, "smart-irrigation", `{"answer":"Noon"}`, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(newTestHandler(t))

	register(t, app, "Asha", "Asha@Example.com")

	status, env := doJSON(t, app, call{method: "POST", path: "/api/v1/auth/register", body: `{"name":"Asha","email":"asha@example.com","password":"another-pass"}`})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "User with this email already exists", env.Message)

	status, _ = doJSON(t, app, call{method: "POST", path: "/api/v1/auth/register", body: `{"name":"Ravi","email":"ravi@example.com","password":"short"}`})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, call{method: "POST", path: "/api/v1/auth/register", body: `{"name":"Ravi","email":"ravi","password":"long-enough"}`})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = doJSON(t, app, call{method: "POST", path: "/api/v1/auth/login", body: `{"email":"ASHA@example.com","password":"s3cret-pass"}`})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, env.AccessToken)
	var u models.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, "learner", u.Role)

	status, _ = doJSON(t, app, call{method: "POST", path: "/api/v1/auth/login", body: `{"email":"asha@example.com","password":"wrong-pass"}`})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, call{method: "POST", path: "/api/v1/auth/login", body: `{"email":"nobody@example.com","password":"s3cret-pass"}`})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestProgressIsRecorded(t *testing.T) {
	app := newTestApp(newTestHandler(t))
	token := register(t, app, "Meera", "meera@example.com")

	status, res := quiz(t, app, "soil-health-basics", `{"answer":"Deep plowing"}`, token)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, res.Recorded)
	status, res = quiz(t, app, "soil-health-basics", `{"answer":"Adding compost"}`, token)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, res.Correct)

	status, env := doJSON(t, app, call{method: "GET", path: "/api/v1/me/progress?pageSize=1", token: token})
	require.Equal(t, fiber.StatusOK, status)
	var progress models.PaginatedAttemptsResponse
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Len(t, progress.Data, 1)
	assert.Equal(t, 2, progress.Summary.Attempts)
	assert.Equal(t, 1, progress.Summary.CorrectAttempts)
	assert.Equal(t, []string{"soil-health-basics"}, progress.Summary.ModulesPassed)
	assert.Equal(t, 3, progress.Summary.ModulesTotal)
	assert.Equal(t, 2, progress.Pagination.TotalItems)
	assert.Equal(t, 2, progress.Pagination.TotalPages)

	status, env = doJSON(t, app, call{method: "GET", path: "/api/v1/me/progress?page=922337203685477582", token: token})
	require.Equal(t, fiber.StatusOK, status)
	progress = models.PaginatedAttemptsResponse{}
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Empty(t, progress.Data)
	assert.Equal(t, 2, progress.Pagination.TotalItems)

	status, _ = doJSON(t, app, call{method: "GET", path: "/api/v1/me/progress"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, call{method: "GET", path: "/api/v1/admin/progress", token: token})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestInitAdminAndAdminProgress(t *testing.T) {
	prev := config.AppConfig.InitToken
	config.AppConfig.InitToken = "init-token-1234"
	t.Cleanup(func() { config.AppConfig.InitToken = prev })

	app := newTestApp(newTestHandler(t))
	adminBody := `{"name":"Root","email":"root@example.com","password":"admin-pass"}`

	status, _ := doJSON(t, app, call{method: "POST", path: "/api/v1/auth/init-admin", body: adminBody, headers: map[string]string{"X-Init-Token": "wrong"}})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, call{method: "POST", path: "/api/v1/auth/init-admin", body: adminBody, headers: map[string]string{"X-Init-Token": "init-token-1234"}})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, call{method: "POST", path: "/api/v1/auth/init-admin", body: `{"name":"Two","email":"two@example.com","password":"admin-pass"}`, headers: map[string]string{"X-Init-Token": "init-token-1234"}})
	assert.Equal(t, fiber.StatusConflict, status)

	learner := register(t, app, "Kiran", "kiran@example.com")
	_, _ = quiz(t, app, "crop-rotation", `{"answer":"They fix nitrogen"}`, learner)

	status, env := doJSON(t, app, call{method: "POST", path: "/api/v1/auth/login", body: `{"email":"root@example.com","password":"admin-pass"}`})
	require.Equal(t, fiber.StatusOK, status)

	status, env = doJSON(t, app, call{method: "GET", path: "/api/v1/admin/progress", token: env.AccessToken})
	require.Equal(t, fiber.StatusOK, status)
	var out struct {
		Learners int                 `json:"learners"`
		Modules  []models.ModuleStat `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 1, out.Learners)
	require.Len(t, out.Modules, 3)
	assert.Equal(t, "soil-health-basics", out.Modules[0].ModuleID)
	assert.Zero(t, out.Modules[0].Attempts)
	assert.Equal(t, "crop-rotation", out.Modules[1].ModuleID)
	assert.Equal(t, 1, out.Modules[1].Attempts)
	assert.Equal(t, 100.0, out.Modules[1].CorrectRatePc)
}

func TestInitAdminDisabled(t *testing.T) {
	prev := config.AppConfig.InitToken
	config.AppConfig.InitToken = ""
	t.Cleanup(func() { config.AppConfig.InitToken = prev })

	app := newTestApp(newTestHandler(t))
	status, _ := doJSON(t, app, call{method: "POST", path: "/api/v1/auth/init-admin", body: `{}`, headers: map[string]string{"X-Init-Token": "anything"}})
	assert.Equal(t, fiber.StatusForbidden, status)
}
