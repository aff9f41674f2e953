package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/assessment-api/internal/middleware"
	pgRepo "github.com/yourusername/assessment-api/internal/repository/postgres"
	"github.com/yourusername/assessment-api/internal/service"
	"github.com/yourusername/assessment-api/pkg/auth"
	"github.com/yourusername/assessment-api/pkg/locale"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	auth   *service.AuthService
}

// newTestServer собирает API на реальных сервисах поверх in-memory SQLite
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, pgRepo.AutoMigrate(db))

	userRepo := pgRepo.NewUserRepo(db)
	invalidTokenRepo := pgRepo.NewInvalidTokenRepo(db)
	surveyRepo := pgRepo.NewSurveyRepo(db)
	adminRepo := pgRepo.NewSurveyAdminRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	choiceRepo := pgRepo.NewChoiceRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	groupRepo := pgRepo.NewSurveyGroupRepo(db)
	profileRepo := pgRepo.NewProfileRepo(db)

	locales := locale.NewResolver("en", []string{"ru"})
	jwtService, err := auth.NewJWTService("handler-test-secret", 1, invalidTokenRepo)
	require.NoError(t, err)
	authService, err := service.NewAuthService(userRepo, jwtService)
	require.NoError(t, err)
	profileService := service.NewProfileService(profileRepo, userRepo)

	handlers := Handlers{
		Auth: NewAuthHandler(authService, jwtService, auth.CookieConfig{SameSite: http.SameSiteLaxMode}),
		Survey: NewSurveyHandler(
			service.NewSurveyService(surveyRepo, adminRepo, userRepo, nil, nil, locales, 0),
			profileService, "en"),
		Question: NewQuestionHandler(service.NewQuestionService(surveyRepo, adminRepo, questionRepo, choiceRepo, locales), "en"),
		Result:   NewResultHandler(service.NewResultService(surveyRepo, adminRepo, questionRepo, resultRepo)),
		Export:   NewExportHandler(service.NewExportService(surveyRepo, adminRepo, questionRepo, resultRepo, "en"), "en"),
		Group:    NewGroupHandler(service.NewSurveyGroupService(groupRepo), "en"),
		Profile:  NewProfileHandler(profileService, "en"),
	}

	require.NoError(t, RegisterValidators())
	router := gin.New()
	RegisterRoutes(router, handlers, RouterDeps{
		Auth:    middleware.NewAuthMiddleware(jwtService),
		Locales: locales,
	})
	return &testServer{t: t, router: router, auth: authService}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// user создает пользователя и возвращает его ID и access-токен
func (s *testServer) user(username string, superuser bool) (uuid.UUID, string) {
	s.t.Helper()
	input := service.RegisterInput{Username: username, Email: username + "@example.com", Password: "password123"}
	create := s.auth.RegisterUser
	if superuser {
		create = s.auth.CreateSuperuser
	}
	u, err := create(context.Background(), input)
	require.NoError(s.t, err)

	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": "password123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return u.ID, resp.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "Response body should be valid JSON: %s", w.Body.String())
}

// createSurvey создает опрос с одним текстовым вопросом
func (s *testServer) createSurvey(token, slug string) (surveyID, questionID string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/surveys", token, map[string]interface{}{"name": "Survey " + slug, "slug": slug})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var survey struct {
		ID string `json:"id"`
	}
	decode(s.t, w, &survey)

	w = s.do(http.MethodPost, "/api/surveys/"+survey.ID+"/questions", token, map[string]interface{}{"question": "How?", "of_type": "text"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var question struct {
		ID string `json:"id"`
	}
	decode(s.t, w, &question)
	return survey.ID, question.ID
}

func TestListResults_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/results", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "answers")
}

func TestListResults_SuperuserWithoutResults(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("bob", true)

	w := s.do(http.MethodGet, "/api/results", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(t, w, &login)
	assert.Equal(t, "Bearer", login.TokenType)
	require.Len(t, w.Result().Cookies(), 2)
	cookie := w.Result().Cookies()[0]
	assert.Equal(t, auth.AccessTokenCookie, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "csrf-secret", w.Result().Cookies()[1].Name)

	w = s.do(http.MethodGet, "/api/users/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]interface{}
	decode(t, w, &me)
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Equal(t, false, me["is_superuser"])

	w = s.do(http.MethodPost, "/api/auth/logout", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/users/me", login.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodGet, "/api/results", login.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// новый токен выпускается позже момента выхода
	time.Sleep(5 * time.Millisecond)
	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &login)
	w = s.do(http.MethodGet, "/api/users/me", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// cookieSession - результат входа через браузер: cookie и значение для X-CSRF-Token
type cookieSession struct {
	cookies   []*http.Cookie
	csrfToken string
}

func (s *testServer) loginWithCookies(username string) cookieSession {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": "password123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		CSRFToken string `json:"csrf_token"`
	}
	decode(s.t, w, &resp)
	require.NotEmpty(s.t, resp.CSRFToken)
	return cookieSession{cookies: w.Result().Cookies(), csrfToken: resp.CSRFToken}
}

// doWithCookies отправляет запрос, аутентифицированный только cookie, как это делает браузер
func (s *testServer) doWithCookies(method, path, contentType, body string, cookies []*http.Cookie, headers map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestCookieAuthRequiresCSRF(t *testing.T) {
	s := newTestServer(t)
	_, owner := s.user("owner", false)
	_, victim := s.user("victim", false)
	surveyID, questionID := s.createSurvey(owner, "csrf-survey")
	session := s.loginWithCookies("victim")

	names := make([]string, 0, len(session.cookies))
	var accessOnly []*http.Cookie
	for _, c := range session.cookies {
		names = append(names, c.Name)
		assert.True(t, c.HttpOnly, c.Name)
		if c.Name == auth.AccessTokenCookie {
			accessOnly = append(accessOnly, c)
		}
	}
	assert.ElementsMatch(t, []string{auth.AccessTokenCookie, "csrf-secret"}, names)

	body := fmt.Sprintf(`{"survey":%q,"answers":[{"question":%q,"answer":"forged"}]}`, surveyID, questionID)
	crossSite := map[string]string{"Origin": "https://evil.example"}

	t.Run("text/plain отклоняется", func(t *testing.T) {
		w := s.doWithCookies(http.MethodPost, "/api/results", "text/plain", body, session.cookies, crossSite)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Contains(t, w.Body.String(), "unsupported_media_type")
	})

	t.Run("без заголовка X-CSRF-Token", func(t *testing.T) {
		w := s.doWithCookies(http.MethodPost, "/api/results", "application/json", body, session.cookies, crossSite)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "csrf_token_missing")
	})

	t.Run("неверный X-CSRF-Token", func(t *testing.T) {
		w := s.doWithCookies(http.MethodPost, "/api/results", "application/json", body, session.cookies,
			map[string]string{auth.CSRFHeader: auth.HashCSRFSecret("guessed")})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "csrf_token_invalid")
	})

	t.Run("без cookie с секретом", func(t *testing.T) {
		w := s.doWithCookies(http.MethodPost, "/api/results", "application/json", body, accessOnly,
			map[string]string{auth.CSRFHeader: session.csrfToken})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("выход без CSRF отклоняется", func(t *testing.T) {
		w := s.doWithCookies(http.MethodPost, "/api/auth/logout", "", "", session.cookies, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	// ничего не записано
	w := s.do(http.MethodGet, "/api/results", victim, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	t.Run("GET только с cookie", func(t *testing.T) {
		w := s.doWithCookies(http.MethodGet, "/api/users/me", "", "", session.cookies, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("полный набор cookie и заголовка", func(t *testing.T) {
		w := s.doWithCookies(http.MethodPost, "/api/results", "application/json", body, session.cookies,
			map[string]string{auth.CSRFHeader: session.csrfToken})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("Bearer не требует CSRF, но требует JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/surveys", bytes.NewBufferString(`{"name":"X","slug":"x-survey"}`))
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set("Authorization", "Bearer "+owner)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

		w = s.do(http.MethodPost, "/api/surveys", owner, map[string]interface{}{"name": "X", "slug": "x-survey"})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func TestSurveyEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.user("alice", false)
	_, bob := s.user("bob", false)
	surveyID, _ := s.createSurvey(alice, "first-survey")

	t.Run("slug уникален", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/surveys", bob, map[string]interface{}{"name": "Copy", "slug": "first-survey"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("недопустимый slug", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/surveys", alice, map[string]interface{}{"name": "Bad", "slug": "bad slug!"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("поиск по slug", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/surveys/slug/first-survey", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), surveyID)
	})

	t.Run("перевод на другую локаль", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/surveys/"+surveyID+"/translations/ru", alice,
			map[string]string{"name": "Опрос", "slug": "pervyj-opros"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		req := httptest.NewRequest(http.MethodGet, "/api/surveys/"+surveyID, nil)
		req.Header.Set("Authorization", "Bearer "+bob)
		req.Header.Set("Accept-Language", "ru")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		var survey map[string]interface{}
		decode(t, rec, &survey)
		assert.Equal(t, "Опрос", survey["name"])
	})

	t.Run("чужой опрос нельзя менять", func(t *testing.T) {
		w := s.do(http.MethodPatch, "/api/surveys/"+surveyID, bob, map[string]interface{}{"is_active": false})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("администратор опроса может менять", func(t *testing.T) {
		carolID, carol := s.user("carol", false)
		w := s.do(http.MethodPost, "/api/surveys/"+surveyID+"/admins", alice, map[string]string{"user_id": carolID.String()})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = s.do(http.MethodPost, "/api/surveys/"+surveyID+"/admins", alice, map[string]string{"user_id": carolID.String()})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = s.do(http.MethodPatch, "/api/surveys/"+surveyID, carol, map[string]interface{}{"is_active": false})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("неактивный опрос скрыт от посторонних", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/surveys/"+surveyID, bob, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("неверный ID", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/surveys/not-a-uuid", bob, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResultEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, owner := s.user("owner", false)
	_, carol := s.user("carol", false)
	_, dave := s.user("dave", false)
	_, root := s.user("root", true)
	surveyID, questionID := s.createSurvey(owner, "feedback")
	_, otherQuestionID := s.createSurvey(owner, "other")

	w := s.do(http.MethodPost, "/api/results", carol, map[string]interface{}{
		"survey":  surveyID,
		"answers": []map[string]string{{"question": questionID, "answer": "Fine"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result struct {
		ID      string                 `json:"id"`
		Answers []map[string]string    `json:"answers"`
		Meta    map[string]interface{} `json:"metadata"`
	}
	decode(t, w, &result)
	require.Len(t, result.Answers, 1)
	assert.Equal(t, "Fine", result.Answers[0]["answer"])
	assert.Contains(t, result.Meta, "user_agent")

	t.Run("повторное прохождение", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/results", carol, map[string]interface{}{"survey": surveyID})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("повторный ответ на вопрос", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/results/"+result.ID+"/answers", carol, map[string]string{"question": questionID, "answer": "Again"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("дубликат вопроса в запросе", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/results", dave, map[string]interface{}{
			"survey": surveyID,
			"answers": []map[string]string{
				{"question": questionID, "answer": "a"},
				{"question": questionID, "answer": "b"},
			},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("вопрос из другого опроса", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/results", dave, map[string]interface{}{
			"survey":  surveyID,
			"answers": []map[string]string{{"question": otherQuestionID, "answer": "x"}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("опрос не найден", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/results", dave, map[string]interface{}{"survey": uuid.NewString()})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("видимость списка", func(t *testing.T) {
		var list []map[string]interface{}

		decode(t, s.do(http.MethodGet, "/api/results", carol, nil), &list)
		assert.Len(t, list, 1)

		w := s.do(http.MethodGet, "/api/results", dave, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())

		decode(t, s.do(http.MethodGet, "/api/results?survey="+surveyID, root, nil), &list)
		assert.Len(t, list, 1)
	})

	t.Run("доступ к результату", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/results/"+result.ID, owner, nil).Code)
		assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/results/"+result.ID, dave, nil).Code)
	})

	t.Run("экспорт", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/surveys/"+surveyID+"/results/export?format=csv", owner, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		body := w.Body.String()
		assert.Contains(t, body, "Result ID,User,Timestamp,How?")
		assert.Contains(t, body, "carol")
		assert.Contains(t, body, "Fine")

		w = s.do(http.MethodGet, "/api/surveys/"+surveyID+"/results/export?format=xlsx", owner, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

		assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/surveys/"+surveyID+"/results/export", carol, nil).Code)
	})

	t.Run("удаление только суперпользователем", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/results/"+result.ID, owner, nil).Code)
		assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/results/"+result.ID, root, nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/results/"+result.ID, root, nil).Code)
	})
}

func TestGroupAndProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, root := s.user("root", true)
	userID, user := s.user("member", false)
	surveyID, _ := s.createSurvey(root, "assigned-survey")

	w := s.do(http.MethodPost, "/api/groups", user, map[string]string{"name": "Team"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/groups", root, map[string]string{"name": "Team"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var group struct {
		ID string `json:"id"`
	}
	decode(t, w, &group)

	w = s.do(http.MethodPut, "/api/groups/"+group.ID+"/surveys", root, map[string][]string{"surveys": {surveyID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPut, "/api/profiles/"+userID.String(), root, map[string][]string{
		"surveys": {surveyID}, "survey_groups": {group.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var assigned []map[string]interface{}
	decode(t, s.do(http.MethodGet, "/api/surveys/assigned", user, nil), &assigned)
	require.Len(t, assigned, 1)
	assert.Equal(t, surveyID, assigned[0]["id"])

	w = s.do(http.MethodGet, "/api/profiles/me", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), group.ID)
}
