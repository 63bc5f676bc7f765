package api

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurandifr/AcheiPet/api/mocks"
	"github.com/jurandifr/AcheiPet/schema"
)

func testJWTKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestLoginAndCurrentUser(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	user := &schema.User{
		ID:        "user-1",
		Email:     "ana@example.com",
		FirstName: "Ana",
	}

	petStore := mocks.NewMockPetCore(ctl)
	petStore.EXPECT().UpsertUser(gomock.Any()).Return(user, nil).Times(1)
	petStore.EXPECT().GetUser("user-1").Return(user, nil).Times(1)

	s := Server{store: petStore, jwtPrivateKey: testJWTKey(t)}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", s.login)
	router.GET("/auth/user", s.authMiddleware(), s.currentUser)

	payload, _ := json.Marshal(map[string]string{
		"id":        "user-1",
		"email":     "ana@example.com",
		"firstName": "Ana",
	})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		JWTToken string `json:"jwt_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEqual(t, "", loginResp.JWTToken)

	req = httptest.NewRequest("GET", "/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.JWTToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var userResp schema.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &userResp))
	assert.Equal(t, "user-1", userResp.ID)
}

func TestCurrentUserWithoutToken(t *testing.T) {
	s := Server{jwtPrivateKey: testJWTKey(t)}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auth/user", s.authMiddleware(), s.currentUser)

	req := httptest.NewRequest("GET", "/auth/user", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyReports(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	petStore := mocks.NewMockPetCore(ctl)
	petStore.EXPECT().
		ListReportsByReporter("user-1").
		Return([]schema.AnimalReport{*sampleReport()}, nil).
		Times(1)

	s := Server{store: petStore}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/reports/my", func(c *gin.Context) {
		c.Set("requester", "user-1")
	}, s.myReports)

	req := httptest.NewRequest("GET", "/reports/my", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []schema.AnimalReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}
