// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/isonexus/iso-nexus-backend/internal/config"
	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/store"
)

type RouterTestSuite struct {
	suite.Suite
	router          *gin.Engine
	purchaseService *services.PurchaseService
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Environment: "test",
		Admin: config.AdminConfig{
			Secret:     "admin123",
			JWTSecret:  "test-secret",
			SessionTTL: 1,
		},
		Assistant: config.AssistantConfig{Model: "gemini-2.5-flash", Temperature: 0.7},
		Flow: config.FlowConfig{
			RedirectDelay: 5 * time.Millisecond,
			SuccessDelay:  5 * time.Millisecond,
			DownloadDelay: 5 * time.Millisecond,
		},
		Upload:   config.UploadConfig{MaxSize: 1 << 20},
		Frontend: config.FrontendConfig{AllowOrigins: []string{"*"}},
	}

	catalog := store.NewCatalogStore()
	entitlements := store.NewEntitlementStore()
	suite.purchaseService = services.NewPurchaseService(catalog, entitlements, cfg.Flow, logger)

	suite.router = Initialize(cfg, logger, Services{
		Catalog:      catalog,
		Entitlements: entitlements,
		Purchase:     suite.purchaseService,
		Admin:        services.NewAdminService(catalog, services.NewPlainSecretVerifier("admin123"), 1, logger),
		Assistant:    services.NewAssistantService(cfg.Assistant, logger),
		Uploads:      services.NewUploadService(cfg.Upload.MaxSize, logger),
	})
}

func (suite *RouterTestSuite) TearDownSuite() {
	suite.purchaseService.Shutdown()
}

func (suite *RouterTestSuite) request(method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *RouterTestSuite) login() string {
	w, response := suite.request("POST", "/v1/admin/login", map[string]interface{}{"password": "admin123"}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	return data["token"].(string)
}

func (suite *RouterTestSuite) TestHealthCheck() {
	w, _ := suite.request("GET", "/health", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestListDocuments() {
	w, response := suite.request("GET", "/v1/documents", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.True(suite.T(), response["success"].(bool))

	docs := response["data"].(map[string]interface{})["documents"].([]interface{})
	assert.Len(suite.T(), docs, 6)

	// Session cookie is issued on first contact.
	assert.NotEmpty(suite.T(), w.Result().Cookies())
}

func (suite *RouterTestSuite) TestListDocumentsFreeFilter() {
	w, response := suite.request("GET", "/v1/documents?filter=FREE", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	docs := response["data"].(map[string]interface{})["documents"].([]interface{})
	assert.Len(suite.T(), docs, 2)
	for _, d := range docs {
		doc := d.(map[string]interface{})
		assert.Zero(suite.T(), doc["price"].(float64))
		assert.True(suite.T(), doc["downloadable"].(bool))
	}
}

func (suite *RouterTestSuite) TestActionOnFreeDocumentDownloads() {
	w, response := suite.request("POST", "/v1/documents/doc_1/action", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "download", data["action"])
}

func (suite *RouterTestSuite) TestActionOnUnknownDocument() {
	w, _ := suite.request("POST", "/v1/documents/doc_missing/action", nil, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestAdminLoginRejectsWrongPassword() {
	w, response := suite.request("POST", "/v1/admin/login", map[string]interface{}{"password": "nope"}, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.False(suite.T(), response["success"].(bool))

	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_CREDENTIALS", errObj["code"])
	assert.Equal(suite.T(), "Incorrect password", errObj["message"])
}

func (suite *RouterTestSuite) TestAdminRoutesRequireToken() {
	w, _ := suite.request("GET", "/v1/admin/documents", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestAdminDocumentLifecycle() {
	token := suite.login()
	auth := map[string]string{"Authorization": "Bearer " + token}

	// Create
	w, response := suite.request("POST", "/v1/admin/documents", map[string]interface{}{
		"id":    "doc_lifecycle",
		"title": "Lifecycle Test",
		"price": 10,
	}, auth)
	suite.Require().Equal(http.StatusCreated, w.Code)
	doc := response["data"].(map[string]interface{})["document"].(map[string]interface{})
	assert.Equal(suite.T(), "Quality", doc["category"])

	// Update in place
	w, _ = suite.request("POST", "/v1/admin/documents", map[string]interface{}{
		"id":    "doc_lifecycle",
		"title": "Lifecycle Test v2",
	}, auth)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Delete requires confirmation
	w, _ = suite.request("DELETE", "/v1/admin/documents/doc_lifecycle", nil, auth)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, _ = suite.request("DELETE", "/v1/admin/documents/doc_lifecycle?confirm=true", nil, auth)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestAdminSaveValidation() {
	token := suite.login()
	auth := map[string]string{"Authorization": "Bearer " + token}

	w, response := suite.request("POST", "/v1/admin/documents", map[string]interface{}{
		"title": "missing identifier",
	}, auth)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)

	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "VALIDATION_ERROR", errObj["code"])
}

func (suite *RouterTestSuite) TestSiteConfigRoundTrip() {
	token := suite.login()
	auth := map[string]string{"Authorization": "Bearer " + token}

	w, _ := suite.request("PUT", "/v1/admin/site-config", map[string]interface{}{
		"hero_headline":      "Updated headline",
		"hero_image_opacity": 150,
	}, auth)
	suite.Require().Equal(http.StatusOK, w.Code)

	w, response := suite.request("GET", "/v1/site-config", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	cfg := response["data"].(map[string]interface{})["site_config"].(map[string]interface{})
	assert.Equal(suite.T(), "Updated headline", cfg["hero_headline"])
	assert.Equal(suite.T(), float64(100), cfg["hero_image_opacity"])
}

func (suite *RouterTestSuite) TestChatSessionWithoutCredentialIsRecoverable() {
	w, response := suite.request("POST", "/v1/chat/sessions", nil, nil)
	assert.Equal(suite.T(), http.StatusBadGateway, w.Code)

	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "UPSTREAM_ERROR", errObj["code"])
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
