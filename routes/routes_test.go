package routes

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"foodsavvy/config"
	"foodsavvy/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubBundle fills every handler slot with a 200 responder so route
// resolution can be asserted without real services.
func stubBundle() *handlers.HandlerBundle {
	hb := &handlers.HandlerBundle{}
	ok := gin.HandlerFunc(func(c *gin.Context) { c.Status(http.StatusOK) })
	v := reflect.ValueOf(hb).Elem()
	for i := 0; i < v.NumField(); i++ {
		v.Field(i).Set(reflect.ValueOf(ok))
	}
	return hb
}

// The storefront client hardcodes these paths; they are part of the wire
// contract and must keep resolving.
func TestPublicRoutePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.StorageBackend = "cloudinary"

	r := gin.New()
	RegisterRoutes(r, stubBundle())

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/menus/by-day"},
		{http.MethodGet, "/api/availability"},
		{http.MethodGet, "/api/delivery/config"},
		{http.MethodGet, "/api/suggestions"},
		{http.MethodPost, "/api/quote"},
		{http.MethodPost, "/api/create-payment-intent"},
		{http.MethodGet, "/api/orders/by-intent/pi_123"},
		{http.MethodPost, "/api/catering/orders"},
		{http.MethodPost, "/webhook"},
		{http.MethodPost, "/api/admin/login"},
		{http.MethodGet, "/health"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		r.ServeHTTP(w, req)
		assert.Equalf(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}
}
