package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"homeinsight-listings/internal/middleware"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/repositories"
	"homeinsight-listings/internal/services"
	"homeinsight-listings/internal/transformers"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repositories.NewMemoryPostcodeRepository()
	err := repo.StorePostcodes(context.Background(), models.CountryAustralia, []models.PostcodeEntry{
		{Postcode: 3032, Suburb: "Ascot Vale"},
		{Postcode: 3032, Suburb: "Maribyrnong"},
		{Postcode: 2600, Suburb: "Duntroon"},
	})
	if err != nil {
		t.Fatal(err)
	}
	directory := services.NewPostcodeDirectory(repo)
	addresses := transformers.NewAddressTransformer()
	assembler := transformers.NewListingTransformer(addresses, models.CountryAustralia, models.LabelMappingObserved)

	normalization := NewNormalizationHandler(addresses, directory, services.NewListingService(assembler, 2), models.LabelMappingObserved)
	postcodes := NewPostcodeHandler(directory)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	api := r.Group("/api")
	api.POST("/addresses/parse", normalization.ParseAddress)
	api.POST("/addresses/validate", normalization.ValidateAddress)
	api.POST("/market-info/parse", normalization.ParseMarketInfo)
	api.POST("/property-types/parse", normalization.ParsePropertyType)
	api.POST("/listings/normalize", normalization.NormalizeListings)
	api.GET("/listing-url", normalization.ListingURL)
	api.GET("/postcodes/:country/suburb/:suburb", postcodes.FindPostcode)
	api.GET("/postcodes/:country/postcode/:postcode", postcodes.FindSuburb)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	e, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("body %q has no error object", w.Body.String())
	}
	code, _ := e["code"].(string)
	return code
}
