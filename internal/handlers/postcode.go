package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/services"
	"homeinsight-listings/internal/utils"
)

type PostcodeHandler struct {
	directory *services.PostcodeDirectory
}

func NewPostcodeHandler(directory *services.PostcodeDirectory) *PostcodeHandler {
	return &PostcodeHandler{directory: directory}
}

// FindPostcode handles GET /api/postcodes/:country/suburb/:suburb.
func (h *PostcodeHandler) FindPostcode(c *gin.Context) {
	country, err := parseCountry(c.Param("country"))
	if err != nil {
		c.Error(err)
		return
	}

	suburb := c.Param("suburb")
	postcode, err := h.directory.FindPostcode(c.Request.Context(), suburb, country)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, PostcodeResponse{Country: country, Suburb: utils.NormalizeSuburb(suburb), Postcode: postcode})
}

// FindSuburb handles GET /api/postcodes/:country/postcode/:postcode.
func (h *PostcodeHandler) FindSuburb(c *gin.Context) {
	country, err := parseCountry(c.Param("country"))
	if err != nil {
		c.Error(err)
		return
	}

	postcode, err := strconv.ParseUint(c.Param("postcode"), 10, 32)
	if err != nil {
		c.Error(apperrors.BadRequest(err))
		return
	}
	suburb, err := h.directory.FindSuburb(c.Request.Context(), uint32(postcode), country)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, PostcodeResponse{Country: country, Suburb: suburb, Postcode: uint32(postcode)})
}
