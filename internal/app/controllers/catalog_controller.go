package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/app/services"
	"github.com/edusphere/eduadmin/internal/middleware"
)

// CatalogController exposes the read-only class, subject and package catalogs
type CatalogController struct {
	catalogStore services.CatalogStore
}

// NewCatalogController creates a new catalog controller instance
func NewCatalogController(catalogStore services.CatalogStore) *CatalogController {
	return &CatalogController{catalogStore: catalogStore}
}

// GetClasses godoc
// @Summary List classes
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClassListResponse
// @Router /classes [get]
func (cc *CatalogController) GetClasses(c *gin.Context) {
	classes, err := cc.catalogStore.GetAllClasses(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClassListResponse{
		Message: "classes retrieved",
		Classes: classes,
	})
}

// GetSubjects godoc
// @Summary List subjects
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubjectListResponse
// @Router /subjects [get]
func (cc *CatalogController) GetSubjects(c *gin.Context) {
	subjects, err := cc.catalogStore.GetAllSubjects(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubjectListResponse{
		Message:  "subjects retrieved",
		Subjects: subjects,
	})
}

// GetPackages godoc
// @Summary List packages with their bundled subjects
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PackageListResponse
// @Router /packages [get]
func (cc *CatalogController) GetPackages(c *gin.Context) {
	packages, err := cc.catalogStore.GetAllPackages(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PackageListResponse{
		Message:  "packages retrieved",
		Packages: packages,
	})
}
