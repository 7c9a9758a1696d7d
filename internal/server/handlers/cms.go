package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server/models"
	repo "github.com/vornexz/pay/internal/server/repository"
)

// CMSHandler serves the public site content and the admin editing API
type CMSHandler struct {
	Logger    auth.Logger
	Repo      repo.Manager
	UploadDir string
}

func NewCMSHandler(manager repo.Manager, uploadDir string, logger auth.Logger) *CMSHandler {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &CMSHandler{Repo: manager, UploadDir: uploadDir, Logger: logger}
}

// ListCompanies returns the active portfolio. Admins get the full list
// with the all query flag.
func (h *CMSHandler) ListCompanies(c *fiber.Ctx) error {
	if c.Query("all") == "true" {
		if claims, ok := auth.GetClaims(c.UserContext()); ok && claims.IsAtLeast(auth.RoleAdmin) {
			records, err := h.Repo.Companies().ListAll(c.UserContext())
			if err != nil {
				return RenderError(c, err)
			}
			return c.JSON(records)
		}
	}

	records, err := h.Repo.Companies().ListActive(c.UserContext())
	if err != nil {
		return RenderError(c, err)
	}
	return c.JSON(records)
}

// CompanyRequest payload
type CompanyRequest struct {
	Name        string `json:"name" form:"name"`
	Segment     string `json:"segment" form:"segment"`
	Description string `json:"description" form:"description"`
	LogoURL     string `json:"logo_url" form:"logo_url"`
	Website     string `json:"website" form:"website"`
	SortOrder   int    `json:"sort_order" form:"sort_order"`
	Active      bool   `json:"is_active" form:"is_active"`
}

func (r CompanyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Website, is.URL),
	)
}

func (h *CMSHandler) CreateCompany(c *fiber.Ctx) error {
	payload := new(CompanyRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse company payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	record := &models.Company{
		ID:          uuid.New(),
		Name:        payload.Name,
		Segment:     payload.Segment,
		Description: payload.Description,
		LogoURL:     payload.LogoURL,
		Website:     payload.Website,
		SortOrder:   payload.SortOrder,
		Active:      payload.Active,
	}

	created, err := h.Repo.Companies().Create(c.UserContext(), record)
	if err != nil {
		return RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CMSHandler) GetCompany(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return RenderError(c, goerrors.New("invalid company id", goerrors.CategoryBadInput))
	}

	record, err := h.Repo.Companies().GetByID(c.UserContext(), id.String())
	if err != nil {
		return RenderError(c, err)
	}
	return c.JSON(record)
}

func (h *CMSHandler) UpdateCompany(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return RenderError(c, goerrors.New("invalid company id", goerrors.CategoryBadInput))
	}

	payload := new(CompanyRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse company payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	record := &models.Company{
		ID:          id,
		Name:        payload.Name,
		Segment:     payload.Segment,
		Description: payload.Description,
		LogoURL:     payload.LogoURL,
		Website:     payload.Website,
		SortOrder:   payload.SortOrder,
		Active:      payload.Active,
	}

	updated, err := h.Repo.Companies().Update(c.UserContext(), record,
		repository.UpdateByID(id.String()))
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(updated)
}

func (h *CMSHandler) DeleteCompany(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return RenderError(c, goerrors.New("invalid company id", goerrors.CategoryBadInput))
	}

	record := &models.Company{ID: id}
	if err := h.Repo.Companies().Delete(c.UserContext(), record); err != nil {
		return RenderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CMSHandler) ListContent(c *fiber.Ctx) error {
	records, err := h.Repo.ContentSections().ListAll(c.UserContext())
	if err != nil {
		return RenderError(c, err)
	}
	return c.JSON(records)
}

func (h *CMSHandler) GetContent(c *fiber.Ctx) error {
	record, err := h.Repo.ContentSections().GetByKey(c.UserContext(), c.Params("key"))
	if err != nil {
		return RenderError(c, err)
	}
	return c.JSON(record)
}

// ContentRequest payload
type ContentRequest struct {
	Title    string         `json:"title" form:"title"`
	Subtitle string         `json:"subtitle" form:"subtitle"`
	Body     map[string]any `json:"body" form:"body"`
}

func (h *CMSHandler) UpdateContent(c *fiber.Ctx) error {
	key := c.Params("key")

	payload := new(ContentRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse content payload"))
	}

	record, err := h.Repo.ContentSections().GetByKey(c.UserContext(), key)
	if err != nil {
		if !repository.IsRecordNotFound(err) {
			return RenderError(c, err)
		}
		record = &models.ContentSection{
			ID:  uuid.New(),
			Key: key,
		}
		record.Title = payload.Title
		record.Subtitle = payload.Subtitle
		record.Body = payload.Body

		created, err := h.Repo.ContentSections().Create(c.UserContext(), record)
		if err != nil {
			return RenderError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}

	record.Title = payload.Title
	record.Subtitle = payload.Subtitle
	record.Body = payload.Body
	now := time.Now()
	record.UpdatedAt = &now

	updated, err := h.Repo.ContentSections().Update(c.UserContext(), record,
		repository.UpdateByID(record.ID.String()))
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(updated)
}

func (h *CMSHandler) GetSiteConfig(c *fiber.Ctx) error {
	record, err := h.Repo.SiteConfigs().Current(c.UserContext())
	if err != nil {
		return RenderError(c, err)
	}
	return c.JSON(record)
}

// SiteConfigRequest payload
type SiteConfigRequest struct {
	SiteName     string         `json:"site_name" form:"site_name"`
	LogoURL      string         `json:"logo_url" form:"logo_url"`
	PrimaryColor string         `json:"primary_color" form:"primary_color"`
	ContactEmail string         `json:"contact_email" form:"contact_email"`
	Social       map[string]any `json:"social" form:"social"`
}

func (r SiteConfigRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SiteName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.ContactEmail, is.Email),
	)
}

func (h *CMSHandler) UpdateSiteConfig(c *fiber.Ctx) error {
	payload := new(SiteConfigRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse site config payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	fresh := false
	record, err := h.Repo.SiteConfigs().Current(c.UserContext())
	if err != nil {
		if !repository.IsRecordNotFound(err) {
			return RenderError(c, err)
		}
		fresh = true
		record = &models.SiteConfig{ID: uuid.New()}
	}

	record.SiteName = payload.SiteName
	record.LogoURL = payload.LogoURL
	record.PrimaryColor = payload.PrimaryColor
	record.ContactEmail = payload.ContactEmail
	record.Social = payload.Social
	now := time.Now()
	record.UpdatedAt = &now

	if fresh {
		created, err := h.Repo.SiteConfigs().Create(c.UserContext(), record)
		if err != nil {
			return RenderError(c, err)
		}
		return c.JSON(created)
	}

	updated, err := h.Repo.SiteConfigs().Update(c.UserContext(), record,
		repository.UpdateByID(record.ID.String()))
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(updated)
}

// UploadLogo stores the site logo image and returns its public path
func (h *CMSHandler) UploadLogo(c *fiber.Ctx) error {
	return h.saveUpload(c, "")
}

// UploadCompanyLogo stores a portfolio company logo
func (h *CMSHandler) UploadCompanyLogo(c *fiber.Ctx) error {
	return h.saveUpload(c, "companies")
}

func (h *CMSHandler) saveUpload(c *fiber.Ctx, subdir string) error {
	file, err := c.FormFile("file")
	if err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "missing file upload"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg", ".webp":
	default:
		return RenderError(c, goerrors.New("unsupported image format", goerrors.CategoryValidation).
			WithTextCode("UNSUPPORTED_FORMAT"))
	}

	dir := h.UploadDir
	public := "/uploads/"
	if subdir != "" {
		dir = filepath.Join(dir, subdir)
		public += subdir + "/"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to prepare upload dir"))
	}

	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store upload"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": public + name,
	})
}
