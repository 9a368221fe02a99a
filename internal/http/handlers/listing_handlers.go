package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/http/middleware"
	"github.com/fandressouza/indicacoes/internal/http/response"
)

// ImageField is the multipart field carrying the listing image
const ImageField = "image_upload"

// ListingHandlers serves the catalog and the add form
type ListingHandlers struct {
	catalog     domain.CatalogService
	submissions domain.SubmissionService
	images      imageURLs
	maxUpload   int64
}

// NewListingHandlers creates listing handlers. imageBase prefixes stored image references;
// maxUpload bounds the size of an add request body.
func NewListingHandlers(catalog domain.CatalogService, submissions domain.SubmissionService, imageBase string, maxUpload int64) *ListingHandlers {
	return &ListingHandlers{
		catalog:     catalog,
		submissions: submissions,
		images:      imageURLs(imageBase),
		maxUpload:   maxUpload,
	}
}

// AddRequest carries the add form fields. Validation happens in the submission service.
type AddRequest struct {
	Offer       string `form:"offer"`
	Phone       string `form:"phone"`
	HouseNumber string `form:"house_number"`
	CategoryOne string `form:"category_one"`
	CategoryTwo string `form:"category_two"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Delivery    string `form:"delivery"`
}

func (r AddRequest) form() domain.SubmissionForm {
	return domain.SubmissionForm{
		Offer:       r.Offer,
		Phone:       r.Phone,
		HouseNumber: r.HouseNumber,
		Primary:     r.CategoryOne,
		Secondary:   r.CategoryTwo,
		Description: r.Description,
		Price:       r.Price,
		Delivery:    checked(r.Delivery),
	}
}

// checked interprets an html checkbox value
func checked(v string) bool {
	if v == "on" || v == "yes" || v == "sim" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// View lists approved listings, optionally narrowed to one category
func (h *ListingHandlers) View(c *gin.Context) {
	category := c.Param("category")
	listings, err := h.images.views(h.catalog.Browse(c.Request.Context(), category))
	if err != nil {
		response.Error(c, err, "")
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"category": category,
		"listings": listings,
	})
}

// Advert shows one listing
func (h *ListingHandlers) Advert(c *gin.Context) {
	listing, err := h.catalog.Detail(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err, "")
		return
	}
	response.OK(c, http.StatusOK, h.images.view(listing))
}

// AddForm serves the vocabulary used by the add form
func (h *ListingHandlers) AddForm(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{
		"categories": h.catalog.Categories(),
		"max_bytes":  h.maxUpload,
	})
}

// Add handles a multipart listing submission
func (h *ListingHandlers) Add(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	var req AddRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, domain.ErrInvalidImage, "/add")
			return
		}
		response.Error(c, domain.ErrInvalidForm, "/add")
		return
	}

	image, err := readImage(c)
	if err != nil {
		response.Error(c, err, "/add")
		return
	}

	id, err := h.submissions.Submit(c.Request.Context(), middleware.SessionFrom(c), req.form(), image)
	if err != nil {
		response.Error(c, err, "/add")
		return
	}
	response.Done(c, http.StatusCreated, gin.H{"id": id, "status": domain.StatusPending}, "/profile", flashListingAdded)
}

// readImage returns nil when no file was sent so the submission service reports it
func readImage(c *gin.Context) (*domain.UploadedImage, error) {
	fh, err := c.FormFile(ImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.ErrInvalidImage
	}

	f, err := fh.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage
	}
	return &domain.UploadedImage{Filename: fh.Filename, Data: data}, nil
}
