package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/service"
)

func (s *Server) listBooks(c *gin.Context) {
	books, err := s.svc.Catalog.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (s *Server) searchBooks(c *gin.Context) {
	books, err := s.svc.Catalog.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (s *Server) getBook(c *gin.Context) {
	book, err := s.svc.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) createBook(c *gin.Context) {
	in, ok := s.bindBook(c)
	if !ok {
		return
	}
	book, err := s.svc.Catalog.Create(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (s *Server) updateBook(c *gin.Context) {
	in, ok := s.bindBook(c)
	if !ok {
		return
	}
	book, err := s.svc.Catalog.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) deleteBook(c *gin.Context) {
	book, err := s.svc.Catalog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book deleted", "book": book})
}

// bookForm is the form-encoded book payload. Values arrive as text so that
// blank inputs can be told apart from explicit zeros.
type bookForm struct {
	Title         string `form:"title"`
	Description   string `form:"description"`
	Category      string `form:"category"`
	Trending      string `form:"trending"`
	CoverImage    string `form:"coverImage"`
	OldPrice      string `form:"oldPrice"`
	NewPrice      string `form:"newPrice"`
	Stock         string `form:"stock"`
	Author        string `form:"author"`
	Publisher     string `form:"publisher"`
	Language      string `form:"language"`
	Edition       string `form:"edition"`
	Pages         string `form:"pages"`
	PublishedYear string `form:"publishedYear"`
}

// input converts the form into a BookInput. Blank values are treated as absent.
func (f bookForm) input() (service.BookInput, error) {
	var in service.BookInput
	invalid := map[string]string{}

	in.Title = optString(f.Title)
	in.Description = optString(f.Description)
	in.Category = optString(f.Category)
	in.CoverImage = optString(f.CoverImage)
	in.Author = optString(f.Author)
	in.Publisher = optString(f.Publisher)
	in.Language = optString(f.Language)
	in.Edition = optString(f.Edition)

	if v := strings.TrimSpace(f.Trending); v != "" {
		if b, err := strconv.ParseBool(v); err != nil {
			invalid["trending"] = "must be a boolean"
		} else {
			in.Trending = &b
		}
	}
	for _, fl := range []struct {
		name string
		raw  string
		dst  **float64
	}{
		{"oldPrice", f.OldPrice, &in.OldPrice},
		{"newPrice", f.NewPrice, &in.NewPrice},
	} {
		if v := strings.TrimSpace(fl.raw); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				invalid[fl.name] = "must be a number"
				continue
			}
			*fl.dst = &n
		}
	}
	for _, fl := range []struct {
		name string
		raw  string
		dst  **int
	}{
		{"stock", f.Stock, &in.Stock},
		{"pages", f.Pages, &in.Pages},
		{"publishedYear", f.PublishedYear, &in.PublishedYear},
	} {
		if v := strings.TrimSpace(fl.raw); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				invalid[fl.name] = "must be an integer"
				continue
			}
			*fl.dst = &n
		}
	}

	if len(invalid) > 0 {
		return in, apperr.ValidationWithDetails("validation failed", invalid)
	}
	return in, nil
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// bindBook reads a book payload from JSON or a form. For multipart bodies an
// uploaded coverImage file is stored and replaces any coverImage text field.
func (s *Server) bindBook(c *gin.Context) (service.BookInput, bool) {
	var in service.BookInput
	ct := c.ContentType()
	if ct != binding.MIMEPOSTForm && ct != binding.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(&in); err != nil {
			s.respondError(c, apperr.Validation("invalid request body"))
			return in, false
		}
		return in, true
	}

	// binding.Form maps text values only; file parts are read by FormFile below.
	var form bookForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		s.respondError(c, apperr.Validation("invalid request body"))
		return in, false
	}
	in, err := form.input()
	if err != nil {
		s.respondError(c, err)
		return in, false
	}
	if ct != binding.MIMEMultipartPOSTForm {
		return in, true
	}

	fh, err := c.FormFile("coverImage")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, true
	case err != nil:
		s.respondError(c, apperr.Validation("invalid cover image upload"))
		return in, false
	}
	public, err := s.uploads.SaveImage(fh)
	if err != nil {
		s.respondError(c, err)
		return in, false
	}
	in.CoverImage = &public
	return in, true
}
