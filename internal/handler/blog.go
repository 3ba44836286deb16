package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/validation"
)

type BlogHandler struct {
	Handler
	blogs *repository.BlogRepository
}

func NewBlogHandler(s *server.Server, blogs *repository.BlogRepository) *BlogHandler {
	return &BlogHandler{
		Handler: NewHandler(s),
		blogs:   blogs,
	}
}

const defaultBlogPageSize = 6

// Page is capped so page*limit stays far from integer overflow; pages past
// the data simply come back empty.
type ListBlogsRequest struct {
	Page  int `query:"page" validate:"omitempty,gt=0,max=1000000"`
	Limit int `query:"limit" validate:"omitempty,gt=0,max=50"`
}

func (r *ListBlogsRequest) Validate() error {
	return validation.Struct(r)
}

type ListBlogsResponse struct {
	Blogs       []*repository.Blog `json:"blogs"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
	TotalBlogs  int64              `json:"totalBlogs"`
}

func (h *BlogHandler) List(c echo.Context, req *ListBlogsRequest) (*ListBlogsResponse, error) {
	page := req.Page
	if page == 0 {
		page = 1
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultBlogPageSize
	}

	blogs, total, err := h.blogs.ListPage(c.Request().Context(), page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListBlogsResponse{
		Blogs:       blogs,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalBlogs:  total,
	}, nil
}

type GetBlogRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetBlogRequest) Validate() error {
	return validation.Struct(r)
}

func (h *BlogHandler) Get(c echo.Context, req *GetBlogRequest) (*repository.Blog, error) {
	return h.blogs.GetByID(c.Request().Context(), req.ID)
}

type CreateBlogRequest struct {
	Title            string                   `json:"title" validate:"required"`
	ShortDescription string                   `json:"shortDescription" validate:"required"`
	Content          string                   `json:"content"`
	Author           string                   `json:"author"`
	AuthorBio        string                   `json:"authorBio"`
	Image            string                   `json:"image"`
	Category         string                   `json:"category"`
	Published        *bool                    `json:"published"`
	Sections         []repository.BlogSection `json:"sections"`
}

func (r *CreateBlogRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateBlogRequest) toBlog() *repository.Blog {
	blog := &repository.Blog{
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		Content:          r.Content,
		Author:           r.Author,
		AuthorBio:        r.AuthorBio,
		Image:            r.Image,
		Category:         r.Category,
		Published:        true,
		Sections:         r.Sections,
	}
	if r.Author == "" {
		blog.Author = "Admin"
	}
	if r.Category == "" {
		blog.Category = "Technology"
	}
	if r.Published != nil {
		blog.Published = *r.Published
	}
	if blog.Sections == nil {
		blog.Sections = []repository.BlogSection{}
	}
	return blog
}

func (h *BlogHandler) Create(c echo.Context, req *CreateBlogRequest) (*repository.Blog, error) {
	return h.blogs.Create(c.Request().Context(), req.toBlog())
}

type UpdateBlogRequest struct {
	ID string `param:"id" validate:"required,uuid"`
	CreateBlogRequest
}

func (r *UpdateBlogRequest) Validate() error {
	return validation.Struct(r)
}

func (h *BlogHandler) Update(c echo.Context, req *UpdateBlogRequest) (*repository.Blog, error) {
	return h.blogs.Update(c.Request().Context(), req.ID, req.toBlog())
}

type DeleteBlogRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteBlogRequest) Validate() error {
	return validation.Struct(r)
}

func (h *BlogHandler) Delete(c echo.Context, req *DeleteBlogRequest) error {
	return h.blogs.Delete(c.Request().Context(), req.ID)
}
