package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldsupport/backend/internal/repository"
)

func TestCreateBlogRequestBindsSectionFields(t *testing.T) {
	body := `{
		"title": "Hardening your perimeter",
		"shortDescription": "A field guide",
		"sections": [
			{"heading": "Firewalls", "content": "Start at the edge.", "image": "/img/fw.png"}
		]
	}`

	var req CreateBlogRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	blog := req.toBlog()
	require.Len(t, blog.Sections, 1)
	assert.Equal(t, repository.BlogSection{
		Heading: "Firewalls",
		Content: "Start at the edge.",
		Image:   "/img/fw.png",
	}, blog.Sections[0])
}

func TestCreateBlogRequestDefaults(t *testing.T) {
	req := &CreateBlogRequest{
		Title:            "Hardening your perimeter",
		ShortDescription: "A field guide",
	}
	require.NoError(t, req.Validate())

	blog := req.toBlog()
	assert.Equal(t, "Admin", blog.Author)
	assert.Equal(t, "Technology", blog.Category)
	assert.True(t, blog.Published)
	assert.Equal(t, []repository.BlogSection{}, blog.Sections)
}

func TestListBlogsRequestCapsPage(t *testing.T) {
	req := &ListBlogsRequest{Page: 2_000_000}
	assert.Error(t, req.Validate())

	req = &ListBlogsRequest{Page: 1_000_000, Limit: 50}
	assert.NoError(t, req.Validate())

	req = &ListBlogsRequest{Limit: 51}
	assert.Error(t, req.Validate())
}
