package requests

// ListFilesRequest carries the pagination query parameters for owned-file
// listings.
type ListFilesRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// RecentFilesRequest carries the query parameters for the recent-files
// listing.
type RecentFilesRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ShareEmailRequest asks to mail a share link to a recipient.
type ShareEmailRequest struct {
	ShareID string `json:"shareId" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}
