package dto

type SearchResult struct {
	Type            string  `json:"type"`
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	Author          string  `json:"author"`
	AuthorID        uint    `json:"author_id"`
	ProfileImageURL *string `json:"profile_image_url"`
	Views           int     `json:"views"`
	CommentCount    int     `json:"comment_count"`
	CreatedAt       string  `json:"created_at"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
