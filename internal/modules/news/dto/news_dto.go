package dto

type CreateNewsRequest struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Content     string  `json:"content"`
	Tag         string  `json:"tag"`
	BgColor     string  `json:"bg_color"`
	Affiliation *string `json:"affiliation"`
	UserEmail   string  `json:"userEmail"`
}

type UpdateNewsRequest struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Content     string  `json:"content"`
	Tag         string  `json:"tag"`
	BgColor     string  `json:"bg_color"`
	Affiliation *string `json:"affiliation"`
	UserEmail   string  `json:"userEmail"`
}

type CreateNewsCommentRequest struct {
	NewsID    uint   `json:"newsId"`
	Content   string `json:"content"`
	UserEmail string `json:"userEmail"`
}

type NewsListItem struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Author      string  `json:"author"`
	Affiliation *string `json:"affiliation"`
	Date        string  `json:"date"`
	Tag         string  `json:"tag"`
	Image       string  `json:"image"`
	Views       int     `json:"views"`
}

type NewsCommentItem struct {
	ID              uint    `json:"id"`
	Content         string  `json:"content"`
	CreatedAt       string  `json:"created_at"`
	Author          string  `json:"author"`
	AuthorEmail     string  `json:"author_email"`
	IsExpert        bool    `json:"is_expert"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type NewsDetailResponse struct {
	ID              uint              `json:"id"`
	Title           string            `json:"title"`
	Summary         string            `json:"summary"`
	Content         string            `json:"content"`
	Views           int               `json:"views"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
	Tag             string            `json:"tag"`
	BgColor         string            `json:"bg_color"`
	Affiliation     *string           `json:"affiliation"`
	AuthorID        uint              `json:"author_id"`
	Author          string            `json:"author"`
	AuthorEmail     string            `json:"author_email"`
	IsExpert        bool              `json:"is_expert"`
	ProfileImageURL *string           `json:"profile_image_url"`
	Comments        []NewsCommentItem `json:"comments"`
	CommentCount    int               `json:"comment_count"`
}
