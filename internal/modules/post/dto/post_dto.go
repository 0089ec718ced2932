package dto

type CreatePostRequest struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Content      string `json:"content"`
	UserEmail    string `json:"userEmail"`
	ScanResultID *uint  `json:"scanResultId"`
}

type UpdatePostRequest struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Content      string `json:"content"`
	UserEmail    string `json:"userEmail"`
	ScanResultID *uint  `json:"scanResultId"`
}

type DeletePostRequest struct {
	UserEmail string `json:"userEmail"`
}

type PostListItem struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Content      string  `json:"content"`
	Views        int     `json:"views"`
	CommentCount int     `json:"comment_count"`
	CreatedAt    string  `json:"created_at"`
	Author       string  `json:"author"`
	IsExpert     bool    `json:"is_expert"`
	ScanID       *uint   `json:"scan_id"`
	ScanType     *string `json:"scan_type"`
	ScanResult   *string `json:"scan_result"`
	ScanRisk     *int    `json:"scan_risk_score"`
	EasySummary  *string `json:"easy_summary"`
	ScanDate     *string `json:"scan_date"`
}

type CommentItem struct {
	ID              uint    `json:"id"`
	Content         string  `json:"content"`
	CreatedAt       string  `json:"created_at"`
	Author          string  `json:"author"`
	AuthorEmail     string  `json:"author_email"`
	IsExpert        bool    `json:"is_expert"`
	IsBot           bool    `json:"is_bot"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type PostDetailResponse struct {
	PostListItem
	UpdatedAt  string        `json:"updated_at"`
	ScanTarget *string       `json:"scan_target"`
	Comments   []CommentItem `json:"comments"`
}

type PopularPostItem struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Views    int    `json:"views"`
	Comments int    `json:"comments"`
	Author   string `json:"author"`
	Rank     int    `json:"rank"`
}
