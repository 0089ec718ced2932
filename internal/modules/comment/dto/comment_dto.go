package dto

type CreateCommentRequest struct {
	PostID    uint   `json:"postId"`
	Content   string `json:"content"`
	UserEmail string `json:"userEmail"`
}

type UpdateCommentRequest struct {
	Content   string `json:"content"`
	UserEmail string `json:"userEmail"`
}

type DeleteCommentRequest struct {
	UserEmail string `json:"userEmail"`
}

type CommentResponse struct {
	ID              uint    `json:"id"`
	PostID          uint    `json:"post_id"`
	Content         string  `json:"content"`
	CreatedAt       string  `json:"created_at"`
	Author          string  `json:"author"`
	IsExpert        bool    `json:"is_expert"`
	IsBot           bool    `json:"is_bot"`
	ProfileImageURL *string `json:"profile_image_url"`
}
