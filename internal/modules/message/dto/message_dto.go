package dto

type CreateThreadRequest struct {
	ExpertID uint `json:"expertId"`
}

type SendMessageRequest struct {
	Message  string  `json:"message"`
	FileURL  *string `json:"fileUrl"`
	FileName *string `json:"fileName"`
	FileSize *int64  `json:"fileSize"`
	FileType *string `json:"fileType"`
}

type ThreadItem struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	ExpertID     uint    `json:"expert_id"`
	LastMessage  string  `json:"last_message"`
	UnreadCount  int     `json:"unread_count"`
	UpdatedAt    string  `json:"updated_at"`
	ExpertName   string  `json:"expert_name"`
	ExpertAvatar *string `json:"expert_avatar"`
	Specialty    *string `json:"specialty"`
	TimeAgo      string  `json:"time_ago"`
}

type MessageItem struct {
	ID            uint    `json:"id"`
	MessageText   string  `json:"message_text"`
	SenderID      uint    `json:"sender_id"`
	CreatedAt     string  `json:"created_at"`
	IsRead        bool    `json:"is_read"`
	FileURL       *string `json:"file_url"`
	FileName      *string `json:"file_name"`
	FileSize      *int64  `json:"file_size"`
	FileType      *string `json:"file_type"`
	TimeFormatted string  `json:"time_formatted"`
	SenderType    string  `json:"sender_type"`
}

type UploadFileResponse struct {
	Success  bool   `json:"success"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}
