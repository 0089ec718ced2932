package service

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// CommentScheduler asks the external analysis service to post an automated
// comment on a new post. The call is fire-and-forget: a failure is logged and
// never fails post creation.
type CommentScheduler struct {
	url    string
	client *http.Client
}

func NewCommentScheduler(url string) *CommentScheduler {
	return &CommentScheduler{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type scheduleRequest struct {
	PostID       uint   `json:"post_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	ScanResultID *uint  `json:"scan_result_id"`
}

func (s *CommentScheduler) Schedule(postID uint, title, content string, scanResultID *uint) {
	if s == nil || s.url == "" {
		return
	}

	go func() {
		payload, err := json.Marshal(scheduleRequest{
			PostID:       postID,
			Title:        title,
			Content:      content,
			ScanResultID: scanResultID,
		})
		if err != nil {
			log.Printf("failed to encode schedule request: %v", err)
			return
		}

		resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Printf("failed to schedule automated comment: %v", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			log.Printf("comment scheduler returned status %d", resp.StatusCode)
		}
	}()
}
