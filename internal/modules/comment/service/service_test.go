package service

import (
	"context"
	"net/http"
	"testing"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/internal/modules/comment/dto"
	postRepo "cslab.kr/securityhub/internal/modules/post/repository"
	"cslab.kr/securityhub/pkg/apperror"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *fakeUserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) CreateWithConsent(ctx context.Context, u *entity.User, c *entity.TosConsent) error {
	return nil
}
func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return nil
}
func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, id uint) error { return nil }
func (r *fakeUserRepo) Withdraw(ctx context.Context, id uint) error       { return nil }

type fakePostRepo struct {
	posts map[uint]*entity.Post
}

func (r *fakePostRepo) Create(ctx context.Context, p *entity.Post) error { return nil }
func (r *fakePostRepo) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if p, ok := r.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakePostRepo) FindDetailByID(ctx context.Context, id uint) (*entity.Post, error) {
	return r.FindByID(ctx, id)
}
func (r *fakePostRepo) List(ctx context.Context, filter postRepo.PostFilter) ([]entity.Post, error) {
	return nil, nil
}
func (r *fakePostRepo) Popular(ctx context.Context, limit int) ([]entity.Post, error) {
	return nil, nil
}
func (r *fakePostRepo) IncrementViews(ctx context.Context, id uint) error { return nil }
func (r *fakePostRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return nil
}
func (r *fakePostRepo) DeleteWithComments(ctx context.Context, id uint) error { return nil }
func (r *fakePostRepo) CommentsByPostID(ctx context.Context, postID uint) ([]entity.PostComment, error) {
	return nil, nil
}

type fakeCommentRepo struct {
	comments map[uint]*entity.PostComment
	nextID   uint
	counts   map[uint]int
	deleted  []uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: map[uint]*entity.PostComment{},
		nextID:   1,
		counts:   map[uint]int{},
	}
}

func (r *fakeCommentRepo) CreateWithCount(ctx context.Context, c *entity.PostComment) error {
	c.ID = r.nextID
	r.nextID++
	r.comments[c.ID] = c
	r.counts[c.PostID]++
	return nil
}
func (r *fakeCommentRepo) FindByID(ctx context.Context, id uint) (*entity.PostComment, error) {
	if c, ok := r.comments[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeCommentRepo) UpdateContent(ctx context.Context, id uint, content string) error {
	r.comments[id].Content = content
	return nil
}
func (r *fakeCommentRepo) DeleteWithCount(ctx context.Context, c *entity.PostComment) error {
	delete(r.comments, c.ID)
	r.deleted = append(r.deleted, c.ID)
	if r.counts[c.PostID] > 0 {
		r.counts[c.PostID]--
	}
	return nil
}

type fakeNotifService struct {
	created []entity.Notification
}

func (s *fakeNotifService) CreateNotification(ctx context.Context, n *entity.Notification) error {
	s.created = append(s.created, *n)
	return nil
}
func (s *fakeNotifService) List(ctx context.Context, userID uint) ([]entity.Notification, int64, error) {
	return nil, 0, nil
}
func (s *fakeNotifService) MarkAsRead(ctx context.Context, id, userID uint) error { return nil }
func (s *fakeNotifService) MarkAllAsRead(ctx context.Context, userID uint) error  { return nil }
func (s *fakeNotifService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

func newCommentFixture() (*fakeCommentRepo, *fakePostRepo, *fakeUserRepo, *fakeNotifService, CommentService) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{
		"author@example.com":    {ID: 1, Email: "author@example.com", Nickname: "글쓴이"},
		"commenter@example.com": {ID: 2, Email: "commenter@example.com", Nickname: "댓글러"},
		"bot@example.com":       {ID: 3, Email: "bot@example.com", Nickname: "분석봇", IsBot: true},
	}}
	posts := &fakePostRepo{posts: map[uint]*entity.Post{
		10: {ID: 10, AuthorID: 1, Title: "의심 문자", CommentCount: 0},
	}}
	comments := newFakeCommentRepo()
	notifs := &fakeNotifService{}
	svc := NewCommentService(comments, posts, users, notifs)
	return comments, posts, users, notifs, svc
}

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	comments, _, _, notifs, svc := newCommentFixture()

	resp, err := svc.Create(context.Background(), dto.CreateCommentRequest{
		PostID:    10,
		Content:   "저도 같은 문자를 받았어요",
		UserEmail: "commenter@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Author != "댓글러" {
		t.Errorf("response author mismatch: %q", resp.Author)
	}
	if comments.counts[10] != 1 {
		t.Errorf("comment count not incremented: %d", comments.counts[10])
	}

	if len(notifs.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifs.created))
	}
	n := notifs.created[0]
	if n.UserID != 1 {
		t.Errorf("notification sent to wrong user: %d", n.UserID)
	}
	if n.Type != entity.NotificationTypeComment {
		t.Errorf("wrong type %q", n.Type)
	}
	if n.Title != "회원님의 글에 새 댓글이 달렸습니다" {
		t.Errorf("wrong title %q", n.Title)
	}
	if n.Link != "/community/10" {
		t.Errorf("wrong link %q", n.Link)
	}
}

func TestCreateCommentByBotUsesAIType(t *testing.T) {
	_, _, _, notifs, svc := newCommentFixture()

	_, err := svc.Create(context.Background(), dto.CreateCommentRequest{
		PostID:    10,
		Content:   "위험도 85점, 피싱으로 판단됩니다.",
		UserEmail: "bot@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifs.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifs.created))
	}
	n := notifs.created[0]
	if n.Type != entity.NotificationTypeAIComment {
		t.Errorf("bot comment should use ai_comment type, got %q", n.Type)
	}
	if n.Title != "AI가 회원님의 글에 분석 댓글을 달았습니다" {
		t.Errorf("wrong bot title %q", n.Title)
	}
}

func TestCreateCommentOnOwnPostSkipsNotification(t *testing.T) {
	_, _, _, notifs, svc := newCommentFixture()

	_, err := svc.Create(context.Background(), dto.CreateCommentRequest{
		PostID:    10,
		Content:   "추가 정보입니다",
		UserEmail: "author@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifs.created) != 0 {
		t.Errorf("self-comment must not notify, got %d notifications", len(notifs.created))
	}
}

func TestCreateCommentValidation(t *testing.T) {
	_, _, _, _, svc := newCommentFixture()

	_, err := svc.Create(context.Background(), dto.CreateCommentRequest{PostID: 10})
	if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
		t.Errorf("missing fields should be 400, got %v", err)
	}

	_, err = svc.Create(context.Background(), dto.CreateCommentRequest{
		PostID: 10, Content: "hello", UserEmail: "ghost@example.com",
	})
	if apperror.MapErrorToStatus(err) != http.StatusNotFound {
		t.Errorf("unknown email should be 404, got %v", err)
	}
}

func TestUpdateCommentOwnershipGate(t *testing.T) {
	comments, _, _, _, svc := newCommentFixture()

	_, err := svc.Create(context.Background(), dto.CreateCommentRequest{
		PostID: 10, Content: "원본", UserEmail: "commenter@example.com",
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	err = svc.Update(context.Background(), 1, dto.UpdateCommentRequest{
		Content: "탈취 시도", UserEmail: "author@example.com",
	})
	if apperror.MapErrorToStatus(err) != http.StatusForbidden {
		t.Fatalf("non-owner update should be 403, got %v", err)
	}
	if comments.comments[1].Content != "원본" {
		t.Error("content must not change on a rejected update")
	}

	err = svc.Update(context.Background(), 1, dto.UpdateCommentRequest{
		Content: "수정본", UserEmail: "commenter@example.com",
	})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if comments.comments[1].Content != "수정본" {
		t.Error("owner update did not apply")
	}
}

func TestDeleteCommentOwnershipGate(t *testing.T) {
	comments, _, _, _, svc := newCommentFixture()

	_, err := svc.Create(context.Background(), dto.CreateCommentRequest{
		PostID: 10, Content: "지울 댓글", UserEmail: "commenter@example.com",
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	err = svc.Delete(context.Background(), 1, dto.DeleteCommentRequest{UserEmail: "author@example.com"})
	if apperror.MapErrorToStatus(err) != http.StatusForbidden {
		t.Fatalf("non-owner delete should be 403, got %v", err)
	}
	if len(comments.deleted) != 0 {
		t.Error("rejected delete must not remove the row")
	}

	err = svc.Delete(context.Background(), 1, dto.DeleteCommentRequest{UserEmail: "commenter@example.com"})
	if err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if comments.counts[10] != 0 {
		t.Errorf("comment count not decremented: %d", comments.counts[10])
	}
}

func TestDeleteMissingComment(t *testing.T) {
	_, _, _, _, svc := newCommentFixture()

	err := svc.Delete(context.Background(), 99, dto.DeleteCommentRequest{UserEmail: "commenter@example.com"})
	if apperror.MapErrorToStatus(err) != http.StatusNotFound {
		t.Errorf("missing comment should be 404, got %v", err)
	}
}
