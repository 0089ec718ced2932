package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"cslab.kr/securityhub/internal/entity"
	"cslab.kr/securityhub/pkg/apperror"
)

type fakeSearchRepo struct {
	posts   []entity.Post
	keyword string
	limit   int
}

func (r *fakeSearchRepo) SearchPosts(ctx context.Context, keyword string, limit int) ([]entity.Post, error) {
	r.keyword = keyword
	r.limit = limit
	return r.posts, nil
}

func TestSearchRejectsEmptyKeyword(t *testing.T) {
	svc := NewSearchService(nil, &fakeSearchRepo{})

	for _, keyword := range []string{"", "   "} {
		_, err := svc.Search(context.Background(), keyword)
		if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
			t.Errorf("keyword %q should be 400, got %v", keyword, err)
		}
		if err.Error() != "검색어를 입력해주세요." {
			t.Errorf("message mismatch: %q", err.Error())
		}
	}
}

func TestSearchSQLFallback(t *testing.T) {
	author := &entity.User{ID: 2, Nickname: "제보자"}
	repo := &fakeSearchRepo{posts: []entity.Post{
		{ID: 1, Title: "스미싱 문자 공유", Content: "택배 사칭 링크입니다", Author: author, Views: 5, CommentCount: 2},
	}}
	svc := NewSearchService(nil, repo)

	resp, err := svc.Search(context.Background(), "  스미싱 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.keyword != "스미싱" {
		t.Errorf("keyword must be trimmed before the query, got %q", repo.keyword)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(resp.Results))
	}

	got := resp.Results[0]
	if got.Type != "post" {
		t.Errorf("unexpected result type %q", got.Type)
	}
	if got.Author != "제보자" || got.AuthorID != 2 {
		t.Errorf("author not carried over: %+v", got)
	}
}

func TestExcerptCapsLongContent(t *testing.T) {
	long := strings.Repeat("가", 300)
	if got := excerpt(long); got != strings.Repeat("가", 200) {
		t.Errorf("excerpt should cut at 200 runes, got %d", len([]rune(got)))
	}

	short := "짧은 본문"
	if got := excerpt(short); got != short {
		t.Errorf("short content should pass through, got %q", got)
	}
}

func TestCleanContentForIndex(t *testing.T) {
	svc := NewSearchService(nil, nil).(*searchService)

	got := svc.cleanContentForIndex("<p>의심스러운   <b>링크</b>&nbsp;발견</p>")
	if strings.ContainsAny(got, "<>") {
		t.Errorf("markup must be stripped: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace runs must collapse: %q", got)
	}
}

func TestIndexAndDeleteAreNoOpsWithoutClient(t *testing.T) {
	svc := NewSearchService(nil, nil)

	if err := svc.IndexPost(&entity.Post{ID: 1, Title: "t"}); err != nil {
		t.Errorf("indexing without a client should be a no-op, got %v", err)
	}
	if err := svc.DeletePost(1); err != nil {
		t.Errorf("delete without a client should be a no-op, got %v", err)
	}
}
