package queue

import (
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/service"
)

type Queue struct {
	cr repository.ContentRepository
	sa repository.SelectedAccountRepository
	ac repository.SocialAccountRepository
	ph repository.PublishHistoryRepository
	er repository.EngagementRepository
	pi service.PinterestService
	tt service.TiktokService
	ig service.InstagramService
}

func NewQueue(
	cr repository.ContentRepository,
	sa repository.SelectedAccountRepository,
	ac repository.SocialAccountRepository,
	ph repository.PublishHistoryRepository,
	er repository.EngagementRepository,
	pi service.PinterestService,
	tt service.TiktokService,
	ig service.InstagramService) *Queue {
	return &Queue{
		cr: cr,
		sa: sa,
		ac: ac,
		ph: ph,
		er: er,
		pi: pi,
		tt: tt,
		ig: ig,
	}
}

const TaskTypePublishContent = "content:publish"

type PublishContentPayload struct {
	ContentID int64 `json:"content_id"`
}
