package response

import (
	"time"

	"artdb/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
}

func ToReviewResponse(review *entity.Review, authorUsername string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		Author:    authorUsername,
		Text:      review.Text,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}

func ToCommentResponse(comment *entity.Comment, authorUsername string) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		Author:    authorUsername,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
