package handler

import (
	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

func toUserInfo(u *domain.User) userInfo {
	rewards := make([]rewardInfo, 0, len(u.Rewards))
	for _, r := range u.Rewards {
		rewards = append(rewards, rewardInfo{
			Description: r.Description,
			AwardedAt:   r.AwardedAt,
			AwardedBy:   r.AwardedBy,
		})
	}
	return userInfo{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		Status:   u.Status,
		IsBanned: u.IsBanned,
		Rewards:  rewards,
	}
}

func toUserListResponse(l *ports.UserList) userListResponse {
	items := make([]userInfo, 0, len(l.Items))
	for _, u := range l.Items {
		items = append(items, toUserInfo(u))
	}
	return userListResponse{
		Items: items,
		pageMeta: pageMeta{
			Total:      l.Total,
			Page:       l.Page,
			Limit:      l.Limit,
			TotalPages: l.TotalPages,
		},
	}
}

func toModerationLogResponse(userID string, events []domain.ModerationEvent) moderationLogResponse {
	out := make([]moderationEventInfo, 0, len(events))
	for _, e := range events {
		out = append(out, moderationEventInfo{
			Kind:        string(e.Kind),
			Description: e.Description,
			RoleFrom:    string(e.RoleFrom),
			RoleTo:      string(e.RoleTo),
			ActorID:     e.ActorID,
			ActorName:   e.ActorName,
			OccurredAt:  e.OccurredAt,
		})
	}
	return moderationLogResponse{UserID: userID, Events: out}
}

func toCommentInfo(c domain.Comment) commentInfo {
	return commentInfo{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toPostInfo(p *domain.Post) postInfo {
	comments := make([]commentInfo, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, toCommentInfo(c))
	}
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return postInfo{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		LikeCount: len(likes),
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

func toPostListResponse(l *ports.PostList) postListResponse {
	items := make([]postInfo, 0, len(l.Items))
	for _, p := range l.Items {
		items = append(items, toPostInfo(p))
	}
	return postListResponse{
		Items: items,
		pageMeta: pageMeta{
			Total:      l.Total,
			Page:       l.Page,
			Limit:      l.Limit,
			TotalPages: l.TotalPages,
		},
	}
}

func toGroupInfo(g *domain.Group) groupInfo {
	return groupInfo{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}
