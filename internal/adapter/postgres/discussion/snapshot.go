package discussion

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

// Snapshot returns every discussion of the category with full comment trees.
// Discussions and comments come from one statement, so the result is a single
// consistent read. An empty category returns all discussions.
func (r *Repo) Snapshot(ctx context.Context, category domain.Category) ([]*domain.Discussion, error) {
	query := postgres.Builder.
		Select(
			"d.id", "d.title", "d.author", "d.category", "d.content",
			"d.created_at", "d.solved", "d.views", "d.like_count",
			"c.id", "c.parent_id", "c.author", "c.content", "c.created_at",
			"c.like_count", "c.funny_count", "c.insightful_count", "c.loved_count",
		).
		From("discussions d").
		LeftJoin("comments c ON c.discussion_id = d.id").
		OrderBy("d.seq", "c.seq")
	if category != "" {
		query = query.Where(sq.Eq{"d.category": string(category)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build snapshot", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("snapshot discussions", err)
	}
	defer rows.Close()

	var (
		out   []*domain.Discussion
		flats [][]domain.Comment
		index = make(map[uuid.UUID]int)
	)
	for rows.Next() {
		var (
			d          domain.Discussion
			cat        string
			cID        *uuid.UUID
			cParent    *uuid.UUID
			cAuthor    *string
			cContent   *string
			cCreatedAt *time.Time
			counts     [4]*int
		)
		err := rows.Scan(
			&d.ID, &d.Title, &d.Author, &cat, &d.Content,
			&d.CreatedAt, &d.Solved, &d.Views, &d.LikeCount,
			&cID, &cParent, &cAuthor, &cContent, &cCreatedAt,
			&counts[0], &counts[1], &counts[2], &counts[3],
		)
		if err != nil {
			return nil, postgres.StoreError("scan snapshot", err)
		}

		i, seen := index[d.ID]
		if !seen {
			d.Category = domain.Category(cat)
			i = len(out)
			index[d.ID] = i
			out = append(out, &d)
			flats = append(flats, nil)
		}
		if cID == nil {
			continue
		}

		flats[i] = append(flats[i], domain.Comment{
			ID:           *cID,
			DiscussionID: out[i].ID,
			ParentID:     cParent,
			Author:       deref(cAuthor),
			Content:      deref(cContent),
			CreatedAt:    deref(cCreatedAt),
			Reactions: domain.ReactionCounts{
				Like:       deref(counts[0]),
				Funny:      deref(counts[1]),
				Insightful: deref(counts[2]),
				Loved:      deref(counts[3]),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("snapshot discussions", err)
	}

	for i, d := range out {
		d.Comments = domain.BuildCommentTree(flats[i])
		for _, c := range flats[i] {
			if c.ParentID == nil {
				d.ReplyCount++
			}
		}
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
