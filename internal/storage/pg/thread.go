package pg

import (
	"database/sql"
	"errors"
	"fmt"

	internal_errors "github.com/ctchan-dev/ctchan/internal/errors"

	"github.com/ctchan-dev/ctchan/internal/domain"
)

func (s *Storage) CreateThread(data domain.ThreadCreationData) (domain.Thread, error) {
	url, name, size, width, height := imageFields(data.Image)
	imageCount := 0
	if data.Image != nil {
		imageCount = 1
	}

	row := s.db.QueryRow(fmt.Sprintf(`
	INSERT INTO threads (board, subject, message, poster_name, poster_id,
		image_url, image_name, image_size, image_width, image_height, image_count)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING %s`, threadColumns),
		data.Board, data.Subject, data.Message, data.PosterName, data.PosterId,
		url, name, size, width, height, imageCount,
	)

	thread, err := scanThread(row)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to insert thread: %w", err)
	}
	return thread, nil
}

// ListThreads returns one page of a board's non-deleted threads: sticky
// first, then bump time descending, thread id ascending as the final
// tie-break so pagination stays reproducible. page below 1 is clamped to 1,
// matching how the views default a missing page parameter.
func (s *Storage) ListThreads(board domain.BoardTag, page, pageSize int) (domain.ThreadPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	rows, err := s.db.Query(fmt.Sprintf(`
	SELECT %s, COUNT(*) OVER() AS total
	FROM threads
	WHERE board = $1 AND NOT is_deleted
	ORDER BY is_sticky DESC, bumped_at DESC, id ASC
	LIMIT $2 OFFSET $3`, threadColumns),
		board, pageSize, offset,
	)
	if err != nil {
		return domain.ThreadPage{}, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	page_ := domain.ThreadPage{Threads: []domain.Thread{}}
	for rows.Next() {
		var t domain.Thread
		var img imageRow
		if err := rows.Scan(
			&t.Id, &t.Board, &t.Subject, &t.Message, &t.PosterName, &t.PosterId,
			&img.url, &img.name, &img.size, &img.width, &img.height,
			&t.ReplyCount, &t.ImageCount, &t.IsSticky, &t.IsLocked, &t.IsDeleted,
			&t.CreatedAt, &t.BumpedAt, &page_.Total,
		); err != nil {
			return domain.ThreadPage{}, fmt.Errorf("failed to scan thread: %w", err)
		}
		t.Image = img.toImage()
		page_.Threads = append(page_.Threads, t)
	}
	if err := rows.Err(); err != nil {
		return domain.ThreadPage{}, fmt.Errorf("rows iteration error: %w", err)
	}

	// the window total is lost when the page slice is empty past the end
	if len(page_.Threads) == 0 {
		err := s.db.QueryRow(
			"SELECT COUNT(*) FROM threads WHERE board = $1 AND NOT is_deleted",
			board,
		).Scan(&page_.Total)
		if err != nil {
			return domain.ThreadPage{}, fmt.Errorf("failed to count threads: %w", err)
		}
	}
	return page_, nil
}

// Catalog returns every non-deleted thread of a board in listing order, for
// the grid view that shows a whole board at once.
func (s *Storage) Catalog(board domain.BoardTag) ([]domain.Thread, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
	SELECT %s
	FROM threads
	WHERE board = $1 AND NOT is_deleted
	ORDER BY is_sticky DESC, bumped_at DESC, id ASC`, threadColumns),
		board,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	defer rows.Close()

	threads := []domain.Thread{}
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

// GetThread fetches a thread with its non-deleted replies in chronological
// order. Deleted threads are still fetchable: moderators follow direct links
// to them; only listings hide them.
func (s *Storage) GetThread(id domain.ThreadId) (domain.ThreadWithReplies, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		"SELECT %s FROM threads WHERE id = $1", threadColumns), id)

	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ThreadWithReplies{}, internal_errors.NotFound("Thread not found")
		}
		return domain.ThreadWithReplies{}, fmt.Errorf("failed to fetch thread: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
	SELECT %s
	FROM replies
	WHERE thread_id = $1 AND NOT is_deleted
	ORDER BY created_at ASC, id ASC`, replyColumns),
		id,
	)
	if err != nil {
		return domain.ThreadWithReplies{}, fmt.Errorf("failed to fetch replies: %w", err)
	}
	defer rows.Close()

	replies := []domain.Reply{}
	for rows.Next() {
		r, err := scanReply(rows)
		if err != nil {
			return domain.ThreadWithReplies{}, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, r)
	}
	if err := rows.Err(); err != nil {
		return domain.ThreadWithReplies{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return domain.ThreadWithReplies{Thread: thread, Replies: replies}, nil
}

// setThreadFlag is the shared idempotent flag-flip for moderation toggles.
func (s *Storage) setThreadFlag(column string, id domain.ThreadId, value bool) (domain.Thread, error) {
	// column comes from a fixed caller set, never from input
	row := s.db.QueryRow(fmt.Sprintf(
		"UPDATE threads SET %s = $2 WHERE id = $1 RETURNING %s", column, threadColumns),
		id, value,
	)

	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, fmt.Errorf("failed to update thread %s: %w", column, err)
	}
	return thread, nil
}

func (s *Storage) SetSticky(id domain.ThreadId, value bool) (domain.Thread, error) {
	return s.setThreadFlag("is_sticky", id, value)
}

func (s *Storage) SetLocked(id domain.ThreadId, value bool) (domain.Thread, error) {
	return s.setThreadFlag("is_locked", id, value)
}

func (s *Storage) DeleteThread(id domain.ThreadId) (domain.Thread, error) {
	return s.setThreadFlag("is_deleted", id, true)
}

func (s *Storage) RestoreThread(id domain.ThreadId) (domain.Thread, error) {
	return s.setThreadFlag("is_deleted", id, false)
}

func (s *Storage) GetOverview(recentLimit int) (domain.Overview, error) {
	var o domain.Overview
	err := s.db.QueryRow(`
	SELECT
		(SELECT COUNT(*) FROM threads),
		(SELECT COUNT(*) FROM replies),
		(SELECT COUNT(*) FROM threads WHERE is_deleted),
		(SELECT COUNT(*) FROM replies WHERE is_deleted)
	`).Scan(&o.TotalThreads, &o.TotalReplies, &o.DeletedThreads, &o.DeletedReplies)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("failed to aggregate overview: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
	SELECT %s FROM threads ORDER BY created_at DESC, id DESC LIMIT $1`, threadColumns),
		recentLimit,
	)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("failed to fetch recent threads: %w", err)
	}
	defer rows.Close()

	o.RecentThreads = []domain.Thread{}
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return domain.Overview{}, fmt.Errorf("failed to scan thread: %w", err)
		}
		o.RecentThreads = append(o.RecentThreads, t)
	}
	if err := rows.Err(); err != nil {
		return domain.Overview{}, fmt.Errorf("rows iteration error: %w", err)
	}
	return o, nil
}
