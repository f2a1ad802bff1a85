package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	internal_errors "github.com/ctchan-dev/ctchan/internal/errors"

	"github.com/ctchan-dev/ctchan/internal/domain"
)

// CreateReply inserts a reply and maintains the parent thread's counters and
// bump time in the same transaction. The counter update is a single atomic
// UPDATE, never a read-modify-write round trip, so concurrent replies to one
// thread cannot lose increments. Replies to locked threads are rejected.
//
// The returned thread is the parent as it looks after the bump, so callers
// can fan it out to listing watchers without another query.
func (s *Storage) CreateReply(data domain.ReplyCreationData) (domain.Reply, domain.Thread, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Reply{}, domain.Thread{}, err
	}
	defer tx.Rollback() // ignored once the tx commits

	newImages := 0
	if data.Image != nil {
		newImages = 1
	}
	createdTs := time.Now().UTC().Round(time.Microsecond) // database rounds to microsecond anyway

	// GREATEST keeps bumped_at monotonic: createdTs is read before this
	// statement takes the row lock, so a concurrent reply that locked first
	// may already have written a later bump time.
	row := tx.QueryRow(fmt.Sprintf(`
	UPDATE threads
	SET reply_count = reply_count + 1,
		image_count = image_count + $1,
		bumped_at = CASE WHEN is_locked THEN bumped_at ELSE GREATEST(bumped_at, $2) END
	WHERE id = $3
	RETURNING %s`, threadColumns),
		newImages, createdTs, data.ThreadId,
	)
	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to bump thread: %w", err)
	}
	// rolling back discards the counter bump above
	if thread.IsDeleted {
		return domain.Reply{}, domain.Thread{}, internal_errors.NotFound("Thread not found")
	}
	if thread.IsLocked {
		return domain.Reply{}, domain.Thread{}, internal_errors.ThreadLocked("Thread is locked")
	}

	url, name, size, width, height := imageFields(data.Image)
	row = tx.QueryRow(fmt.Sprintf(`
	INSERT INTO replies (thread_id, message, poster_name, poster_id,
		image_url, image_name, image_size, image_width, image_height, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING %s`, replyColumns),
		data.ThreadId, data.Message, data.PosterName, data.PosterId,
		url, name, size, width, height, createdTs,
	)

	reply, err := scanReply(row)
	if err != nil {
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to insert reply: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return reply, thread, nil
}

func (s *Storage) GetReply(id domain.ReplyId) (domain.Reply, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		"SELECT %s FROM replies WHERE id = $1", replyColumns), id)

	reply, err := scanReply(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, internal_errors.NotFound("Reply not found")
		}
		return domain.Reply{}, fmt.Errorf("failed to fetch reply: %w", err)
	}
	return reply, nil
}

// LatestReplies returns the newest non-deleted replies of a thread in
// ascending chronological order. Fetched descending, then reversed, so the
// preview slice under a listing row reads top to bottom.
func (s *Storage) LatestReplies(threadId domain.ThreadId, limit int) ([]domain.Reply, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
	SELECT %s
	FROM replies
	WHERE thread_id = $1 AND NOT is_deleted
	ORDER BY created_at DESC, id DESC
	LIMIT $2`, replyColumns),
		threadId, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest replies: %w", err)
	}
	defer rows.Close()

	replies := []domain.Reply{}
	for rows.Next() {
		r, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	for i, j := 0, len(replies)-1; i < j; i, j = i+1, j-1 {
		replies[i], replies[j] = replies[j], replies[i]
	}
	return replies, nil
}

// DeleteReply soft-deletes a reply and decrements the parent's counters in
// the same transaction, keeping reply_count equal to the visible reply count.
// Already-deleted replies are a no-op.
func (s *Storage) DeleteReply(id domain.ReplyId) (domain.Reply, domain.Thread, error) {
	return s.flipReply(id, true)
}

// RestoreReply undoes a soft deletion, re-incrementing the parent's counters.
func (s *Storage) RestoreReply(id domain.ReplyId) (domain.Reply, domain.Thread, error) {
	return s.flipReply(id, false)
}

func (s *Storage) flipReply(id domain.ReplyId, deleted bool) (domain.Reply, domain.Thread, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Reply{}, domain.Thread{}, err
	}
	defer tx.Rollback() // ignored once the tx commits

	row := tx.QueryRow(fmt.Sprintf(`
	UPDATE replies SET is_deleted = $2
	WHERE id = $1 AND is_deleted <> $2
	RETURNING %s`, replyColumns),
		id, deleted,
	)

	reply, err := scanReply(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// either absent or the flag already matches; only absence is an error
			return s.replyNoop(tx, id)
		}
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to update reply: %w", err)
	}

	delta := 1
	if deleted {
		delta = -1
	}
	hasImage := 0
	if reply.Image != nil {
		hasImage = 1
	}
	row = tx.QueryRow(fmt.Sprintf(`
	UPDATE threads
	SET reply_count = reply_count + $1,
		image_count = image_count + $2
	WHERE id = $3
	RETURNING %s`, threadColumns),
		delta, delta*hasImage, reply.ThreadId,
	)
	thread, err := scanThread(row)
	if err != nil {
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to adjust thread counters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return reply, thread, nil
}

// replyNoop resolves the no-rows case of flipReply: a repeated flip commits
// nothing and returns the current state, a missing reply is an error.
func (s *Storage) replyNoop(tx *sql.Tx, id domain.ReplyId) (domain.Reply, domain.Thread, error) {
	row := tx.QueryRow(fmt.Sprintf(
		"SELECT %s FROM replies WHERE id = $1", replyColumns), id)
	reply, err := scanReply(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, domain.Thread{}, internal_errors.NotFound("Reply not found")
		}
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to fetch reply: %w", err)
	}

	row = tx.QueryRow(fmt.Sprintf(
		"SELECT %s FROM threads WHERE id = $1", threadColumns), reply.ThreadId)
	thread, err := scanThread(row)
	if err != nil {
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Reply{}, domain.Thread{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return reply, thread, nil
}
