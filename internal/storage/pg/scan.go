package pg

import (
	"database/sql"

	"github.com/ctchan-dev/ctchan/internal/domain"
)

const threadColumns = `
	id, board, subject, message, poster_name, poster_id,
	image_url, image_name, image_size, image_width, image_height,
	reply_count, image_count, is_sticky, is_locked, is_deleted,
	created_at, bumped_at`

const replyColumns = `
	id, thread_id, message, poster_name, poster_id,
	image_url, image_name, image_size, image_width, image_height,
	is_deleted, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// image columns are nullable as a group: either all set or all null
type imageRow struct {
	url    sql.NullString
	name   sql.NullString
	size   sql.NullInt64
	width  sql.NullInt32
	height sql.NullInt32
}

func (r *imageRow) toImage() *domain.Image {
	if !r.url.Valid {
		return nil
	}
	return &domain.Image{
		Url:       r.url.String,
		Name:      r.name.String,
		SizeBytes: r.size.Int64,
		Width:     int(r.width.Int32),
		Height:    int(r.height.Int32),
	}
}

func imageFields(img *domain.Image) (url, name any, size, width, height any) {
	if img == nil {
		return nil, nil, nil, nil, nil
	}
	return img.Url, img.Name, img.SizeBytes, img.Width, img.Height
}

func scanThread(row rowScanner) (domain.Thread, error) {
	var t domain.Thread
	var img imageRow
	err := row.Scan(
		&t.Id, &t.Board, &t.Subject, &t.Message, &t.PosterName, &t.PosterId,
		&img.url, &img.name, &img.size, &img.width, &img.height,
		&t.ReplyCount, &t.ImageCount, &t.IsSticky, &t.IsLocked, &t.IsDeleted,
		&t.CreatedAt, &t.BumpedAt,
	)
	if err != nil {
		return domain.Thread{}, err
	}
	t.Image = img.toImage()
	return t, nil
}

func scanReply(row rowScanner) (domain.Reply, error) {
	var r domain.Reply
	var img imageRow
	err := row.Scan(
		&r.Id, &r.ThreadId, &r.Message, &r.PosterName, &r.PosterId,
		&img.url, &img.name, &img.size, &img.width, &img.height,
		&r.IsDeleted, &r.CreatedAt,
	)
	if err != nil {
		return domain.Reply{}, err
	}
	r.Image = img.toImage()
	return r, nil
}
