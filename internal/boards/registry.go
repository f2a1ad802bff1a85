// Package boards holds the static board registry. Boards come from config at
// startup; there is no runtime board CRUD.
package boards

import (
	"fmt"

	"github.com/ctchan-dev/ctchan/internal/domain"
	interrors "github.com/ctchan-dev/ctchan/internal/errors"
)

type Registry struct {
	byTag map[domain.BoardTag]domain.Board
	order []domain.BoardTag
}

func NewRegistry(boards []domain.Board) (*Registry, error) {
	r := &Registry{byTag: make(map[domain.BoardTag]domain.Board, len(boards))}
	for _, b := range boards {
		if b.Tag == "" {
			return nil, fmt.Errorf("board with empty tag")
		}
		if _, ok := r.byTag[b.Tag]; ok {
			return nil, fmt.Errorf("duplicate board tag %q", b.Tag)
		}
		r.byTag[b.Tag] = b
		r.order = append(r.order, b.Tag)
	}
	return r, nil
}

// List returns publicly visible boards in config order.
func (r *Registry) List() []domain.Board {
	out := make([]domain.Board, 0, len(r.order))
	for _, tag := range r.order {
		if b := r.byTag[tag]; !b.Hidden {
			out = append(out, b)
		}
	}
	return out
}

// ListAll returns every board, hidden included. Moderation surface only.
func (r *Registry) ListAll() []domain.Board {
	out := make([]domain.Board, 0, len(r.order))
	for _, tag := range r.order {
		out = append(out, r.byTag[tag])
	}
	return out
}

func (r *Registry) Get(tag domain.BoardTag) (domain.Board, error) {
	b, ok := r.byTag[tag]
	if !ok {
		return domain.Board{}, interrors.NotFound("Board not found")
	}
	return b, nil
}
