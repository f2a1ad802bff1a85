package handler

import (
	"bytes"
	"io"
	"net/http"
	"slices"

	internal_errors "github.com/ctchan-dev/ctchan/internal/errors"
	"github.com/ctchan-dev/ctchan/internal/imager"
	"github.com/ctchan-dev/ctchan/internal/utils"
)

// Upload accepts a multipart form with a single "image" file, stores it and
// returns the image metadata the client embeds in its next post.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.cfg.Public.MaxImageBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20) // form overhead headroom

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		http.Error(w, "Image exceeds the size limit", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.Validation("Missing image file"))
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		http.Error(w, "Image exceeds the size limit", http.StatusRequestEntityTooLarge)
		return
	}

	// trust sniffed content, not the client-declared header
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	head = head[:n]
	mimeType := http.DetectContentType(head)
	if !slices.Contains(h.cfg.Public.AllowedImageMimeTypes, mimeType) {
		utils.WriteErrorAndStatusCode(w, internal_errors.Validation("Unsupported image type"))
		return
	}

	data, err := io.ReadAll(io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	image, err := h.images.Save(bytes.NewReader(data), header.Filename, mimeType)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	image.Width, image.Height = imager.Probe(bytes.NewReader(data))

	utils.WriteJSONStatus(w, http.StatusCreated, image)
}
