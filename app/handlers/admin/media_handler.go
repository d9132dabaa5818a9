package admin

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-admin-dashboard/app/services"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/renderer"
	"github.com/gorilla/mux"
)

const multipartMemory = 32 << 20

type UploadResponse struct {
	URLs     []string `json:"urls"`
	Failures []string `json:"failures"`
}

func uploadFiles(headers []*multipart.FileHeader) []services.UploadFile {
	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, services.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return files
}

// UploadMedia uploads the "files" parts for one media field of the open
// form. Files that fail are reported and the rest are kept.
func (h *AdminHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	field, err := services.ParseMediaField(mux.Vars(r)["field"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.badRequest(w, "Invalid upload.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.badRequest(w, "No files selected.")
		return
	}

	res, err := h.board(r).UploadMedia(r.Context(), field, uploadFiles(headers))
	out := UploadResponse{URLs: res.URLs, Failures: make([]string, 0, len(res.Failures))}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, f.Message())
	}
	switch {
	case errors.Is(err, services.ErrNothingUploaded):
		msg := "Upload failed."
		if len(res.Failures) > 0 {
			msg += " " + services.UploadErrorMessage(res.Failures[0].Err)
		}
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, renderer.Error{Error: msg})
		return
	case err != nil:
		h.writeError(w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, out)
}

func (h *AdminHandler) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	field, err := services.ParseMediaField(vars["field"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		h.badRequest(w, "Invalid index.")
		return
	}
	if err := h.board(r).RemoveMedia(field, index); err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}
