package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-card/internal/document"
	"github.com/jonathan/profile-card/internal/logging"
	"github.com/jonathan/profile-card/internal/rendering"
	"github.com/jonathan/profile-card/internal/schemas"
	"github.com/jonathan/profile-card/internal/types"
)

const (
	mib = 1024 * 1024
	// multipartOverhead is the room left for boundaries and other form fields
	// on top of the file size limit.
	multipartOverhead = 1 * mib
	// maxFormMemory is how much of a multipart form is held in memory before
	// spilling to temp files.
	maxFormMemory = 32 * mib
	// maxCardBody bounds the generate-card body, which may carry an inline photo.
	maxCardBody = 10 * mib
)

// handleParsePDF extracts a profile from an uploaded PDF.
func (s *Server) handleParsePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.limits.MaxFileSizeBytes+multipartOverhead)

	upload, cleanup, err := s.readUpload(r)
	defer cleanup()
	if err != nil {
		s.parseErrorResponse(w, r, err)
		return
	}

	result, err := s.extractor.Run(r.Context(), upload)
	if err != nil {
		s.parseErrorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, types.ParsePDFResponse{
		Success:  true,
		Data:     result.Profile,
		Warnings: result.Warnings,
	})
}

// readUpload pulls the "file" part out of a multipart request. A request that
// is not multipart or has no file part yields a nil Upload, which the
// document validator reports as NO_FILE_PROVIDED.
func (s *Server) readUpload(r *http.Request) (*document.Upload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || errors.Is(err, multipart.ErrMessageTooLarge) {
			size := r.ContentLength
			if size < s.limits.MaxFileSizeBytes+multipartOverhead {
				size = s.limits.MaxFileSizeBytes + multipartOverhead
			}
			return nil, noop, s.documents.Oversized(size)
		}
		return nil, noop, nil
	}
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, cleanup, nil
	}

	return &document.Upload{
		Filename:  header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Size:      header.Size,
		Body:      file,
	}, func() { _ = file.Close(); cleanup() }, nil
}

// parseErrorResponse writes the failure envelope for the parse route.
func (s *Server) parseErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := Classify(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		s.logger.WithField("req_id", logging.RequestID(r.Context())).WithError(err).Error("http.parse_unexpected")
	}
	s.jsonResponse(w, r, status, types.ParsePDFErrorResponse{
		Success: false,
		Error:   types.ParseError{Error: message, Code: code},
	})
}

// handleGenerateCard renders submitted card data to a PNG download.
func (s *Server) handleGenerateCard(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithField("req_id", logging.RequestID(r.Context()))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCardBody))
	if err != nil {
		log.WithError(err).Info("card.read_failed")
		s.cardErrorResponse(w, r, http.StatusBadRequest, MessageInvalidCard)
		return
	}

	if !json.Valid(body) {
		log.Info("card.malformed_json")
		s.cardErrorResponse(w, r, http.StatusBadRequest, MessageInvalidCard)
		return
	}

	if err := schemas.ValidateCardRequest(body); err != nil {
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			log.WithError(err).Error("card.schema_unavailable")
			s.cardErrorResponse(w, r, http.StatusInternalServerError, MessageCardFailed)
			return
		}
		log.WithError(err).Info("card.invalid")
		s.cardErrorResponse(w, r, http.StatusBadRequest, MessageInvalidCard)
		return
	}

	var req types.GenerateCardRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.WithError(err).Info("card.invalid")
		s.cardErrorResponse(w, r, http.StatusBadRequest, MessageInvalidCard)
		return
	}
	if err := req.Validate(); err != nil {
		log.WithError(err).Info("card.invalid")
		s.cardErrorResponse(w, r, http.StatusBadRequest, MessageInvalidCard)
		return
	}

	card := rendering.ClampCard(*req.CardData, s.limits)
	png, err := s.renderer.Render(r.Context(), card)
	if err != nil {
		log.WithError(err).Error("card.render_failed")
		s.cardErrorResponse(w, r, http.StatusInternalServerError, MessageCardFailed)
		return
	}

	filename := rendering.SafeFilename(card.Name)
	log.WithFields(logrus.Fields{"file": filename, "bytes": len(png)}).Info("card.ok")

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// cardErrorResponse writes the failure envelope for the card route.
func (s *Server) cardErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.jsonResponse(w, r, status, types.GenerateCardErrorResponse{Success: false, Error: message})
}
