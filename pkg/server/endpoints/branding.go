package endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/access"
	"github.com/doodlesbykumbi/grid-in-go/pkg/branding"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
)

// multipart overhead allowed on top of the logo itself
const maxMultipartOverhead = 1 << 20

func RegisterBrandingEndpoints(s *server.Server) {
	// GET is public so the login page can show the logo
	s.Router.HandleFunc("/api/branding/logo", handleGetLogo(s.Branding, s.Logger)).Methods("GET")
	s.Router.Handle("/api/branding/logo", s.AuthMiddleware.Middleware(handleUploadLogo(s.Branding, s.Logger))).Methods("POST")
}

func handleGetLogo(logos *branding.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, info, err := logos.Open()
		if errors.Is(err, branding.ErrNoLogo) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", "image/png")
		http.ServeContent(w, r, branding.LogoFileName, info.ModTime(), f)
	}
}

func handleUploadLogo(logos *branding.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionUploadBranding)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, branding.MaxLogoSize+maxMultipartOverhead)
		file, header, err := r.FormFile("file")
		if err != nil {
			respondWithErr(w, logger, fmt.Errorf("%w: multipart field \"file\" is required: %v", model.ErrInvalidInput, err))
			return
		}
		defer file.Close()

		if err := logos.Save(file); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("logo updated", zap.Int64("bytes", header.Size), zap.String("by", caller.Username))
		respondOK(w, http.StatusOK)
	}
}
