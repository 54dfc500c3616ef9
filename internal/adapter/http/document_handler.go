package http

import (
	"net/http"

	docDomain "agrocredito/internal/domain/document"
	ucApp "agrocredito/internal/usecase/application"
	ucDoc "agrocredito/internal/usecase/document"

	"github.com/labstack/echo/v4"
)

// DocumentHandler records metadata for files already stored by the upload service.
type DocumentHandler struct {
	apps *ucApp.Usecase
	uc   *ucDoc.Usecase
}

func NewDocumentHandler(apps *ucApp.Usecase, uc *ucDoc.Usecase) *DocumentHandler {
	return &DocumentHandler{apps: apps, uc: uc}
}

type recordDocumentReq struct {
	Type             string `json:"type"              validate:"required,doctype"`
	OriginalFilename string `json:"original_filename" validate:"required,max=255"`
	SizeBytes        int64  `json:"size_bytes"        validate:"required,gte=1"`
	MimeType         string `json:"mime_type"         validate:"required,max=100"`
}

func (h *DocumentHandler) Record(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	var req recordDocumentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	appID := c.Param("application_id")
	app, err := h.apps.Get(ctx, appID)
	if err != nil {
		return writeError(c, err)
	}
	if err := mustOwn(claims, app.OwnerID); err != nil {
		return writeError(c, err)
	}
	doc, err := h.uc.Record(ctx, ucDoc.RecordInput{
		ApplicationID:    appID,
		Type:             docDomain.Type(req.Type),
		OriginalFilename: req.OriginalFilename,
		SizeBytes:        req.SizeBytes,
		MimeType:         req.MimeType,
		UploadedBy:       claims.UserID(),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// List returns the checklist, or every version of one type when ?type= is given.
func (h *DocumentHandler) List(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	appID := c.Param("application_id")
	app, err := h.apps.Get(ctx, appID)
	if err != nil {
		return writeError(c, err)
	}
	if err := mayRead(claims, app.OwnerID); err != nil {
		return writeError(c, err)
	}
	if t := c.QueryParam("type"); t != "" {
		versions, err := h.uc.Versions(ctx, appID, docDomain.Type(t))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"items": versions})
	}
	list, err := h.uc.ListLatest(ctx, appID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
